//go:build mage

package main

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode"

	"github.com/goccy/go-json"
)

// pkgStats counts Go lines for one package directory.
type pkgStats struct {
	Package string `json:"package"`
	Prod    int    `json:"go_loc_prod"`
	Test    int    `json:"go_loc_test"`
}

// Stats prints Go lines of code per package and in total, and the word
// count of the Markdown documentation, as one JSON object.
func Stats() error {
	byDir := map[string]*pkgStats{}
	err := filepath.WalkDir(".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			// The go tool ignores directories starting with "_" or ".".
			name := d.Name()
			if path != "." && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") ||
				name == "vendor" || name == "magefiles" || path == binaryDir) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}
		n, err := countLines(path)
		if err != nil {
			return nil
		}
		dir := filepath.ToSlash(filepath.Dir(path))
		s, ok := byDir[dir]
		if !ok {
			s = &pkgStats{Package: dir}
			byDir[dir] = s
		}
		if strings.HasSuffix(path, "_test.go") {
			s.Test += n
		} else {
			s.Prod += n
		}
		return nil
	})
	if err != nil {
		return err
	}

	var pkgs []pkgStats
	var prod, test int
	for _, s := range byDir {
		pkgs = append(pkgs, *s)
		prod += s.Prod
		test += s.Test
	}
	slices.SortFunc(pkgs, func(a, b pkgStats) int { return strings.Compare(a.Package, b.Package) })

	docWords, err := countWordsInGlob("*.md")
	if err != nil {
		return err
	}

	line, err := json.Marshal(struct {
		Packages []pkgStats `json:"packages"`
		Prod     int        `json:"go_loc_prod"`
		Test     int        `json:"go_loc_test"`
		Total    int        `json:"go_loc"`
		DocWords int        `json:"doc_wc"`
	}{pkgs, prod, test, prod + test, docWords})
	if err != nil {
		return err
	}
	fmt.Println(string(line))
	return nil
}

func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	n := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		n++
	}
	return n, sc.Err()
}

// countWordsInGlob sums whitespace-separated words over the files matching
// pattern. Unreadable files are skipped.
func countWordsInGlob(pattern string) (int, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		total += len(strings.FieldsFunc(string(data), unicode.IsSpace))
	}
	return total, nil
}
