package sqlite

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// jsonlRecords is the content of a JSON Lines file: one object per line,
// with the union of their keys in order of first appearance.
type jsonlRecords struct {
	columns []string
	records []map[string]any
	skipped int
}

// readJSONL reads a JSONL file. Blank lines are ignored; lines that are not
// a JSON object are counted in skipped and otherwise ignored. Numbers keep
// their literal text.
func readJSONL(path string) (*jsonlRecords, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	out := &jsonlRecords{}
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		obj, keys, ok := decodeObject(line)
		if !ok {
			out.skipped++
			continue
		}
		for _, k := range keys {
			if !seen[k] {
				seen[k] = true
				out.columns = append(out.columns, k)
			}
		}
		out.records = append(out.records, obj)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return out, nil
}

// decodeObject parses one JSON object and returns its keys in document
// order, which a plain map decode loses.
func decodeObject(line []byte) (map[string]any, []string, bool) {
	dec := json.NewDecoder(bytes.NewReader(line))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil || tok != json.Delim('{') {
		return nil, nil, false
	}
	obj := make(map[string]any)
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, false
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, false
		}
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, nil, false
		}
		if _, dup := obj[key]; !dup {
			keys = append(keys, key)
		}
		obj[key] = v
	}
	if tok, err := dec.Token(); err != nil || tok != json.Delim('}') {
		return nil, nil, false
	}
	if dec.More() {
		return nil, nil, false
	}
	return obj, keys, true
}

// sqlValue converts a decoded JSON value to the text stored in SQLite.
// Nested objects and arrays are stored as their JSON encoding.
func sqlValue(v any) (any, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case bool:
		if v {
			return "true", nil
		}
		return "false", nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return string(b), nil
	}
}
