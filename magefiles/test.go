//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const cliPkg = "/internal/cli"

// Test groups test targets (all, unit, cli, cover).
type Test mg.Namespace

// All runs every test with the race detector.
func (Test) All() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Unit runs the library tests, excluding the command-line package.
func (Test) Unit() error {
	pkgs, err := testPackages(func(pkg string) bool { return !strings.HasSuffix(pkg, cliPkg) })
	if err != nil {
		return err
	}
	if len(pkgs) == 0 {
		fmt.Println("No unit test packages found.")
		return nil
	}
	args := append([]string{"test", "-race"}, pkgs...)
	return sh.RunV(binGo, args...)
}

// CLI runs the command-line tests, which read and write temporary files.
func (Test) CLI() error {
	return sh.RunV(binGo, "test", "-v", "."+cliPkg+"/...")
}

// Cover writes a coverage profile to bin/coverage.out and prints the
// per-function summary.
func (Test) Cover() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	profile := filepath.Join(binaryDir, "coverage.out")
	if err := sh.RunV(binGo, "test", "-coverprofile="+profile, "./pkg/...", "./internal/..."); err != nil {
		return err
	}
	return sh.RunV(binGo, "tool", "cover", "-func="+profile)
}

// testPackages lists the module's packages that keep returns true for,
// skipping the build tooling itself.
func testPackages(keep func(string) bool) ([]string, error) {
	out, err := sh.Output(binGo, "list", "./...")
	if err != nil {
		return nil, err
	}
	var pkgs []string
	for pkg := range strings.SplitSeq(out, "\n") {
		if pkg == "" || strings.HasSuffix(pkg, "/magefiles") || !keep(pkg) {
			continue
		}
		pkgs = append(pkgs, pkg)
	}
	return pkgs, nil
}
