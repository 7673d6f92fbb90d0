//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "biasmetrics"
	binaryDir  = "bin"
	cmdDir     = "./cmd/biasmetrics"
	versionVar = "github.com/mesh-intelligence/biasmetrics/pkg/biasmetrics.Version"
)

// Build compiles the biasmetrics binary to bin/, stamping the release
// version from $VERSION or, failing that, git describe.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	args := []string{"build", "-v"}
	if v := releaseVersion(); v != "" {
		args = append(args, "-ldflags", versionFlag(v))
	}
	args = append(args, "-o", filepath.Join(binaryDir, binaryName), cmdDir)
	return sh.RunV(binGo, args...)
}

// releaseVersion returns "" when neither $VERSION nor a git checkout is
// available, leaving the compiled-in default.
func releaseVersion() string {
	if v := os.Getenv("VERSION"); v != "" {
		return normalizeVersion(v)
	}
	out, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil {
		return ""
	}
	return normalizeVersion(out)
}

// normalizeVersion drops the tag's leading "v"; the version command adds
// its own.
func normalizeVersion(v string) string {
	return strings.TrimPrefix(strings.TrimSpace(v), "v")
}

func versionFlag(v string) string {
	return "-X " + versionVar + "=" + v
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}
