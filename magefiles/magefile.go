//go:build mage

// Package main provides build targets for the biasmetrics project using Mage.
//
// Usage:
//
//	mage build          Compile biasmetrics binary to bin/
//	mage test:all       Run all tests with the race detector
//	mage test:unit      Run library tests (pkg/ and internal/ minus the CLI)
//	mage test:cli       Run the command-line tests
//	mage test:cover     Write a coverage profile to bin/coverage.out
//	mage lint           Run golangci-lint
//	mage clean          Remove build artifacts
//	mage install        Install biasmetrics to GOPATH/bin
//	mage stats          Print Go LOC and documentation word counts
package main
