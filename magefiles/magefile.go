//go:build mage

// Package main provides mage build targets for csv-qsniffer backed by
// the testable internal/builder abstraction.
package main

import (
	"github.com/cli-tools/csv-qsniffer/magefiles/internal/builder"
)

// Default target when no target is specified
var Default = Build //nolint:gochecknoglobals // required by mage framework

var build = builder.NewDefaultBuilder() //nolint:gochecknoglobals // shared builder instance

// Build compiles the csv-qsniffer binary.
func Build() error {
	return build.Build()
}

// Install builds and installs csv-qsniffer to $GOPATH/bin.
func Install() error {
	return build.Install()
}

// DevBuild builds a development version with a forced "dev" version.
func DevBuild() error {
	return build.DevBuild()
}

// Clean removes build artifacts.
func Clean() error {
	return build.Clean()
}

// CleanAll removes build artifacts and the installed binary.
func CleanAll() error {
	return build.CleanAll()
}
