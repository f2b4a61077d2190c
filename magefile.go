//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binary = "truelies-tui"

// Default target - build the binary
var Default = Build

// Build builds the truelies-tui binary into bin/
func Build() error {
	if err := os.MkdirAll("bin", 0o755); err != nil {
		return err
	}
	return sh.RunV("go", "build", "-o", filepath.Join("bin", binary), "./cmd/"+binary)
}

// Test runs the unit tests with the race detector
func Test() error {
	return sh.RunV("go", "test", "-race", "-count=1", "./...")
}

// Lint runs gofmt and go vet
func Lint() error {
	out, err := sh.Output("gofmt", "-l", "cmd", "internal")
	if err != nil {
		return err
	}
	if out != "" {
		return fmt.Errorf("files need gofmt:\n%s", out)
	}
	return sh.RunV("go", "vet", "./...")
}

// Check runs lint and tests
func Check() {
	mg.SerialDeps(Lint, Test)
}

// Clean removes build artifacts
func Clean() error {
	return sh.Rm("bin")
}
