// Package main implements the borrowguard CLI tool.
//
// The borrowguard tool rebuilds a Go module with a chosen lifetime-tracking
// mode without asking users to remember build tags. It works by:
//
//  1. Verifying the target module depends on borrowguard
//  2. Mapping the requested mode to the matching build tag
//  3. Calling the standard Go toolchain with the tag appended
//
// Usage:
//
//	borrowguard build -mode=tracked ./cmd/app    # Build with full tracking
//	borrowguard run -mode=counted main.go        # Run with reference counting
//	borrowguard test -mode=unchecked ./...       # Test with tracking compiled out
//
// The tool is a drop-in front for `go build`, `go run`, and `go test`; every
// flag it does not recognize is passed through unchanged.
//
// This is the CLI entry point for the standalone tool.
package main

import (
	"fmt"
	"os"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "build":
		buildCommand(os.Args[2:])
	case "run":
		runCommand(os.Args[2:])
	case "test":
		testCommand(os.Args[2:])
	case "version", "--version", "-v":
		fmt.Printf("borrowguard version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`borrowguard - Runtime Borrow Checker Tool

USAGE:
    borrowguard <command> [-mode=MODE] [arguments]

COMMANDS:
    build      Build a Go program with the selected tracking mode
    run        Run a Go program with the selected tracking mode
    test       Test Go packages with the selected tracking mode
    version    Show version information
    help       Show this help message

MODES:
    counted    One atomic counter per owner cell (default)
    tracked    Intrusive list of live references with optional stack
               snapshots; violation reports name every surviving reference
    unchecked  Tracking compiled out entirely; zero overhead

EXAMPLES:
    # Build with full reference tracking
    borrowguard build -mode=tracked -o myapp ./cmd/myapp

    # Run with the default counted mode
    borrowguard run main.go --flag=value

    # Test with tracking compiled out
    borrowguard test -mode=unchecked -v ./...

ABOUT:
    Tracking mode is a build-time choice because the owner cell's storage
    layout differs per mode (nothing in unchecked, one atomic counter in
    counted, a list head plus mutex in tracked). borrowguard maps the mode
    to the matching build tag and delegates to the standard Go toolchain.

FOR MORE INFORMATION:
    Repository: https://github.com/kolkov/borrowguard
    Documentation: https://github.com/kolkov/borrowguard/blob/main/README.md
    Issues: https://github.com/kolkov/borrowguard/issues

`)
}
