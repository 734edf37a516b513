// test.go implements the 'borrowguard test' command.
package main

import (
	"fmt"
	"os"

	"github.com/kolkov/borrowguard/cmd/borrowguard/modcheck"
)

// testCommand implements the 'borrowguard test' command.
//
// This command tests Go packages with the selected tracking mode, acting as
// a drop-in replacement for 'go test'. All test flags (-v, -run, -bench,
// -cover, ...) are forwarded unchanged.
//
// Example:
//
//	borrowguard test ./...
//	borrowguard test -mode=tracked -v ./internal/...
//	borrowguard test -mode=unchecked -bench=. ./...
func testCommand(args []string) {
	mode, rest, err := splitModeFlag(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := modcheck.Verify(cwd); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	os.Exit(runGoTool("test", modeTagArgs(mode, rest)))
}
