// build.go implements the 'borrowguard build' command.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/kolkov/borrowguard/cmd/borrowguard/modcheck"
)

// buildCommand implements the 'borrowguard build' command.
//
// This command builds a Go program with the selected tracking mode. It acts
// as a drop-in replacement for 'go build', supporting all standard flags.
//
// Flow:
//  1. Extract the -mode flag from the arguments
//  2. Verify the target module requires borrowguard
//  3. Fold the mode's build tag into the argument list
//  4. Call 'go build' with the remaining arguments unchanged
//
// Example:
//
//	borrowguard build -mode=tracked main.go
//	borrowguard build -o myapp -mode=unchecked ./cmd/myapp
func buildCommand(args []string) {
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

	os.Exit(runGoTool("build", modeTagArgs(mode, rest)))
}

// runGoTool invokes the Go toolchain subcommand with args, forwarding the
// standard streams, and returns its exit code.
func runGoTool(subcommand string, args []string) int {
	cmd := exec.Command("go", append([]string{subcommand}, args...)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error running go %s: %v\n", subcommand, err)
		return 1
	}
	return 0
}
