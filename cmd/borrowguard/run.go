// run.go implements the 'borrowguard run' command.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kolkov/borrowguard/cmd/borrowguard/modcheck"
)

// runCommand implements the 'borrowguard run' command.
//
// This command runs a Go program with the selected tracking mode, acting as
// a drop-in replacement for 'go run'.
//
// The -mode flag must appear before the package or source files; everything
// after the first non-flag argument belongs to the program being run and is
// forwarded untouched. This mirrors how 'go run' itself splits build flags
// from program arguments.
//
// Example:
//
//	borrowguard run -mode=tracked main.go
//	borrowguard run main.go --program-flag=value
func runCommand(args []string) {
	head, programArgs := splitAtTarget(args)

	mode, rest, err := splitModeFlag(head)
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

	goArgs := append(modeTagArgs(mode, rest), programArgs...)
	os.Exit(runGoTool("run", goArgs))
}

// splitAtTarget splits args at the boundary between build flags plus target
// and the program's own arguments: everything after the last of the leading
// consecutive .go files is a program argument. When the target is a package
// path rather than source files, no split happens and the caller forwards
// everything to the toolchain.
func splitAtTarget(args []string) (head, programArgs []string) {
	sawSource := false
	for i, arg := range args {
		if filepath.Ext(arg) == ".go" {
			sawSource = true
			continue
		}
		if sawSource {
			return args[:i], args[i:]
		}
	}
	return args, nil
}
