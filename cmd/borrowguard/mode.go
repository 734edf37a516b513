// mode.go handles tracking-mode selection shared by all commands.
package main

import (
	"fmt"
	"strings"
)

// trackerModes maps a mode name to the build tag selecting it. The counted
// mode is the module's default and needs no tag.
var trackerModes = map[string]string{
	"counted":   "",
	"tracked":   "borrow_tracked",
	"unchecked": "borrow_unchecked",
}

// splitModeFlag extracts the -mode flag from args and returns the selected
// mode alongside the remaining arguments.
//
// Accepted forms:
//
//	-mode=tracked
//	-mode tracked
//
// When no -mode flag is present the default "counted" is returned.
func splitModeFlag(args []string) (mode string, rest []string, err error) {
	mode = "counted"
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if arg == "-mode" || arg == "--mode" {
			if i+1 >= len(args) {
				return "", nil, fmt.Errorf("-mode flag requires an argument")
			}
			i++
			mode = args[i]
			continue
		}
		if v, ok := strings.CutPrefix(arg, "-mode="); ok {
			mode = v
			continue
		}
		if v, ok := strings.CutPrefix(arg, "--mode="); ok {
			mode = v
			continue
		}

		rest = append(rest, arg)
	}

	if _, ok := trackerModes[mode]; !ok {
		return "", nil, fmt.Errorf("unknown mode %q (want counted, tracked or unchecked)", mode)
	}
	return mode, rest, nil
}

// modeTagArgs returns the go-toolchain arguments selecting mode, merged with
// any -tags flag the user already passed.
//
// Merging matters: `go build` takes at most one -tags flag, so a user tag
// list and the mode tag must be folded into a single argument.
func modeTagArgs(mode string, args []string) []string {
	tag := trackerModes[mode]
	if tag == "" {
		return args
	}

	// Fold into an existing -tags flag when present.
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "-tags" && i+1 < len(args) {
			merged := append([]string{}, args...)
			merged[i+1] = args[i+1] + "," + tag
			return merged
		}
		if v, ok := strings.CutPrefix(arg, "-tags="); ok {
			merged := append([]string{}, args...)
			merged[i] = "-tags=" + v + "," + tag
			return merged
		}
	}

	return append([]string{"-tags=" + tag}, args...)
}
