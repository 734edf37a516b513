package main

import (
	"strings"
	"testing"
)

// TestSplitModeFlag_Default tests that the counted mode is the default.
func TestSplitModeFlag_Default(t *testing.T) {
	mode, rest, err := splitModeFlag([]string{"-v", "./..."})
	if err != nil {
		t.Fatalf("splitModeFlag() error: %v", err)
	}

	if mode != "counted" {
		t.Errorf("Expected counted, got %s", mode)
	}
	if len(rest) != 2 {
		t.Errorf("Expected 2 remaining args, got %d", len(rest))
	}
}

// TestSplitModeFlag_Forms tests the accepted flag spellings.
func TestSplitModeFlag_Forms(t *testing.T) {
	tests := []struct {
		name string
		args []string
		mode string
	}{
		{
			name: "equals form",
			args: []string{"-mode=tracked", "main.go"},
			mode: "tracked",
		},
		{
			name: "space form",
			args: []string{"-mode", "unchecked", "main.go"},
			mode: "unchecked",
		},
		{
			name: "double dash",
			args: []string{"--mode=counted", "main.go"},
			mode: "counted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, rest, err := splitModeFlag(tt.args)
			if err != nil {
				t.Fatalf("splitModeFlag() error: %v", err)
			}

			if mode != tt.mode {
				t.Errorf("Expected mode %q, got %q", tt.mode, mode)
			}
			if len(rest) != 1 || rest[0] != "main.go" {
				t.Errorf("Expected [main.go] remaining, got %v", rest)
			}
		})
	}
}

// TestSplitModeFlag_Unknown tests rejection of invalid modes.
func TestSplitModeFlag_Unknown(t *testing.T) {
	_, _, err := splitModeFlag([]string{"-mode=paranoid"})
	if err == nil {
		t.Fatal("Expected error for unknown mode, got nil")
	}
	if !strings.Contains(err.Error(), "paranoid") {
		t.Errorf("Error should name the bad mode, got: %v", err)
	}
}

// TestSplitModeFlag_MissingValue tests the dangling -mode flag.
func TestSplitModeFlag_MissingValue(t *testing.T) {
	_, _, err := splitModeFlag([]string{"main.go", "-mode"})
	if err == nil {
		t.Fatal("Expected error for missing mode value, got nil")
	}
}

// TestModeTagArgs_Default tests that counted mode adds no tag.
func TestModeTagArgs_Default(t *testing.T) {
	args := modeTagArgs("counted", []string{"-v", "./..."})

	for _, arg := range args {
		if strings.Contains(arg, "-tags") {
			t.Errorf("Counted mode should add no tag, got %v", args)
		}
	}
}

// TestModeTagArgs_AddsTag tests tag insertion for non-default modes.
func TestModeTagArgs_AddsTag(t *testing.T) {
	args := modeTagArgs("tracked", []string{"main.go"})

	if len(args) != 2 || args[0] != "-tags=borrow_tracked" {
		t.Errorf("Expected -tags=borrow_tracked prepended, got %v", args)
	}
}

// TestModeTagArgs_MergesUserTags tests folding into an existing -tags flag.
func TestModeTagArgs_MergesUserTags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "equals form",
			args: []string{"-tags=integration", "./..."},
			want: "-tags=integration,borrow_unchecked",
		},
		{
			name: "space form",
			args: []string{"-tags", "integration", "./..."},
			want: "integration,borrow_unchecked",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := modeTagArgs("unchecked", tt.args)

			found := false
			for _, arg := range out {
				if arg == tt.want {
					found = true
				}
			}
			if !found {
				t.Errorf("Expected %q in %v", tt.want, out)
			}
		})
	}
}

// TestSplitAtTarget tests the build-flag / program-argument boundary.
func TestSplitAtTarget(t *testing.T) {
	head, prog := splitAtTarget([]string{"-mode=tracked", "main.go", "helper.go", "--flag", "value"})

	if len(head) != 3 {
		t.Errorf("Expected 3 head args, got %v", head)
	}
	if len(prog) != 2 || prog[0] != "--flag" {
		t.Errorf("Expected program args [--flag value], got %v", prog)
	}
}

// TestSplitAtTarget_PackagePath tests that package targets are not split.
func TestSplitAtTarget_PackagePath(t *testing.T) {
	head, prog := splitAtTarget([]string{"-mode=tracked", "./cmd/app"})

	if len(head) != 2 || prog != nil {
		t.Errorf("Expected no split for package path, got head=%v prog=%v", head, prog)
	}
}
