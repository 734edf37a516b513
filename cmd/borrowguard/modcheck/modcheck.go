// Package modcheck verifies that the module being rebuilt actually depends
// on the borrowguard library.
//
// Tracking mode is selected with build tags defined inside borrowguard's own
// packages, so rebuilding a module that never imports borrowguard silently
// does nothing. Catching that before invoking the toolchain turns a
// confusing no-op into a clear error with installation instructions.
package modcheck

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"
)

// ModulePath is the import path the target module must require.
const ModulePath = "github.com/kolkov/borrowguard"

// Verify checks that the module containing dir requires borrowguard.
//
// It walks up from dir to the enclosing go.mod, parses it, and accepts the
// module when borrowguard appears in its require list or is the module
// itself (building borrowguard's own examples).
//
// Returns:
//   - nil if the module depends on borrowguard
//   - an error naming the go.mod and the missing requirement otherwise
func Verify(dir string) error {
	goModPath := findGoMod(dir)
	if goModPath == "" {
		return fmt.Errorf("no go.mod found above %s; borrowguard needs a module to rebuild", dir)
	}

	data, err := os.ReadFile(goModPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", goModPath, err)
	}

	mf, err := modfile.Parse(goModPath, data, nil)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", goModPath, err)
	}

	if mf.Module != nil && mf.Module.Mod.Path == ModulePath {
		return nil
	}
	for _, req := range mf.Require {
		if req.Mod.Path == ModulePath {
			return nil
		}
	}

	return fmt.Errorf("%s does not require %s\n\nInstall it first:\n  go get %s",
		goModPath, ModulePath, ModulePath)
}

// findGoMod walks up from startDir looking for a go.mod file.
//
// Returns the path to go.mod, or "" when the filesystem root is reached
// without finding one.
func findGoMod(startDir string) string {
	dir := startDir
	for {
		modPath := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(modPath); err == nil {
			return modPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}
