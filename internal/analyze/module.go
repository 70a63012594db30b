package analyze

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"
)

// ErrNoModule is returned when no go.mod is found above a directory.
var ErrNoModule = errors.New("go.mod not found")

// ModulePath returns the module path declared by the nearest go.mod at or
// above dir.
func ModulePath(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	for {
		data, err := os.ReadFile(filepath.Join(abs, "go.mod"))
		if err == nil {
			path := modfile.ModulePath(data)
			if path == "" {
				return "", fmt.Errorf("%s/go.mod has no module directive", abs)
			}

			return path, nil
		}

		if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to read go.mod: %w", err)
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("%w above %s", ErrNoModule, dir)
		}

		abs = parent
	}
}
