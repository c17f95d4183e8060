package cli

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultTreeNames are looked up in the project directory, in order, when no
// tree file is given.
var DefaultTreeNames = []string{
	"commands.yaml",
	"commands.yml",
	"commands.json",
	"commands.jsonc",
}

// ResolveTreeFile returns the tree file to load. An explicit arg is taken
// relative to dir; otherwise the first existing default name wins.
func ResolveTreeFile(dir, arg string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if arg != "" {
		if !filepath.IsAbs(arg) {
			arg = filepath.Join(dir, arg)
		}
		return arg, nil
	}
	for _, name := range DefaultTreeNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no command tree found in %s (looked for %v)", dir, DefaultTreeNames)
}
