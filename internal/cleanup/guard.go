package cleanup

import (
	"errors"
	"path/filepath"
	"strings"
)

var (
	ErrInvalidPath = errors.New("invalid path")
	ErrOutsideRoot = errors.New("outside allowed root")
	ErrTraversal   = errors.New("path traversal detected")
	ErrRootItself  = errors.New("refusing to delete the root directory")
)

// Guard restricts delete targets to paths strictly inside a single root
// directory. Every delete in this package goes through ValidateTarget first.
type Guard struct {
	Root string
}

// NewGuard creates a Guard for the given root.
func NewGuard(root string) *Guard {
	return &Guard{Root: filepath.Clean(root)}
}

// ValidateTarget is the single authorization point for delete operations.
func (g *Guard) ValidateTarget(path string) error {
	if strings.TrimSpace(path) == "" {
		return ErrInvalidPath
	}

	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == ".." {
			return ErrTraversal
		}
	}

	cleaned := filepath.Clean(path)
	if cleaned == g.Root {
		return ErrRootItself
	}
	if !strings.HasPrefix(cleaned, g.Root+string(filepath.Separator)) {
		return ErrOutsideRoot
	}

	return nil
}
