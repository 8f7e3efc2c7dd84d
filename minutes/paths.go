package minutes

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ResolveUploadPath resolves a stored file path against the upload root and
// rejects anything that escapes it. Relative paths are joined to the root;
// absolute paths must already live inside it.
func ResolveUploadPath(root, stored string) (string, error) {
	if strings.TrimSpace(stored) == "" {
		return "", errors.New("empty file path")
	}

	p := stored
	if !filepath.IsAbs(p) {
		p = filepath.Join(root, p)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve upload root: %w", err)
	}
	absPath, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolve file path: %w", err)
	}

	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("file path escapes upload root: %s", stored)
	}
	return absPath, nil
}
