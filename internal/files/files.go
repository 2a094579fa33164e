// Package files selects the PowerShell source files an invocation operates on.
package files

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// Extensions are the recognized PowerShell file suffixes.
var Extensions = []string{".ps1", ".psm1", ".psd1"}

// IsPowerShell reports whether path has a recognized PowerShell extension.
func IsPowerShell(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range Extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// Filter keeps only PowerShell files, preserving order.
func Filter(paths []string) []string {
	var kept []string
	for _, p := range paths {
		if IsPowerShell(p) {
			kept = append(kept, p)
		}
	}
	return kept
}

// FindRecursive walks root for PowerShell files using ** globs and returns
// the matches sorted, rooted at root.
func FindRecursive(root string) ([]string, error) {
	var found []string
	fsys := os.DirFS(root)
	for _, ext := range Extensions {
		matches, err := doublestar.Glob(fsys, "**/*"+ext, doublestar.WithFilesOnly())
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			found = append(found, filepath.Join(root, filepath.FromSlash(m)))
		}
	}
	sort.Strings(found)
	return found, nil
}
