// Package git lists staged files for pre-commit style runs.
package git

import (
	"fmt"
	"path/filepath"
	"sort"

	gogit "github.com/go-git/go-git/v5"
)

// Staged returns the paths of files staged in the repository enclosing root,
// resolved relative to the repository worktree. Deleted files are skipped.
func Staged(root string) ([]string, error) {
	repo, err := gogit.PlainOpenWithOptions(root, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}

	var staged []string
	for path, st := range status {
		switch st.Staging {
		case gogit.Added, gogit.Modified, gogit.Renamed, gogit.Copied:
			staged = append(staged, filepath.Join(wt.Filesystem.Root(), filepath.FromSlash(path)))
		}
	}
	sort.Strings(staged)
	return staged, nil
}
