package git

import (
	"fmt"
	"log/slog"

	"github.com/go-git/go-git/v5"

	"git.home.luguber.info/inful/iconcache/internal/logfields"
)

// Revision returns the HEAD commit hash of the repository containing dir.
// It never fails the caller: any error is logged at debug level and reported
// as ("", false).
func Revision(dir string) (string, bool) {
	rev, err := ResolveHead(dir)
	if err != nil {
		slog.Debug("No VCS revision for input tree", logfields.Stage("revision"), logfields.Path(dir), logfields.Error(err))
		return "", false
	}
	slog.Debug("Resolved VCS revision", logfields.Stage("revision"), logfields.Path(dir), logfields.Revision(rev))
	return rev, true
}

// ResolveHead opens the repository at or above dir and resolves HEAD to a
// commit hash.
func ResolveHead(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return "", fmt.Errorf("open repository: %w", err)
	}

	ref, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	return ref.Hash().String(), nil
}
