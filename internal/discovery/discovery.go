// Package discovery enumerates DMI files below an input root.
package discovery

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	derrors "git.home.luguber.info/inful/iconcache/internal/discovery/errors"
	"git.home.luguber.info/inful/iconcache/internal/logfields"
)

// IconExtension is the exact, case-sensitive extension of icon files.
const IconExtension = ".dmi"

// IconFile represents a discovered DMI file.
type IconFile struct {
	Path         string // Absolute path to the file
	RelativePath string // Path relative to the root, always '/'-separated
}

// Walk returns every regular .dmi file under root in lexical order.
// A relative path that is not valid UTF-8 aborts the walk. Symlinks to files are included; symlinked directories are not descended
// into, except when root itself is a symlink.
func Walk(root string) ([]IconFile, error) {
	base, err := resolveRoot(root)
	if err != nil {
		return nil, err
	}

	var files []IconFile
	err = filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isIconFile(d.Name()) {
			return nil
		}

		regular, err := isRegular(path, d)
		if err != nil {
			return err
		}
		if !regular {
			return nil
		}

		relPath, err := filepath.Rel(base, path)
		if err != nil {
			return fmt.Errorf("%w: %w", derrors.ErrInvalidRelativePath, err)
		}
		// Invalid bytes would be replaced on encoding, merging distinct keys.
		if !utf8.ValidString(relPath) {
			return fmt.Errorf("%w: %q", derrors.ErrNonUTF8Path, relPath)
		}

		file := IconFile{
			Path:         path,
			RelativePath: NormalizePath(relPath),
		}
		files = append(files, file)

		slog.Debug("Discovered icon file", logfields.File(file.RelativePath))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", derrors.ErrWalkFailed, root, err)
	}

	slog.Debug("Icon discovery complete", logfields.Path(root), logfields.Count(len(files)))
	return files, nil
}

// NormalizePath converts a native relative path into a '/'-separated key.
// Backslashes are translated on every host, not only where they are the
// native separator.
func NormalizePath(rel string) string {
	return strings.ReplaceAll(filepath.ToSlash(rel), `\`, "/")
}

// CheckRoot verifies that root exists and is a directory (following symlinks).
func CheckRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", derrors.ErrRootNotDirectory, root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", derrors.ErrRootNotDirectory, root)
	}
	return nil
}

// resolveRoot returns an absolute root to walk, resolving a symlinked root
// so that WalkDir descends into it.
func resolveRoot(root string) (string, error) {
	if err := CheckRoot(root); err != nil {
		return "", err
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", derrors.ErrRootNotDirectory, root, err)
	}

	info, err := os.Lstat(abs)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", derrors.ErrWalkFailed, root, err)
	}
	if info.Mode()&fs.ModeSymlink != 0 {
		resolved, err := filepath.EvalSymlinks(abs)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %w", derrors.ErrWalkFailed, root, err)
		}
		return resolved, nil
	}
	return abs, nil
}

// isIconFile checks the file name extension. A bare ".dmi" is a hidden file
// with no extension, not an icon.
func isIconFile(name string) bool {
	return filepath.Ext(name) == IconExtension && name != IconExtension
}

// isRegular reports whether the entry is a regular file, following a symlink
// one level. Dangling symlinks are skipped.
func isRegular(path string, d fs.DirEntry) (bool, error) {
	if d.Type().IsRegular() {
		return true, nil
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}
