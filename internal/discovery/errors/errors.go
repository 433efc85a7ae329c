package errors

// Package errors provides sentinel errors for icon file discovery.
// These let the command layer classify walk failures without string matching.

import "errors"

var (
	// ErrRootNotDirectory indicates the scan root is missing or is not a directory.
	ErrRootNotDirectory = errors.New("input root is not a directory")

	// ErrWalkFailed indicates filesystem traversal of the input tree failed.
	ErrWalkFailed = errors.New("icon directory walk failed")

	// ErrInvalidRelativePath indicates calculating a path relative to the root failed.
	ErrInvalidRelativePath = errors.New("invalid relative path calculation")

	// ErrNonUTF8Path indicates a relative path that cannot be emitted as a JSON key.
	ErrNonUTF8Path = errors.New("non-UTF-8 path")
)
