// Package dmi extracts icon-state names from DMI (Dream Maker Icon) files.
//
// A DMI is a PNG image whose icon-state manifest travels in one or more zTXt
// chunks. The package walks the PNG chunk stream without decoding pixel
// data, inflates each zTXt payload, decodes it as Latin-1, and parses the
// line-oriented manifest:
//
//	# BEGIN DMI
//	version = 4.0
//	state = "idle"
//		dirs = 4
//	state = "run"
//		frames = 2
//	# END DMI
//
// Only the state names are kept.
package dmi

import (
	"fmt"
	"io"
	"os"
)

// Manifest is the ordered list of state names found in one DMI file,
// concatenated across its zTXt chunks. Duplicates are preserved.
type Manifest []string

// Extract opens the DMI at path and returns its state names. Failures wrap
// ErrOpen, ErrPNGStructure or ErrChunkDecode and name the path.
func Extract(path string) (Manifest, error) {
	// #nosec G304 - path comes from the directory walk of the user-supplied input
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w: %w", path, ErrOpen, err)
	}
	defer func() {
		_ = f.Close()
	}()

	m, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", path, err)
	}
	return m, nil
}

// Read parses a DMI stream and returns its state names.
func Read(r io.Reader) (Manifest, error) {
	chunks, err := ReadChunks(r)
	if err != nil {
		return nil, err
	}

	var m Manifest
	for _, c := range chunks {
		m = append(m, ParseManifest(c.Text)...)
	}
	return m, nil
}
