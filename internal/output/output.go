// Package output serializes the icon cache document to disk.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"git.home.luguber.info/inful/iconcache/internal/logfields"
)

// Marshal encodes v as JSON without HTML escaping, indented by two spaces
// when pretty is set. No trailing newline is emitted.
func Marshal(v any, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// WriteJSON marshals v and replaces path with it. The data goes to a
// temporary file next to path first, so an interrupted run never leaves a
// truncated cache behind. The parent directory must already exist.
func WriteJSON(path string, v any, pretty bool) error {
	data, err := Marshal(v, pretty)
	if err != nil {
		return fmt.Errorf("failed to serialize to json: %w", err)
	}

	dir := filepath.Dir(path)
	if info, err := os.Stat(dir); err != nil {
		return fmt.Errorf("failed to write output to %s: %w", path, err)
	} else if !info.IsDir() {
		return fmt.Errorf("failed to write output to %s: parent %s is not a directory", path, dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write output to %s: %w", path, err)
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("failed to write output to %s: %w", path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		cleanup()
		return fmt.Errorf("failed to write output to %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write output to %s: %w", path, err)
	}

	// Atomically replace the previous cache
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write output to %s: %w", path, err)
	}

	slog.Debug("Wrote icon cache", logfields.Path(path), logfields.Size(humanize.Bytes(uint64(len(data)))))
	return nil
}
