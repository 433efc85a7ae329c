package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyCount      = "count"
	KeyStates     = "states"
	KeyForm       = "form"
	KeyWorkers    = "workers"
	KeyRevision   = "revision"
	KeySize       = "size"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func States(n int) slog.Attr          { return slog.Int(KeyStates, n) }
func Form(f string) slog.Attr         { return slog.String(KeyForm, f) }
func Workers(n int) slog.Attr         { return slog.Int(KeyWorkers, n) }
func Revision(r string) slog.Attr     { return slog.String(KeyRevision, r) }
func Size(s string) slog.Attr         { return slog.String(KeySize, s) }
func Error(err error) slog.Attr {
	if err == nil { return slog.String(KeyError, "") }
	return slog.String(KeyError, err.Error())
}
