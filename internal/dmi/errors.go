package dmi

import "errors"

// Sentinel errors for DMI metadata extraction. Callers classify failures with
// errors.Is; the wrapped chain carries the file path and the underlying cause.
var (
	// ErrOpen indicates the DMI file could not be opened or read.
	ErrOpen = errors.New("dmi: open failed")

	// ErrPNGStructure indicates the bytes are not a valid PNG stream or a
	// metadata chunk is malformed or truncated.
	ErrPNGStructure = errors.New("dmi: malformed png")

	// ErrChunkDecode indicates a zTXt payload could not be decompressed or
	// decoded as Latin-1.
	ErrChunkDecode = errors.New("dmi: ztxt decode failed")
)
