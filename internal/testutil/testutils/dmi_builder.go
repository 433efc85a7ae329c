package helpers

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/crc32"
	"golang.org/x/text/encoding/charmap"
)

// DMIBuilder assembles synthetic DMI files for tests: a tiny PNG with text
// chunks spliced in right after IHDR, the way BYOND writes them.
type DMIBuilder struct {
	t      *testing.T
	chunks [][]byte
}

// NewDMIBuilder creates an empty builder.
func NewDMIBuilder(t *testing.T) *DMIBuilder {
	return &DMIBuilder{t: t}
}

// WithStates adds a well-formed "Description" zTXt manifest declaring states.
func (b *DMIBuilder) WithStates(states ...string) *DMIBuilder {
	return b.WithZTXT("Description", Manifest(states...))
}

// WithZTXT adds a zTXt chunk carrying text as Latin-1 bytes.
func (b *DMIBuilder) WithZTXT(keyword, text string) *DMIBuilder {
	b.t.Helper()
	var z bytes.Buffer
	zw := zlib.NewWriter(&z)
	if _, err := zw.Write(latin1(b.t, text)); err != nil {
		b.t.Fatalf("compress ztxt: %v", err)
	}
	if err := zw.Close(); err != nil {
		b.t.Fatalf("close zlib writer: %v", err)
	}
	data := append([]byte(keyword), 0, 0)
	return b.WithRawChunk("zTXt", append(data, z.Bytes()...))
}

// WithTEXT adds an uncompressed tEXt chunk.
func (b *DMIBuilder) WithTEXT(keyword, text string) *DMIBuilder {
	data := append([]byte(keyword), 0)
	return b.WithRawChunk("tEXt", append(data, latin1(b.t, text)...))
}

// WithRawChunk adds an arbitrary chunk with a correct CRC.
func (b *DMIBuilder) WithRawChunk(typ string, data []byte) *DMIBuilder {
	b.chunks = append(b.chunks, EncodeChunk(typ, data))
	return b
}

// Bytes returns the complete PNG stream.
func (b *DMIBuilder) Bytes() []byte {
	b.t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(1, 1, color.NRGBA{R: 0xff, A: 0xff})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		b.t.Fatalf("encode png: %v", err)
	}
	raw := buf.Bytes()

	// signature (8) + IHDR length/type (8) + IHDR data (13) + crc (4)
	const afterIHDR = 8 + 8 + 13 + 4
	out := make([]byte, 0, len(raw)+256)
	out = append(out, raw[:afterIHDR]...)
	for _, c := range b.chunks {
		out = append(out, c...)
	}
	return append(out, raw[afterIHDR:]...)
}

// WriteTo writes the DMI under root at the slash-separated relative path,
// creating parent directories, and returns the absolute path.
func (b *DMIBuilder) WriteTo(root, rel string) string {
	b.t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
		b.t.Fatalf("mkdir %s: %v", filepath.Dir(full), err)
	}
	if err := os.WriteFile(full, b.Bytes(), 0o600); err != nil {
		b.t.Fatalf("write %s: %v", full, err)
	}
	return full
}

// EncodeChunk frames data as a PNG chunk: length, type, data, CRC-32.
func EncodeChunk(typ string, data []byte) []byte {
	out := make([]byte, 0, 12+len(data))
	out = binary.BigEndian.AppendUint32(out, uint32(len(data)))
	out = append(out, typ...)
	out = append(out, data...)
	return binary.BigEndian.AppendUint32(out, crc32.ChecksumIEEE(out[4:]))
}

// Manifest renders a minimal BYOND manifest declaring states.
func Manifest(states ...string) string {
	var sb strings.Builder
	sb.WriteString("# BEGIN DMI\nversion = 4.0\n\twidth = 32\n\theight = 32\n")
	for _, s := range states {
		sb.WriteString("state = \"" + s + "\"\n")
		sb.WriteString("\tdirs = 1\n\tframes = 1\n")
	}
	sb.WriteString("# END DMI\n")
	return sb.String()
}

// latin1 encodes text with the same codec the extractor decodes with.
func latin1(t *testing.T, text string) []byte {
	t.Helper()
	out, err := charmap.ISO8859_1.NewEncoder().String(text)
	if err != nil {
		t.Fatalf("encode %q as Latin-1: %v", text, err)
	}
	return []byte(out)
}
