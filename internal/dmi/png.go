package dmi

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/crc32"
	"golang.org/x/text/encoding/charmap"
)

// pngSignature is the fixed 8-byte header of every PNG stream.
var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}

const (
	chunkIHDR = "IHDR"
	chunkIEND = "IEND"
	chunkZTXT = "zTXt"

	// maxChunkLen is the PNG limit on a chunk's data length (2^31-1).
	maxChunkLen = 1<<31 - 1

	// maxKeywordLen is the PNG limit on a text chunk keyword.
	maxKeywordLen = 79

	compressionZlib = 0
)

// TextChunk is one decoded zTXt chunk.
type TextChunk struct {
	Keyword string
	Text    string
}

// ReadChunks walks the PNG stream in r and returns every zTXt chunk in
// stream order, decompressed and decoded from Latin-1. Pixel data and all
// other chunks (including tEXt and iTXt) are read only to verify their CRC.
func ReadChunks(r io.Reader) ([]TextChunk, error) {
	br := bufio.NewReader(r)

	sig := make([]byte, len(pngSignature))
	if _, err := io.ReadFull(br, sig); err != nil {
		return nil, fmt.Errorf("%w: read signature: %w", ErrPNGStructure, err)
	}
	if !bytes.Equal(sig, pngSignature) {
		return nil, fmt.Errorf("%w: bad signature %x", ErrPNGStructure, sig)
	}

	var chunks []TextChunk
	for index := 0; ; index++ {
		typ, data, err := readChunk(br, index)
		if err != nil {
			return nil, err
		}
		if index == 0 && typ != chunkIHDR {
			return nil, fmt.Errorf("%w: first chunk is %q, want %s", ErrPNGStructure, typ, chunkIHDR)
		}

		switch typ {
		case chunkIEND:
			return chunks, nil
		case chunkZTXT:
			tc, err := decodeZTXT(data)
			if err != nil {
				return nil, fmt.Errorf("chunk %d: %w", index, err)
			}
			chunks = append(chunks, tc)
		}
	}
}

// readChunk reads one chunk and verifies its CRC. The data of chunks other
// than zTXt is discarded and returned as nil.
func readChunk(br *bufio.Reader, index int) (string, []byte, error) {
	var hdr [8]byte
	if _, err := io.ReadFull(br, hdr[:]); err != nil {
		if err == io.EOF {
			return "", nil, fmt.Errorf("%w: stream ended before %s", ErrPNGStructure, chunkIEND)
		}
		return "", nil, fmt.Errorf("%w: chunk %d header: %w", ErrPNGStructure, index, err)
	}

	length := binary.BigEndian.Uint32(hdr[:4])
	if length > maxChunkLen {
		return "", nil, fmt.Errorf("%w: chunk %d length %d exceeds limit", ErrPNGStructure, index, length)
	}
	typ := string(hdr[4:8])
	if !validChunkType(hdr[4:8]) {
		return "", nil, fmt.Errorf("%w: chunk %d has invalid type %q", ErrPNGStructure, index, typ)
	}

	crc := crc32.NewIEEE()
	_, _ = crc.Write(hdr[4:8])

	var data []byte
	if typ == chunkZTXT {
		// The buffer grows with the bytes actually present, not the declared length.
		var buf bytes.Buffer
		if _, err := io.CopyN(io.MultiWriter(&buf, crc), br, int64(length)); err != nil {
			return "", nil, fmt.Errorf("%w: %s chunk %d truncated: %w", ErrPNGStructure, typ, index, err)
		}
		data = buf.Bytes()
	} else if _, err := io.CopyN(crc, br, int64(length)); err != nil {
		return "", nil, fmt.Errorf("%w: %s chunk %d truncated: %w", ErrPNGStructure, typ, index, err)
	}

	var trailer [4]byte
	if _, err := io.ReadFull(br, trailer[:]); err != nil {
		return "", nil, fmt.Errorf("%w: %s chunk %d missing crc: %w", ErrPNGStructure, typ, index, err)
	}
	if want, got := binary.BigEndian.Uint32(trailer[:]), crc.Sum32(); want != got {
		return "", nil, fmt.Errorf("%w: %s chunk %d crc mismatch (stored %08x, computed %08x)", ErrPNGStructure, typ, index, want, got)
	}

	return typ, data, nil
}

// validChunkType reports whether b is four ASCII letters.
func validChunkType(b []byte) bool {
	for _, c := range b {
		if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
			return false
		}
	}
	return true
}

// decodeZTXT splits a zTXt payload into keyword and text. Layout:
// keyword (1-79 bytes), NUL, compression method, zlib stream.
func decodeZTXT(data []byte) (TextChunk, error) {
	sep := bytes.IndexByte(data, 0)
	if sep < 0 {
		return TextChunk{}, fmt.Errorf("%w: %s keyword not terminated", ErrPNGStructure, chunkZTXT)
	}
	if sep == 0 || sep > maxKeywordLen {
		return TextChunk{}, fmt.Errorf("%w: %s keyword length %d out of range", ErrPNGStructure, chunkZTXT, sep)
	}
	if sep+1 >= len(data) {
		return TextChunk{}, fmt.Errorf("%w: %s missing compression method", ErrPNGStructure, chunkZTXT)
	}

	latin1 := charmap.ISO8859_1.NewDecoder()
	keyword, err := latin1.Bytes(data[:sep])
	if err != nil {
		return TextChunk{}, fmt.Errorf("%w: keyword: %w", ErrChunkDecode, err)
	}

	if method := data[sep+1]; method != compressionZlib {
		return TextChunk{}, fmt.Errorf("%w: unsupported compression method %d", ErrChunkDecode, method)
	}

	zr, err := zlib.NewReader(bytes.NewReader(data[sep+2:]))
	if err != nil {
		return TextChunk{}, fmt.Errorf("%w: %w", ErrChunkDecode, err)
	}
	defer func() {
		_ = zr.Close()
	}()

	// TODO: confirm which encoding BYOND uses for non-ASCII state names; the
	// payload is treated as Latin-1 and transcoded to UTF-8 code point by code point.
	text, err := io.ReadAll(latin1.Reader(zr))
	if err != nil {
		return TextChunk{}, fmt.Errorf("%w: %w", ErrChunkDecode, err)
	}

	return TextChunk{Keyword: string(keyword), Text: string(text)}, nil
}
