// Package srcload decodes raw source bytes into UTF-8 text, detecting a
// UTF-8, UTF-16LE, or UTF-16BE byte-order mark and transcoding
// accordingly. Files with no BOM are assumed already UTF-8, matching
// the lexer's own BOM-stripping fallback for the common case.
package srcload

import (
	"bytes"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Decode transcodes raw into a UTF-8 string, detecting the encoding
// from a leading byte-order mark. Bytes without a recognized BOM pass
// through unchanged (assumed UTF-8 already).
func Decode(raw []byte) (string, error) {
	switch {
	case bytes.HasPrefix(raw, bomUTF16LE):
		return decodeUTF16(raw, unicode.LittleEndian)
	case bytes.HasPrefix(raw, bomUTF16BE):
		return decodeUTF16(raw, unicode.BigEndian)
	case bytes.HasPrefix(raw, bomUTF8):
		return string(raw[len(bomUTF8):]), nil
	default:
		return string(raw), nil
	}
}

func decodeUTF16(raw []byte, endian unicode.Endianness) (string, error) {
	decoder := unicode.UTF16(endian, unicode.ExpectBOM).NewDecoder()
	reader := transform.NewReader(bytes.NewReader(raw), decoder)
	out, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
