package parser

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrInvalidEncoding is returned when bytes are neither BOM-marked nor valid UTF-8.
var ErrInvalidEncoding = errors.New("input is not valid UTF-8")

// BOM constants
var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// DetectAndDecode detects the encoding of the input data, strips any BOM,
// and returns the decoded UTF-8 bytes along with the detected encoding name.
// Bytes without a BOM must be valid UTF-8; anything else is left to
// DecodePermissive.
func DetectAndDecode(data []byte) ([]byte, string, error) {
	if len(data) == 0 {
		return data, "utf-8", nil
	}

	if bytes.HasPrefix(data, bomUTF8) {
		return data[3:], "utf-8-bom", nil
	}

	if bytes.HasPrefix(data, bomUTF16LE) {
		decoded, err := decodeUTF16(unicode.LittleEndian, data[2:])
		if err != nil {
			return nil, "", fmt.Errorf("UTF-16 LE decode failed: %w", err)
		}
		return decoded, "utf-16le", nil
	}

	if bytes.HasPrefix(data, bomUTF16BE) {
		decoded, err := decodeUTF16(unicode.BigEndian, data[2:])
		if err != nil {
			return nil, "", fmt.Errorf("UTF-16 BE decode failed: %w", err)
		}
		return decoded, "utf-16be", nil
	}

	if utf8.Valid(data) {
		return data, "utf-8", nil
	}

	return nil, "", ErrInvalidEncoding
}

// DecodePermissive never fails: it tries the strict ladder first, then reads
// the bytes as Windows-1252 and finally substitutes U+FFFD for anything that
// still does not decode.
func DecodePermissive(data []byte) ([]byte, string) {
	if decoded, name, err := DetectAndDecode(data); err == nil {
		return decoded, name
	}

	decoded, err := decodeWith(charmap.Windows1252, data)
	if err == nil && utf8.Valid(decoded) {
		return decoded, "windows-1252"
	}

	return []byte(strings.ToValidUTF8(string(data), "\uFFFD")), "utf-8-replace"
}

// decodeUTF16 converts UTF-16 bytes in the given byte order to UTF-8.
// A trailing odd byte is dropped; unpaired surrogates become U+FFFD.
func decodeUTF16(order unicode.Endianness, data []byte) ([]byte, error) {
	if len(data)%2 != 0 {
		data = data[:len(data)-1]
	}
	return decodeWith(unicode.UTF16(order, unicode.IgnoreBOM), data)
}

func decodeWith(enc encoding.Encoding, data []byte) ([]byte, error) {
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	return out, err
}
