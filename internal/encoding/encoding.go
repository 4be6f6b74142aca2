// Package encoding converts between strings and bytes using the encoding names
// accepted in crypton configuration ("utf8", "hex", "base64", ...).
package encoding

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Canonical encoding names.
const (
	UTF8      = "utf8"
	Hex       = "hex"
	Base64    = "base64"
	Base64URL = "base64url"
	Latin1    = "latin1"
	ASCII     = "ascii"
	UTF16LE   = "utf16le"
)

var ErrUnknownEncoding = errors.New("unknown encoding")

var aliases = map[string]string{
	"utf8":      UTF8,
	"utf-8":     UTF8,
	"hex":       Hex,
	"base64":    Base64,
	"base64url": Base64URL,
	"latin1":    Latin1,
	"binary":    Latin1,
	"ascii":     ASCII,
	"utf16le":   UTF16LE,
	"utf-16le":  UTF16LE,
	"ucs2":      UTF16LE,
	"ucs-2":     UTF16LE,
}

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// Normalize returns the canonical name for an encoding, matching case-insensitively.
func Normalize(name string) (string, error) {
	canonical, ok := aliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	return canonical, nil
}

// Supported reports whether name is a known encoding.
func Supported(name string) bool {
	_, err := Normalize(name)
	return err == nil
}

// Decode turns text written in the named encoding into raw bytes.
func Decode(text string, name string) ([]byte, error) {
	canonical, err := Normalize(name)
	if err != nil {
		return nil, err
	}

	switch canonical {
	case UTF8:
		return []byte(text), nil
	case Hex:
		b, err := hex.DecodeString(text)
		if err != nil {
			return nil, fmt.Errorf("invalid hex input: %w", err)
		}
		return b, nil
	case Base64:
		b, err := base64.StdEncoding.DecodeString(text)
		if err != nil {
			return nil, fmt.Errorf("invalid base64 input: %w", err)
		}
		return b, nil
	case Base64URL:
		b, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(text, "="))
		if err != nil {
			return nil, fmt.Errorf("invalid base64url input: %w", err)
		}
		return b, nil
	case Latin1:
		b, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(text))
		if err != nil {
			return nil, fmt.Errorf("input is not representable in latin1: %w", err)
		}
		return b, nil
	case ASCII:
		out := make([]byte, 0, len(text))
		for i, r := range text {
			if r > 0x7f {
				return nil, fmt.Errorf("input is not representable in ascii: non-ascii character at byte %d", i)
			}
			out = append(out, byte(r))
		}
		return out, nil
	case UTF16LE:
		b, err := utf16le.NewEncoder().Bytes([]byte(text))
		if err != nil {
			return nil, fmt.Errorf("input is not representable in utf16le: %w", err)
		}
		return b, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
}

// Encode renders raw bytes as text in the named encoding.
func Encode(data []byte, name string) (string, error) {
	canonical, err := Normalize(name)
	if err != nil {
		return "", err
	}

	switch canonical {
	case UTF8:
		if utf8.Valid(data) {
			return string(data), nil
		}
		return strings.ToValidUTF8(string(data), "�"), nil
	case Hex:
		return hex.EncodeToString(data), nil
	case Base64:
		return base64.StdEncoding.EncodeToString(data), nil
	case Base64URL:
		return base64.RawURLEncoding.EncodeToString(data), nil
	case Latin1:
		b, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return "", fmt.Errorf("failed to decode latin1 output: %w", err)
		}
		return string(b), nil
	case ASCII:
		out := make([]byte, len(data))
		for i, c := range data {
			out[i] = c & 0x7f
		}
		return string(out), nil
	case UTF16LE:
		if len(data)%2 != 0 {
			data = data[:len(data)-1]
		}
		b, err := utf16le.NewDecoder().Bytes(data)
		if err != nil {
			return "", fmt.Errorf("failed to decode utf16le output: %w", err)
		}
		return string(b), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
}
