package parser

import (
	"bytes"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// metaCharsetPattern and metaCharsetAltPattern recognize the two forms a
// document can declare its own encoding in:
//
//	<meta http-equiv="Content-Type" content="text/html; charset=...">
//	<meta charset="...">
var (
	metaCharsetPattern    = regexp.MustCompile(`(?i)<meta\s+[^>]*http-equiv=["']?content-type["']?[^>]*content=["']?[^;]*;\s*charset=([^"'\s>]+)`)
	metaCharsetAltPattern = regexp.MustCompile(`(?i)<meta\s+[^>]*charset=["']?([^"'\s>]+)`)
)

// defaultFallbackEncoding is the encoding a conforming browser falls back to
// once BOM sniffing, a transport-level Content-Type header, and a <meta>
// declaration have all come up empty.
// https://html.spec.whatwg.org/multipage/parsing.html#determining-the-character-encoding
const defaultFallbackEncoding = "windows-1252"

// sniffDeclaredEncoding looks for a BOM, then for a <meta> charset
// declaration in the first 1024 bytes, the prescan window the encoding
// sniffing algorithm specifies.
func sniffDeclaredEncoding(data []byte) (label string, certain bool) {
	switch {
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		return "utf-8", true
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		return "utf-16be", true
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		return "utf-16le", true
	}

	window := data
	if len(window) > 1024 {
		window = window[:1024]
	}
	head := string(window)

	if m := metaCharsetPattern.FindStringSubmatch(head); len(m) > 1 {
		return strings.ToLower(m[1]), false
	}
	if m := metaCharsetAltPattern.FindStringSubmatch(head); len(m) > 1 {
		return strings.ToLower(m[1]), false
	}
	return "", false
}

// resolveEncoding maps a declared label to a golang.org/x/text encoding via
// the WHATWG encoding-label index, falling back to windows-1252 for an
// unrecognized or absent label, per the determining-the-character-encoding
// algorithm's final step.
func resolveEncoding(label string) (encoding.Encoding, string) {
	if label != "" {
		if enc, err := htmlindex.Get(label); err == nil {
			canonical, _ := htmlindex.Name(enc)
			return enc, canonical
		}
	}
	enc, _ := htmlindex.Get(defaultFallbackEncoding)
	return enc, defaultFallbackEncoding
}

// DecodeHTML implements the byte-buffer entry point of the construction
// API: given raw bytes and an optional transport-declared charset label
// (e.g. from a Content-Type header; pass "" if none), it determines the
// document's character encoding and returns the content decoded to UTF-8
// along with the IANA name of the encoding actually used.
//
// A transport-declared charset takes priority over a <meta> declaration or
// BOM, matching the encoding sniffing algorithm's precedence. With no
// declaration at all, input that is valid UTF-8 is taken as UTF-8 and
// anything else falls back to windows-1252.
func DecodeHTML(data []byte, transportCharset string) (string, string, error) {
	label := strings.ToLower(strings.TrimSpace(transportCharset))
	if label == "" {
		sniffed, certain := sniffDeclaredEncoding(data)
		if certain {
			label = sniffed
		} else if sniffed != "" {
			label = sniffed
		}
	}
	if label == "" && utf8.Valid(data) {
		label = "utf-8"
	}

	enc, canonical := resolveEncoding(label)
	if canonical == "utf-8" {
		return string(data), canonical, nil
	}

	reader := transform.NewReader(bytes.NewReader(data), enc.NewDecoder())
	decoded, err := io.ReadAll(reader)
	if err != nil {
		return "", canonical, err
	}
	return string(decoded), canonical, nil
}

// NewHTMLReader wraps DecodeHTML for callers that want an io.Reader of
// decoded UTF-8 text to hand to NewParser, rather than a string.
func NewHTMLReader(data []byte, transportCharset string) (io.Reader, string, error) {
	decoded, canonical, err := DecodeHTML(data, transportCharset)
	if err != nil {
		return nil, canonical, err
	}
	return strings.NewReader(decoded), canonical, nil
}
