package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeHTMLPlainUTF8(t *testing.T) {
	decoded, charset, err := DecodeHTML([]byte("<p>café</p>"), "")
	require.NoError(t, err)
	assert.Equal(t, "utf-8", charset)
	assert.Equal(t, "<p>café</p>", decoded)
}

func TestDecodeHTMLTransportCharsetWins(t *testing.T) {
	// 0xE9 in windows-1252 is U+00E9 (e acute).
	data := []byte("<meta charset=\"utf-8\"><p>caf\xe9</p>")
	decoded, charset, err := DecodeHTML(data, "windows-1252")
	require.NoError(t, err)
	assert.Equal(t, "windows-1252", charset)
	assert.Equal(t, "<meta charset=\"utf-8\"><p>café</p>", decoded)
}

func TestDecodeHTMLSniffsMetaCharset(t *testing.T) {
	data := []byte("<meta charset=\"windows-1252\"><p>caf\xe9</p>")
	decoded, charset, err := DecodeHTML(data, "")
	require.NoError(t, err)
	assert.Equal(t, "windows-1252", charset)
	assert.Contains(t, decoded, "café")
}

func TestDecodeHTMLFallsBackToWindows1252(t *testing.T) {
	data := []byte{0x68, 0x69, 0xe9}
	_, charset, err := DecodeHTML(data, "")
	require.NoError(t, err)
	assert.Equal(t, "windows-1252", charset)
}

func TestNewParserFromBytesRecordsCharacterSet(t *testing.T) {
	p, err := NewParserFromBytes([]byte("<!DOCTYPE html><html><head></head><body>hi</body></html>"), "")
	require.NoError(t, err)
	doc, err := p.Start()
	require.NoError(t, err)
	assert.Equal(t, "utf-8", doc.Document.CharacterSet)
}
