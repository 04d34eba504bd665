// Package format provides input format detection and document rendering
// for the folio library.
package format

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format represents a supported input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PDF indicates a PDF document.
	PDF
	// Image indicates a raster image (PNG, JPEG, TIFF or BMP).
	Image
	// Email indicates an RFC 5322 email message.
	Email
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PDF:
		return "PDF"
	case Image:
		return "Image"
	case Email:
		return "Email"
	default:
		return "Unknown"
	}
}

// Detect determines the input format from the filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return PDF
	case ".png", ".jpg", ".jpeg", ".tif", ".tiff", ".bmp":
		return Image
	case ".eml":
		return Email
	default:
		return Unknown
	}
}

// DetectFromMagic checks leading bytes to determine the input format.
// This is more reliable than extension-based detection. Returns Unknown
// when the content does not match any known signature.
func DetectFromMagic(data []byte) Format {
	if len(data) < 4 {
		return Unknown
	}

	// PDF magic: %PDF
	if bytes.HasPrefix(data, []byte("%PDF")) {
		return PDF
	}

	// PNG: \x89PNG, JPEG: \xFF\xD8\xFF
	if bytes.HasPrefix(data, []byte("\x89PNG")) || bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}) {
		return Image
	}

	// TIFF little- and big-endian, BMP
	if bytes.HasPrefix(data, []byte("II*\x00")) || bytes.HasPrefix(data, []byte("MM\x00*")) {
		return Image
	}
	if bytes.HasPrefix(data, []byte("BM")) {
		return Image
	}

	if detectEmailMagic(data) {
		return Email
	}

	return Unknown
}

// detectEmailMagic checks whether the data begins with RFC 5322 message
// headers. The check is a heuristic: a handful of well-known header names
// at the very start of the content.
func detectEmailMagic(data []byte) bool {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	line, _, _ := strings.Cut(string(head), "\n")
	name, _, found := strings.Cut(line, ":")
	if !found {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "from", "to", "received", "return-path", "subject", "date", "message-id", "mime-version", "delivered-to":
		return true
	}
	return false
}

// DetectFile inspects a file's content, falling back to its extension
// when the content is inconclusive.
func DetectFile(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return Unknown, err
	}
	defer f.Close()

	magic := make([]byte, 512)
	n, err := f.Read(magic)
	if err != nil && err != io.EOF {
		return Unknown, err
	}

	if format := DetectFromMagic(magic[:n]); format != Unknown {
		return format, nil
	}
	return Detect(path), nil
}
