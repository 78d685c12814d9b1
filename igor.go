package igor

import (
	"bytes"
	"errors"
)

var (
	// ErrUnexpectedEndOfData is returned when a read needs more bytes than the
	// source holds.
	ErrUnexpectedEndOfData = errors.New("unexpected end of data")
	// ErrUnsupportedFormatVersion is returned for header generations this
	// package can't decode.
	ErrUnsupportedFormatVersion = errors.New("unsupported format version")
	// ErrUnsupportedSampleKind is returned for text waves, complex waves and
	// unknown numeric type codes.
	ErrUnsupportedSampleKind = errors.New("unsupported sample kind")
	// ErrTruncatedRecordStream is returned when a packed record header or
	// payload runs past the end of the file.
	ErrTruncatedRecordStream = errors.New("truncated record stream")
	// ErrInvalidSize is returned when a header declares a negative length.
	ErrInvalidSize = errors.New("invalid declared size")
)

func nullTermStr(s string) string {
	return s[:clen([]byte(s))]
}

func clen(b []byte) int {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return i
	}

	return len(b)
}

// normalizeNewlines turns the classic Mac line endings used by Igor text
// sections into line feeds.
func normalizeNewlines(b []byte) string {
	return string(bytes.ReplaceAll(b, []byte{'\r'}, []byte{'\n'}))
}
