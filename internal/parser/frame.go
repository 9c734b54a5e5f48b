// Package parser implements the two-stage Source server log decoder:
// byte-level line framing and message-body grammar classification.
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/srcdslog/srcdslog-go/pkg/srcdslog/event"
)

// Framing bytes. Every log line opens with the marker; lines received over
// the log-forwarding transport additionally carry the datagram prefix and a
// secret indicator in front of it.
const (
	lineMarker        = 'L' // 0x4C, opens every log line
	secretIndicator   = 'S' // 0x53, a shared secret follows in the header
	noSecretIndicator = 'R' // 0x52, no secret present
)

// datagramPrefix marks a line that arrived over UDP rather than from a
// local log file.
var datagramPrefix = []byte{0xFF, 0xFF, 0xFF, 0xFF}

// Framing-stage errors.
var (
	// ErrNoLineMarker reports a buffer without the 'L' line marker.
	ErrNoLineMarker = errors.New("no line marker")

	// ErrBadTimestamp reports text after the header that does not begin
	// with the expected "MM/DD/YYYY - HH:MM:SS: " prefix.
	ErrBadTimestamp = errors.New("bad timestamp")

	// ErrTooShort and ErrInvalidHeader are reserved for future validation
	// (e.g. minimum-length checks); DecodeFrame does not produce them.
	ErrTooShort      = errors.New("line too short")
	ErrInvalidHeader = errors.New("invalid header")
)

// BadSecretIndicatorError reports a line header whose first byte is neither
// the secret ('S') nor the no-secret ('R') indicator.
type BadSecretIndicatorError struct {
	Byte byte
}

func (e *BadSecretIndicatorError) Error() string {
	return fmt.Sprintf("bad secret indicator byte 0x%02X", e.Byte)
}

// DecodeFrame decodes the framing of a single raw log line: it strips the
// transport prefix, extracts the optional shared secret, parses the
// timestamp prefix and isolates the message body.
//
// DecodeFrame is a pure function; it is safe to call concurrently and the
// returned Line is owned exclusively by the caller.
func DecodeFrame(data []byte) (*event.Line, error) {
	idx := bytes.IndexByte(data, lineMarker)
	if idx < 0 {
		return nil, ErrNoLineMarker
	}

	// The marker and the conventional space after it are both consumed.
	header := data[:idx]
	var rest []byte
	if idx+2 <= len(data) {
		rest = data[idx+2:]
	}

	var secret string
	var hasSecret bool
	if len(header) > 0 {
		if len(header) > 4 && bytes.Equal(header[:4], datagramPrefix) {
			header = header[4:]
		}
		switch header[0] {
		case secretIndicator:
			secret = lossyString(header[1:])
			hasSecret = true
		case noSecretIndicator:
			// no secret
		default:
			return nil, &BadSecretIndicatorError{Byte: header[0]}
		}
	}

	text := lossyString(rest)
	const prefixLen = len(timestampLayout) + len(": ")
	if len(text) < prefixLen || text[len(timestampLayout):prefixLen] != ": " {
		return nil, ErrBadTimestamp
	}
	ts, err := time.ParseInLocation(timestampLayout, text[:len(timestampLayout)], time.Local)
	if err != nil {
		return nil, ErrBadTimestamp
	}

	return &event.Line{
		Timestamp: ts,
		Message:   text[prefixLen:],
		Secret:    secret,
		HasSecret: hasSecret,
	}, nil
}

// lossyString converts raw bytes to a string, replacing each invalid UTF-8
// sequence with U+FFFD instead of rejecting it, so malformed but
// mostly-readable lines still decode. Unlike strings.ToValidUTF8 this does
// not collapse a run of invalid bytes into a single replacement.
func lossyString(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	var sb strings.Builder
	sb.Grow(len(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size == 1 {
			sb.WriteRune(utf8.RuneError)
		} else {
			sb.Write(b[:size])
		}
		b = b[size:]
	}
	return sb.String()
}
