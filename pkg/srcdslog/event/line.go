package event

import "time"

// Line is the framing-stage result of decoding a single raw log line:
// transport and header bytes stripped, timestamp parsed, message body
// isolated.
//
// A Line is constructed once per input buffer and is immutable thereafter.
type Line struct {
	// Timestamp is the line's timestamp, second precision, interpreted as
	// server-local time verbatim (the wire format carries no zone).
	Timestamp time.Time `json:"timestamp"`

	// Message is the text remaining after the timestamp prefix, taken
	// verbatim. Invalid byte sequences in the input are replaced during
	// UTF-8 conversion, never rejected.
	Message string `json:"message"`

	// Secret is the shared secret carried in the line header, if any.
	// Meaningful only when HasSecret is true; an empty Secret with
	// HasSecret set means the line carried an 'S' indicator with no
	// secret bytes.
	Secret string `json:"secret,omitempty"`

	// HasSecret reports whether the line carried a secret indicator byte
	// announcing a secret.
	HasSecret bool `json:"has_secret,omitempty"`
}
