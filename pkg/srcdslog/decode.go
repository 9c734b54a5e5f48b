package srcdslog

import (
	"github.com/srcdslog/srcdslog-go/internal/parser"
	"github.com/srcdslog/srcdslog-go/pkg/srcdslog/event"
)

// DecodeLine decodes the framing of a single raw log line: it strips the
// transport marker, extracts the optional log secret and the timestamp, and
// isolates the message body.
//
// Return values:
//   - (*Line, nil): framing decoded; Line.Message holds the body verbatim
//   - (nil, error): malformed framing (see [ErrNoLineMarker],
//     [BadSecretIndicatorError], [ErrBadTimestamp])
//
// DecodeLine never retries or recovers; the caller decides whether to skip
// or log a failing line.
func DecodeLine(data []byte) (*event.Line, error) {
	return parser.DecodeFrame(data)
}

// Classify classifies a message body (the text after the timestamp prefix)
// into an Event. It is a total function: a body that matches no known shape
// returns an event of type [EventUnrecognized], never an error.
//
// The returned event carries no timestamp; use [ParseLine] to decode a full
// raw line in one step.
func Classify(message string) event.Event {
	return parser.Classify(message)
}

// ParseLine runs both decoder stages on a single raw log line: framing
// first, then message-body classification.
//
// Example:
//
//	line := []byte(`L 02/09/2024 - 08:00:50: Log file closed`)
//	ev, err := srcdslog.ParseLine(line)
//	if err != nil {
//	    log.Printf("decode error: %v", err)
//	} else if ev.Type == srcdslog.EventLogClosed {
//	    fmt.Println("log closed at", ev.Timestamp)
//	}
func ParseLine(data []byte) (*event.Event, error) {
	line, err := parser.DecodeFrame(data)
	if err != nil {
		return nil, err
	}
	ev := parser.Classify(line.Message)
	ev.Timestamp = line.Timestamp
	if line.HasSecret {
		ev.Secret = line.Secret
	}
	return &ev, nil
}
