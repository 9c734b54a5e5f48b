package srcdslog

import (
	"context"

	"github.com/srcdslog/srcdslog-go/pkg/srcdslog/event"
)

// DefaultParser decodes the built-in Source log grammar: wire framing
// followed by message-body classification.
//
// An unrecognized message body reports Matched=false rather than producing
// an [EventUnrecognized] event, so later parsers in a chain (e.g. a
// pattern.RegexParser for mod-specific lines) get a chance at the line.
type DefaultParser struct{}

// ParseLine implements the Parser interface.
// The context parameter is for future use (e.g., timeout/cancellation).
func (DefaultParser) ParseLine(ctx context.Context, line []byte) (ParseResult, error) {
	ev, err := ParseLine(line)
	if err != nil {
		return ParseResult{}, err
	}
	if ev.IsUnrecognized() {
		return ParseResult{Matched: false}, nil
	}
	return ParseResult{Events: []event.Event{*ev}, Matched: true}, nil
}

// Ensure DefaultParser implements Parser.
var _ Parser = DefaultParser{}
