package srcdslog

import (
	"context"

	"github.com/srcdslog/srcdslog-go/pkg/srcdslog/event"
)

// processLine runs one raw line through the configured parser and delivers
// the resulting events, applying secret verification, type filters and raw
// line inclusion. Shared by the UDP listener and the file follower.
func (c *config) processLine(ctx context.Context, line []byte, eventCh chan<- event.Event, errCh chan<- error) {
	// Secret verification happens on the framing result, before any parser
	// sees the line, so a chain of custom parsers cannot bypass it.
	if c.expectedSecret != "" {
		frame, err := DecodeLine(line)
		if err != nil {
			sendError(ctx, errCh, &ParseError{Line: string(line), Err: err})
			return
		}
		if !frame.HasSecret || frame.Secret != c.expectedSecret {
			sendError(ctx, errCh, &ParseError{Line: string(line), Err: ErrSecretMismatch})
			return
		}
	}

	result, err := c.parser.ParseLine(ctx, line)

	// Process events even if there's an error (e.g., ChainContinueOnError
	// mode). This ensures partial success from multi-parser chains is not
	// lost.
	if err != nil {
		c.deliver(ctx, result.Events, line, eventCh)
		sendError(ctx, errCh, &ParseError{Line: string(line), Err: err})
		return
	}

	if !result.Matched {
		return // Not a recognized event
	}

	c.deliver(ctx, result.Events, line, eventCh)
}

// deliver sends events that pass the type filter, attaching the raw line if
// requested.
func (c *config) deliver(ctx context.Context, events []event.Event, line []byte, eventCh chan<- event.Event) {
	for _, ev := range events {
		if !c.filter.Allows(ev.Type) {
			continue
		}
		if c.includeRawLine {
			ev.RawLine = string(line)
		}
		select {
		case eventCh <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// errBuffer is the buffer size for error channels. A small buffer prevents
// error loss during brief moments when the consumer is busy processing
// events, while keeping memory usage minimal.
const errBuffer = 16

// sendError sends an error to the error channel.
// With a buffered channel, errors are only dropped if the buffer is full.
// The context case ensures we don't block during shutdown.
func sendError(ctx context.Context, errCh chan<- error, err error) {
	if err == nil {
		return
	}
	select {
	case errCh <- err:
	case <-ctx.Done():
		// Don't block during shutdown
	default:
		// Drop error only if buffer is full (rare with buffer size 16)
	}
}
