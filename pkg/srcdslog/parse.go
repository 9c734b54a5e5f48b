package srcdslog

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/srcdslog/srcdslog-go/pkg/srcdslog/event"
)

// maxLineSize bounds a single log line. Source servers keep lines well under
// this, but a corrupt file should not abort the whole parse.
const maxLineSize = 64 * 1024

// ParseReader reads log lines from r and calls fn for each decoded event,
// applying the same options the listener and follower accept. Lines the
// parser does not match are skipped. Lines with malformed framing or a
// mismatched log secret are skipped too, and surfaced through the handler
// set with WithErrorHandler; saved console logs interleave raw console
// output with log lines, so a malformed line never aborts the batch.
//
// Returning a non-nil error from fn stops the parse and returns that error.
func ParseReader(ctx context.Context, r io.Reader, fn func(event.Event) error, opts ...Option) error {
	cfg := applyOptions(opts)
	if err := cfg.validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		if cfg.expectedSecret != "" {
			frame, err := DecodeLine(line)
			if err != nil {
				cfg.reportLineError(&ParseError{Line: string(line), Err: err})
				continue
			}
			if !frame.HasSecret || frame.Secret != cfg.expectedSecret {
				cfg.reportLineError(&ParseError{Line: string(line), Err: ErrSecretMismatch})
				continue
			}
		}

		result, err := cfg.parser.ParseLine(ctx, line)
		if err != nil {
			// Deliver any partial results from a ChainContinueOnError chain
			// before moving on to the next line.
			if ferr := cfg.deliverBatch(result.Events, line, fn); ferr != nil {
				return ferr
			}
			cfg.reportLineError(&ParseError{Line: string(line), Err: err})
			continue
		}
		if !result.Matched {
			continue
		}

		if err := cfg.deliverBatch(result.Events, line, fn); err != nil {
			return err
		}
	}

	return scanner.Err()
}

// reportLineError surfaces a skipped line to the configured handler.
func (c *config) reportLineError(err error) {
	if c.errorHandler != nil {
		c.errorHandler(err)
	}
}

// deliverBatch applies the type filter and raw-line option, then hands each
// event to fn. A non-nil error from fn is returned as-is.
func (c *config) deliverBatch(events []event.Event, line []byte, fn func(event.Event) error) error {
	for _, ev := range events {
		if !c.filter.Allows(ev.Type) {
			continue
		}
		if c.includeRawLine {
			ev.RawLine = string(line)
		}
		if err := fn(ev); err != nil {
			return err
		}
	}
	return nil
}

// ParseFile opens path and parses it with ParseReader.
func ParseFile(ctx context.Context, path string, fn func(event.Event) error, opts ...Option) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()

	return ParseReader(ctx, f, fn, opts...)
}
