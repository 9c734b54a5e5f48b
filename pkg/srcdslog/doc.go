// Package srcdslog decodes log lines emitted by Source dedicated servers
// into structured events.
//
// This package allows you to:
//   - Decode the wire framing of a log line (transport prefix, log secret,
//     timestamp) into a [Line]
//   - Classify a message body into one of a fixed set of typed events
//   - Receive forwarded log lines over UDP (logaddress_add) in real time
//   - Follow a server's local console log files
//   - Define custom event patterns for mod-specific lines via YAML
//
// # Basic Usage
//
// To decode a single raw log line:
//
//	ev, err := srcdslog.ParseLine(datagram)
//	if err != nil {
//	    log.Printf("decode error: %v", err)
//	} else if !ev.IsUnrecognized() {
//	    fmt.Printf("%s: %+v\n", ev.Type, ev)
//	}
//
// Framing errors (missing line marker, bad secret indicator, bad timestamp)
// are reported as errors. An unrecognized message body is NOT an error: it
// decodes to an event of type [EventUnrecognized], so callers branch on the
// event type to detect lines whose shape isn't understood.
//
// To receive forwarded lines over UDP:
//
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//
//	events, errs, err := srcdslog.ListenWithOptions(ctx, ":27500",
//	    srcdslog.WithIncludeTypes(srcdslog.EventChat, srcdslog.EventPlayerConnected),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for {
//	    select {
//	    case ev, ok := <-events:
//	        if !ok {
//	            return
//	        }
//	        fmt.Printf("%s %s\n", ev.Type, ev.Message)
//	    case err, ok := <-errs:
//	        if !ok {
//	            return
//	        }
//	        log.Printf("error: %v", err)
//	    }
//	}
//
// # Custom Parsers
//
// Implement the [Parser] interface for custom log parsing:
//
//	type Parser interface {
//	    ParseLine(ctx context.Context, line []byte) (ParseResult, error)
//	}
//
// Use [ParserChain] to combine multiple parsers:
//
//	chain := &srcdslog.ParserChain{
//	    Mode:    srcdslog.ChainAll,
//	    Parsers: []srcdslog.Parser{srcdslog.DefaultParser{}, customParser},
//	}
//
// # YAML Pattern Files
//
// For pattern-based parsing of mod-specific lines without code, use the
// [pattern] subpackage:
//
//	import "github.com/srcdslog/srcdslog-go/pkg/srcdslog/pattern"
//
//	parser, err := pattern.NewRegexParserFromFile("patterns.yaml")
//
// See the [pattern] package for details on YAML format and usage.
//
// # Log Secrets
//
// Servers configured with sv_logsecret prefix forwarded lines with a shared
// secret. Use [WithExpectedSecret] to drop lines whose secret does not
// match; decoded secrets are carried on [Event].Secret either way.
package srcdslog
