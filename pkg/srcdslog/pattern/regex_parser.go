package pattern

import (
	"context"
	"fmt"
	"regexp"

	"github.com/srcdslog/srcdslog-go/pkg/srcdslog"
	"github.com/srcdslog/srcdslog-go/pkg/srcdslog/event"
)

// RegexParser is a Parser implementation that matches log lines using
// user-defined regular expression patterns from a YAML file.
//
// The line's framing is decoded first; patterns are matched against the
// message body only, so pattern authors never deal with the timestamp prefix
// or the datagram header. The decoded timestamp (and log secret, if present)
// is attached to every emitted event.
//
// Named capture groups (?P<name>...) in patterns are extracted into the
// Event.Data field. The parser checks all patterns and can generate multiple
// events from a single line if multiple patterns match.
//
// RegexParser is safe for concurrent use by multiple goroutines.
type RegexParser struct {
	patterns []*compiledPattern
}

// compiledPattern represents a single compiled pattern with its metadata.
type compiledPattern struct {
	id         string
	eventType  event.Type
	regex      *regexp.Regexp
	groupNames []string // Named capture group names (excluding empty string at index 0)
}

// NewRegexParser creates a RegexParser from a PatternFile.
// This function compiles all regular expressions and validates their syntax.
// Returns an error if any pattern has invalid regex syntax.
//
// Example:
//
//	pf, err := pattern.Load("patterns.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	parser, err := pattern.NewRegexParser(pf)
//	if err != nil {
//	    log.Fatal(err)
//	}
func NewRegexParser(pf *PatternFile) (*RegexParser, error) {
	if pf == nil {
		return nil, fmt.Errorf("pattern file is nil")
	}

	patterns := make([]*compiledPattern, 0, len(pf.Patterns))
	for i, p := range pf.Patterns {
		re, err := regexp.Compile(p.Regex)
		if err != nil {
			return nil, &PatternError{
				Index:   i,
				ID:      p.ID,
				Field:   "regex",
				Message: fmt.Sprintf("invalid regular expression: %v", err),
				Cause:   err,
			}
		}

		// SubexpNames()[0] is always the empty string (the whole match),
		// so skip it when collecting named groups.
		allNames := re.SubexpNames()
		groupNames := make([]string, 0, len(allNames)-1)
		for j := 1; j < len(allNames); j++ {
			if allNames[j] != "" {
				groupNames = append(groupNames, allNames[j])
			}
		}

		patterns = append(patterns, &compiledPattern{
			id:         p.ID,
			eventType:  event.Type(p.EventType),
			regex:      re,
			groupNames: groupNames,
		})
	}

	return &RegexParser{patterns: patterns}, nil
}

// NewRegexParserFromFile is a convenience function that loads a pattern file
// and creates a RegexParser in one step.
func NewRegexParserFromFile(path string) (*RegexParser, error) {
	pf, err := Load(path)
	if err != nil {
		return nil, err
	}
	return NewRegexParser(pf)
}

// ParseLine implements the srcdslog.Parser interface.
// It matches the message body against all patterns and returns all matching
// events, in the order patterns were defined in the file.
//
// Returns an error when the line's framing is malformed; an intact line that
// matches no pattern reports Matched=false with no error.
//
// The context parameter is currently unused but is provided for future
// enhancements (e.g., timeout support with regexp2 library).
func (p *RegexParser) ParseLine(ctx context.Context, line []byte) (srcdslog.ParseResult, error) {
	frame, err := srcdslog.DecodeLine(line)
	if err != nil {
		return srcdslog.ParseResult{}, err
	}

	var allEvents []event.Event

	for _, cp := range p.patterns {
		matches := cp.regex.FindStringSubmatch(frame.Message)
		if matches == nil {
			continue
		}

		ev := event.Event{
			Type:      cp.eventType,
			Timestamp: frame.Timestamp,
		}
		if frame.HasSecret {
			ev.Secret = frame.Secret
		}

		// Extract named capture groups into the Data field.
		if len(cp.groupNames) > 0 {
			data := make(map[string]string, len(cp.groupNames))
			// Use SubexpNames() to maintain 1:1 correspondence with match
			// indices; this handles mixed unnamed and named capture groups.
			allNames := cp.regex.SubexpNames()
			for i := 1; i < len(allNames); i++ {
				if allNames[i] != "" && i < len(matches) {
					data[allNames[i]] = matches[i]
				}
			}
			ev.Data = data
		}
		// If no named groups, leave Data as nil (not empty map)

		allEvents = append(allEvents, ev)
	}

	if len(allEvents) == 0 {
		return srcdslog.ParseResult{Matched: false}, nil
	}

	return srcdslog.ParseResult{
		Events:  allEvents,
		Matched: true,
	}, nil
}

// Ensure RegexParser implements srcdslog.Parser.
var _ srcdslog.Parser = (*RegexParser)(nil)
