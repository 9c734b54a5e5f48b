package main

import (
	"fmt"

	"github.com/srcdslog/srcdslog-go/pkg/srcdslog"
	"github.com/srcdslog/srcdslog-go/pkg/srcdslog/pattern"
)

// buildParser builds a Parser from YAML pattern file paths.
// Returns nil if no pattern files are specified (use the default parser).
//
// The built-in grammar runs first; pattern parsers get the lines it leaves
// unrecognized, in the order the files were given.
func buildParser(patternFiles []string) (srcdslog.Parser, error) {
	if len(patternFiles) == 0 {
		return nil, nil
	}

	parsers := []srcdslog.Parser{srcdslog.DefaultParser{}}
	for i, path := range patternFiles {
		rp, err := pattern.NewRegexParserFromFile(path)
		if err != nil {
			// Error from pattern package is already sanitized (no path)
			return nil, fmt.Errorf("pattern file %d: %w", i+1, err)
		}
		parsers = append(parsers, rp)
	}

	return &srcdslog.ParserChain{
		Mode:    srcdslog.ChainFirst,
		Parsers: parsers,
	}, nil
}
