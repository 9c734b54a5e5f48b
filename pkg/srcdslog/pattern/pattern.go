// Package pattern provides custom pattern matching for Source server log
// lines. It allows users to define their own event types via YAML
// configuration files with regular expression patterns, covering the mod and
// plugin lines (SourceMod, custom game modes) the built-in grammar leaves
// unrecognized.
package pattern

// PatternFile represents the structure of a YAML pattern file.
// Pattern files allow users to define custom log parsing rules using regular expressions.
//
// Example YAML file:
//
//	version: 1
//	patterns:
//	  - id: sm_plugin_loaded
//	    event_type: plugin_loaded
//	    regex: '\[SM\] Loaded plugin (?P<plugin>\S+)'
//	  - id: mge_duel_won
//	    event_type: duel_won
//	    regex: '(?P<winner>\S+) won a duel against (?P<loser>\S+) on arena (?P<arena>\d+)'
type PatternFile struct {
	// Version is the pattern file format version. Currently only version 1 is supported.
	Version int `yaml:"version"`

	// Patterns is the list of pattern definitions.
	Patterns []Pattern `yaml:"patterns"`
}

// Pattern represents a single log pattern definition.
// Each pattern consists of a unique identifier, an event type, and a regular
// expression matched against the message body (the text after the timestamp
// prefix). The regex may contain named capture groups (?P<name>...) which
// will be extracted into the Event.Data field.
type Pattern struct {
	// ID is a unique identifier for this pattern (e.g., "sm_plugin_loaded").
	// IDs must be unique within a pattern file.
	ID string `yaml:"id"`

	// EventType is the value to use for the Event.Type field when this pattern matches.
	EventType string `yaml:"event_type"`

	// Regex is the regular expression pattern to match against message bodies.
	// Named capture groups (?P<name>...) will be extracted into Event.Data.
	Regex string `yaml:"regex"`
}
