package pattern

import "fmt"

// ValidationError reports a problem with a pattern file as a whole: a
// missing patterns list, an unsupported version field, too many entries.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// PatternError reports a problem with one pattern definition: a regex that
// does not compile or exceeds the length limit, a duplicate id, a missing
// event_type.
type PatternError struct {
	Index   int    // position of the pattern in the file, 0-based
	ID      string // empty when the id field itself is missing
	Field   string
	Message string
	Cause   error // regex compile error, if any
}

func (e *PatternError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("pattern %q: %s: %s", e.ID, e.Field, e.Message)
	}
	return fmt.Sprintf("pattern[%d]: %s: %s", e.Index, e.Field, e.Message)
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *PatternError) Unwrap() error {
	return e.Cause
}
