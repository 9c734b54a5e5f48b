package main

import (
	"fmt"
	"strings"

	"github.com/srcdslog/srcdslog-go/pkg/srcdslog"
)

// NormalizeEventTypes converts flag values to EventTypes, trimming whitespace,
// lowercasing, and removing duplicates while preserving first-seen order.
// Returns an error naming the first invalid value.
func NormalizeEventTypes(names []string) ([]srcdslog.EventType, error) {
	if len(names) == 0 {
		return nil, nil
	}

	seen := make(map[srcdslog.EventType]struct{}, len(names))
	out := make([]srcdslog.EventType, 0, len(names))
	for _, name := range names {
		t, ok := srcdslog.ParseEventType(name)
		if !ok {
			return nil, fmt.Errorf("unknown event type %q (valid: %s)",
				strings.TrimSpace(name), strings.Join(srcdslog.EventTypeNames(), ", "))
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out, nil
}

// RejectOverlap returns an error when a type appears in both the include and
// exclude lists; the combination always filters everything of that type and
// is almost certainly a mistake.
func RejectOverlap(includes, excludes []srcdslog.EventType) error {
	if len(includes) == 0 || len(excludes) == 0 {
		return nil
	}
	excluded := make(map[srcdslog.EventType]struct{}, len(excludes))
	for _, t := range excludes {
		excluded[t] = struct{}{}
	}
	for _, t := range includes {
		if _, ok := excluded[t]; ok {
			return fmt.Errorf("event type %q is both included and excluded", t)
		}
	}
	return nil
}
