package srcdslog

import "github.com/srcdslog/srcdslog-go/pkg/srcdslog/event"

// compiledFilter holds precomputed include/exclude sets for event types.
// Exclude takes precedence over include.
type compiledFilter struct {
	include map[event.Type]struct{}
	exclude map[event.Type]struct{}
}

// newCompiledFilter builds a filter from include and exclude lists.
func newCompiledFilter(include, exclude []EventType) *compiledFilter {
	f := &compiledFilter{}
	if len(include) > 0 {
		f.include = make(map[event.Type]struct{}, len(include))
		for _, t := range include {
			f.include[t] = struct{}{}
		}
	}
	if len(exclude) > 0 {
		f.exclude = make(map[event.Type]struct{}, len(exclude))
		for _, t := range exclude {
			f.exclude[t] = struct{}{}
		}
	}
	return f
}

// Allows reports whether events of type t pass the filter.
func (f *compiledFilter) Allows(t event.Type) bool {
	if f == nil {
		return true
	}
	if f.exclude != nil {
		if _, ok := f.exclude[t]; ok {
			return false
		}
	}
	if f.include != nil {
		_, ok := f.include[t]
		return ok
	}
	return true
}
