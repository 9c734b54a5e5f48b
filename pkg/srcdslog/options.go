package srcdslog

import (
	"fmt"
	"log/slog"
	"time"
)

// Option configures Listener and Follower behavior using the functional
// options pattern. Options that only apply to one of the two are ignored by
// the other.
type Option func(*config)

// config holds internal configuration shared by the listener and follower.
type config struct {
	parser         Parser
	filter         *compiledFilter
	includeRawLine bool
	expectedSecret string
	bufferSize     int
	logger         *slog.Logger

	// batch parsing only
	errorHandler func(error)

	// follower only
	logDir          string
	pollInterval    time.Duration
	replayFromStart bool
}

// defaultEventBuffer is the default event channel buffer size. Forwarded
// log lines are best-effort; a small buffer absorbs bursts without letting
// a slow consumer back up the receive loop indefinitely.
const defaultEventBuffer = 256

// defaultConfig returns a config with sensible defaults.
func defaultConfig() *config {
	return &config{
		parser:       DefaultParser{},
		bufferSize:   defaultEventBuffer,
		pollInterval: 2 * time.Second,
	}
}

// applyOptions applies functional options to a config.
func applyOptions(opts []Option) *config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// validate checks for invalid option combinations.
func (c *config) validate() error {
	if c.bufferSize < 0 {
		return fmt.Errorf("buffer size must be non-negative, got %d", c.bufferSize)
	}
	if c.pollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %v", c.pollInterval)
	}
	return nil
}

// WithParser sets a custom parser for log lines.
// If p is nil, this option has no effect (the default parser remains active).
func WithParser(p Parser) Option {
	return func(c *config) {
		if p != nil {
			c.parser = p
		}
	}
}

// WithParsers combines multiple parsers using ChainAll mode.
// At least one parser is required.
func WithParsers(parsers ...Parser) Option {
	return func(c *config) {
		if len(parsers) > 0 {
			c.parser = &ParserChain{
				Mode:    ChainAll,
				Parsers: parsers,
			}
		}
	}
}

// WithIncludeTypes filters events to only include the specified types.
// If called multiple times, only the last call takes effect.
func WithIncludeTypes(types ...EventType) Option {
	return func(c *config) {
		if c.filter == nil {
			c.filter = &compiledFilter{}
		}
		c.filter.include = make(map[EventType]struct{}, len(types))
		for _, t := range types {
			c.filter.include[t] = struct{}{}
		}
	}
}

// WithExcludeTypes filters out events of the specified types.
// Exclude takes precedence over include.
// If called multiple times, only the last call takes effect.
func WithExcludeTypes(types ...EventType) Option {
	return func(c *config) {
		if c.filter == nil {
			c.filter = &compiledFilter{}
		}
		c.filter.exclude = make(map[EventType]struct{}, len(types))
		for _, t := range types {
			c.filter.exclude[t] = struct{}{}
		}
	}
}

// WithFilter sets both include and exclude type filters.
// Exclude takes precedence over include.
func WithFilter(include, exclude []EventType) Option {
	return func(c *config) {
		c.filter = newCompiledFilter(include, exclude)
	}
}

// WithIncludeRawLine includes the original log line in Event.RawLine.
// Default: false.
func WithIncludeRawLine(include bool) Option {
	return func(c *config) {
		c.includeRawLine = include
	}
}

// WithExpectedSecret drops lines whose log secret does not equal secret
// (sv_logsecret verification). Lines without a secret are dropped too.
// Mismatches surface on the error channel as ErrSecretMismatch.
// An empty secret disables the check (default).
func WithExpectedSecret(secret string) Option {
	return func(c *config) {
		c.expectedSecret = secret
	}
}

// WithErrorHandler sets a callback for per-line decode errors during batch
// parsing (ParseReader, ParseFile). Malformed lines are skipped either way;
// the handler makes them observable. The listener and follower report errors
// on their error channel instead and ignore this option.
func WithErrorHandler(h func(error)) Option {
	return func(c *config) {
		c.errorHandler = h
	}
}

// WithBufferSize sets the event channel buffer size.
// Default: 256.
func WithBufferSize(n int) Option {
	return func(c *config) {
		c.bufferSize = n
	}
}

// WithLogger sets a custom logger for debug output.
// If logger is nil, logging is disabled (default behavior).
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithLogDir sets the server's console log directory for the Follower.
// If not set, the SRCDSLOG_LOGDIR environment variable is used.
func WithLogDir(dir string) Option {
	return func(c *config) {
		c.logDir = dir
	}
}

// WithPollInterval sets how often the Follower checks for new/rotated log
// files. The server opens a fresh log file on every map change.
// Default: 2 seconds.
func WithPollInterval(interval time.Duration) Option {
	return func(c *config) {
		c.pollInterval = interval
	}
}

// WithReplayFromStart makes the Follower read the current log file from the
// beginning instead of only new lines.
func WithReplayFromStart() Option {
	return func(c *config) {
		c.replayFromStart = true
	}
}
