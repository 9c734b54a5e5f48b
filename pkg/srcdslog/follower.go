package srcdslog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/srcdslog/srcdslog-go/internal/logfinder"
	"github.com/srcdslog/srcdslog-go/internal/tailer"
	"github.com/srcdslog/srcdslog-go/pkg/srcdslog/event"
)

// Log directory errors, re-exported from the internal finder.
var (
	// ErrLogDirNotFound is returned when no log directory is configured or
	// the configured one is invalid.
	ErrLogDirNotFound = logfinder.ErrLogDirNotFound

	// ErrNoLogFiles is returned when the log directory contains no log files.
	ErrNoLogFiles = logfinder.ErrNoLogFiles
)

// Follower monitors a server's local console log files. The server opens a
// fresh log file on every map change, so the follower polls for rotation
// and switches to the newest file automatically.
type Follower struct {
	cfg    config
	logDir string
	log    *slog.Logger

	mu        sync.Mutex
	closed    bool
	following bool
	cancel    context.CancelFunc
	doneCh    chan struct{}
}

// NewFollower creates a follower using functional options.
// Validates options and checks log directory existence.
// Does NOT start goroutines (cheap to call).
//
// Example:
//
//	f, err := srcdslog.NewFollower(
//	    srcdslog.WithLogDir("/srv/tf2/tf/logs"),
//	    srcdslog.WithIncludeTypes(srcdslog.EventChat),
//	)
func NewFollower(opts ...Option) (*Follower, error) {
	cfg := applyOptions(opts)
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	logDir, err := logfinder.FindLogDir(cfg.logDir)
	if err != nil {
		return nil, fmt.Errorf("finding log directory: %w", err)
	}

	log := cfg.logger
	if log == nil {
		log = discardLogger
	}

	return &Follower{
		cfg:    *cfg, // copy to ensure immutability
		logDir: logDir,
		log:    log,
	}, nil
}

// Follow starts following and returns channels.
// Starts internal goroutines here.
// When ctx is cancelled, channels are closed automatically.
// Follow can only be called once per Follower instance.
//
// Returns ErrFollowerClosed if the follower has been closed.
// Returns ErrAlreadyFollowing if Follow() has already been called.
func (f *Follower) Follow(ctx context.Context) (<-chan event.Event, <-chan error, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, nil, ErrFollowerClosed
	}
	if f.following {
		return nil, nil, ErrAlreadyFollowing
	}
	f.following = true

	ctx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.doneCh = make(chan struct{})

	eventCh := make(chan event.Event, f.cfg.bufferSize)
	errCh := make(chan error, errBuffer)

	go f.run(ctx, eventCh, errCh)

	return eventCh, errCh, nil
}

// Close stops the follower and releases resources.
// Safe to call multiple times.
// Blocks until the goroutine has exited.
func (f *Follower) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true

	if f.cancel != nil {
		f.cancel()
	}
	doneCh := f.doneCh
	f.mu.Unlock()

	if doneCh != nil {
		<-doneCh
	}
	return nil
}

func (f *Follower) run(ctx context.Context, eventCh chan event.Event, errCh chan error) {
	defer close(f.doneCh) // Signal that goroutine has exited
	defer close(eventCh)
	defer close(errCh)

	logFile, err := logfinder.FindLatestLogFile(f.logDir)
	if err != nil {
		sendError(ctx, errCh, &FollowError{Op: OpFindLatest, Err: err})
		return
	}
	f.log.Debug("found latest log file", "path", logFile)

	cfg := tailer.DefaultConfig()
	cfg.FromStart = f.cfg.replayFromStart

	t, err := tailer.New(ctx, logFile, cfg)
	if err != nil {
		sendError(ctx, errCh, &FollowError{Op: OpTail, Path: logFile, Err: err})
		return
	}
	f.log.Debug("started tailing", "path", logFile, "from_start", cfg.FromStart)

	// Poll for log rotation (new file per map change).
	rotationTicker := time.NewTicker(f.cfg.pollInterval)
	defer rotationTicker.Stop()
	defer func() { _ = t.Stop() }()

	currentFile := logFile

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-t.Lines():
			if !ok {
				return
			}
			f.cfg.processLine(ctx, []byte(line), eventCh, errCh)
		case err, ok := <-t.Errors():
			if !ok {
				return
			}
			sendError(ctx, errCh, &FollowError{Op: OpTail, Path: currentFile, Err: err})
		case <-rotationTicker.C:
			newFile, err := logfinder.FindLatestLogFile(f.logDir)
			if err != nil {
				sendError(ctx, errCh, &FollowError{Op: OpRotation, Err: err})
				continue
			}
			if newFile != currentFile {
				// New log file found, switch to it
				f.log.Debug("log rotation detected", "from", currentFile, "to", newFile)
				if nt := f.switchTailer(ctx, t, newFile, errCh); nt != t {
					t = nt
					currentFile = newFile
				}
			}
		}
	}
}

// switchTailer starts tailing newFile from the beginning and stops the old
// tailer only once the new one is up. On failure the old tailer keeps
// running and the switch is retried on the next rotation tick.
func (f *Follower) switchTailer(ctx context.Context, old *tailer.Tailer, newFile string, errCh chan error) *tailer.Tailer {
	cfg := tailer.DefaultConfig()
	cfg.FromStart = true // Read new file from start
	nt, err := tailer.New(ctx, newFile, cfg)
	if err != nil {
		sendError(ctx, errCh, &FollowError{Op: OpTail, Path: newFile, Err: err})
		return old
	}
	_ = old.Stop()
	return nt
}

// FollowWithOptions creates a follower using functional options and starts
// following. The follower stops when the context is cancelled; for
// synchronous shutdown use NewFollower and Follower.Follow() directly.
func FollowWithOptions(ctx context.Context, opts ...Option) (<-chan event.Event, <-chan error, error) {
	f, err := NewFollower(opts...)
	if err != nil {
		return nil, nil, err
	}
	return f.Follow(ctx)
}
