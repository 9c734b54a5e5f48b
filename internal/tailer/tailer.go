// Package tailer follows a single log file, delivering lines and errors on
// channels. It wraps nxadm/tail and owns the goroutine that pumps lines out
// of it.
package tailer

import (
	"context"
	"io"

	"github.com/nxadm/tail"
)

// Config controls how a file is tailed.
type Config struct {
	// FromStart reads the file from the beginning instead of seeking to
	// the end first.
	FromStart bool

	// Poll uses polling instead of inotify. Useful on filesystems where
	// inotify is unreliable (network mounts).
	Poll bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{}
}

// Tailer follows one file.
type Tailer struct {
	t     *tail.Tail
	lines chan string
	errs  chan error
}

// New starts tailing path. The returned Tailer delivers lines until Stop is
// called, the context is cancelled, or the underlying tail fails.
func New(ctx context.Context, path string, cfg Config) (*Tailer, error) {
	tcfg := tail.Config{
		Follow:    true,
		ReOpen:    true,
		MustExist: true,
		Poll:      cfg.Poll,
		Logger:    tail.DiscardingLogger,
	}
	if !cfg.FromStart {
		tcfg.Location = &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd}
	}

	tt, err := tail.TailFile(path, tcfg)
	if err != nil {
		return nil, err
	}

	tr := &Tailer{
		t:     tt,
		lines: make(chan string),
		errs:  make(chan error, 1),
	}
	go tr.pump(ctx)
	return tr, nil
}

// Lines returns the channel of tailed lines. Closed when tailing ends.
func (tr *Tailer) Lines() <-chan string {
	return tr.lines
}

// Errors returns the channel of tail errors. Closed when tailing ends.
func (tr *Tailer) Errors() <-chan error {
	return tr.errs
}

// Stop ends tailing and releases the inotify watch. Safe to call while the
// pump goroutine is running.
func (tr *Tailer) Stop() error {
	err := tr.t.Stop()
	tr.t.Cleanup()
	return err
}

func (tr *Tailer) pump(ctx context.Context) {
	defer close(tr.lines)
	defer close(tr.errs)

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-tr.t.Lines:
			if !ok {
				if err := tr.t.Err(); err != nil {
					select {
					case tr.errs <- err:
					default:
					}
				}
				return
			}
			if line.Err != nil {
				select {
				case tr.errs <- line.Err:
				case <-ctx.Done():
					return
				}
				continue
			}
			select {
			case tr.lines <- line.Text:
			case <-ctx.Done():
				return
			}
		}
	}
}
