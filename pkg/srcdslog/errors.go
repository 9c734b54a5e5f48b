package srcdslog

import (
	"errors"
	"fmt"

	"github.com/srcdslog/srcdslog-go/internal/parser"
)

// Framing errors, re-exported from the internal parser.
var (
	// ErrNoLineMarker reports a buffer without the 'L' line marker.
	ErrNoLineMarker = parser.ErrNoLineMarker

	// ErrBadTimestamp reports a line whose text does not begin with the
	// expected "MM/DD/YYYY - HH:MM:SS: " prefix.
	ErrBadTimestamp = parser.ErrBadTimestamp
)

// BadSecretIndicatorError reports a line header whose first byte is neither
// the secret ('S') nor the no-secret ('R') indicator. The offending byte is
// carried in Byte.
type BadSecretIndicatorError = parser.BadSecretIndicatorError

// Lifecycle errors.
var (
	// ErrListenerClosed is returned when Listen is called on a closed Listener.
	ErrListenerClosed = errors.New("listener closed")

	// ErrAlreadyListening is returned when Listen is called twice.
	ErrAlreadyListening = errors.New("already listening")

	// ErrFollowerClosed is returned when Follow is called on a closed Follower.
	ErrFollowerClosed = errors.New("follower closed")

	// ErrAlreadyFollowing is returned when Follow is called twice.
	ErrAlreadyFollowing = errors.New("already following")

	// ErrSecretMismatch reports a line whose log secret did not match the
	// secret configured with WithExpectedSecret.
	ErrSecretMismatch = errors.New("log secret mismatch")
)

// ParseError wraps an error decoding a single log line. The failing line is
// carried for logging; the line itself is skipped.
type ParseError struct {
	Line string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing line %q: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Operations reported by ListenError and FollowError.
const (
	OpListen     = "listen"
	OpFindLatest = "find_latest"
	OpTail       = "tail"
	OpRotation   = "rotation"
)

// ListenError wraps a UDP listener failure.
type ListenError struct {
	Op   string
	Addr string
	Err  error
}

func (e *ListenError) Error() string {
	if e.Addr != "" {
		return fmt.Sprintf("listener %s (%s): %v", e.Op, e.Addr, e.Err)
	}
	return fmt.Sprintf("listener %s: %v", e.Op, e.Err)
}

func (e *ListenError) Unwrap() error {
	return e.Err
}

// FollowError wraps a log file follower failure.
type FollowError struct {
	Op   string
	Path string
	Err  error
}

func (e *FollowError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("follower %s (%s): %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("follower %s: %v", e.Op, e.Err)
}

func (e *FollowError) Unwrap() error {
	return e.Err
}
