package srcdslog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/gnet/v2"
	"github.com/panjf2000/gnet/v2/pkg/logging"

	"github.com/srcdslog/srcdslog-go/pkg/srcdslog/event"
)

// stopTimeout bounds how long Close waits for the gnet engine to shut down.
const stopTimeout = 2 * time.Second

// Listener receives forwarded log lines over UDP and emits decoded events.
// One datagram carries one line, by convention of the transport; the
// listener performs no reassembly or ordering.
type Listener struct {
	addr string
	cfg  config
	log  *slog.Logger

	mu        sync.Mutex
	closed    bool
	listening bool
	cancel    context.CancelFunc
	doneCh    chan struct{}

	engineMu sync.Mutex
	engine   *gnet.Engine
}

// discardLogger returns a logger that discards all output.
var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// NewListener creates a UDP listener for the given address (e.g. ":27500"
// or "0.0.0.0:27500", the address handed to the server's logaddress_add).
// Does NOT bind the socket or start goroutines; call Listen.
func NewListener(addr string, opts ...Option) (*Listener, error) {
	cfg := applyOptions(opts)
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	log := cfg.logger
	if log == nil {
		log = discardLogger
	}

	return &Listener{
		addr: addr,
		cfg:  *cfg, // copy to ensure immutability
		log:  log,
	}, nil
}

// Listen binds the socket and returns channels.
// Starts internal goroutines here.
// When ctx is cancelled, channels are closed automatically.
// Both channels close on ctx.Done() or fatal error.
// Listen can only be called once per Listener instance.
//
// Returns ErrListenerClosed if the listener has been closed.
// Returns ErrAlreadyListening if Listen() has already been called.
func (l *Listener) Listen(ctx context.Context) (<-chan event.Event, <-chan error, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil, nil, ErrListenerClosed
	}
	if l.listening {
		return nil, nil, ErrAlreadyListening
	}
	l.listening = true

	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.doneCh = make(chan struct{})

	eventCh := make(chan event.Event, l.cfg.bufferSize)
	errCh := make(chan error, errBuffer)

	go l.run(ctx, eventCh, errCh)

	return eventCh, errCh, nil
}

// Close stops the listener and releases resources.
// Safe to call multiple times.
// Blocks until the goroutine has exited.
func (l *Listener) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true

	if l.cancel != nil {
		l.cancel()
	}
	doneCh := l.doneCh
	l.mu.Unlock()

	if doneCh != nil {
		<-doneCh
	}
	return nil
}

func (l *Listener) run(ctx context.Context, eventCh chan event.Event, errCh chan error) {
	defer close(l.doneCh) // Signal that goroutine has exited
	defer close(eventCh)
	defer close(errCh)

	handler := &udpHandler{
		lis:    l,
		ctx:    ctx,
		events: eventCh,
		errs:   errCh,
	}

	runErr := make(chan error, 1)
	go func() {
		l.log.Debug("starting UDP listener", "addr", l.addr)
		runErr <- gnet.Run(handler, "udp://"+l.addr,
			gnet.WithLogger(gnetLogger{l.log}),
			gnet.WithReusePort(true),
		)
	}()

	select {
	case err := <-runErr:
		// Engine exited on its own (bind failure or fatal error).
		if err != nil {
			sendError(ctx, errCh, &ListenError{Op: OpListen, Addr: l.addr, Err: err})
		}
	case <-ctx.Done():
		l.engineMu.Lock()
		engine := l.engine
		l.engineMu.Unlock()

		if engine != nil {
			stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
			_ = engine.Stop(stopCtx)
			cancel()
		}
		<-runErr
		l.log.Debug("UDP listener stopped", "addr", l.addr)
	}
}

// udpHandler handles gnet events for the listener's UDP socket.
type udpHandler struct {
	gnet.BuiltinEventEngine
	lis    *Listener
	ctx    context.Context
	events chan<- event.Event
	errs   chan<- error
}

func (h *udpHandler) OnBoot(eng gnet.Engine) gnet.Action {
	// Store engine reference for shutdown
	h.lis.engineMu.Lock()
	h.lis.engine = &eng
	h.lis.engineMu.Unlock()

	h.lis.log.Debug("UDP listener booted", "addr", h.lis.addr)
	return gnet.None
}

func (h *udpHandler) OnTraffic(c gnet.Conn) gnet.Action {
	data, err := c.Next(-1)
	if err != nil {
		sendError(h.ctx, h.errs, &ListenError{Op: OpListen, Addr: h.lis.addr, Err: err})
		return gnet.None
	}

	// gnet reuses the read buffer after OnTraffic returns; processLine
	// delivers to channels, so take a copy.
	line := make([]byte, len(data))
	copy(line, data)

	h.lis.cfg.processLine(h.ctx, line, h.events, h.errs)
	return gnet.None
}

// gnetLogger bridges gnet's printf-style logging to slog.
type gnetLogger struct {
	log *slog.Logger
}

func (g gnetLogger) Debugf(format string, args ...any) { g.log.Debug(fmt.Sprintf(format, args...)) }
func (g gnetLogger) Infof(format string, args ...any)  { g.log.Info(fmt.Sprintf(format, args...)) }
func (g gnetLogger) Warnf(format string, args ...any)  { g.log.Warn(fmt.Sprintf(format, args...)) }
func (g gnetLogger) Errorf(format string, args ...any) { g.log.Error(fmt.Sprintf(format, args...)) }

// Fatalf logs at error level; a library must not exit the process.
func (g gnetLogger) Fatalf(format string, args ...any) { g.log.Error(fmt.Sprintf(format, args...)) }

var _ logging.Logger = gnetLogger{}

// ListenWithOptions creates a listener using functional options and starts
// listening. This is the preferred way to create and start a listener.
//
// Note: This function does not return the underlying Listener, so callers
// cannot call Close() to perform synchronous shutdown. The listener will
// stop when the context is cancelled. For more control over shutdown, use
// NewListener and Listener.Listen() directly.
//
// Example:
//
//	events, errs, err := srcdslog.ListenWithOptions(ctx, ":27500",
//	    srcdslog.WithExpectedSecret("hunter2"),
//	    srcdslog.WithIncludeTypes(srcdslog.EventChat),
//	)
func ListenWithOptions(ctx context.Context, addr string, opts ...Option) (<-chan event.Event, <-chan error, error) {
	l, err := NewListener(addr, opts...)
	if err != nil {
		return nil, nil, err
	}
	return l.Listen(ctx)
}
