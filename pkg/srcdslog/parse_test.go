package srcdslog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/srcdslog/srcdslog-go/pkg/srcdslog/event"
)

const sampleLog = `L 02/09/2024 - 08:00:50: Log file started (file "logs/L0209000.log") (game "/srv/tf2/tf") (version "8622416")
L 02/09/2024 - 08:00:50: Loading map "koth_highpass"
L 02/09/2024 - 08:00:52: Started map "koth_highpass" (CRC "505b4fbf2a1661d2fb1b96f444ef268c")
L 02/09/2024 - 08:01:02: "Alice<6><[U:1:1324124512]><>" connected, address "192.168.0.1:27015"
L 02/09/2024 - 08:01:05: "Alice<6><[U:1:1324124512]><Blue>" joined team "Blue"
L 02/09/2024 - 08:01:13: "Alice<6><[U:1:1324124512]><Blue>" say "gg"
L 02/09/2024 - 08:01:20: [SM] something only a plugin understands
L 02/09/2024 - 08:02:00: "Alice<6><[U:1:1324124512]><Blue>" disconnected (reason "Disconnect by user.")
L 02/09/2024 - 08:02:01: Log file closed
`

func collectEvents(t *testing.T, input string, opts ...Option) []event.Event {
	t.Helper()
	var events []event.Event
	err := ParseReader(context.Background(), strings.NewReader(input), func(ev event.Event) error {
		events = append(events, ev)
		return nil
	}, opts...)
	if err != nil {
		t.Fatalf("ParseReader() error = %v", err)
	}
	return events
}

func TestParseReader(t *testing.T) {
	events := collectEvents(t, sampleLog)

	// The unmatched plugin line is dropped by the default parser.
	wantTypes := []EventType{
		EventLogStarted,
		EventMapLoading,
		EventMapStarted,
		EventPlayerConnected,
		EventPlayerJoinedTeam,
		EventChat,
		EventPlayerDisconnected,
		EventLogClosed,
	}
	if len(events) != len(wantTypes) {
		t.Fatalf("got %d events, want %d", len(events), len(wantTypes))
	}
	for i, want := range wantTypes {
		if events[i].Type != want {
			t.Errorf("events[%d].Type = %q, want %q", i, events[i].Type, want)
		}
	}
}

func TestParseReader_IncludeTypes(t *testing.T) {
	events := collectEvents(t, sampleLog, WithIncludeTypes(EventChat))

	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Type != EventChat || events[0].Message != "gg" {
		t.Errorf("event = %+v", events[0])
	}
}

func TestParseReader_ExcludeTypes(t *testing.T) {
	events := collectEvents(t, sampleLog,
		WithIncludeTypes(EventChat, EventPlayerConnected),
		WithExcludeTypes(EventChat), // exclude wins
	)

	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Type != EventPlayerConnected {
		t.Errorf("Type = %q, want %q", events[0].Type, EventPlayerConnected)
	}
}

func TestParseReader_IncludeRawLine(t *testing.T) {
	events := collectEvents(t, sampleLog, WithIncludeRawLine(true))

	if len(events) == 0 {
		t.Fatal("no events")
	}
	if events[0].RawLine == "" {
		t.Error("RawLine empty, want original line")
	}
	if !strings.HasPrefix(events[0].RawLine, "L 02/09/2024") {
		t.Errorf("RawLine = %q", events[0].RawLine)
	}
}

func TestParseReader_CallbackErrorStops(t *testing.T) {
	stop := errors.New("stop")
	count := 0
	err := ParseReader(context.Background(), strings.NewReader(sampleLog), func(ev event.Event) error {
		count++
		return stop
	})
	if !errors.Is(err, stop) {
		t.Fatalf("ParseReader() error = %v, want %v", err, stop)
	}
	if count != 1 {
		t.Errorf("callback called %d times, want 1", count)
	}
}

func TestParseReader_SkipsUnframedLines(t *testing.T) {
	// Saved console logs interleave raw console output with framed log
	// lines. The unframed line must be skipped, not abort the batch.
	input := `L 02/09/2024 - 08:00:50: Loading map "koth_highpass"
Dropped Alice from server
L 02/09/2024 - 08:01:13: "Alice<6><[U:1:1324124512]><Blue>" say "gg"
`
	var lineErrs []error
	var events []event.Event
	err := ParseReader(context.Background(), strings.NewReader(input), func(ev event.Event) error {
		events = append(events, ev)
		return nil
	}, WithErrorHandler(func(err error) {
		lineErrs = append(lineErrs, err)
	}))
	if err != nil {
		t.Fatalf("ParseReader() error = %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Type != EventMapLoading || events[1].Type != EventChat {
		t.Errorf("event types = %q, %q", events[0].Type, events[1].Type)
	}
	if len(lineErrs) != 1 || !errors.Is(lineErrs[0], ErrNoLineMarker) {
		t.Errorf("line errors = %v, want one ErrNoLineMarker", lineErrs)
	}
	var parseErr *ParseError
	if !errors.As(lineErrs[0], &parseErr) || parseErr.Line != "Dropped Alice from server" {
		t.Errorf("line error = %v, want ParseError carrying the skipped line", lineErrs[0])
	}
}

func TestParseReader_SecretMismatch(t *testing.T) {
	input := "\xff\xff\xff\xffSnya" + `L 02/09/2024 - 08:00:50: Log file closed` + "\n"

	var lineErrs []error
	err := ParseReader(context.Background(), strings.NewReader(input), func(ev event.Event) error {
		t.Errorf("unexpected event %+v", ev)
		return nil
	}, WithExpectedSecret("hunter2"), WithErrorHandler(func(err error) {
		lineErrs = append(lineErrs, err)
	}))

	if err != nil {
		t.Fatalf("ParseReader() error = %v", err)
	}
	if len(lineErrs) != 1 || !errors.Is(lineErrs[0], ErrSecretMismatch) {
		t.Fatalf("line errors = %v, want one ErrSecretMismatch", lineErrs)
	}
}

func TestParseReader_SecretMatch(t *testing.T) {
	input := "\xff\xff\xff\xffSnya" + `L 02/09/2024 - 08:00:50: Log file closed` + "\n"

	events := collectEvents(t, input, WithExpectedSecret("nya"))
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Secret != "nya" {
		t.Errorf("Secret = %q, want %q", events[0].Secret, "nya")
	}
}

func TestParseReader_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := ParseReader(ctx, strings.NewReader(sampleLog), func(ev event.Event) error {
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ParseReader() error = %v, want context.Canceled", err)
	}
}

func TestCompiledFilter_NilAllowsAll(t *testing.T) {
	var f *compiledFilter
	if !f.Allows(EventChat) {
		t.Error("nil filter rejected an event")
	}
}

func TestOptionValidation(t *testing.T) {
	if _, err := NewListener(":27500", WithBufferSize(-1)); err == nil {
		t.Error("NewListener accepted a negative buffer size")
	}
	if _, err := NewListener(":27500", WithPollInterval(0)); err == nil {
		t.Error("NewListener accepted a zero poll interval")
	}
}
