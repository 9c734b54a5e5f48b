package parser

import "github.com/srcdslog/srcdslog-go/pkg/srcdslog/event"

// shapeParsers lists the shape parsers in fixed precedence order; the first
// success wins. The order is load-bearing: every player shape begins with
// the same identity pattern, so the distinguishing continuation phrases
// (" say ", " connected, address ", " disconnected (reason ", " triggered ")
// are tried before the generic "joined team" shape.
var shapeParsers = []func(string) *event.Event{
	parseLogStarted,
	parseLogClosed,
	parseCvarsStart,
	parseCvarsEnd,
	parseServerCvar,
	parseMapLoading,
	parseMapStarted,
	parseRcon,
	parseChat,
	parseConnected,
	parseDisconnected,
	parsePlayerAction,
	parseJoinedTeam,
}

// Classify parses a message body into an Event. It is total: a body that
// matches no known shape yields an Unrecognized event, never an error, so
// callers branch on the event type rather than on error presence.
func Classify(msg string) event.Event {
	for _, parse := range shapeParsers {
		if ev := parse(msg); ev != nil {
			return *ev
		}
	}
	return event.Event{Type: event.Unrecognized}
}
