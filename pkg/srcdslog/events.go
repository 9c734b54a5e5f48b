package srcdslog

import "github.com/srcdslog/srcdslog-go/pkg/srcdslog/event"

// Event, EventType, Player and Line are re-exported from the event package
// so most callers only need to import srcdslog.
type (
	Event     = event.Event
	EventType = event.Type
	Player    = event.Player
	Line      = event.Line
)

// Event type constants, re-exported from the event package.
const (
	EventLogStarted         = event.LogStarted
	EventLogClosed          = event.LogClosed
	EventCvarsStart         = event.CvarsStart
	EventCvarsEnd           = event.CvarsEnd
	EventServerCvar         = event.ServerCvar
	EventMapLoading         = event.MapLoading
	EventMapStarted         = event.MapStarted
	EventRcon               = event.Rcon
	EventChat               = event.Chat
	EventPlayerConnected    = event.PlayerConnected
	EventPlayerDisconnected = event.PlayerDisconnected
	EventPlayerJoinedTeam   = event.PlayerJoinedTeam
	EventPlayerAction       = event.PlayerAction
	EventUnrecognized       = event.Unrecognized
)

// EventTypeNames returns a sorted list of all valid event type names.
func EventTypeNames() []string {
	return event.TypeNames()
}

// ParseEventType converts a string to an EventType if valid.
func ParseEventType(name string) (EventType, bool) {
	return event.ParseType(name)
}
