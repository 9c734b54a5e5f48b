// Package event defines the core types produced by Source server log decoding.
//
// This package is separated from the main srcdslog package to avoid import
// cycles between pkg/srcdslog and internal/parser.
package event

import (
	"net/netip"
	"sort"
	"strings"
	"time"
)

// Type represents the type of Source server log event.
type Type string

const (
	// LogStarted indicates the server opened a new log file.
	LogStarted Type = "log_started"

	// LogClosed indicates the server closed the current log file.
	LogClosed Type = "log_closed"

	// CvarsStart marks the beginning of a server cvar dump.
	CvarsStart Type = "cvars_start"

	// CvarsEnd marks the end of a server cvar dump.
	CvarsEnd Type = "cvars_end"

	// ServerCvar carries a single cvar name/value pair, either from a
	// cvar dump body or a server_cvar change notification.
	ServerCvar Type = "server_cvar"

	// MapLoading indicates the server started loading a map.
	MapLoading Type = "map_loading"

	// MapStarted indicates a map finished loading, with its content CRC.
	MapStarted Type = "map_started"

	// Rcon indicates a remote console command was received.
	Rcon Type = "rcon"

	// Chat indicates a player chat message (all-chat or team-chat).
	Chat Type = "chat"

	// PlayerConnected indicates a player connected, with their address.
	PlayerConnected Type = "player_connected"

	// PlayerDisconnected indicates a player disconnected, with the reason.
	PlayerDisconnected Type = "player_disconnected"

	// PlayerJoinedTeam indicates a player switched to a team.
	PlayerJoinedTeam Type = "player_joined_team"

	// PlayerAction indicates one player triggered an action against another
	// (e.g. "domination", "revenge").
	PlayerAction Type = "player_action"

	// Unrecognized indicates the message body matched no known shape.
	// It is a valid result, not an error; it carries no fields.
	Unrecognized Type = "unrecognized"
)

// allTypes is the canonical list of all event types.
// Add new event types here when extending the parser.
var allTypes = []Type{
	LogStarted, LogClosed,
	CvarsStart, CvarsEnd, ServerCvar,
	MapLoading, MapStarted,
	Rcon, Chat,
	PlayerConnected, PlayerDisconnected, PlayerJoinedTeam, PlayerAction,
	Unrecognized,
}

// TypeNames returns a sorted list of all valid event type names.
// This is the single source of truth for event type enumeration.
func TypeNames() []string {
	names := make([]string, len(allTypes))
	for i, t := range allTypes {
		names[i] = string(t)
	}
	sort.Strings(names)
	return names
}

// typeByName maps lowercase string names to Type for efficient lookup.
var typeByName = func() map[string]Type {
	m := make(map[string]Type, len(allTypes))
	for _, t := range allTypes {
		m[string(t)] = t
	}
	return m
}()

// ParseType converts a string to Type if valid.
// It is case-insensitive and trims leading/trailing whitespace.
// Returns the type and true if found, zero value and false otherwise.
func ParseType(name string) (Type, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	t, ok := typeByName[name]
	return t, ok
}

// Player identifies a player as embedded in player-related log lines:
// "Name<uid><[U:1:xxxx]><Team>".
type Player struct {
	// Name is the player's display name. It may contain any character
	// except the "<" that terminates it.
	Name string `json:"name"`

	// UID is the per-session numeric id assigned by the server.
	UID uint32 `json:"uid"`

	// SteamID is the persistent account id in bracketed [U:X:YYYY] form.
	// It is carried verbatim and not decomposed further.
	SteamID string `json:"steam_id"`

	// Team is the player's current team name. Empty for unassigned players.
	Team string `json:"team,omitempty"`
}

// Event represents a classified Source server log line.
//
// Type discriminates which of the optional fields are meaningful; all other
// fields are zero. Events are plain values with no identity beyond their
// fields.
type Event struct {
	// Type is the event type.
	Type Type `json:"type"`

	// Timestamp is when the event occurred (server-local time from the log).
	Timestamp time.Time `json:"timestamp"`

	// Player is the acting player (chat, connect, disconnect, team join,
	// player action).
	Player *Player `json:"player,omitempty"`

	// Target is the other player in a player_action event.
	Target *Player `json:"target,omitempty"`

	// Address is the source IPv4 address (rcon, player_connected).
	Address netip.Addr `json:"address,omitzero"`

	// Port is the source port (rcon, player_connected). Zero when the
	// logged address carried no port.
	Port uint16 `json:"port,omitempty"`

	// Message is the chat text (chat) or command text (rcon).
	Message string `json:"message,omitempty"`

	// TeamOnly reports whether a chat message was sent with say_team.
	TeamOnly bool `json:"team_only,omitempty"`

	// File, Game and Version describe a log_started event.
	File    string `json:"file,omitempty"`
	Game    string `json:"game,omitempty"`
	Version string `json:"version,omitempty"`

	// Map is the map name (map_loading, map_started).
	Map string `json:"map,omitempty"`

	// CRC is the map content checksum (map_started), carried as text.
	CRC string `json:"crc,omitempty"`

	// Cvar and Value carry a server_cvar pair.
	Cvar  string `json:"cvar,omitempty"`
	Value string `json:"value,omitempty"`

	// Reason is the disconnect reason (player_disconnected).
	Reason string `json:"reason,omitempty"`

	// Team is the joined team name (player_joined_team).
	Team string `json:"team,omitempty"`

	// Action is the action name (player_action), e.g. "revenge".
	Action string `json:"action,omitempty"`

	// Secret is the shared log secret the line carried, if any.
	Secret string `json:"secret,omitempty"`

	// RawLine is the original log line (only included if requested).
	RawLine string `json:"raw_line,omitempty"`

	// Data holds named capture groups from custom pattern parsers.
	Data map[string]string `json:"data,omitempty"`
}

// IsUnrecognized reports whether the event is the Unrecognized fallback.
func (e *Event) IsUnrecognized() bool {
	return e.Type == Unrecognized
}
