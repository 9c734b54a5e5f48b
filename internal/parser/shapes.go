package parser

import "github.com/srcdslog/srcdslog-go/pkg/srcdslog/event"

// Shape parsers. Each matches one event's literal phrasing and field layout
// against a message body and returns nil if the body has a different shape.
// Classification is all-or-nothing: a partial match never produces an event.

// Log file started (file "logs/L0209000.log") (game "tf") (version "8921872")
func parseLogStarted(s string) *event.Event {
	s, ok := literalFold(s, "log file started ")
	if !ok {
		return nil
	}
	_, file, s, ok := kvPair(s)
	if !ok {
		return nil
	}
	s, ok = spaces(s)
	if !ok {
		return nil
	}
	_, game, s, ok := kvPair(s)
	if !ok {
		return nil
	}
	s, ok = spaces(s)
	if !ok {
		return nil
	}
	_, version, _, ok := kvPair(s)
	if !ok {
		return nil
	}
	return &event.Event{Type: event.LogStarted, File: file, Game: game, Version: version}
}

// Log file closed
func parseLogClosed(s string) *event.Event {
	if _, ok := literalFold(s, "log file closed"); !ok {
		return nil
	}
	return &event.Event{Type: event.LogClosed}
}

// Server cvars start
func parseCvarsStart(s string) *event.Event {
	if _, ok := literalFold(s, "server cvars start"); !ok {
		return nil
	}
	return &event.Event{Type: event.CvarsStart}
}

// Server cvars end
func parseCvarsEnd(s string) *event.Event {
	if _, ok := literalFold(s, "server cvars end"); !ok {
		return nil
	}
	return &event.Event{Type: event.CvarsEnd}
}

// server_cvar: "mp_autoteambalance" "1" (change notification), or
// "mp_falldamage" = "0" (dump body between cvars start/end).
func parseServerCvar(s string) *event.Event {
	if r, ok := literalFold(s, "server_cvar: "); ok {
		name, r, ok := quoted(r)
		if !ok {
			return nil
		}
		r, ok = spaces(r)
		if !ok {
			return nil
		}
		value, _, ok := quoted(r)
		if !ok {
			return nil
		}
		return &event.Event{Type: event.ServerCvar, Cvar: name, Value: value}
	}

	name, r, ok := quoted(s)
	if !ok {
		return nil
	}
	r, ok = literal(r, " = ")
	if !ok {
		return nil
	}
	value, _, ok := quoted(r)
	if !ok {
		return nil
	}
	return &event.Event{Type: event.ServerCvar, Cvar: name, Value: value}
}

// Loading map "cp_dustbowl"
func parseMapLoading(s string) *event.Event {
	s, ok := literal(s, "Loading map ")
	if !ok {
		return nil
	}
	name, _, ok := quoted(s)
	if !ok {
		return nil
	}
	return &event.Event{Type: event.MapLoading, Map: name}
}

// Started map "koth_highpass" (CRC "505b4fbf2a1661d2fb1b96f444ef268c")
func parseMapStarted(s string) *event.Event {
	s, ok := literalFold(s, "started map ")
	if !ok {
		return nil
	}
	name, s, ok := quoted(s)
	if !ok {
		return nil
	}
	if t, ok := spaces(s); ok {
		s = t
	}
	_, crc, _, ok := kvPair(s)
	if !ok {
		return nil
	}
	return &event.Event{Type: event.MapStarted, Map: name, CRC: crc}
}

// Rcon from "192.168.0.1:27015": command "status"
func parseRcon(s string) *event.Event {
	s, ok := literalFold(s, `rcon from "`)
	if !ok {
		return nil
	}
	addr, port, s, ok := addrPort(s)
	if !ok {
		return nil
	}
	s, ok = literal(s, `"`)
	if !ok {
		return nil
	}
	s, ok = literal(s, ": command ")
	if !ok {
		return nil
	}
	command, _, ok := quoted(s)
	if !ok {
		return nil
	}
	return &event.Event{Type: event.Rcon, Address: addr, Port: port, Message: command}
}

// "Alice<6><[U:1:1324124512]><Red>" say "hello" (or say_team)
func parseChat(s string) *event.Event {
	p, s, ok := player(s)
	if !ok {
		return nil
	}
	teamOnly := false
	if r, ok := literal(s, " say "); ok {
		s = r
	} else if r, ok := literal(s, " say_team "); ok {
		s = r
		teamOnly = true
	} else {
		return nil
	}
	msg, _, ok := quoted(s)
	if !ok {
		return nil
	}
	return &event.Event{Type: event.Chat, Player: &p, Message: msg, TeamOnly: teamOnly}
}

// "Alice<6><[U:1:1324124512]><>" connected, address "192.168.0.1:27015"
func parseConnected(s string) *event.Event {
	p, s, ok := player(s)
	if !ok {
		return nil
	}
	s, ok = literal(s, ` connected, address "`)
	if !ok {
		return nil
	}
	addr, port, s, ok := addrPort(s)
	if !ok {
		return nil
	}
	if _, ok = literal(s, `"`); !ok {
		return nil
	}
	return &event.Event{Type: event.PlayerConnected, Player: &p, Address: addr, Port: port}
}

// "Alice<6><[U:1:1324124512]><Red>" disconnected (reason "Client left game")
func parseDisconnected(s string) *event.Event {
	p, s, ok := player(s)
	if !ok {
		return nil
	}
	s, ok = literal(s, " disconnected (reason ")
	if !ok {
		return nil
	}
	reason, s, ok := quoted(s)
	if !ok {
		return nil
	}
	if _, ok = literal(s, ")"); !ok {
		return nil
	}
	return &event.Event{Type: event.PlayerDisconnected, Player: &p, Reason: reason}
}

// "Alice<6><...><Red>" triggered "revenge" against "Bob<7><...><Blue>"
func parsePlayerAction(s string) *event.Event {
	from, s, ok := player(s)
	if !ok {
		return nil
	}
	s, ok = literalFold(s, " triggered ")
	if !ok {
		return nil
	}
	action, s, ok := quoted(s)
	if !ok {
		return nil
	}
	s, ok = literalFold(s, " against ")
	if !ok {
		return nil
	}
	target, _, ok := player(s)
	if !ok {
		return nil
	}
	return &event.Event{Type: event.PlayerAction, Player: &from, Action: action, Target: &target}
}

// "Alice<6><[U:1:1324124512]><>" joined team "Red"
func parseJoinedTeam(s string) *event.Event {
	p, s, ok := player(s)
	if !ok {
		return nil
	}
	s, ok = literal(s, " joined team ")
	if !ok {
		return nil
	}
	team, _, ok := quoted(s)
	if !ok {
		return nil
	}
	return &event.Event{Type: event.PlayerJoinedTeam, Player: &p, Team: team}
}
