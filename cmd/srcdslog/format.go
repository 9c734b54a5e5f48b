package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/srcdslog/srcdslog-go/pkg/srcdslog"
)

// ValidFormats lists all valid output formats.
var ValidFormats = map[string]bool{
	"jsonl":  true,
	"pretty": true,
}

// OutputEvent writes an event in the specified format to the writer.
func OutputEvent(format string, event srcdslog.Event, out io.Writer) error {
	switch format {
	case "jsonl":
		return OutputJSON(event, out)
	case "pretty":
		return OutputPretty(event, out)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// OutputJSON writes an event as JSON Lines format.
func OutputJSON(event srcdslog.Event, out io.Writer) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

// OutputPretty writes an event in human-readable format.
func OutputPretty(event srcdslog.Event, out io.Writer) error {
	ts := event.Timestamp.Format("15:04:05")

	var err error
	switch event.Type {
	case srcdslog.EventChat:
		marker := "say"
		if event.TeamOnly {
			marker = "say_team"
		}
		_, err = fmt.Fprintf(out, "[%s] %s (%s): %s\n", ts, playerName(event.Player), marker, event.Message)
	case srcdslog.EventPlayerConnected:
		_, err = fmt.Fprintf(out, "[%s] + %s connected from %s:%d\n", ts, playerName(event.Player), event.Address, event.Port)
	case srcdslog.EventPlayerDisconnected:
		_, err = fmt.Fprintf(out, "[%s] - %s disconnected (%s)\n", ts, playerName(event.Player), event.Reason)
	case srcdslog.EventPlayerJoinedTeam:
		_, err = fmt.Fprintf(out, "[%s] > %s joined team %s\n", ts, playerName(event.Player), event.Team)
	case srcdslog.EventPlayerAction:
		_, err = fmt.Fprintf(out, "[%s] ! %s triggered %q against %s\n", ts, playerName(event.Player), event.Action, playerName(event.Target))
	case srcdslog.EventMapLoading:
		_, err = fmt.Fprintf(out, "[%s] > Loading map: %s\n", ts, event.Map)
	case srcdslog.EventMapStarted:
		_, err = fmt.Fprintf(out, "[%s] > Started map: %s (CRC %s)\n", ts, event.Map, event.CRC)
	case srcdslog.EventRcon:
		_, err = fmt.Fprintf(out, "[%s] # rcon from %s:%d: %s\n", ts, event.Address, event.Port, event.Message)
	case srcdslog.EventServerCvar:
		_, err = fmt.Fprintf(out, "[%s] $ %s = %s\n", ts, event.Cvar, event.Value)
	case srcdslog.EventLogStarted:
		_, err = fmt.Fprintf(out, "[%s] > Log started: %s\n", ts, event.File)
	case srcdslog.EventLogClosed:
		_, err = fmt.Fprintf(out, "[%s] > Log closed\n", ts)
	case srcdslog.EventCvarsStart:
		_, err = fmt.Fprintf(out, "[%s] $ cvar dump start\n", ts)
	case srcdslog.EventCvarsEnd:
		_, err = fmt.Fprintf(out, "[%s] $ cvar dump end\n", ts)
	default:
		// Custom events with Data field
		if len(event.Data) > 0 {
			_, err = fmt.Fprintf(out, "[%s] * %s: %s\n", ts, event.Type, formatData(event.Data))
		} else {
			_, err = fmt.Fprintf(out, "[%s] * %s\n", ts, event.Type)
		}
	}

	return err
}

func playerName(p *srcdslog.Player) string {
	if p == nil {
		return "?"
	}
	return p.Name
}

// formatData formats a map as sorted key=value pairs.
// Values are quoted if they contain spaces, equals signs, quotes, or control characters.
func formatData(data map[string]string) string {
	if len(data) == 0 {
		return ""
	}

	// Sort keys for deterministic output
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(data))
	for _, k := range keys {
		v := data[k]
		parts = append(parts, fmt.Sprintf("%s=%s", quoteIfNeeded(k), quoteIfNeeded(v)))
	}
	return strings.Join(parts, " ")
}

// quoteIfNeeded quotes a value if it contains special characters or control characters.
// Returns the value unchanged if no quoting is needed.
func quoteIfNeeded(v string) string {
	if v == "" {
		return `""`
	}

	needsQuote := false
	for _, c := range v {
		// Quote if: space, equals, quote, backslash, or any control character (< 0x20 or DEL 0x7F)
		if c == ' ' || c == '=' || c == '"' || c == '\\' || c < 0x20 || c == 0x7F {
			needsQuote = true
			break
		}
	}
	if !needsQuote {
		return v
	}

	var sb strings.Builder
	sb.WriteByte('"')
	for _, c := range v {
		switch {
		case c == '\\':
			sb.WriteString(`\\`)
		case c == '"':
			sb.WriteString(`\"`)
		case c == '\n':
			sb.WriteString(`\n`)
		case c == '\r':
			sb.WriteString(`\r`)
		case c == '\t':
			sb.WriteString(`\t`)
		case c < 0x20 || c == 0x7F:
			// Other control characters (including DEL): escape as \xNN
			sb.WriteString(fmt.Sprintf(`\x%02x`, c))
		default:
			sb.WriteRune(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
