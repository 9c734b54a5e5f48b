package parser

import (
	"net/netip"
	"reflect"
	"testing"

	"github.com/srcdslog/srcdslog-go/pkg/srcdslog/event"
)

var (
	alice = event.Player{Name: "Alice", UID: 6, SteamID: "[U:1:1324124512]"}
	bob   = event.Player{Name: "Bob", UID: 7, SteamID: "[U:1:987654]", Team: "Blue"}
)

func TestClassify(t *testing.T) {
	redAlice := alice
	redAlice.Team = "Red"

	tests := []struct {
		name string
		body string
		want event.Event
	}{
		{
			name: "log started",
			body: `Log file started (file "logs/L0209000.log") (game "tf") (version "8921872")`,
			want: event.Event{Type: event.LogStarted, File: "logs/L0209000.log", Game: "tf", Version: "8921872"},
		},
		{
			name: "log started with unquoted values",
			body: `Log file started (file logs/L0209000.log) (game tf) (version 8921872)`,
			want: event.Event{Type: event.LogStarted, File: "logs/L0209000.log", Game: "tf", Version: "8921872"},
		},
		{
			name: "log closed",
			body: "Log file closed",
			want: event.Event{Type: event.LogClosed},
		},
		{
			name: "cvars start",
			body: "Server cvars start",
			want: event.Event{Type: event.CvarsStart},
		},
		{
			name: "cvars end",
			body: "Server cvars end",
			want: event.Event{Type: event.CvarsEnd},
		},
		{
			name: "server cvar change notification",
			body: `server_cvar: "mp_autoteambalance" "1"`,
			want: event.Event{Type: event.ServerCvar, Cvar: "mp_autoteambalance", Value: "1"},
		},
		{
			name: "server cvar dump body",
			body: `"mp_falldamage" = "0"`,
			want: event.Event{Type: event.ServerCvar, Cvar: "mp_falldamage", Value: "0"},
		},
		{
			name: "map loading",
			body: `Loading map "cp_dustbowl"`,
			want: event.Event{Type: event.MapLoading, Map: "cp_dustbowl"},
		},
		{
			name: "map started",
			body: `Started map "koth_highpass" (CRC "505b4fbf2a1661d2fb1b96f444ef268c")`,
			want: event.Event{Type: event.MapStarted, Map: "koth_highpass", CRC: "505b4fbf2a1661d2fb1b96f444ef268c"},
		},
		{
			name: "rcon",
			body: `Rcon from "192.168.0.1:27015": command "status"`,
			want: event.Event{Type: event.Rcon, Address: netip.AddrFrom4([4]byte{192, 168, 0, 1}), Port: 27015, Message: "status"},
		},
		{
			name: "chat",
			body: `"Alice<6><[U:1:1324124512]><Red>" say "gg"`,
			want: event.Event{Type: event.Chat, Player: &redAlice, Message: "gg"},
		},
		{
			name: "team chat",
			body: `"Alice<6><[U:1:1324124512]><Red>" say_team "push left"`,
			want: event.Event{Type: event.Chat, Player: &redAlice, Message: "push left", TeamOnly: true},
		},
		{
			name: "connected with port",
			body: `"Alice<6><[U:1:1324124512]><>" connected, address "192.168.0.1:27015"`,
			want: event.Event{Type: event.PlayerConnected, Player: &alice, Address: netip.AddrFrom4([4]byte{192, 168, 0, 1}), Port: 27015},
		},
		{
			name: "connected without port",
			body: `"Alice<6><[U:1:1324124512]><>" connected, address "192.168.0.1"`,
			want: event.Event{Type: event.PlayerConnected, Player: &alice, Address: netip.AddrFrom4([4]byte{192, 168, 0, 1})},
		},
		{
			name: "disconnected",
			body: `"Alice<6><[U:1:1324124512]><Red>" disconnected (reason "Client left game")`,
			want: event.Event{Type: event.PlayerDisconnected, Player: &redAlice, Reason: "Client left game"},
		},
		{
			name: "joined team",
			body: `"Alice<6><[U:1:1324124512]><>" joined team "Red"`,
			want: event.Event{Type: event.PlayerJoinedTeam, Player: &alice, Team: "Red"},
		},
		{
			name: "player action",
			body: `"Alice<6><[U:1:1324124512]><Red>" triggered "revenge" against "Bob<7><[U:1:987654]><Blue>"`,
			want: event.Event{Type: event.PlayerAction, Player: &redAlice, Action: "revenge", Target: &bob},
		},
		{
			name: "player name with spaces and punctuation",
			body: `"[TAG] some player<42><[U:1:1]><Blue>" joined team "Red"`,
			want: event.Event{
				Type:   event.PlayerJoinedTeam,
				Player: &event.Player{Name: "[TAG] some player", UID: 42, SteamID: "[U:1:1]", Team: "Blue"},
				Team:   "Red",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.body)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Classify() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestClassify_Unrecognized(t *testing.T) {
	bodies := []string{
		"",
		"some custom mod line",
		`"sv_accelerate" 10`,                             // dump form without " = "
		`"Alice<6><[U:1:1324124512]><>" dominated "Bob"`, // no known continuation
		`"Alice<6><[U:1:1324124512]><>" say ""`,          // empty quoted text
		`Rcon from "not.an.ip:27015": command "status"`,
		`"Alice<6><[U:1:1324124512]><>" connected, address "192.168.0.1:99999"`, // port overflows uint16
		`"Alice<6><[U:1:1324124512]><>" connected, address "300.0.0.1:27015"`,   // octet overflows a byte
		`Started map "koth_highpass"`,                                           // missing CRC group
	}

	for _, body := range bodies {
		got := Classify(body)
		if got.Type != event.Unrecognized {
			t.Errorf("Classify(%q).Type = %q, want %q", body, got.Type, event.Unrecognized)
		}
	}
}

// Precedence is load-bearing: a body matching both a specific player shape
// and the generic "joined team" prefix must classify as the specific shape,
// and a greedy identity match must not consume a later shape's text.
func TestClassify_Precedence(t *testing.T) {
	body := `"Alice<6><[U:1:1324124512]><Red>" triggered "revenge" against "Bob<7><[U:1:987654]><Blue>"`
	got := Classify(body)
	if got.Type != event.PlayerAction {
		t.Fatalf("Classify().Type = %q, want %q", got.Type, event.PlayerAction)
	}
	if got.Player == nil || got.Player.Name != "Alice" {
		t.Errorf("Player = %+v, want Alice", got.Player)
	}
	if got.Target == nil || got.Target.Name != "Bob" {
		t.Errorf("Target = %+v, want Bob", got.Target)
	}
}

func TestClassify_Parallel(t *testing.T) {
	// Classify holds no shared mutable state; concurrent calls need no
	// coordination.
	bodies := []string{
		"Log file closed",
		`Loading map "cp_dustbowl"`,
		`"Alice<6><[U:1:1324124512]><Red>" say "gg"`,
	}
	for _, body := range bodies {
		body := body
		t.Run(body, func(t *testing.T) {
			t.Parallel()
			if got := Classify(body); got.Type == event.Unrecognized {
				t.Errorf("Classify(%q) = Unrecognized", body)
			}
		})
	}
}

func FuzzClassify(f *testing.F) {
	f.Add(`"Alice<6><[U:1:1324124512]><>" connected, address "192.168.0.1:27015"`)
	f.Add(`Started map "koth_highpass" (CRC "505b4fbf2a1661d2fb1b96f444ef268c")`)
	f.Add(`server_cvar: "mp_autoteambalance" "1"`)
	f.Add("")
	f.Add(`"<0><[U:0:0]><>"`)

	f.Fuzz(func(t *testing.T, body string) {
		// Total function: must not panic, must always return a valid event.
		ev := Classify(body)
		if _, ok := event.ParseType(string(ev.Type)); !ok {
			t.Errorf("Classify(%q) returned unknown type %q", body, ev.Type)
		}
	})
}
