package parser

import (
	"net/netip"
	"strconv"
	"strings"

	"github.com/srcdslog/srcdslog-go/pkg/srcdslog/event"
)

// Primitive sub-parsers shared by the shape parsers. Each consumes a prefix
// of its input and returns the remaining input; ok=false means the input is
// returned unchanged.

// literal consumes an exact case-sensitive prefix.
func literal(s, lit string) (string, bool) {
	if strings.HasPrefix(s, lit) {
		return s[len(lit):], true
	}
	return s, false
}

// literalFold consumes a prefix ignoring ASCII case, for the phrases the
// log format is not consistent about capitalizing.
func literalFold(s, lit string) (string, bool) {
	if len(s) >= len(lit) && strings.EqualFold(s[:len(lit)], lit) {
		return s[len(lit):], true
	}
	return s, false
}

// spaces consumes a run of at least one space or tab.
func spaces(s string) (string, bool) {
	t := strings.TrimLeft(s, " \t")
	if len(t) == len(s) {
		return s, false
	}
	return t, true
}

// quoted consumes a double-quoted string with non-empty content. The field
// ends at the first following double-quote; embedded escaped quotes are not
// supported.
func quoted(s string) (string, string, bool) {
	if len(s) < 2 || s[0] != '"' {
		return "", s, false
	}
	end := strings.IndexByte(s[1:], '"')
	if end < 1 {
		return "", s, false
	}
	return s[1 : 1+end], s[2+end:], true
}

// digits consumes a leading run of decimal digits.
func digits(s string) (string, string, bool) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return "", s, false
	}
	return s[:i], s[i:], true
}

// player consumes a leading player identity: name, session uid, steam id
// and team.
func player(s string) (event.Player, string, bool) {
	m := playerPattern.FindStringSubmatch(s)
	if m == nil {
		return event.Player{}, s, false
	}
	uid, err := strconv.ParseUint(m[2], 10, 32)
	if err != nil {
		return event.Player{}, s, false
	}
	p := event.Player{
		Name:    m[1],
		UID:     uint32(uid),
		SteamID: m[3],
		Team:    m[4],
	}
	return p, s[len(m[0]):], true
}

// ipv4 consumes a dotted-quad address. Octets must fit in a byte.
func ipv4(s string) (netip.Addr, string, bool) {
	var octets [4]byte
	rest := s
	for i := range octets {
		if i > 0 {
			var ok bool
			if rest, ok = literal(rest, "."); !ok {
				return netip.Addr{}, s, false
			}
		}
		run, r, ok := digits(rest)
		if !ok {
			return netip.Addr{}, s, false
		}
		n, err := strconv.ParseUint(run, 10, 8)
		if err != nil {
			return netip.Addr{}, s, false
		}
		octets[i] = byte(n)
		rest = r
	}
	return netip.AddrFrom4(octets), rest, true
}

// addrPort consumes a dotted-quad address optionally followed by ":" and a
// decimal port. A port value outside the 16-bit range fails the parse.
// Port is zero when absent.
func addrPort(s string) (netip.Addr, uint16, string, bool) {
	addr, rest, ok := ipv4(s)
	if !ok {
		return netip.Addr{}, 0, s, false
	}
	r, ok := literal(rest, ":")
	if !ok {
		return addr, 0, rest, true
	}
	run, r, ok := digits(r)
	if !ok {
		return netip.Addr{}, 0, s, false
	}
	n, err := strconv.ParseUint(run, 10, 16)
	if err != nil {
		return netip.Addr{}, 0, s, false
	}
	return addr, uint16(n), r, true
}

// kvPair consumes a parenthesized key/value group: `(key "value")` or
// `(key value)`. Quoted values are returned without their quotes. Nothing
// may trail the value inside the parentheses.
func kvPair(s string) (key, value, rest string, ok bool) {
	rest, ok = literal(s, "(")
	if !ok {
		return "", "", s, false
	}
	sp := strings.IndexByte(rest, ' ')
	if sp <= 0 {
		return "", "", s, false
	}
	key, rest = rest[:sp], rest[sp+1:]
	if v, r, ok := quoted(rest); ok {
		value, rest = v, r
	} else {
		end := strings.IndexByte(rest, ')')
		if end < 0 {
			return "", "", s, false
		}
		value, rest = rest[:end], rest[end:]
	}
	rest, ok = literal(rest, ")")
	if !ok {
		return "", "", s, false
	}
	return key, value, rest, true
}
