package parser

import "regexp"

// Timestamp prefix on every line: "02/09/2024 - 08:00:50: ".
// All fields are fixed-width, 24-hour clock, no timezone.
const timestampLayout = "01/02/2006 - 15:04:05"

// playerPattern matches the player identity quadruple embedded in every
// player-related line: "Name<uid><[U:1:1324124512]><Team>".
// Anchored so a match consumes exactly the leading identity and cannot
// swallow characters belonging to a later shape's text.
// Captures: (1) name, (2) session uid, (3) steam id, (4) team (may be empty).
var playerPattern = regexp.MustCompile(`^"(.*?)<(\d+)><(\[U:\d+:\d+\])><(\w*)>"`)
