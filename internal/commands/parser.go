package commands

import "strings"

// Parsed is the normalized form of a raw command line.
type Parsed struct {
	Verb string
	Args []string
	Raw  string
}

// aliases maps first tokens to canonical verbs. Unknown tokens pass through
// untranslated so the dispatcher can report them.
var aliases = map[string]string{
	"n": "move", "north": "move",
	"s": "move", "south": "move",
	"e": "move", "east": "move",
	"w": "move", "west": "move",
	"say": "say",
}

// directions is the set of tokens that short-circuit to a move regardless of
// the alias table: typing "n" is the same as typing "move n".
var directions = map[string]bool{
	"n": true, "north": true,
	"s": true, "south": true,
	"e": true, "east": true,
	"w": true, "west": true,
}

// Parse splits a raw line into a verb and arguments. It is a pure function
// and always succeeds; empty input parses to an empty verb.
func Parse(raw string) Parsed {
	parts := strings.Fields(raw)
	if len(parts) == 0 {
		return Parsed{Verb: "", Args: []string{}, Raw: raw}
	}

	base := strings.ToLower(parts[0])
	if directions[base] {
		return Parsed{Verb: "move", Args: []string{base}, Raw: raw}
	}

	verb := base
	if alias, ok := aliases[base]; ok {
		verb = alias
	}

	return Parsed{Verb: verb, Args: parts[1:], Raw: raw}
}
