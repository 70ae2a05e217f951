package commands

import (
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestParse(t *testing.T) {
	tests := map[string]struct {
		raw     string
		expVerb string
		expArgs []string
	}{
		"empty":              {raw: "", expVerb: "", expArgs: []string{}},
		"whitespace only":    {raw: "   \t ", expVerb: "", expArgs: []string{}},
		"bare direction":     {raw: "n", expVerb: "move", expArgs: []string{"n"}},
		"long direction":     {raw: "north", expVerb: "move", expArgs: []string{"north"}},
		"uppercase":          {raw: "NORTH", expVerb: "move", expArgs: []string{"north"}},
		"say with args":      {raw: "say hello there", expVerb: "say", expArgs: []string{"hello", "there"}},
		"unknown verb":       {raw: "dance wildly", expVerb: "dance", expArgs: []string{"wildly"}},
		"extra whitespace":   {raw: "  say   hi  ", expVerb: "say", expArgs: []string{"hi"}},
		"direction has args": {raw: "s now", expVerb: "move", expArgs: []string{"s"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := Parse(tt.raw)
			testutil.AssertEqual(t, "verb", got.Verb, tt.expVerb)
			testutil.AssertEqual(t, "raw", got.Raw, tt.raw)
			testutil.AssertEqual(t, "args", strings.Join(got.Args, ","), strings.Join(tt.expArgs, ","))
		})
	}
}

// Every bare direction token parses the same as the spelled-out move.
func TestParseDirectionShortcut(t *testing.T) {
	for _, dir := range []string{"n", "s", "e", "w", "north", "south", "east", "west"} {
		got := Parse(dir)
		testutil.AssertEqual(t, dir+" verb", got.Verb, "move")
		if len(got.Args) != 1 || got.Args[0] != dir {
			t.Errorf("%s: expected args [%s], got %v", dir, dir, got.Args)
		}
	}
}
