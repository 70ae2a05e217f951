package display

import (
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"

	"github.com/khunny7/yunsol-land/internal/game"
)

func encode(t *testing.T, event string, payload any) []byte {
	t.Helper()
	data, err := game.EncodeEvent(event, payload)
	if err != nil {
		t.Fatalf("encoding %s: %v", event, err)
	}
	return data
}

func testRenderer() *Renderer {
	return NewRenderer(func(playerID string) string {
		if playerID == "p1" {
			return "Yunsol"
		}
		return "someone"
	})
}

func TestRenderRoomMessage(t *testing.T) {
	r := testRenderer()
	data := encode(t, game.EventRoomMessage, &game.RoomMessage{From: "Yunsol", Text: "hello"})

	out, ok := r.Render(data, View{PlayerID: "p2", RoomID: "town_square"})
	if !ok {
		t.Fatal("expected rendition")
	}
	testutil.AssertEqual(t, "text", out, `Yunsol says, "hello"`)
}

func TestRenderPlayerMoved(t *testing.T) {
	moved := &game.PlayerMoved{PlayerID: "p1", From: "town_square", To: "north_road"}

	tests := map[string]struct {
		view   View
		expOK  bool
		expOut string
	}{
		"viewer in origin":      {view: View{PlayerID: "p2", RoomID: "town_square"}, expOK: true, expOut: "Yunsol leaves."},
		"viewer in destination": {view: View{PlayerID: "p2", RoomID: "north_road"}, expOK: true, expOut: "Yunsol arrives."},
		"viewer is the mover":   {view: View{PlayerID: "p1", RoomID: "north_road"}, expOK: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			r := testRenderer()
			out, ok := r.Render(encode(t, game.EventPlayerMoved, moved), tt.view)
			testutil.AssertEqual(t, "ok", ok, tt.expOK)
			if tt.expOK {
				testutil.AssertEqual(t, "text", out, tt.expOut)
			}
		})
	}
}

func TestRenderSnapshot(t *testing.T) {
	r := testRenderer()
	snap := &game.RoomSnapshot{
		ID:          "town_square",
		Name:        "Town Square",
		Description: "A bright open plaza.",
		Exits:       map[string]string{"n": "north_road", "e": "east_gate"},
		Players:     []game.PlayerRef{{ID: "p1", Name: "Yunsol"}, {ID: "p2", Name: "Minjun"}},
		Mobs:        []game.MobRef{{TemplateID: "guard", Name: "Town Guard"}},
	}

	out, ok := r.Render(encode(t, game.EventRoomSnapshot, snap), View{PlayerID: "p1", RoomID: "town_square"})
	if !ok {
		t.Fatal("expected rendition")
	}

	lines := strings.Split(out, "\n")
	testutil.AssertEqual(t, "title", lines[0], "Town Square")
	testutil.AssertEqual(t, "description", lines[1], "A bright open plaza.")
	testutil.AssertEqual(t, "exits", lines[2], "Exits: e, n")
	testutil.AssertEqual(t, "players", lines[3], "Also here: Yunsol, Minjun")
	testutil.AssertEqual(t, "mobs", lines[4], "You see: Town Guard")
}

func TestRenderSnapshotEmptyRoom(t *testing.T) {
	r := testRenderer()
	snap := &game.RoomSnapshot{ID: "void", Name: "Void", Description: "Nothing here."}

	out, ok := r.Render(encode(t, game.EventRoomSnapshot, snap), View{})
	if !ok {
		t.Fatal("expected rendition")
	}
	if !strings.Contains(out, "Exits: none") {
		t.Errorf("expected exitless rendition, got %q", out)
	}
	if strings.Contains(out, "Also here") || strings.Contains(out, "You see") {
		t.Errorf("empty room should not list occupants, got %q", out)
	}
}

func TestRenderBootstrap(t *testing.T) {
	r := testRenderer()
	boot := &game.Bootstrap{
		Player: &game.Player{ID: "p1", Name: "Yunsol"},
		Room:   &game.RoomSnapshot{ID: "town_square", Name: "Town Square", Description: "A bright open plaza."},
	}

	out, ok := r.Render(encode(t, game.EventBootstrap, boot), View{PlayerID: "p1"})
	if !ok {
		t.Fatal("expected rendition")
	}
	if !strings.HasPrefix(out, "Town Square") {
		t.Errorf("expected room header, got %q", out)
	}
}

func TestRenderError(t *testing.T) {
	tests := map[string]struct {
		reason string
		exp    string
	}{
		"no exit": {reason: "no_exit", exp: "You cannot go that way."},
		"empty":   {reason: "empty_message", exp: "Say what?"},
		"unknown": {reason: "weird_reason", exp: "Huh? (weird_reason)"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			r := testRenderer()
			out, ok := r.Render(encode(t, game.EventError, &game.ErrorPayload{Reason: tt.reason}), View{})
			if !ok {
				t.Fatal("expected rendition")
			}
			testutil.AssertEqual(t, "text", out, tt.exp)
		})
	}
}

func TestRenderSkipsSilentEvents(t *testing.T) {
	r := testRenderer()

	for _, data := range [][]byte{
		encode(t, game.EventEditorRoomsData, []*game.Room{}),
		[]byte("not an envelope"),
	} {
		if out, ok := r.Render(data, View{}); ok {
			t.Errorf("expected no rendition, got %q", out)
		}
	}
}

func TestRenderWraps(t *testing.T) {
	r := testRenderer()
	long := strings.Repeat("wide meadow ", 20)
	snap := &game.RoomSnapshot{ID: "field", Name: "Field", Description: long}

	out, ok := r.Render(encode(t, game.EventRoomSnapshot, snap), View{})
	if !ok {
		t.Fatal("expected rendition")
	}
	for _, line := range strings.Split(out, "\n") {
		if len(line) > DefaultWidth {
			t.Errorf("line exceeds %d columns: %q", DefaultWidth, line)
		}
	}
}
