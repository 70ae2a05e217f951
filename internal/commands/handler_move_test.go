package commands

import (
	"context"
	"testing"

	"github.com/pixil98/go-testutil"

	"github.com/khunny7/yunsol-land/internal/game"
)

func TestMove(t *testing.T) {
	h, w, pub, conn := newTestHandler(t)
	p := w.PlayerByConn("conn-1")

	if err := h.Exec(context.Background(), conn, "n"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "room", p.RoomID, "north_road")

	// Both rooms hear exactly one player_moved.
	for _, roomID := range []string{"town_square", "north_road"} {
		calls := pub.forRoom(roomID, game.EventPlayerMoved)
		if len(calls) != 1 {
			t.Fatalf("room %s: expected 1 player_moved, got %d", roomID, len(calls))
		}
		moved := calls[0].Payload.(*game.PlayerMoved)
		testutil.AssertEqual(t, "from", moved.From, "town_square")
		testutil.AssertEqual(t, "to", moved.To, "north_road")
	}

	// Channel membership follows the move, and the mover's snapshot arrives
	// on their player channel.
	testutil.AssertEqual(t, "left", conn.left[0], "town_square")
	testutil.AssertEqual(t, "joined", conn.joined[0], "north_road")
	snaps := pub.forRoom("player:"+p.ID, game.EventRoomSnapshot)
	if len(snaps) != 1 {
		t.Fatalf("expected 1 snapshot push, got %d", len(snaps))
	}
	snap := snaps[0].Payload.(*game.RoomSnapshot)
	testutil.AssertEqual(t, "snapshot room", snap.ID, "north_road")
}

func TestMoveRejections(t *testing.T) {
	tests := map[string]struct {
		raw       string
		expReason string
	}{
		"missing direction": {raw: "move", expReason: ReasonMissingDirection},
		"invalid direction": {raw: "move up", expReason: ReasonInvalidDirection},
		"no exit":           {raw: "w", expReason: ReasonNoExit},
		"dangling exit":     {raw: "e", expReason: ReasonNoExit},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			h, w, pub, conn := newTestHandler(t)

			if err := h.Exec(context.Background(), conn, tt.raw); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "reason", conn.lastError(), tt.expReason)

			// A rejected move leaves the player and channels untouched.
			testutil.AssertEqual(t, "room", w.PlayerByConn("conn-1").RoomID, "town_square")
			testutil.AssertEqual(t, "broadcasts", len(pub.calls), 0)
			testutil.AssertEqual(t, "left", len(conn.left), 0)
		})
	}
}

func TestMoveFullDirectionName(t *testing.T) {
	h, w, _, conn := newTestHandler(t)

	if err := h.Exec(context.Background(), conn, "move NORTH"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "room", w.PlayerByConn("conn-1").RoomID, "north_road")
}
