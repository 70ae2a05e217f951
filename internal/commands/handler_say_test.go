package commands

import (
	"context"
	"testing"

	"github.com/pixil98/go-testutil"

	"github.com/khunny7/yunsol-land/internal/game"
)

func TestSay(t *testing.T) {
	h, _, pub, conn := newTestHandler(t)

	if err := h.Exec(context.Background(), conn, "say hello   there"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	calls := pub.forRoom("town_square", game.EventRoomMessage)
	if len(calls) != 1 {
		t.Fatalf("expected 1 room_message, got %d", len(calls))
	}
	msg := calls[0].Payload.(*game.RoomMessage)
	testutil.AssertEqual(t, "from", msg.From, "Yunsol")
	testutil.AssertEqual(t, "text", msg.Text, "hello there")
}

func TestSayEmpty(t *testing.T) {
	tests := map[string]string{
		"no args":    "say",
		"whitespace": "say    ",
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			h, _, pub, conn := newTestHandler(t)

			if err := h.Exec(context.Background(), conn, raw); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "reason", conn.lastError(), ReasonEmptyMessage)
			testutil.AssertEqual(t, "broadcasts", len(pub.calls), 0)
		})
	}
}
