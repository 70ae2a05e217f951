package commands

import (
	"context"
	"strings"

	"github.com/khunny7/yunsol-land/internal/game"
)

// say broadcasts a message to the player's current room, speaker included.
func (h *Handler) say(ctx context.Context, c *Context) error {
	text := strings.TrimSpace(strings.Join(c.Args, " "))
	if text == "" {
		return NewUserError(ReasonEmptyMessage)
	}

	h.world.BroadcastRoom(c.Player.RoomID, game.EventRoomMessage, &game.RoomMessage{
		From: c.Player.Name,
		Text: text,
	})
	return nil
}
