package commands

import (
	"context"
	"strings"

	"github.com/khunny7/yunsol-land/internal/game"
)

// dirMap normalizes accepted direction tokens to exit keys.
var dirMap = map[string]string{
	"n": "n", "north": "n",
	"s": "s", "south": "s",
	"e": "e", "east": "e",
	"w": "w", "west": "w",
}

// move walks the player through an exit of their current room.
//
// Ordering contract: World.MovePlayer mutates the room-of-record and fires
// both player_moved broadcasts while this connection is still joined to the
// origin channel. Only then does the connection switch channels and receive
// its destination snapshot. Reordering these steps loses or duplicates the
// mover's own broadcast.
func (h *Handler) move(ctx context.Context, c *Context) error {
	if len(c.Args) == 0 {
		return NewUserError(ReasonMissingDirection)
	}

	dir, ok := dirMap[strings.ToLower(c.Args[0])]
	if !ok {
		return NewUserError(ReasonInvalidDirection)
	}

	room := h.world.Room(c.Player.RoomID)
	if room == nil {
		// Player is recorded in a room that no longer exists. Accepted gap:
		// drop the command rather than surface an inconsistency the player
		// can't act on.
		return nil
	}

	target, ok := room.Exits[dir]
	if !ok {
		return NewUserError(ReasonNoExit)
	}
	if h.world.Room(target) == nil {
		// Dangling exit. Tolerated at edit time, a dead end at move time.
		return NewUserError(ReasonNoExit)
	}

	from := c.Player.RoomID
	h.world.MovePlayer(c.Player.ID, target)

	c.Conn.LeaveRoom(from)
	if err := c.Conn.JoinRoom(target); err != nil {
		return err
	}

	// The destination snapshot goes through the mover's player channel.
	if snap := h.world.Snapshot(target); snap != nil {
		h.world.PushToPlayer(c.Player.ID, game.EventRoomSnapshot, snap)
	}
	return nil
}
