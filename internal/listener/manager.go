package listener

import (
	"github.com/khunny7/yunsol-land/internal/commands"
	"github.com/khunny7/yunsol-land/internal/editor"
	"github.com/khunny7/yunsol-land/internal/game"
)

// ConnectionManager hands out sessions wired to the shared world, command
// pipeline, editor channel and broker. Every listener goes through it.
type ConnectionManager struct {
	world  *game.World
	cmds   *commands.Handler
	editor *editor.Handler
	sub    Subscriber
}

func NewConnectionManager(world *game.World, cmds *commands.Handler, ed *editor.Handler, sub Subscriber) *ConnectionManager {
	return &ConnectionManager{
		world:  world,
		cmds:   cmds,
		editor: ed,
		sub:    sub,
	}
}

// NewSession creates a fresh session for an accepted connection.
func (m *ConnectionManager) NewSession() *Session {
	return newSession(m.world, m.cmds, m.editor, m.sub)
}

// World exposes the shared world for transports that render text views.
func (m *ConnectionManager) World() *game.World {
	return m.world
}
