package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/khunny7/yunsol-land/internal/game"
)

// Context bundles everything a verb handler gets to work with: the issuing
// connection, the resolved player, and the parsed input.
type Context struct {
	Conn   game.Conn
	Player *game.Player
	Args   []string
	Raw    string
}

// CommandFunc is a verb handler. Returning a *UserError reports the reason to
// the connection; any other error is a system failure.
type CommandFunc func(ctx context.Context, c *Context) error

// Handler routes parsed commands to verb handlers. The registry is fixed at
// construction; verbs dispatch through it rather than reflection.
type Handler struct {
	world    *game.World
	registry map[string]CommandFunc
}

// NewHandler builds the dispatcher with the built-in verb set.
func NewHandler(world *game.World) *Handler {
	h := &Handler{
		world:    world,
		registry: make(map[string]CommandFunc),
	}
	h.register("move", h.move)
	h.register("say", h.say)
	return h
}

func (h *Handler) register(verb string, fn CommandFunc) {
	h.registry[verb] = fn
}

// Exec runs one raw command line for a connection: resolve the player, parse,
// look up the verb, invoke the handler. User errors are delivered to the
// connection as error events here; only system errors propagate. Commands
// from a single connection are executed serially by the session loop, so a
// handler never races with another command from the same player.
func (h *Handler) Exec(ctx context.Context, conn game.Conn, raw string) error {
	err := h.exec(ctx, conn, raw)
	if err == nil {
		return nil
	}

	var userErr *UserError
	if errors.As(err, &userErr) {
		slog.DebugContext(ctx, "command rejected", "conn", conn.ID(), "reason", userErr.Reason)
		if sendErr := conn.Send(game.EventError, &game.ErrorPayload{Reason: userErr.Reason}); sendErr != nil {
			return fmt.Errorf("reporting %s: %w", userErr.Reason, sendErr)
		}
		return nil
	}

	return err
}

func (h *Handler) exec(ctx context.Context, conn game.Conn, raw string) error {
	player := h.world.PlayerByConn(conn.ID())
	if player == nil {
		return NewUserError(ReasonNotLoggedIn)
	}

	parsed := Parse(raw)
	fn, ok := h.registry[parsed.Verb]
	if !ok {
		return NewUserError(ReasonUnknownCommand)
	}

	return fn(ctx, &Context{
		Conn:   conn,
		Player: player,
		Args:   parsed.Args,
		Raw:    parsed.Raw,
	})
}
