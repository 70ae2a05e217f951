package listener

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/khunny7/yunsol-land/internal/commands"
	"github.com/khunny7/yunsol-land/internal/editor"
	"github.com/khunny7/yunsol-land/internal/game"
	"github.com/khunny7/yunsol-land/internal/messaging"
)

// Subscriber provides the ability to subscribe to broker subjects.
type Subscriber interface {
	Subscribe(subject string, handler func(data []byte)) (unsubscribe func(), err error)
}

// Session is the transport-agnostic half of a client connection. It
// implements game.Conn: room-channel membership is a set of broker
// subscriptions, and everything outbound funnels through one buffered
// channel the transport drains.
//
// A session processes inbound events strictly in arrival order; transports
// must not call its handlers concurrently.
type Session struct {
	id     string
	world  *game.World
	cmds   *commands.Handler
	editor *editor.Handler
	sub    Subscriber

	out chan []byte

	mu   sync.Mutex
	subs map[string]func()
}

const outboundBuffer = 64

var _ game.Conn = (*Session)(nil)

func newSession(world *game.World, cmds *commands.Handler, ed *editor.Handler, sub Subscriber) *Session {
	return &Session{
		id:     uuid.NewString(),
		world:  world,
		cmds:   cmds,
		editor: ed,
		sub:    sub,
		out:    make(chan []byte, outboundBuffer),
		subs:   make(map[string]func()),
	}
}

func (s *Session) ID() string {
	return s.id
}

// Out is the stream of encoded event envelopes for the transport to deliver.
func (s *Session) Out() <-chan []byte {
	return s.out
}

// Send queues one event for this connection only. A client that cannot drain
// its buffer loses events rather than stalling the world.
func (s *Session) Send(event string, payload any) error {
	data, err := game.EncodeEvent(event, payload)
	if err != nil {
		return err
	}
	s.enqueue(data)
	return nil
}

func (s *Session) enqueue(data []byte) {
	select {
	case s.out <- data:
	default:
		slog.Warn("session outbound buffer full, dropping event", "conn", s.id)
	}
}

// JoinRoom subscribes the connection to a room's channel.
func (s *Session) JoinRoom(roomID string) error {
	return s.subscribe(messaging.RoomSubject(roomID))
}

// LeaveRoom drops the connection's subscription to a room's channel.
func (s *Session) LeaveRoom(roomID string) {
	s.unsubscribe(messaging.RoomSubject(roomID))
}

func (s *Session) subscribe(subject string) error {
	unsub, err := s.sub.Subscribe(subject, s.enqueue)
	if err != nil {
		return fmt.Errorf("subscribing to %s: %w", subject, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.subs[subject]; ok {
		old()
	}
	s.subs[subject] = unsub
	return nil
}

func (s *Session) unsubscribe(subject string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if unsub, ok := s.subs[subject]; ok {
		unsub()
		delete(s.subs, subject)
	}
}

// Login binds this connection to the player registered under name, creating
// the record on first sight. The reply is a bootstrap carrying the player and
// a snapshot of their room.
func (s *Session) Login(ctx context.Context, name string) (*game.Player, error) {
	player := s.world.CreateOrLoadPlayer(name)
	s.world.BindConn(player.ID, s)

	if err := s.subscribe(messaging.PlayerSubject(player.ID)); err != nil {
		return nil, err
	}
	if err := s.JoinRoom(player.RoomID); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "player logged in", "player", player.ID, "name", player.Name, "room", player.RoomID)

	err := s.Send(game.EventBootstrap, &game.Bootstrap{
		Player: player,
		Room:   s.world.Snapshot(player.RoomID),
	})
	if err != nil {
		return nil, err
	}
	return player, nil
}

// Command runs one raw command line through the dispatch pipeline.
func (s *Session) Command(ctx context.Context, raw string) error {
	return s.cmds.Exec(ctx, s, raw)
}

// HandleEvent routes one decoded inbound event. Unknown events are dropped.
func (s *Session) HandleEvent(ctx context.Context, ev *game.Event) error {
	switch ev.Name {
	case "login":
		var req struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(ev.Data, &req); err != nil {
			slog.WarnContext(ctx, "malformed login payload", "conn", s.id)
			return nil
		}
		// Same gate as the telnet prompt: a blank name is not an identity.
		name := strings.TrimSpace(req.Name)
		if name == "" {
			slog.WarnContext(ctx, "empty login name", "conn", s.id)
			return nil
		}
		_, err := s.Login(ctx, name)
		return err

	case "command":
		var raw string
		if err := json.Unmarshal(ev.Data, &raw); err != nil {
			slog.WarnContext(ctx, "malformed command payload", "conn", s.id)
			return nil
		}
		return s.Command(ctx, raw)

	default:
		handled, err := s.editor.Handle(ctx, s, ev.Name, ev.Data)
		if err != nil {
			return err
		}
		if !handled {
			slog.DebugContext(ctx, "unknown event dropped", "conn", s.id, "event", ev.Name)
		}
		return nil
	}
}

// Close tears down all subscriptions and detaches the connection from its
// player. The player record stays in the world for reconnection.
func (s *Session) Close() {
	s.mu.Lock()
	for subject, unsub := range s.subs {
		unsub()
		delete(s.subs, subject)
	}
	s.mu.Unlock()

	s.world.HandleDisconnect(s.id)
}
