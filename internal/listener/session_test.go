package listener

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/pixil98/go-testutil"

	"github.com/khunny7/yunsol-land/internal/commands"
	"github.com/khunny7/yunsol-land/internal/editor"
	"github.com/khunny7/yunsol-land/internal/game"
	"github.com/khunny7/yunsol-land/internal/messaging"
)

type fakeSubscriber struct {
	handlers map[string]func(data []byte)
	unsubbed []string
}

func (f *fakeSubscriber) Subscribe(subject string, handler func(data []byte)) (func(), error) {
	if f.handlers == nil {
		f.handlers = make(map[string]func(data []byte))
	}
	f.handlers[subject] = handler
	return func() {
		f.unsubbed = append(f.unsubbed, subject)
		delete(f.handlers, subject)
	}, nil
}

func newTestSession() (*Session, *game.World, *fakeSubscriber) {
	rooms := []*game.Room{
		{ID: "town_square", Name: "Town Square", Description: "A bright open plaza.", Exits: map[string]string{"n": "north_road"}},
		{ID: "north_road", Name: "North Road", Description: "A quiet path heading north.", Exits: map[string]string{"s": "town_square"}},
	}
	w := game.NewWorld(nil, rooms, "town_square")
	sub := &fakeSubscriber{}
	s := newSession(w, commands.NewHandler(w), editor.NewHandler(w), sub)
	return s, w, sub
}

func loginEvent(t *testing.T, name string) *game.Event {
	t.Helper()
	data, err := json.Marshal(map[string]string{"name": name})
	if err != nil {
		t.Fatalf("marshalling login: %v", err)
	}
	return &game.Event{Name: "login", Data: data}
}

func TestHandleEventLogin(t *testing.T) {
	s, w, sub := newTestSession()

	if err := s.HandleEvent(context.Background(), loginEvent(t, "  Yunsol  ")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The surrounding whitespace is not part of the identity.
	p := w.PlayerByConn(s.ID())
	if p == nil {
		t.Fatal("expected player bound to session")
	}
	testutil.AssertEqual(t, "name", p.Name, "Yunsol")

	// Login subscribes the player channel and the room channel, and replies
	// with a bootstrap on the outbound stream.
	if _, ok := sub.handlers[messaging.PlayerSubject(p.ID)]; !ok {
		t.Error("expected player channel subscription")
	}
	if _, ok := sub.handlers[messaging.RoomSubject("town_square")]; !ok {
		t.Error("expected room channel subscription")
	}

	select {
	case data := <-s.Out():
		ev, err := game.DecodeEvent(data)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testutil.AssertEqual(t, "event", ev.Name, game.EventBootstrap)
	default:
		t.Fatal("expected bootstrap on outbound stream")
	}
}

func TestHandleEventLoginRejectsBlankName(t *testing.T) {
	tests := map[string]string{
		"empty":      "",
		"whitespace": "   \t ",
	}

	for name, loginName := range tests {
		t.Run(name, func(t *testing.T) {
			s, w, sub := newTestSession()

			if err := s.HandleEvent(context.Background(), loginEvent(t, loginName)); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if w.PlayerByConn(s.ID()) != nil {
				t.Error("blank name must not create a player")
			}
			testutil.AssertEqual(t, "subscriptions", len(sub.handlers), 0)
		})
	}
}

func TestPlayerChannelDelivery(t *testing.T) {
	s, w, sub := newTestSession()

	if err := s.HandleEvent(context.Background(), loginEvent(t, "Yunsol")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := w.PlayerByConn(s.ID())

	// Drain the bootstrap reply first.
	<-s.Out()

	// Anything published on the player channel lands on the outbound stream.
	handler, ok := sub.handlers[messaging.PlayerSubject(p.ID)]
	if !ok {
		t.Fatal("expected player channel subscription")
	}
	handler([]byte(`{"event":"room_snapshot"}`))

	select {
	case data := <-s.Out():
		testutil.AssertEqual(t, "data", string(data), `{"event":"room_snapshot"}`)
	default:
		t.Fatal("expected event on outbound stream")
	}
}

func TestCloseUnsubscribesAndDetaches(t *testing.T) {
	s, w, sub := newTestSession()

	if err := s.HandleEvent(context.Background(), loginEvent(t, "Yunsol")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := w.PlayerByConn(s.ID())

	s.Close()

	testutil.AssertEqual(t, "subscriptions", len(sub.handlers), 0)
	testutil.AssertEqual(t, "unsubscribed", len(sub.unsubbed), 2)
	if w.PlayerByConn(s.ID()) != nil {
		t.Error("connection should be unbound after close")
	}
	if p.Connected() {
		t.Error("player should have no live connection")
	}
}
