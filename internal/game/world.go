package game

import (
	"context"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// World is the single source of truth for all mutable runtime state: the
// player registry, the room registry, and the mob store. Connection handlers,
// the editor channel and the tick loop all mutate state through it, serialized
// by one coarse lock. There is no ambient global instance; the world is
// constructed at startup and passed to everything that needs it.
type World struct {
	mu  sync.RWMutex
	pub Publisher
	rng *rand.Rand

	startRoom string

	players map[string]*Player // player id -> record
	names   map[string]string  // lowercased name -> player id
	conns   map[string]string  // conn id -> player id

	rooms map[string]*Room

	templates  map[string]*MobTemplate
	placements map[string][]*PlacedMob // room id -> placed instances

	schedule []*scheduled
}

type scheduled struct {
	at time.Time
	fn func()
}

type WorldOpt func(*World)

// WithRand replaces the AI's randomness source.
func WithRand(rng *rand.Rand) WorldOpt {
	return func(w *World) {
		w.rng = rng
	}
}

// NewWorld builds a world around the seed rooms. startRoom is where new
// players are placed; it is not validated against the seed, matching the
// tolerance for dangling room references everywhere else.
func NewWorld(pub Publisher, rooms []*Room, startRoom string, opts ...WorldOpt) *World {
	w := &World{
		pub:        pub,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		startRoom:  startRoom,
		players:    make(map[string]*Player),
		names:      make(map[string]string),
		conns:      make(map[string]string),
		rooms:      make(map[string]*Room),
		templates:  make(map[string]*MobTemplate),
		placements: make(map[string][]*PlacedMob),
	}

	for _, r := range rooms {
		w.rooms[r.ID] = r
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// CreateOrLoadPlayer returns the player registered under name, creating a new
// record with default stats in the start room if none exists. Lookup is
// case-insensitive, so logging in twice with the same name always yields the
// same identity.
func (w *World) CreateOrLoadPlayer(name string) *Player {
	w.mu.Lock()
	defer w.mu.Unlock()

	key := strings.ToLower(name)
	if id, ok := w.names[key]; ok {
		return w.players[id]
	}

	p := &Player{
		ID:        uuid.NewString(),
		Name:      name,
		RoomID:    w.startRoom,
		Stats:     DefaultStats(),
		Inventory: []string{},
	}
	w.players[p.ID] = p
	w.names[key] = p.ID

	return p
}

// Player returns the player record for id, or nil.
func (w *World) Player(id string) *Player {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.players[id]
}

// PlayerByConn returns the player bound to the given connection, or nil.
func (w *World) PlayerByConn(connID string) *Player {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if id, ok := w.conns[connID]; ok {
		return w.players[id]
	}
	return nil
}

// BindConn attaches a connection handle to a player. A player holds at most
// one live handle: binding a new connection displaces any previous one, whose
// session will notice on its own transport close.
func (w *World) BindConn(playerID string, conn Conn) {
	w.mu.Lock()
	defer w.mu.Unlock()

	p, ok := w.players[playerID]
	if !ok {
		return
	}

	if p.conn != nil && p.conn.ID() != conn.ID() {
		delete(w.conns, p.conn.ID())
	}
	p.conn = conn
	w.conns[conn.ID()] = playerID
}

// HandleDisconnect detaches the connection handle from whichever player holds
// it. The player record keeps its room so snapshots still list them; only a
// reconnect changes that. No-op for unbound connections.
func (w *World) HandleDisconnect(connID string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	id, ok := w.conns[connID]
	if !ok {
		return
	}
	delete(w.conns, connID)

	if p, ok := w.players[id]; ok && p.conn != nil && p.conn.ID() == connID {
		p.conn = nil
	}
}

// MovePlayer updates the player's room-of-record and emits player_moved to
// the origin and destination room channels. Both broadcasts happen under the
// lock, as one logical step with the mutation, and before any channel
// membership changes: the caller switches the mover's subscriptions only
// after this returns, so the mover hears the origin-room broadcast and each
// room hears exactly one event.
//
// Connection channel membership is deliberately left to the caller so that
// non-command moves (teleports, admin tools) can reuse this.
func (w *World) MovePlayer(playerID, targetRoomID string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	p, ok := w.players[playerID]
	if !ok {
		return
	}

	from := p.RoomID
	p.RoomID = targetRoomID

	moved := &PlayerMoved{PlayerID: playerID, From: from, To: targetRoomID}
	w.publishRoom(from, EventPlayerMoved, moved)
	w.publishRoom(targetRoomID, EventPlayerMoved, moved)
}

// BroadcastRoom delivers an event to every connection joined to the room's
// channel. A room with no subscribers is a no-op at the broker level.
func (w *World) BroadcastRoom(roomID, event string, payload any) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	w.publishRoom(roomID, event, payload)
}

// PushToPlayer delivers an event on one player's channel. The player's session
// subscribes to it at login, so targeted events reach whichever transport
// currently holds the connection.
func (w *World) PushToPlayer(playerID, event string, payload any) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.pub == nil {
		return
	}
	_ = w.pub.PublishToPlayer(playerID, event, payload)
}

func (w *World) publishRoom(roomID, event string, payload any) {
	if w.pub == nil {
		return
	}
	// Delivery failures are the transport's problem, not the mutation's.
	_ = w.pub.PublishToRoom(roomID, event, payload)
}

// Room returns the room for id, or nil.
func (w *World) Room(id string) *Room {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.rooms[id]
}

// Rooms returns all rooms sorted by id.
func (w *World) Rooms() []*Room {
	w.mu.RLock()
	defer w.mu.RUnlock()

	rooms := make([]*Room, 0, len(w.rooms))
	for _, r := range w.rooms {
		rooms = append(rooms, r)
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
	return rooms
}

// UpsertRoom creates or replaces a room. Edits are immediately visible to
// connected players; there is no staging layer.
func (w *World) UpsertRoom(r *Room) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.rooms[r.ID] = r
}

// DeleteRoom removes a room from the registry. Players recorded in it are
// left as-is; their next move silently dead-ends until they are edited back
// onto the map.
func (w *World) DeleteRoom(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	delete(w.rooms, id)
}

// ReplaceRooms swaps the entire room registry in one step. Readers see either
// the old map or the new one, never a half-applied mix.
func (w *World) ReplaceRooms(rooms []*Room) {
	w.mu.Lock()
	defer w.mu.Unlock()

	replacement := make(map[string]*Room, len(rooms))
	for _, r := range rooms {
		replacement[r.ID] = r
	}
	w.rooms = replacement
}

// Snapshot derives the client-facing view of a room. Present players are
// those whose room-of-record matches, connected or not: presence is a
// property of the registry, not of connection liveness.
func (w *World) Snapshot(roomID string) *RoomSnapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()

	room, ok := w.rooms[roomID]
	if !ok {
		return nil
	}

	snap := &RoomSnapshot{
		ID:          room.ID,
		Name:        room.Name,
		Description: room.Description,
		Exits:       room.Exits,
		Players:     []PlayerRef{},
		Mobs:        []MobRef{},
	}

	for _, p := range w.players {
		if p.RoomID == roomID {
			snap.Players = append(snap.Players, p.Ref())
		}
	}
	sort.Slice(snap.Players, func(i, j int) bool { return snap.Players[i].ID < snap.Players[j].ID })

	for _, pm := range w.placements[roomID] {
		t, ok := w.templates[pm.TemplateID]
		if !ok {
			continue
		}
		snap.Mobs = append(snap.Mobs, MobRef{
			TemplateID: t.ID,
			Name:       t.Name,
			AI:         t.AI,
			Ordinal:    pm.Ordinal,
		})
	}

	return snap
}

// ScheduleAt queues fn to run on the first tick at or after t.
func (w *World) ScheduleAt(t time.Time, fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()

	idx := sort.Search(len(w.schedule), func(i int) bool {
		return w.schedule[i].at.After(t)
	})
	w.schedule = append(w.schedule, nil)
	copy(w.schedule[idx+1:], w.schedule[idx:])
	w.schedule[idx] = &scheduled{at: t, fn: fn}
}

// ProcessScheduled runs every queued event due at or before now. It is called
// on every tick and must stay cheap when nothing is pending. Callbacks run
// outside the lock so they are free to mutate the world.
func (w *World) ProcessScheduled(ctx context.Context, now time.Time) error {
	w.mu.Lock()
	var due []*scheduled
	for len(w.schedule) > 0 && !w.schedule[0].at.After(now) {
		due = append(due, w.schedule[0])
		w.schedule = w.schedule[1:]
	}
	w.mu.Unlock()

	for _, s := range due {
		s.fn()
	}
	return nil
}
