package game

// Conn is the world's view of a live client connection. Listener sessions
// implement it; the world only ever holds it as an opaque handle.
//
// JoinRoom and LeaveRoom manage the connection's room-channel membership.
// The world deliberately does not call them itself: movePlayer's dual
// broadcast must complete before membership switches, and that ordering is
// owned by the caller (see World.MovePlayer).
type Conn interface {
	ID() string
	Send(event string, payload any) error
	JoinRoom(roomID string) error
	LeaveRoom(roomID string)
}

// Publisher delivers events to room channels and to individual players.
// The messaging package implements it over the embedded broker.
type Publisher interface {
	PublishToRoom(roomID, event string, payload any) error
	PublishToPlayer(playerID, event string, payload any) error
}
