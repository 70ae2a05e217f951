package game

import (
	"encoding/json"
	"fmt"
)

// Event names emitted by the world runtime. Clients switch on the envelope's
// "event" field.
const (
	EventBootstrap    = "bootstrap"
	EventRoomSnapshot = "room_snapshot"
	EventRoomMessage  = "room_message"
	EventPlayerMoved  = "player_moved"
	EventError        = "error"
)

// Editor channel events. Inbound requests and their data replies share the
// "editor:" namespace.
const (
	EventEditorGetRooms        = "editor:getRooms"
	EventEditorRoomsData       = "editor:roomsData"
	EventEditorUpdateRoom      = "editor:updateRoom"
	EventEditorDeleteRoom      = "editor:deleteRoom"
	EventEditorSaveMap         = "editor:saveMap"
	EventEditorGetMobs         = "editor:getMobs"
	EventEditorMobsData        = "editor:mobsData"
	EventEditorCreateMob       = "editor:createMob"
	EventEditorUpdateMob       = "editor:updateMob"
	EventEditorDeleteMob       = "editor:deleteMob"
	EventEditorGetPlacedMobs   = "editor:getPlacedMobs"
	EventEditorPlacedMobsData  = "editor:placedMobsData"
	EventEditorPlaceMob        = "editor:placeMob"
	EventEditorRemovePlacedMob = "editor:removePlacedMob"
	EventEditorError           = "editor:error"
)

// Event is the wire envelope for everything the server emits or receives.
type Event struct {
	Name string          `json:"event"`
	Data json.RawMessage `json:"data,omitempty"`
}

// EncodeEvent marshals a payload into an event envelope ready for the wire.
func EncodeEvent(name string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshalling %s payload: %w", name, err)
	}
	return json.Marshal(&Event{Name: name, Data: data})
}

// DecodeEvent parses an event envelope received from the wire.
func DecodeEvent(b []byte) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(b, &ev); err != nil {
		return nil, fmt.Errorf("unmarshalling event: %w", err)
	}
	return &ev, nil
}

// RoomMessage is broadcast to a room when a player speaks.
type RoomMessage struct {
	From string `json:"from"`
	Text string `json:"text"`
}

// PlayerMoved is broadcast to both rooms involved in a move.
type PlayerMoved struct {
	PlayerID string `json:"playerId"`
	From     string `json:"from"`
	To       string `json:"to"`
}

// ErrorPayload reports a protocol error back to the issuing connection. The
// reasons are informational, never fatal to the connection.
type ErrorPayload struct {
	Reason string `json:"reason"`
}

// Bootstrap is sent to a connection after a successful login.
type Bootstrap struct {
	Player *Player       `json:"player"`
	Room   *RoomSnapshot `json:"room"`
}

// EditorError reports a rejected editor payload. It carries no reason code;
// malformed authoring input gets a generic rejection rather than a taxonomy
// entry of its own.
type EditorError struct {
	Message string `json:"message"`
}
