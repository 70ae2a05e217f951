// Package editor implements the world-authoring side channel. It shares the
// live room registry with gameplay: an applied edit is immediately visible to
// connected players, with no staging or versioning layer in between.
package editor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/khunny7/yunsol-land/internal/game"
)

// Handler routes editor:* events against the world. Malformed or invalid
// payloads are rejected with an editor:error event and never touch registry
// state.
type Handler struct {
	world *game.World
}

func NewHandler(world *game.World) *Handler {
	return &Handler{world: world}
}

// Handle processes one editor event. Returns false if the event name is not
// an editor event, so callers can fall through to other routing.
func (h *Handler) Handle(ctx context.Context, conn game.Conn, event string, data json.RawMessage) (bool, error) {
	switch event {
	case game.EventEditorGetRooms:
		return true, conn.Send(game.EventEditorRoomsData, h.world.Rooms())

	case game.EventEditorUpdateRoom:
		var room game.Room
		if err := h.decode(data, &room); err != nil {
			return true, h.reject(ctx, conn, event, err)
		}
		h.world.UpsertRoom(&room)
		slog.InfoContext(ctx, "room updated", "room", room.ID)
		return true, nil

	case game.EventEditorDeleteRoom:
		var roomID string
		if err := json.Unmarshal(data, &roomID); err != nil || roomID == "" {
			return true, h.reject(ctx, conn, event, fmt.Errorf("room id payload required"))
		}
		h.world.DeleteRoom(roomID)
		slog.InfoContext(ctx, "room deleted", "room", roomID)
		return true, nil

	case game.EventEditorSaveMap:
		var rooms []*game.Room
		if err := json.Unmarshal(data, &rooms); err != nil {
			return true, h.reject(ctx, conn, event, fmt.Errorf("unmarshalling rooms: %w", err))
		}
		for _, r := range rooms {
			if r == nil {
				return true, h.reject(ctx, conn, event, fmt.Errorf("null room entry"))
			}
			if err := r.Validate(); err != nil {
				return true, h.reject(ctx, conn, event, fmt.Errorf("room %q: %w", r.ID, err))
			}
		}
		h.world.ReplaceRooms(rooms)
		slog.InfoContext(ctx, "map saved", "rooms", len(rooms))
		return true, nil

	case game.EventEditorGetMobs:
		return true, conn.Send(game.EventEditorMobsData, h.world.MobTemplates())

	case game.EventEditorCreateMob, game.EventEditorUpdateMob:
		var tmpl game.MobTemplate
		if err := h.decode(data, &tmpl); err != nil {
			return true, h.reject(ctx, conn, event, err)
		}
		h.world.UpsertMobTemplate(&tmpl)
		slog.InfoContext(ctx, "mob template saved", "mob", tmpl.ID)
		return true, nil

	case game.EventEditorDeleteMob:
		var mobID string
		if err := json.Unmarshal(data, &mobID); err != nil || mobID == "" {
			return true, h.reject(ctx, conn, event, fmt.Errorf("mob id payload required"))
		}
		h.world.DeleteMobTemplate(mobID)
		slog.InfoContext(ctx, "mob template deleted", "mob", mobID)
		return true, nil

	case game.EventEditorGetPlacedMobs:
		return true, conn.Send(game.EventEditorPlacedMobsData, h.world.PlacedMobs())

	case game.EventEditorPlaceMob:
		ref, err := h.placement(data)
		if err != nil {
			return true, h.reject(ctx, conn, event, err)
		}
		if err := h.world.PlaceMob(ref.MobID, ref.RoomID); err != nil {
			return true, h.reject(ctx, conn, event, err)
		}
		slog.InfoContext(ctx, "mob placed", "mob", ref.MobID, "room", ref.RoomID)
		return true, nil

	case game.EventEditorRemovePlacedMob:
		ref, err := h.placement(data)
		if err != nil {
			return true, h.reject(ctx, conn, event, err)
		}
		h.world.RemovePlacedMob(ref.MobID, ref.RoomID)
		slog.InfoContext(ctx, "mob removed", "mob", ref.MobID, "room", ref.RoomID)
		return true, nil
	}

	return false, nil
}

type placementRef struct {
	MobID  string `json:"mobId"`
	RoomID string `json:"roomId"`
}

func (h *Handler) placement(data json.RawMessage) (*placementRef, error) {
	var ref placementRef
	if err := json.Unmarshal(data, &ref); err != nil {
		return nil, fmt.Errorf("unmarshalling placement: %w", err)
	}
	if ref.MobID == "" || ref.RoomID == "" {
		return nil, fmt.Errorf("mobId and roomId are required")
	}
	return &ref, nil
}

func (h *Handler) decode(data json.RawMessage, spec interface{ Validate() error }) error {
	if err := json.Unmarshal(data, spec); err != nil {
		return fmt.Errorf("unmarshalling payload: %w", err)
	}
	return spec.Validate()
}

func (h *Handler) reject(ctx context.Context, conn game.Conn, event string, cause error) error {
	slog.WarnContext(ctx, "editor payload rejected", "event", event, "error", cause)
	return conn.Send(game.EventEditorError, &game.EditorError{Message: cause.Error()})
}
