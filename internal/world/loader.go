// Package world loads the static room seed the runtime starts from. The seed
// is read once at startup; every runtime mutation afterwards is memory-only.
package world

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	goerrors "github.com/pixil98/go-errors"

	"github.com/khunny7/yunsol-land/internal/game"
)

// Load reads a JSON array of rooms from path. A missing file (or an empty
// path) falls back to the built-in two-room world rather than failing: a
// fresh checkout should boot into something walkable.
func Load(path string) ([]*game.Room, error) {
	if path == "" {
		return Fallback(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Info("no room seed found, using fallback world", "path", path)
			return Fallback(), nil
		}
		return nil, fmt.Errorf("reading room seed %q: %w", path, err)
	}

	var rooms []*game.Room
	if err := json.Unmarshal(data, &rooms); err != nil {
		return nil, fmt.Errorf("unmarshalling room seed %q: %w", path, err)
	}

	el := goerrors.NewErrorList()
	for i, r := range rooms {
		if r == nil {
			el.Add(fmt.Errorf("room %d: null entry", i))
			continue
		}
		if err := r.Validate(); err != nil {
			el.Add(fmt.Errorf("room %d: %w", i, err))
		}
	}
	if err := el.Err(); err != nil {
		return nil, fmt.Errorf("validating room seed %q: %w", path, err)
	}

	slog.Info("room seed loaded", "path", path, "rooms", len(rooms))
	return rooms, nil
}

// Fallback returns the built-in world: a town square with a road north.
func Fallback() []*game.Room {
	return []*game.Room{
		{
			ID:          "town_square",
			Name:        "Town Square",
			Description: "A bright open plaza.",
			Exits:       map[string]string{"n": "north_road"},
			Flags:       map[string]any{"safe": true},
		},
		{
			ID:          "north_road",
			Name:        "North Road",
			Description: "A quiet path heading north.",
			Exits:       map[string]string{"s": "town_square"},
			Flags:       map[string]any{},
		},
	}
}
