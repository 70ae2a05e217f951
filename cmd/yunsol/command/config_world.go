package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-errors"
)

const defaultStartRoom = "town_square"

type WorldConfig struct {
	SeedPath  string `json:"seed_path"`
	StartRoom string `json:"start_room"`
}

func (w *WorldConfig) validate() error {
	el := errors.NewErrorList()

	if w.SeedPath != "" {
		if _, err := os.Stat(w.SeedPath); err != nil && !os.IsNotExist(err) {
			el.Add(fmt.Errorf("seed_path %q: %w", w.SeedPath, err))
		}
	}

	return el.Err()
}

func (w *WorldConfig) startRoom() string {
	if w.StartRoom != "" {
		return w.StartRoom
	}
	return defaultStartRoom
}
