package game

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// Room is a location node in the world graph. Exits map a normalized
// direction token (n/s/e/w) to a target room id. Exits are not guaranteed
// symmetric, and a target id is not validated against the registry: a
// dangling exit is simply a dead end at move time.
type Room struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Exits       map[string]string `json:"exits"`
	Flags       map[string]any    `json:"staticFlags,omitempty"`
}

// Validate checks the fields the world can't operate without.
func (r *Room) Validate() error {
	el := errors.NewErrorList()

	if r.ID == "" {
		el.Add(fmt.Errorf("room id is required"))
	}
	if r.Name == "" {
		el.Add(fmt.Errorf("room name is required"))
	}
	for dir, target := range r.Exits {
		if target == "" {
			el.Add(fmt.Errorf("exit %s: target room id is required", dir))
		}
	}

	return el.Err()
}

// RoomSnapshot is the derived, client-facing view of a room: its static
// fields plus whoever and whatever is currently inside. It is computed on
// demand and never stored.
type RoomSnapshot struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Exits       map[string]string `json:"exits"`
	Players     []PlayerRef       `json:"players"`
	Mobs        []MobRef          `json:"mobs"`
}
