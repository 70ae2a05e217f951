package game

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// Behavior selects the AI routine a mob runs during aiStep.
type Behavior string

const (
	BehaviorWander     Behavior = "wander"
	BehaviorGuard      Behavior = "guard"
	BehaviorAggressive Behavior = "aggressive"
	BehaviorPassive    Behavior = "passive"
)

// UnmarshalText validates the behavior tag while decoding editor payloads.
func (b *Behavior) UnmarshalText(text []byte) error {
	switch Behavior(text) {
	case BehaviorWander, BehaviorGuard, BehaviorAggressive, BehaviorPassive:
		*b = Behavior(text)
	default:
		return fmt.Errorf("unknown ai behavior: %s", text)
	}
	return nil
}

// MobTemplate is an authored mob definition. Placed instances reference it
// by id; deleting a template cascades to all of its placements.
type MobTemplate struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	BaseStats   Stats    `json:"baseStats"`
	AI          Behavior `json:"aiType"`
	RespawnMS   int      `json:"respawnMs"`
	Description string   `json:"description"`
}

// Validate checks the fields placements and AI depend on.
func (t *MobTemplate) Validate() error {
	el := errors.NewErrorList()

	if t.ID == "" {
		el.Add(fmt.Errorf("mob id is required"))
	}
	if t.Name == "" {
		el.Add(fmt.Errorf("mob name is required"))
	}
	if t.AI == "" {
		el.Add(fmt.Errorf("mob ai behavior is required"))
	}
	if t.RespawnMS < 0 {
		el.Add(fmt.Errorf("respawnMs must not be negative"))
	}

	return el.Err()
}

// PlacedMob is one instance of a template bound to a room. Instances of the
// same template in the same room are told apart by ordinal only.
type PlacedMob struct {
	TemplateID string `json:"id"`
	RoomID     string `json:"roomId"`
	Ordinal    int    `json:"ordinal"`
}

// MobRef is the compact mob view embedded in room snapshots.
type MobRef struct {
	TemplateID string   `json:"id"`
	Name       string   `json:"name"`
	AI         Behavior `json:"aiType"`
	Ordinal    int      `json:"ordinal"`
}
