package game

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// UpsertMobTemplate creates or replaces a mob template. Existing placements
// keep pointing at the template id and pick up the new definition.
func (w *World) UpsertMobTemplate(t *MobTemplate) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.templates[t.ID] = t
}

// DeleteMobTemplate removes a template and cascades to every placement of it.
func (w *World) DeleteMobTemplate(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	delete(w.templates, id)
	for roomID, placed := range w.placements {
		kept := placed[:0]
		for _, pm := range placed {
			if pm.TemplateID != id {
				kept = append(kept, pm)
			}
		}
		w.placements[roomID] = kept
	}
}

// MobTemplate returns the template for id, or nil.
func (w *World) MobTemplate(id string) *MobTemplate {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.templates[id]
}

// MobTemplates returns all templates sorted by id.
func (w *World) MobTemplates() []*MobTemplate {
	w.mu.RLock()
	defer w.mu.RUnlock()

	templates := make([]*MobTemplate, 0, len(w.templates))
	for _, t := range w.templates {
		templates = append(templates, t)
	}
	sort.Slice(templates, func(i, j int) bool { return templates[i].ID < templates[j].ID })
	return templates
}

// PlaceMob adds an instance of a template to a room. Multiple instances of
// the same template in one room are distinguished by ordinal.
func (w *World) PlaceMob(templateID, roomID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.templates[templateID]; !ok {
		return fmt.Errorf("unknown mob template %q", templateID)
	}

	w.placements[roomID] = append(w.placements[roomID], &PlacedMob{
		TemplateID: templateID,
		RoomID:     roomID,
		Ordinal:    w.nextOrdinal(templateID, roomID),
	})
	return nil
}

func (w *World) nextOrdinal(templateID, roomID string) int {
	next := 0
	for _, pm := range w.placements[roomID] {
		if pm.TemplateID == templateID && pm.Ordinal >= next {
			next = pm.Ordinal + 1
		}
	}
	return next
}

// RemovePlacedMob removes one instance of a template from a room, lowest
// ordinal first. No-op if no instance matches.
func (w *World) RemovePlacedMob(templateID, roomID string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.removePlacement(templateID, roomID)
}

func (w *World) removePlacement(templateID, roomID string) bool {
	placed := w.placements[roomID]
	for i, pm := range placed {
		if pm.TemplateID == templateID {
			w.placements[roomID] = append(placed[:i], placed[i+1:]...)
			return true
		}
	}
	return false
}

// PlacedMobs returns every placement in the world, sorted by room then
// template then ordinal.
func (w *World) PlacedMobs() []*PlacedMob {
	w.mu.RLock()
	defer w.mu.RUnlock()

	var all []*PlacedMob
	for _, placed := range w.placements {
		all = append(all, placed...)
	}
	sort.Slice(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.RoomID != b.RoomID {
			return a.RoomID < b.RoomID
		}
		if a.TemplateID != b.TemplateID {
			return a.TemplateID < b.TemplateID
		}
		return a.Ordinal < b.Ordinal
	})
	return all
}

// DespawnMob removes one placement and, if the template defines a respawn
// interval, schedules it to reappear in the same room. The respawn is dropped
// if the template has been deleted by the time it fires.
func (w *World) DespawnMob(templateID, roomID string, now time.Time) {
	w.mu.Lock()
	removed := w.removePlacement(templateID, roomID)
	var respawn time.Duration
	if t, ok := w.templates[templateID]; ok && t.RespawnMS > 0 {
		respawn = time.Duration(t.RespawnMS) * time.Millisecond
	}
	w.mu.Unlock()

	if !removed || respawn == 0 {
		return
	}

	w.ScheduleAt(now.Add(respawn), func() {
		// PlaceMob errors only when the template is gone; nothing to respawn then.
		_ = w.PlaceMob(templateID, roomID)
	})
}

// wanderChance is the denominator of a wander mob's odds of stepping through
// an exit on a given AI step, roughly one move every four seconds at the
// default cadence.
const wanderChance = 4

// AIStep runs one behavioral decision per placed mob. Wander mobs may step
// through a random exit of their room; every other behavior currently decides
// to hold position. Must stay non-blocking: it runs on the tick loop.
func (w *World) AIStep(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	type relocation struct {
		pm *PlacedMob
		to string
	}
	var moves []relocation

	for roomID, placed := range w.placements {
		room, ok := w.rooms[roomID]
		if !ok || len(room.Exits) == 0 {
			continue
		}
		for _, pm := range placed {
			t, ok := w.templates[pm.TemplateID]
			if !ok || t.AI != BehaviorWander {
				continue
			}
			if w.rng.Intn(wanderChance) != 0 {
				continue
			}
			dirs := make([]string, 0, len(room.Exits))
			for dir := range room.Exits {
				dirs = append(dirs, dir)
			}
			sort.Strings(dirs)
			target := room.Exits[dirs[w.rng.Intn(len(dirs))]]
			if _, ok := w.rooms[target]; !ok {
				continue // dangling exit, stay put
			}
			moves = append(moves, relocation{pm: pm, to: target})
		}
	}

	for _, mv := range moves {
		placed := w.placements[mv.pm.RoomID]
		for i, pm := range placed {
			if pm == mv.pm {
				w.placements[mv.pm.RoomID] = append(placed[:i], placed[i+1:]...)
				break
			}
		}
		mv.pm.Ordinal = w.nextOrdinal(mv.pm.TemplateID, mv.to)
		mv.pm.RoomID = mv.to
		w.placements[mv.to] = append(w.placements[mv.to], mv.pm)
	}

	return nil
}
