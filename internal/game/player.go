package game

// Stats is the basic stat block shared by players and mob templates.
type Stats struct {
	HP    int `json:"hp"`
	MaxHP int `json:"maxHp"`
	Atk   int `json:"atk"`
	Def   int `json:"def"`
}

// DefaultStats returns the stat block assigned to newly created players.
func DefaultStats() Stats {
	return Stats{HP: 10, MaxHP: 10, Atk: 2, Def: 0}
}

// Player is a named actor in the world. The record outlives its connection:
// a disconnect only detaches the conn handle so the same name can reattach
// later. RoomID always refers to a room in the registry the player was placed
// into; the world never deletes players.
type Player struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	RoomID    string   `json:"roomId"`
	Stats     Stats    `json:"stats"`
	Inventory []string `json:"inventory"`

	conn Conn
}

// Conn returns the live connection handle, or nil when the player is detached.
func (p *Player) Conn() Conn {
	return p.conn
}

// Connected reports whether the player currently has a live connection.
func (p *Player) Connected() bool {
	return p.conn != nil
}

// PlayerRef is the compact player view embedded in room snapshots.
type PlayerRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Ref returns the snapshot view of the player.
func (p *Player) Ref() PlayerRef {
	return PlayerRef{ID: p.ID, Name: p.Name}
}
