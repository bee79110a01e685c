package fruit

// Snapshot is the serializable view of a game, sent to network clients and
// produced at the end of a replay. Uses primitive types only.
type Snapshot struct {
	Tick   uint64          `json:"tick" msgpack:"tick"`
	Status string          `json:"status" msgpack:"status"`
	Score  int             `json:"score" msgpack:"score"`
	Speed  float64         `json:"speed" msgpack:"speed"`
	Help   bool            `json:"help" msgpack:"help"`
	Player PlayerSnapshot  `json:"player" msgpack:"player"`
	Fruits []FruitSnapshot `json:"fruits" msgpack:"fruits"`
	Final  *FinalSnapshot  `json:"final,omitempty" msgpack:"final,omitempty"`
}

// PlayerSnapshot is the player part of a Snapshot.
type PlayerSnapshot struct {
	X         float64 `json:"x" msgpack:"x"`
	Y         float64 `json:"y" msgpack:"y"`
	Direction string  `json:"direction" msgpack:"direction"`
	Phase     int     `json:"phase" msgpack:"phase"`
}

// FruitSnapshot is one fruit slot of a Snapshot.
type FruitSnapshot struct {
	Kind   string  `json:"kind" msgpack:"kind"`
	X      float64 `json:"x" msgpack:"x"`
	Y      float64 `json:"y" msgpack:"y"`
	W      float64 `json:"w" msgpack:"w"` // Sprite footprint in field units
	H      float64 `json:"h" msgpack:"h"`
	Placed bool    `json:"placed" msgpack:"placed"`
	Count  int     `json:"count" msgpack:"count"`
	Points int     `json:"points" msgpack:"points"`
}

// FinalSnapshot is the game-over breakdown, listed in scoreboard order.
type FinalSnapshot struct {
	Items []FruitLine `json:"items" msgpack:"items"`
	Total int         `json:"total" msgpack:"total"`
}

// FruitLine is one row of the final breakdown.
type FruitLine struct {
	Kind   string `json:"kind" msgpack:"kind"`
	Count  int    `json:"count" msgpack:"count"`
	Points int    `json:"points" msgpack:"points"`
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	s := g.session
	p := s.Player()

	snap := Snapshot{
		Tick:   s.Tick(),
		Status: s.Status().String(),
		Score:  s.Score(),
		Speed:  p.Speed,
		Help:   g.showHelp,
		Player: PlayerSnapshot{
			X:         p.Pos.X,
			Y:         p.Pos.Y,
			Direction: p.Dir.String(),
			Phase:     p.Phase,
		},
		Fruits: make([]FruitSnapshot, 0, KindCount),
	}

	for _, k := range Kinds {
		pos, placed := s.Orchard().Position(k)
		w, h := s.Orchard().Footprint(k)
		snap.Fruits = append(snap.Fruits, FruitSnapshot{
			Kind:   k.String(),
			X:      pos.X,
			Y:      pos.Y,
			W:      w,
			H:      h,
			Placed: placed,
			Count:  s.Orchard().Count(k),
			Points: s.Orchard().Points(k),
		})
	}

	if b, ok := s.Breakdown(); ok {
		final := &FinalSnapshot{Total: b.Total}
		for _, k := range scoreboardOrder {
			line := b.Lines[k]
			final.Items = append(final.Items, FruitLine{
				Kind:   line.Kind.String(),
				Count:  line.Count,
				Points: line.Points,
			})
		}
		snap.Final = final
	}

	return snap
}

// ShowingHelp reports whether the help card is open.
func (g *Game) ShowingHelp() bool {
	return g.showHelp
}
