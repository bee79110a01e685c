package fruit

import (
	"github.com/vovakirdan/fruit-rush/internal/config"
	"github.com/vovakirdan/fruit-rush/internal/core"
)

// slot is the live state of one fruit kind.
type slot struct {
	pos    core.Vec
	placed bool // false until the first placement; unplaced fruit exclude nothing
	count  int
}

// Orchard is the collectible registry: one slot per kind, plus the fixed
// point table and footprints.
type Orchard struct {
	slots   [KindCount]slot
	sprites [KindCount]config.FruitSprite
	placer  *Placer
}

// NewOrchard creates an orchard with no fruit placed yet.
func NewOrchard(table config.FruitTable, placer *Placer) *Orchard {
	o := &Orchard{placer: placer}
	for _, k := range Kinds {
		o.sprites[k] = sprite(table, k)
	}
	return o
}

// Position returns the fruit's position and whether it has ever been placed.
func (o *Orchard) Position(k Kind) (core.Vec, bool) {
	return o.slots[k].pos, o.slots[k].placed
}

// Points returns the value of one k.
func (o *Orchard) Points(k Kind) int {
	return o.sprites[k].Points
}

// Count returns how many k were collected this run.
func (o *Orchard) Count(k Kind) int {
	return o.slots[k].count
}

// Footprint returns the sprite size of k in field units.
func (o *Orchard) Footprint(k Kind) (w, h float64) {
	return o.sprites[k].Width, o.sprites[k].Height
}

// others returns the placed positions of every kind except k.
func (o *Orchard) others(k Kind) []core.Vec {
	out := make([]core.Vec, 0, KindCount-1)
	for _, other := range Kinds {
		if other == k || !o.slots[other].placed {
			continue
		}
		out = append(out, o.slots[other].pos)
	}
	return out
}

// Regenerate moves k to a fresh spot clear of player and the other fruit.
// On error the fruit keeps its previous position.
func (o *Orchard) Regenerate(k Kind, player core.Vec) (core.Vec, error) {
	pos, err := o.placer.Place(player, o.others(k))
	if err != nil {
		return o.slots[k].pos, err
	}
	o.slots[k].pos = pos
	o.slots[k].placed = true
	return pos, nil
}

// Collect counts one pickup of k, returns its points and regenerates it.
// The points are awarded even if regeneration fails.
func (o *Orchard) Collect(k Kind, player core.Vec) (int, error) {
	o.slots[k].count++
	_, err := o.Regenerate(k, player)
	return o.Points(k), err
}

// ResetCounts zeroes every count. Positions are kept and act as exclusion
// points for the next round of placements.
func (o *Orchard) ResetCounts() {
	for i := range o.slots {
		o.slots[i].count = 0
	}
}

// Total returns Σ count×points.
func (o *Orchard) Total() int {
	total := 0
	for _, k := range Kinds {
		total += o.slots[k].count * o.sprites[k].Points
	}
	return total
}
