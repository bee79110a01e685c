package fruit

import "github.com/vovakirdan/fruit-rush/internal/config"

// Kind identifies one of the four fruit.
type Kind int

const (
	Apple Kind = iota
	Grape
	Orange
	Pine

	KindCount = 4
)

// Kinds lists every fruit in resolution order.
var Kinds = [KindCount]Kind{Apple, Grape, Orange, Pine}

// scoreboardOrder is the order the game-over card lists fruit in.
var scoreboardOrder = [KindCount]Kind{Pine, Apple, Grape, Orange}

func (k Kind) String() string {
	switch k {
	case Apple:
		return "apple"
	case Grape:
		return "grape"
	case Orange:
		return "orange"
	case Pine:
		return "pine"
	default:
		return "unknown"
	}
}

// Valid reports whether k is one of the four kinds.
func (k Kind) Valid() bool {
	return k >= Apple && k <= Pine
}

// ParseKind maps a fruit name back to its Kind.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// sprite returns the configured footprint and value of k.
func sprite(t config.FruitTable, k Kind) config.FruitSprite {
	switch k {
	case Grape:
		return t.Grape
	case Orange:
		return t.Orange
	case Pine:
		return t.Pine
	default:
		return t.Apple
	}
}
