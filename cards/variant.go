package cards

import (
	"github.com/pkg/errors"
)

// Suit is one colour of cards in a Variant.
type Suit struct {
	Name string
	// Dark suits have only a single copy of each rank.
	Dark bool
}

// Variant describes the suits in play and, through them, how many copies
// of each identity the deck holds.
type Variant struct {
	Name  string
	Suits []Suit
}

var (
	NoVariant = Variant{
		Name: "No Variant",
		Suits: []Suit{
			{Name: "Red"}, {Name: "Yellow"}, {Name: "Green"},
			{Name: "Blue"}, {Name: "Purple"},
		},
	}

	SixSuits = Variant{
		Name: "6 Suits",
		Suits: []Suit{
			{Name: "Red"}, {Name: "Yellow"}, {Name: "Green"},
			{Name: "Blue"}, {Name: "Purple"}, {Name: "Teal"},
		},
	}

	Black = Variant{
		Name: "Black (6 Suits)",
		Suits: []Suit{
			{Name: "Red"}, {Name: "Yellow"}, {Name: "Green"},
			{Name: "Blue"}, {Name: "Purple"}, {Name: "Black", Dark: true},
		},
	}
)

var variants = map[string]Variant{
	NoVariant.Name: NoVariant,
	SixSuits.Name:  SixSuits,
	Black.Name:     Black,
}

// LookupVariant returns the built-in Variant with the given name.
func LookupVariant(name string) (Variant, error) {
	v, ok := variants[name]
	if !ok {
		return Variant{}, errors.Errorf("unknown variant: %q", name)
	}
	return v, nil
}

func (v Variant) NumSuits() int {
	return len(v.Suits)
}

// Copies returns the number of physical copies of the given identity.
func (v Variant) Copies(card Card) int {
	if !card.IsIdentity() || card.Suit() >= len(v.Suits) {
		return 0
	}

	if v.Suits[card.Suit()].Dark {
		return 1
	}

	switch card.Rank() {
	case 1:
		return 3
	case MaxRank:
		return 1
	default:
		return 2
	}
}

// Deck returns every physical card of the Variant.
func (v Variant) Deck() Set {
	result := NewSet()
	for suit := range v.Suits {
		for rank := 1; rank <= MaxRank; rank++ {
			card := NewCard(suit, rank)
			result.AddN(card, v.Copies(card))
		}
	}
	return result
}

// Identities returns the Mask of every identity in the Variant.
func (v Variant) Identities() Mask {
	var result Mask
	for suit := range v.Suits {
		result |= SuitMask(suit)
	}
	return result
}

func (v Variant) String() string {
	return v.Name
}
