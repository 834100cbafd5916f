package cards

import (
	"math/bits"
	"strings"
)

// Mask is a set of identities, one bit per Card value.
// It records which identities the holder of a card still considers possible.
type Mask uint32

// MaskOf returns the Mask holding exactly the given Cards.
func MaskOf(cards ...Card) Mask {
	var result Mask
	for _, card := range cards {
		result |= 1 << card
	}
	return result
}

// SuitMask returns the Mask of every rank of the given suit.
func SuitMask(suit int) Mask {
	var result Mask
	for rank := 1; rank <= MaxRank; rank++ {
		result |= MaskOf(NewCard(suit, rank))
	}
	return result
}

// RankMask returns the Mask of the given rank across the first numSuits suits.
func RankMask(rank, numSuits int) Mask {
	var result Mask
	for suit := 0; suit < numSuits; suit++ {
		result |= MaskOf(NewCard(suit, rank))
	}
	return result
}

func (m Mask) Contains(card Card) bool {
	return m&(1<<card) != 0
}

func (m Mask) Len() int {
	return bits.OnesCount32(uint32(m))
}

// Iter calls cb for each Card in the Mask, in increasing order.
func (m Mask) Iter(cb func(card Card)) {
	for m != 0 {
		card := Card(bits.TrailingZeros32(uint32(m)))
		cb(card)
		m &^= 1 << card
	}
}

// All returns whether pred holds for every Card in the Mask.
// All returns false for an empty Mask.
func (m Mask) All(pred func(card Card) bool) bool {
	if m == 0 {
		return false
	}

	result := true
	m.Iter(func(card Card) {
		if !pred(card) {
			result = false
		}
	})
	return result
}

// String implements Stringer.
func (m Mask) String() string {
	result := make([]string, 0, m.Len())
	m.Iter(func(card Card) {
		result = append(result, card.String())
	})
	return "{" + strings.Join(result, ", ") + "}"
}
