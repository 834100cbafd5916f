package cards

import (
	"fmt"
	"strings"
)

const (
	bitsPerCardCount uint = 2
	maxCountPerType       = (1 << bitsPerCardCount) - 1
	mask                  = Set(1<<bitsPerCardCount) - 1
)

// Set represents an unordered multiset of card identities.
// Set[Card] is the number of copies of that Card in the set.
//
// No identity has more than 3 copies in any variant, so the count for
// each identity fits in 2 bits, and the counts for all 32 Card values
// fit in a single uint64: 2 bits per Card x 32 Cards = 64 bits.
type Set uint64

func NewSet() Set {
	return Set(0)
}

// IsEmpty returns whether this Set contains any Cards.
func (s Set) IsEmpty() bool {
	return s == 0
}

// CountOf gets the number of the given type of Card in the Set.
func (s Set) CountOf(card Card) uint8 {
	shift := uint(card) * bitsPerCardCount
	return uint8((s >> shift) & mask)
}

// Contains returns whether the Set contains at least one of the given type of Card.
func (s Set) Contains(card Card) bool {
	return s.CountOf(card) > 0
}

// Iter calls cb for each distinct Card in the Set, in increasing order.
func (s Set) Iter(cb func(card Card, count uint8)) {
	for card := Card(0); s > 0; card++ {
		count := uint8(s & mask)
		if count > 0 {
			cb(card, count)
		}
		s >>= bitsPerCardCount
	}
}

// Len gets the total number of Cards in the Set.
func (s Set) Len() int {
	n := 0
	s.Iter(func(card Card, count uint8) {
		n += int(count)
	})
	return n
}

// Add includes one of the given Card in the Set.
// Add panics if the Set already holds the maximum count of the Card.
func (s *Set) Add(card Card) {
	s.AddN(card, 1)
}

func (s *Set) AddN(card Card, n int) {
	if int(s.CountOf(card))+n > maxCountPerType {
		panic(fmt.Errorf("cannot hold more than %d copies of %v", maxCountPerType, card))
	}

	shift := uint(card) * bitsPerCardCount
	*s += Set(n) << shift
}

// Remove removes one of the given Card from the Set.
// Remove panics if the card is not present in the Set.
func (s *Set) Remove(card Card) {
	s.RemoveN(card, 1)
}

func (s *Set) RemoveN(card Card, n int) {
	if int(s.CountOf(card)) < n {
		panic(fmt.Errorf("card %v not in set", card))
	}

	shift := uint(card) * bitsPerCardCount
	*s -= Set(n) << shift
}

// String implements Stringer.
func (s Set) String() string {
	result := make([]string, 0)
	s.Iter(func(card Card, count uint8) {
		cardCount := fmt.Sprintf("%d %v", count, card)
		result = append(result, cardCount)
	})

	return "{" + strings.Join(result, ", ") + "}"
}
