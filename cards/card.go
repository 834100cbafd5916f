package cards

import (
	"fmt"
)

const (
	// MaxSuits is the largest number of suits in any supported variant.
	MaxSuits = 6
	// MaxRank is the highest rank of every suit.
	MaxRank = 5
)

// Card represents the identity (suit and rank) of one Hanabi card.
//
// Identities are packed as suit*MaxRank + rank, so that every identity of
// every supported variant fits in the range [1, 30]. The zero value is
// Unknown, used for cards the solver has not resolved yet.
type Card uint8

const (
	Unknown Card = 0
	// Placeholder for a card that is known to be useless, but whose exact
	// identity does not matter.
	Trash Card = MaxSuits*MaxRank + 1
)

// NumTypes is the number of distinct values a Card may take,
// including the Unknown and Trash placeholders.
const NumTypes = int(Trash) + 1

// NewCard returns the identity with the given suit index and rank.
func NewCard(suit, rank int) Card {
	if suit < 0 || suit >= MaxSuits || rank < 1 || rank > MaxRank {
		panic(fmt.Errorf("invalid identity: suit %d rank %d", suit, rank))
	}

	return Card(suit*MaxRank + rank)
}

// IsIdentity returns whether the Card is a real suit/rank identity,
// rather than one of the placeholders.
func (c Card) IsIdentity() bool {
	return c != Unknown && c < Trash
}

// Suit returns the suit index of the Card.
func (c Card) Suit() int {
	return int(c-1) / MaxRank
}

// Rank returns the rank (1-5) of the Card.
func (c Card) Rank() int {
	return int(c-1)%MaxRank + 1
}

var suitStr = [...]string{"r", "y", "g", "b", "p", "t"}

// String implements Stringer.
func (c Card) String() string {
	switch c {
	case Unknown:
		return "Unknown"
	case Trash:
		return "Trash"
	}

	if !c.IsIdentity() {
		return fmt.Sprintf("Card(%d)", uint8(c))
	}
	return fmt.Sprintf("%s%d", suitStr[c.Suit()], c.Rank())
}
