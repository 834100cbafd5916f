package endgame

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/will-hanabi-bot/endgame/cards"
	"github.com/will-hanabi-bot/endgame/gamestate"
)

// Beliefs is the view of the belief-state engine the solver consumes.
type Beliefs interface {
	// Possible returns the identities a card of the solving player could
	// still be, most likely first. A single identity means the card is
	// certain; an empty list means nothing is known about it.
	Possible(order int) []cards.Card
}

// PossibleMap is a Beliefs backed by a map from card order to identities.
type PossibleMap map[int][]cards.Card

func (m PossibleMap) Possible(order int) []cards.Card {
	return m[order]
}

// RemainingEntry is the unresolved copies of one identity.
type RemainingEntry struct {
	Card    cards.Card
	Missing int
	// All is true when no copy of the identity has been seen at all.
	All bool
}

func (e RemainingEntry) String() string {
	if e.All {
		return fmt.Sprintf("%v x%d (all)", e.Card, e.Missing)
	}
	return fmt.Sprintf("%v x%d", e.Card, e.Missing)
}

// Remaining is the multiset of useful identities whose location is not
// known to the solver.
//
// Remaining is a value type. Remove returns a new Remaining, so every
// branch of the search can consume copies independently.
type Remaining struct {
	missing cards.Set
	total   cards.Set
}

// FindRemaining computes the Remaining identities of the state.
//
// Only useful identities are tracked: for each, the number of copies
// neither visible in a hand nor discarded. FindRemaining fails with
// ErrTooMuchHiddenInformation if more than maxUnseen identities have no
// copy seen at all.
func FindRemaining(state *gamestate.State, maxUnseen int) (Remaining, error) {
	visible := cards.NewSet()
	for p := 0; p < int(state.NumPlayers); p++ {
		for _, order := range state.HandOf(gamestate.Player(p)) {
			if card := state.Cards[order]; card.IsIdentity() {
				visible.Add(card)
			}
		}
	}

	result := Remaining{total: state.Deck}
	unseen := 0
	state.Deck.Iter(func(card cards.Card, count uint8) {
		if !state.Useful(card) {
			return
		}

		accounted := int(visible.CountOf(card)) + int(state.Discards.CountOf(card))
		missing := int(count) - accounted
		if missing < 0 {
			panic(fmt.Errorf("%d copies of %v accounted for, but only %d exist",
				accounted, card, count))
		}
		if missing == int(count) {
			unseen++
		}
		if missing > 0 {
			result.missing.AddN(card, missing)
		}
	})

	if unseen > maxUnseen {
		return Remaining{}, errors.Wrapf(ErrTooMuchHiddenInformation,
			"%d identities entirely unseen (limit %d)", unseen, maxUnseen)
	}

	return result, nil
}

// Remove returns a copy of r with one copy of card consumed.
// Remove panics if no copy of card remains.
func (r Remaining) Remove(card cards.Card) Remaining {
	r.missing.Remove(card)
	return r
}

// CountOf returns the number of missing copies of card.
func (r Remaining) CountOf(card cards.Card) int {
	return int(r.missing.CountOf(card))
}

// Len returns the total number of missing copies.
func (r Remaining) Len() int {
	return r.missing.Len()
}

func (r Remaining) IsEmpty() bool {
	return r.missing.IsEmpty()
}

// Iter calls cb for each entry, in identity order.
func (r Remaining) Iter(cb func(entry RemainingEntry)) {
	r.missing.Iter(func(card cards.Card, count uint8) {
		cb(RemainingEntry{
			Card:    card,
			Missing: int(count),
			All:     count == r.total.CountOf(card),
		})
	})
}

// Entries returns every entry, in identity order.
func (r Remaining) Entries() []RemainingEntry {
	var result []RemainingEntry
	r.Iter(func(entry RemainingEntry) {
		result = append(result, entry)
	})
	return result
}

// String implements Stringer.
func (r Remaining) String() string {
	entries := make([]string, 0)
	r.Iter(func(entry RemainingEntry) {
		entries = append(entries, entry.String())
	})
	return "{" + strings.Join(entries, ", ") + "}"
}
