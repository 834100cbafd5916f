package endgame

import (
	"github.com/will-hanabi-bot/endgame/gamestate"
)

// ClueFinder proposes the clues worth considering for the giver.
type ClueFinder interface {
	FindClues(state *gamestate.State, giver gamestate.Player) []gamestate.Action
}

// Discard is a card a DiscardFinder proposes to get rid of.
// A Misplay discards the card by deliberately playing it, spending a
// strike instead of a turn without a clue.
type Discard struct {
	Order   int
	Misplay bool
}

// DiscardFinder proposes the discards worth considering for the player.
type DiscardFinder interface {
	FindDiscards(state *gamestate.State, player gamestate.Player) []Discard
}

// ClueFinderFunc adapts a function to a ClueFinder.
type ClueFinderFunc func(state *gamestate.State, giver gamestate.Player) []gamestate.Action

func (f ClueFinderFunc) FindClues(state *gamestate.State, giver gamestate.Player) []gamestate.Action {
	return f(state, giver)
}

// DiscardFinderFunc adapts a function to a DiscardFinder.
type DiscardFinderFunc func(state *gamestate.State, player gamestate.Player) []Discard

func (f DiscardFinderFunc) FindDiscards(state *gamestate.State, player gamestate.Player) []Discard {
	return f(state, player)
}

// Strategy bundles the convention-specific finders used by the solver.
// Either may be nil, in which case no such candidates are proposed.
type Strategy struct {
	Clues    ClueFinder
	Discards DiscardFinder
}

// DefaultStrategy only proposes convention-free candidates.
var DefaultStrategy = Strategy{
	Clues:    StallClueFinder{},
	Discards: TrashDiscardFinder{},
}

// StallClueFinder proposes a single clue to the next player.
// Clues do not change what anyone knows in the solver, so one
// is as good as any other for passing the turn.
type StallClueFinder struct{}

func (StallClueFinder) FindClues(state *gamestate.State, giver gamestate.Player) []gamestate.Action {
	if state.ClueTokens == 0 {
		return nil
	}
	return []gamestate.Action{blindClue(state, giver)}
}

// TrashDiscardFinder proposes the first card its holder knows is trash,
// or failing that their oldest card.
type TrashDiscardFinder struct{}

func (TrashDiscardFinder) FindDiscards(state *gamestate.State, player gamestate.Player) []Discard {
	hand := state.HandOf(player)
	if len(hand) == 0 {
		return nil
	}

	for _, order := range hand {
		if state.ThinksTrash(order) {
			return []Discard{{Order: order}}
		}
	}
	return []Discard{{Order: hand[len(hand)-1]}}
}

// blindClue returns a rank clue to the next player touching their
// newest card with a known identity.
func blindClue(state *gamestate.State, giver gamestate.Player) gamestate.Action {
	receiver := giver.Next(int(state.NumPlayers))
	for _, order := range state.HandOf(receiver) {
		if card := state.Cards[order]; card.IsIdentity() {
			return gamestate.NewRankClue(giver, receiver, card.Rank())
		}
	}
	return gamestate.NewRankClue(giver, receiver, 1)
}
