package endgame

import (
	"github.com/will-hanabi-bot/endgame/cards"
	"github.com/will-hanabi-bot/endgame/gamestate"
)

// Unwinnable returns true if the max score provably cannot be reached
// from the state with the given player to act. It only checks necessary
// conditions, so false does not mean the game can be won.
func Unwinnable(state *gamestate.State, actor gamestate.Player) bool {
	if state.Strikes >= gamestate.MaxStrikes {
		return true
	}

	need := state.MaxScore() - state.Score()
	if need == 0 {
		return false
	}

	numPlayers := int(state.NumPlayers)
	if state.InCountdown() {
		// No more cards can be drawn: each player can add at most one card
		// per turn they have left, and only cards they already hold.
		var turns [gamestate.MaxPlayers]int
		for i := 0; i < int(state.EndgameTurns); i++ {
			turns[(int(actor)+i)%numPlayers]++
		}

		plays := 0
		for p := 0; p < numPlayers; p++ {
			plays += min(turns[p], usefulInHand(state, gamestate.Player(p)))
		}
		return plays < need
	}

	if state.Pace() < 0 {
		return true
	}

	// Players with nothing useful in hand can only stall. Each stall
	// beyond the clue tokens costs a discard, which refunds a token for
	// the next staller.
	stallers := 0
	for i := 0; i < numPlayers; i++ {
		p := gamestate.Player((int(actor) + i) % numPlayers)
		if usefulInHand(state, p) > 0 {
			break
		}
		stallers++
	}
	if excess := stallers - int(state.ClueTokens); excess > 0 {
		return (excess+1)/2 > state.Pace()
	}

	return false
}

func usefulInHand(state *gamestate.State, player gamestate.Player) int {
	n := 0
	for _, order := range state.HandOf(player) {
		if state.PossiblyUseful(order) {
			n++
		}
	}
	return n
}

// TriviallyWinnable returns true if the game is won simply by every
// player, in turn, playing a card they already know is playable.
// The returned action is the first such play, or NoAction if the
// score is already the max.
func TriviallyWinnable(state *gamestate.State, actor gamestate.Player) (bool, gamestate.Action) {
	score, maxScore := state.Score(), state.MaxScore()
	if score == maxScore {
		return true, gamestate.Action{}
	}
	if state.Strikes >= gamestate.MaxStrikes {
		return false, gamestate.Action{}
	}

	// Every action is a play, so the deck runs out after CardsLeft turns.
	turns := int(state.EndgameTurns)
	if !state.InCountdown() {
		turns = int(state.CardsLeft) + int(state.NumPlayers)
	}
	if turns < maxScore-score {
		return false, gamestate.Action{}
	}

	numPlayers := int(state.NumPlayers)
	stacks := state.PlayStacks
	var played uint64
	var first gamestate.Action
	for i := 0; score < maxScore; i++ {
		p := gamestate.Player((int(actor) + i) % numPlayers)
		order, ok := knownPlayable(state, p, &stacks, played)
		if !ok {
			return false, gamestate.Action{}
		}
		if i == 0 {
			first = gamestate.NewPlay(p, order)
		}

		stacks[state.Cards[order].Suit()]++
		played |= 1 << uint(order)
		score++
	}

	return true, first
}

// knownPlayable finds a card the player knows is playable on the given
// stacks, among the cards not played yet.
func knownPlayable(state *gamestate.State, player gamestate.Player,
	stacks *[cards.MaxSuits]uint8, played uint64) (int, bool) {
	playable := func(card cards.Card) bool {
		return card.IsIdentity() && card.Rank() == int(stacks[card.Suit()])+1
	}

	for _, order := range state.HandOf(player) {
		if played&(1<<uint(order)) != 0 {
			continue
		}
		if playable(state.Cards[order]) && state.Thoughts[order].All(playable) {
			return order, true
		}
	}
	return 0, false
}

// bottomDecked returns true if the last card of the deck is the only
// copy of an identity that cannot be played in time once drawn.
//
// Whoever draws the final card gets one more turn. Before then, only the
// drawing action and the turns of the other players can play the lower
// ranks of its suit.
func bottomDecked(state *gamestate.State, remaining Remaining) bool {
	if state.CardsLeft != 1 || remaining.IsEmpty() {
		return false
	}

	result := true
	remaining.Iter(func(entry RemainingEntry) {
		card := entry.Card
		gap := card.Rank() - int(state.PlayStacks[card.Suit()]) - 1
		if !state.Critical(card) || gap <= int(state.NumPlayers) {
			result = false
		}
	})
	return result
}
