package gamestate

import (
	"fmt"

	"github.com/will-hanabi-bot/endgame/cards"
)

// Advance returns the State reached by applying the action to state.
// If the action draws a card, drawn is its identity: cards.Trash for a card
// known to be useless, or cards.Unknown if it is not known at all.
//
// The given state is not modified.
func Advance(state State, action Action, drawn cards.Card) State {
	state.Apply(action, drawn)
	return state
}

// Apply modifies the State in place by applying the given Action.
func (s *State) Apply(action Action, drawn cards.Card) {
	if int(action.Player) >= int(s.NumPlayers) {
		panic(fmt.Errorf("invalid player %d for action type %d", uint8(action.Player), uint8(action.Type)))
	}

	switch action.Type {
	case Play:
		s.playCard(action, drawn)
	case Discard:
		s.discardCard(action, drawn)
	case ColourClue, RankClue:
		s.giveClue(action)
	default:
		panic(fmt.Errorf("invalid action type %d", uint8(action.Type)))
	}

	s.TurnCount++
}

func (s *State) playCard(action Action, drawn cards.Card) {
	card := s.removeFromHand(action)
	if s.Playable(card) {
		s.PlayStacks[card.Suit()]++
		if card.Rank() == cards.MaxRank {
			s.refundClue()
		}
	} else {
		s.Strikes++
		s.recordDiscard(card)
	}

	s.drawCard(action.Player, drawn)
}

func (s *State) discardCard(action Action, drawn cards.Card) {
	card := s.removeFromHand(action)
	s.recordDiscard(card)
	s.refundClue()
	s.drawCard(action.Player, drawn)
}

func (s *State) giveClue(action Action) {
	if s.ClueTokens == 0 {
		panic(fmt.Errorf("no clue tokens left for %v", action))
	}
	receiver := action.Receiver()
	if receiver == action.Player || int(receiver) >= int(s.NumPlayers) {
		panic(fmt.Errorf("invalid clue receiver: %v", action))
	}
	if action.Type == ColourClue && int(action.Value) >= int(s.NumSuits) {
		panic(fmt.Errorf("invalid clue colour: %v", action))
	}
	if action.Type == RankClue && (action.Value < 1 || action.Value > cards.MaxRank) {
		panic(fmt.Errorf("invalid clue rank: %v", action))
	}

	s.ClueTokens--
	if s.InCountdown() {
		s.EndgameTurns--
	}
}

func (s *State) removeFromHand(action Action) cards.Card {
	order := action.Order()
	idx := s.Hands[action.Player].IndexOf(order)
	if idx < 0 {
		panic(fmt.Errorf("card %d is not in the hand of %v", order, action.Player))
	}

	s.Hands[action.Player].RemoveCard(idx)
	return s.Cards[order]
}

// Discards of placeholder identities are not recorded, since they
// cannot change which cards are still needed.
func (s *State) recordDiscard(card cards.Card) {
	if card.IsIdentity() {
		s.Discards.Add(card)
	}
}

func (s *State) refundClue() {
	if s.ClueTokens < MaxClueTokens {
		s.ClueTokens++
	}
}

func (s *State) drawCard(player Player, drawn cards.Card) {
	if s.CardsLeft == 0 {
		if s.EndgameTurns <= 0 {
			panic(fmt.Errorf("no turns left in the game: %v", s))
		}
		s.EndgameTurns--
		return
	}

	s.Deal(player, drawn, s.Identities())
	s.CardsLeft--
	if s.CardsLeft == 0 {
		s.EndgameTurns = int8(s.NumPlayers)
	}
}
