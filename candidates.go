package endgame

import (
	"fmt"

	"github.com/will-hanabi-bot/endgame/cards"
	"github.com/will-hanabi-bot/endgame/frac"
	"github.com/will-hanabi-bot/endgame/gamestate"
)

// branch is one possible identity of the top card of the deck.
type branch struct {
	card   cards.Card
	weight frac.Frac
}

// drawBranches returns every identity the next drawn card could have,
// weighted by the share of the deck it makes up. Cards in the deck that
// are not remaining identities are useless and drawn as cards.Trash.
// If the deck is empty, the only branch is drawing nothing.
func drawBranches(state *gamestate.State, remaining Remaining) []branch {
	if state.CardsLeft == 0 {
		return append(allocBranchSlice(), branch{card: cards.Unknown, weight: frac.One})
	}

	cardsLeft := int(state.CardsLeft)
	if remaining.Len() > cardsLeft {
		panic(fmt.Errorf("%d remaining identities in a deck of %d: %v",
			remaining.Len(), cardsLeft, remaining))
	}

	result := allocBranchSlice()
	remaining.Iter(func(entry RemainingEntry) {
		result = append(result, branch{
			card:   entry.Card,
			weight: frac.New(uint64(entry.Missing), uint64(cardsLeft)),
		})
	})
	if trash := cardsLeft - remaining.Len(); trash > 0 {
		result = append(result, branch{
			card:   cards.Trash,
			weight: frac.New(uint64(trash), uint64(cardsLeft)),
		})
	}
	return result
}

// outcomes returns the possible draws after the action is taken.
// Clues draw nothing. The result may be released with freeBranchSlice.
func outcomes(state *gamestate.State, action gamestate.Action, remaining Remaining) []branch {
	if action.IsClue() {
		return append(allocBranchSlice(), branch{card: cards.Unknown, weight: frac.One})
	}
	return drawBranches(state, remaining)
}

// successor returns the state and remaining identities after the action
// is taken and, for plays and discards, the given card is drawn.
func successor(state *gamestate.State, action gamestate.Action, drawn cards.Card,
	remaining Remaining) (gamestate.State, Remaining) {
	next := gamestate.Advance(*state, action, drawn)
	if drawn.IsIdentity() {
		remaining = remaining.Remove(drawn)
	}
	return next, remaining
}

// candidates returns the actions worth searching for the actor, in a
// stable order: known plays, clues, discards, and a blind clue if
// nothing else was found.
//
// If checkClues is set, clues after which the game provably cannot be
// won are left out. The result may be released with freeActionSlice.
func (s *Session) candidates(state *gamestate.State, actor gamestate.Player,
	remaining Remaining, depth int, checkClues bool) ([]gamestate.Action, error) {
	result := allocActionSlice()
	add := func(action gamestate.Action) {
		for _, a := range result {
			if a == action {
				return
			}
		}
		result = append(result, action)
	}

	for _, order := range state.HandOf(actor) {
		if !state.ThinksPlayable(order) {
			continue
		}
		if action := gamestate.NewPlay(actor, order); s.keepAction(state, action, remaining) {
			add(action)
		}
	}

	if state.ClueTokens > 0 && s.strategy.Clues != nil {
		next := actor.Next(int(state.NumPlayers))
		for _, clue := range s.strategy.Clues.FindClues(state, actor) {
			if !clue.IsClue() || clue.Player != actor {
				panic(fmt.Errorf("clue finder proposed %v for %v", clue, actor))
			}

			if checkClues {
				after := gamestate.Advance(*state, clue, cards.Unknown)
				ok, err := s.winnable(&after, next, remaining, depth+1)
				if err != nil {
					freeActionSlice(result)
					return nil, err
				}
				if !ok {
					continue
				}
			}
			add(clue)
		}
	}

	if s.strategy.Discards != nil {
		for _, discard := range s.strategy.Discards.FindDiscards(state, actor) {
			var action gamestate.Action
			if discard.Misplay {
				if int(state.Strikes)+1 >= gamestate.MaxStrikes {
					continue
				}
				action = gamestate.NewPlay(actor, discard.Order)
			} else {
				if state.ClueTokens >= gamestate.MaxClueTokens {
					continue
				}
				if !state.InCountdown() && state.Pace() <= 0 {
					continue
				}
				action = gamestate.NewDiscard(actor, discard.Order)
			}

			if s.keepAction(state, action, remaining) {
				add(action)
			}
		}
	}

	if len(result) == 0 && state.ClueTokens > 0 {
		add(blindClue(state, actor))
	}

	return result, nil
}

// keepAction returns whether some outcome of the action leaves a
// position that is not provably lost.
func (s *Session) keepAction(state *gamestate.State, action gamestate.Action, remaining Remaining) bool {
	next := action.Player.Next(int(state.NumPlayers))
	branches := outcomes(state, action, remaining)
	defer freeBranchSlice(branches)
	for _, b := range branches {
		after, _ := successor(state, action, b.card, remaining)
		if !s.lost(&after) && !Unwinnable(&after, next) {
			return true
		}
	}
	return false
}
