package endgame

import (
	"context"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/will-hanabi-bot/endgame/cards"
	"github.com/will-hanabi-bot/endgame/gamestate"
)

// Winnable returns whether any sequence of candidate actions and draws
// reaches the max score from the state. It ignores how likely the draws
// are, so it is much cheaper than a full solve.
//
// The state must be fully instantiated: every card in hand has an
// identity, and remaining fits in the deck.
func (s *Session) Winnable(ctx context.Context, state gamestate.State,
	actor gamestate.Player, remaining Remaining) (bool, error) {
	if err := state.Validate(); err != nil {
		return false, errors.Wrap(err, "invalid state")
	}
	if err := validatePlayers(&state, actor); err != nil {
		return false, err
	}
	if err := validateInstantiated(&state, remaining); err != nil {
		return false, err
	}

	s.begin(ctx, &state)
	return s.winnable(&state, actor, remaining, 0)
}

func (s *Session) winnable(state *gamestate.State, actor gamestate.Player,
	remaining Remaining, depth int) (bool, error) {
	if err := s.checkDeadline(); err != nil {
		return false, err
	}
	s.visit()

	key := s.key(state, actor, remaining)
	if cached, ok := s.winnableCache.Get(key); ok {
		s.hit()
		return cached.(bool), nil
	}

	result, err := s.searchWinnable(state, actor, remaining, depth)
	if err != nil {
		return false, err
	}

	s.winnableCache.Add(key, result)
	return result, nil
}

func (s *Session) searchWinnable(state *gamestate.State, actor gamestate.Player,
	remaining Remaining, depth int) (bool, error) {
	if s.lost(state) {
		return false, nil
	}
	if state.Score() == state.MaxScore() {
		return true, nil
	}
	if state.GameOver() {
		return false, nil
	}
	if ok, _ := TriviallyWinnable(state, actor); ok {
		return true, nil
	}
	if Unwinnable(state, actor) || bottomDecked(state, remaining) {
		return false, nil
	}

	actions, err := s.candidates(state, actor, remaining, depth, false)
	if err != nil {
		return false, err
	}
	defer freeActionSlice(actions)

	next := actor.Next(int(state.NumPlayers))
	for _, action := range actions {
		ok, err := s.winnableAfter(state, action, next, remaining, depth)
		if err != nil {
			return false, err
		}
		if ok {
			glog.V(4).Infof("%*s%v can win with %v", depth, "", actor, action)
			return true, nil
		}
	}

	return false, nil
}

// winnableAfter returns whether some draw after the action leaves a
// winnable position.
func (s *Session) winnableAfter(state *gamestate.State, action gamestate.Action,
	next gamestate.Player, remaining Remaining, depth int) (bool, error) {
	branches := outcomes(state, action, remaining)
	defer freeBranchSlice(branches)
	for _, b := range branches {
		after, afterRemaining := successor(state, action, b.card, remaining)
		ok, err := s.winnable(&after, next, afterRemaining, depth+1)
		if err != nil || ok {
			return ok, err
		}
	}
	return false, nil
}

func validateInstantiated(state *gamestate.State, remaining Remaining) error {
	for p := 0; p < int(state.NumPlayers); p++ {
		for _, order := range state.HandOf(gamestate.Player(p)) {
			if state.Cards[order] == cards.Unknown {
				return errors.Errorf("card %d held by %v has no identity", order, gamestate.Player(p))
			}
		}
	}
	if state.CardsLeft > 0 && remaining.Len() > int(state.CardsLeft) {
		return errors.Errorf("%d remaining identities in a deck of %d",
			remaining.Len(), state.CardsLeft)
	}
	return nil
}
