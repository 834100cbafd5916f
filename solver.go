// Package endgame finds the action that maximizes the exact probability
// of winning a Hanabi game once the deck is nearly exhausted.
package endgame

import (
	"context"
	"fmt"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/will-hanabi-bot/endgame/frac"
	"github.com/will-hanabi-bot/endgame/gamestate"
)

// ActionValue is the exact probability of winning after an action.
type ActionValue struct {
	Action  gamestate.Action
	Winrate frac.Frac
}

func (av ActionValue) String() string {
	return fmt.Sprintf("%v (%v)", av.Action, av.Winrate)
}

// Result is the outcome of a solve.
type Result struct {
	// Action is the best action, or NoAction if the game is already won.
	Action  gamestate.Action
	Winrate frac.Frac
	// Values holds the winrate of every action considered for the player
	// to act, in the order they were first found.
	Values []ActionValue
}

// node is the memoized result of searching one position.
type node struct {
	values []ActionValue
	best   frac.Frac
}

// Solve finds the action for the player to act that maximizes the exact
// probability of reaching the max score.
//
// The search is done from the point of view of us: unresolved cards in
// our hand are enumerated according to beliefs, while every other card
// in a hand must already be known.
//
// If no action can win, Solve returns the best (zero) result together
// with ErrUnwinnable. If the search cannot finish, it returns
// ErrTimedOut or ErrTooMuchHiddenInformation.
func Solve(ctx context.Context, state gamestate.State, us, turn gamestate.Player,
	beliefs Beliefs, strategy Strategy, config Config) (Result, error) {
	session, err := NewSession(config, strategy)
	if err != nil {
		return Result{}, err
	}

	return session.Solve(ctx, state, us, turn, beliefs)
}

// Solve is like the package-level Solve, but reuses the caches of the
// Session. The Session must have been Reset if it was last used for a
// different game.
func (s *Session) Solve(ctx context.Context, state gamestate.State, us, turn gamestate.Player,
	beliefs Beliefs) (Result, error) {
	if err := state.Validate(); err != nil {
		return Result{}, errors.Wrap(err, "invalid state")
	}
	if err := validatePlayers(&state, us, turn); err != nil {
		return Result{}, err
	}

	s.begin(ctx, &state)
	if state.Score() == state.MaxScore() {
		return Result{Winrate: frac.One}, nil
	}

	remaining, err := FindRemaining(&state, s.config.MaxUnseen)
	if err != nil {
		return Result{}, err
	}

	arrangements, err := enumerateArrangements(&state, us, beliefs, remaining)
	if err != nil {
		return Result{}, err
	}
	glog.V(1).Infof("Solving for %v with %d arrangements, remaining: %v",
		turn, len(arrangements), remaining)

	totals := make(map[gamestate.Action]frac.Frac)
	var order []gamestate.Action
	for _, arr := range arrangements {
		hypo, hypoRemaining := arr.instantiate(state, remaining)
		result, err := s.evaluate(&hypo, turn, hypoRemaining, 0, true)
		if err != nil {
			return Result{}, err
		}

		glog.V(2).Infof("Arrangement %v (%v): %v", arr.cards, arr.weight, result.values)
		for _, av := range result.values {
			if _, ok := totals[av.Action]; !ok {
				order = append(order, av.Action)
			}
			totals[av.Action] = totals[av.Action].Add(arr.weight.Mul(av.Winrate))
		}
	}

	var best Result
	for _, action := range order {
		winrate := totals[action]
		best.Values = append(best.Values, ActionValue{Action: action, Winrate: winrate})
		if len(best.Values) == 1 || best.Winrate.Less(winrate) {
			best.Action = action
			best.Winrate = winrate
		}
		glog.V(1).Infof("%v: %v (%s)", action, winrate, winrate.Decimal(4))
	}

	if best.Winrate.IsZero() {
		return best, errors.Wrapf(ErrUnwinnable, "%d actions searched", len(order))
	}

	glog.Infof("Best action for %v: %v with winrate %v (%d nodes, %d cache hits)",
		turn, best.Action, best.Winrate, s.stats.NodesVisited, s.stats.CacheHits)
	return best, nil
}

// evaluate returns the winrate of every candidate action of the actor.
//
// If exhaustive is set, every candidate is searched to completion, with no
// shortcuts or cutoffs, so that the values can be merged across
// arrangements. Otherwise only the best winrate is guaranteed exact:
// actions that cannot beat an earlier one are abandoned early.
func (s *Session) evaluate(state *gamestate.State, actor gamestate.Player,
	remaining Remaining, depth int, exhaustive bool) (node, error) {
	if err := s.checkDeadline(); err != nil {
		return node{}, err
	}
	s.visit()

	key := s.key(state, actor, remaining)
	if !exhaustive {
		if cached, ok := s.valueCache.Get(key); ok {
			s.hit()
			return cached.(node), nil
		}
	}

	result, err := s.search(state, actor, remaining, depth, exhaustive)
	if err != nil {
		return node{}, err
	}

	s.valueCache.Add(key, result)
	return result, nil
}

func (s *Session) search(state *gamestate.State, actor gamestate.Player,
	remaining Remaining, depth int, exhaustive bool) (node, error) {
	if s.lost(state) {
		return node{}, nil
	}
	if state.Score() == state.MaxScore() {
		return node{best: frac.One}, nil
	}
	if state.GameOver() {
		return node{}, nil
	}
	if !exhaustive {
		if ok, action := TriviallyWinnable(state, actor); ok {
			return node{
				values: []ActionValue{{Action: action, Winrate: frac.One}},
				best:   frac.One,
			}, nil
		}
	}
	if Unwinnable(state, actor) || bottomDecked(state, remaining) {
		return node{}, nil
	}

	actions, err := s.candidates(state, actor, remaining, depth, true)
	if err != nil {
		return node{}, err
	}
	defer freeActionSlice(actions)

	var result node
	for _, action := range actions {
		var bound *frac.Frac
		if !exhaustive {
			bound = &result.best
		}

		winrate, complete, err := s.actionValue(state, action, remaining, depth, bound)
		if err != nil {
			return node{}, err
		}
		if !complete {
			continue
		}

		glog.V(4).Infof("%*s%v: %v", depth, "", action, winrate)
		result.values = append(result.values, ActionValue{Action: action, Winrate: winrate})
		if result.best.Less(winrate) {
			result.best = winrate
		}
		if !exhaustive && result.best.IsOne() {
			break
		}
	}

	return result, nil
}

// actionValue returns the winrate after taking the action, averaged over
// every card that could be drawn.
//
// If bound is given, the search of the action is abandoned, and complete
// is false, as soon as it can no longer beat the bound.
func (s *Session) actionValue(state *gamestate.State, action gamestate.Action,
	remaining Remaining, depth int, bound *frac.Frac) (winrate frac.Frac, complete bool, err error) {
	next := action.Player.Next(int(state.NumPlayers))
	unexplored := frac.One
	branches := outcomes(state, action, remaining)
	defer freeBranchSlice(branches)
	for _, b := range branches {
		after, afterRemaining := successor(state, action, b.card, remaining)
		result, err := s.evaluate(&after, next, afterRemaining, depth+1, false)
		if err != nil {
			return frac.Zero, false, err
		}

		winrate = winrate.Add(b.weight.Mul(result.best))
		unexplored = unexplored.Sub(b.weight)
		if bound != nil && !bound.Less(winrate.Add(unexplored)) {
			s.prune()
			return winrate, false, nil
		}
	}

	return winrate, true, nil
}

func validatePlayers(state *gamestate.State, players ...gamestate.Player) error {
	for _, p := range players {
		if int(p) >= int(state.NumPlayers) {
			return errors.Errorf("invalid player %v at a table of %d", p, state.NumPlayers)
		}
	}
	return nil
}
