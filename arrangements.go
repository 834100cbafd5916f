package endgame

import (
	"github.com/pkg/errors"

	"github.com/will-hanabi-bot/endgame/cards"
	"github.com/will-hanabi-bot/endgame/frac"
	"github.com/will-hanabi-bot/endgame/gamestate"
)

// arrangement is one way the unresolved cards of the solving player's
// hand could be laid out, together with its probability.
type arrangement struct {
	orders []int
	cards  []cards.Card
	weight frac.Frac
}

// instantiate returns the state and remaining identities in which the
// arrangement holds.
func (a arrangement) instantiate(state gamestate.State, remaining Remaining) (gamestate.State, Remaining) {
	for i, order := range a.orders {
		card := a.cards[i]
		state.Cards[order] = card
		if card.IsIdentity() {
			remaining = remaining.Remove(card)
		}
	}
	return state, remaining
}

// enumerateArrangements returns every distinct arrangement of the
// unresolved cards in the player's hand consistent with beliefs.
//
// Unresolved cards and the deck together hold the missing copies of each
// remaining identity plus some number of useless cards, all equally
// likely to be anywhere. Useless identities collapse into cards.Trash.
// Arrangement weights are normalized to sum to exactly one.
func enumerateArrangements(state *gamestate.State, player gamestate.Player,
	beliefs Beliefs, remaining Remaining) ([]arrangement, error) {
	var unresolved []int
	for _, order := range state.HandOf(player) {
		if state.Cards[order] == cards.Unknown {
			unresolved = append(unresolved, order)
		}
	}

	poolSize := int(state.CardsLeft) + len(unresolved)
	trash := poolSize - remaining.Len()
	if trash < 0 {
		return nil, errors.Errorf("%d missing identities cannot fit in %d unknown cards",
			remaining.Len(), poolSize)
	}

	candidates := make([][]cards.Card, len(unresolved))
	for i, order := range unresolved {
		candidates[i] = arrangementCandidates(state, beliefs.Possible(order))
	}

	var result []arrangement
	total := frac.Zero
	enumerateArrangementsHelper(candidates, remaining, trash, poolSize, nil, frac.One,
		func(assigned []cards.Card, weight frac.Frac) {
			result = append(result, arrangement{
				orders: unresolved,
				cards:  append([]cards.Card(nil), assigned...),
				weight: weight,
			})
			total = total.Add(weight)
		})

	if len(result) == 0 {
		return nil, errors.Errorf("no arrangement of %v is consistent with beliefs", unresolved)
	}

	for i := range result {
		result[i].weight = result[i].weight.Div(total)
	}

	arrangementsEnumerated.Add(int64(len(result)))
	return result, nil
}

// arrangementCandidates maps the identities a card could be onto the
// distinct values it can take in an arrangement.
func arrangementCandidates(state *gamestate.State, possible []cards.Card) []cards.Card {
	if len(possible) == 0 {
		var all []cards.Card
		state.Identities().Iter(func(card cards.Card) {
			all = append(all, card)
		})
		possible = all
	}

	var result []cards.Card
	seen := cards.NewSet()
	for _, card := range possible {
		if !state.Useful(card) {
			card = cards.Trash
		}
		if !seen.Contains(card) {
			seen.Add(card)
			result = append(result, card)
		}
	}
	return result
}

// Assign slot n, weighting each choice by the share of the unknown cards
// still unassigned that it accounts for.
func enumerateArrangementsHelper(candidates [][]cards.Card, remaining Remaining,
	trash, poolSize int, assigned []cards.Card, weight frac.Frac,
	cb func(assigned []cards.Card, weight frac.Frac)) {
	n := len(assigned)
	if n == len(candidates) {
		cb(assigned, weight)
		return
	}

	available := uint64(poolSize - n)
	for _, card := range candidates[n] {
		if card == cards.Trash {
			if trash == 0 {
				continue
			}
			w := weight.Mul(frac.New(uint64(trash), available))
			enumerateArrangementsHelper(candidates, remaining, trash-1, poolSize,
				append(assigned, card), w, cb)
			continue
		}

		count := remaining.CountOf(card)
		if count == 0 {
			continue
		}
		w := weight.Mul(frac.New(uint64(count), available))
		enumerateArrangementsHelper(candidates, remaining.Remove(card), trash, poolSize,
			append(assigned, card), w, cb)
	}
}
