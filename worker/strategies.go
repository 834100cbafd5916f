package worker

import (
	"sort"
	"sync"

	"github.com/will-hanabi-bot/endgame"
	"github.com/will-hanabi-bot/endgame/gamestate"
)

const DefaultStrategyName = "default"

var (
	strategiesMu sync.RWMutex
	strategies   = map[string]endgame.Strategy{
		DefaultStrategyName: endgame.DefaultStrategy,
		// Proposes no clues, leaving only the blind clue fallback.
		"discard_only": {Discards: endgame.TrashDiscardFinder{}},
		"aggressive": {
			Clues:    endgame.StallClueFinder{},
			Discards: endgame.DiscardFinderFunc(aggressiveDiscards),
		},
	}
)

// aggressiveDiscards adds a deliberate misplay of every card to the
// default discard.
func aggressiveDiscards(state *gamestate.State, player gamestate.Player) []endgame.Discard {
	result := endgame.TrashDiscardFinder{}.FindDiscards(state, player)
	for _, order := range state.HandOf(player) {
		result = append(result, endgame.Discard{Order: order, Misplay: true})
	}
	return result
}

// RegisterStrategy makes the Strategy available to requests by name,
// replacing any Strategy already registered under it.
func RegisterStrategy(name string, strategy endgame.Strategy) {
	strategiesMu.Lock()
	defer strategiesMu.Unlock()
	strategies[name] = strategy
}

// LookupStrategy returns the Strategy registered under name.
func LookupStrategy(name string) (endgame.Strategy, bool) {
	strategiesMu.RLock()
	defer strategiesMu.RUnlock()
	strategy, ok := strategies[name]
	return strategy, ok
}

// StrategyNames returns the registered names in sorted order.
func StrategyNames() []string {
	strategiesMu.RLock()
	defer strategiesMu.RUnlock()
	result := make([]string, 0, len(strategies))
	for name := range strategies {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}
