package endgame

import (
	"github.com/will-hanabi-bot/endgame/cards"
	"github.com/will-hanabi-bot/endgame/gamestate"
)

var (
	r4 = cards.NewCard(0, 4)
	r5 = cards.NewCard(0, 5)
	y1 = cards.NewCard(1, 1)
	y2 = cards.NewCard(1, 2)
	g1 = cards.NewCard(2, 1)
	b1 = cards.NewCard(3, 1)
	p1 = cards.NewCard(4, 1)
)

// newState returns a No Variant game with every suit played to 5,
// except for red which is played to redStack.
func newState(numPlayers int, redStack uint8, cardsLeft int) gamestate.State {
	s := gamestate.New(cards.NoVariant, numPlayers)
	s.PlayStacks = [cards.MaxSuits]uint8{redStack, 5, 5, 5, 5}
	s.CardsLeft = uint8(cardsLeft)
	if cardsLeft == 0 {
		s.EndgameTurns = int8(numPlayers)
	}
	return s
}

// deal gives the player a card whose identity they know.
func deal(s *gamestate.State, player gamestate.Player, card cards.Card) int {
	return s.Deal(player, card, cards.MaskOf(card))
}

// misplayEverything proposes a deliberate misplay of every card in hand.
var misplayEverything = DiscardFinderFunc(
	func(state *gamestate.State, player gamestate.Player) []Discard {
		var result []Discard
		for _, order := range state.HandOf(player) {
			result = append(result, Discard{Order: order, Misplay: true})
		}
		return result
	})

func setOf(cs ...cards.Card) cards.Set {
	set := cards.NewSet()
	for _, card := range cs {
		set.Add(card)
	}
	return set
}
