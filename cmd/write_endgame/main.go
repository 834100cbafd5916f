// Write one of the built-in endgame positions to a request file for solve_endgame.
package main

import (
	"flag"
	"os"
	"sort"

	"github.com/golang/glog"

	"github.com/will-hanabi-bot/endgame/cards"
	"github.com/will-hanabi-bot/endgame/gamestate"
	"github.com/will-hanabi-bot/endgame/worker"
)

var scenarios = map[string]func(cards.Variant) *worker.Request{
	"stall":      stall,
	"coin_flip":  func(v cards.Variant) *worker.Request { return lastTurn(v, 2) },
	"one_in_six": func(v cards.Variant) *worker.Request { return lastTurn(v, 6) },
}

func main() {
	scenario := flag.String("scenario", "stall", "Built-in position to write")
	strategy := flag.String("strategy", "", "Override the strategy to solve the position with")
	output := flag.String("output", "", "File to save the request to")
	variantName := flag.String("variant", cards.NoVariant.Name, "Variant to play the position in")
	flag.Parse()

	variant, err := cards.LookupVariant(*variantName)
	if err != nil {
		glog.Fatal(err)
	}

	build, ok := scenarios[*scenario]
	if !ok {
		glog.Fatalf("Unknown scenario %q, expected one of: %v", *scenario, scenarioNames())
	}
	if *output == "" {
		glog.Fatal("Must specify an output file")
	}

	req := build(variant)
	if *strategy != "" {
		req.Strategy = *strategy
	}
	glog.Infof("Writing request %v: %v", req.ID, &req.State)

	f, err := os.Create(*output)
	if err != nil {
		glog.Fatal(err)
	}
	defer f.Close()

	if err := worker.WriteRequest(f, req); err != nil {
		glog.Fatal(err)
	}
}

func scenarioNames() []string {
	var result []string
	for name := range scenarios {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

var (
	r4 = cards.NewCard(0, 4)
	r5 = cards.NewCard(0, 5)
	y1 = cards.NewCard(1, 1)
	g1 = cards.NewCard(2, 1)
	b1 = cards.NewCard(3, 1)
	p1 = cards.NewCard(4, 1)
)

// playAllBut completes every suit except red, which is played to redStack.
func playAllBut(s *gamestate.State, redStack uint8) {
	s.PlayStacks[0] = redStack
	for suit := 1; suit < int(s.NumSuits); suit++ {
		s.PlayStacks[suit] = cards.MaxRank
	}
}

func deal(s *gamestate.State, player gamestate.Player, card cards.Card) {
	s.Deal(player, card, cards.MaskOf(card))
}

// One card is left, and Player2 holds the last r4 and r5. Player0 must
// stall so that the final card is not drawn too early.
func stall(variant cards.Variant) *worker.Request {
	s := gamestate.New(variant, 3)
	playAllBut(&s, 3)
	s.Discards.Add(r4)
	s.CardsLeft = 1
	s.ClueTokens = 2
	deal(&s, gamestate.Player0, b1)
	deal(&s, gamestate.Player0, g1)
	deal(&s, gamestate.Player1, y1)
	deal(&s, gamestate.Player1, p1)
	deal(&s, gamestate.Player2, r4)
	deal(&s, gamestate.Player2, r5)
	return worker.NewRequest(s, gamestate.Player0, gamestate.Player0, nil)
}

// On the final turn, Player0 holds r5 in one of n slots they cannot tell apart.
func lastTurn(variant cards.Variant, n int) *worker.Request {
	s := gamestate.New(variant, 2)
	playAllBut(&s, 4)
	s.CardsLeft = 0
	s.EndgameTurns = 1
	s.ClueTokens = 4

	possible := make(map[int][]cards.Card)
	for i := 0; i < n; i++ {
		order := s.Deal(gamestate.Player0, cards.Unknown, cards.MaskOf(r5, b1))
		possible[order] = []cards.Card{r5, b1}
	}
	deal(&s, gamestate.Player1, y1)

	// Only a deliberate misplay can win.
	req := worker.NewRequest(s, gamestate.Player0, gamestate.Player0, possible)
	req.Strategy = "aggressive"
	return req
}
