package gamestate

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/will-hanabi-bot/endgame/cards"
)

var (
	r1 = cards.NewCard(0, 1)
	r2 = cards.NewCard(0, 2)
	r4 = cards.NewCard(0, 4)
	r5 = cards.NewCard(0, 5)
	y1 = cards.NewCard(1, 1)
	b3 = cards.NewCard(3, 3)
)

// newTestState returns a two player No Variant game where red is on 4,
// with Player0 holding [r5 b3] and Player1 holding [y1 r2].
func newTestState(cardsLeft int) State {
	s := New(cards.NoVariant, 2)
	s.PlayStacks[0] = 4
	s.ClueTokens = 3
	s.CardsLeft = uint8(cardsLeft)
	if cardsLeft == 0 {
		s.EndgameTurns = 2
	}
	s.Deal(Player0, b3, cards.MaskOf(b3))
	s.Deal(Player0, r5, cards.MaskOf(r5))
	s.Deal(Player1, r2, cards.SuitMask(0))
	s.Deal(Player1, y1, cards.RankMask(1, 5))
	return s
}

func TestAdvancePlayRoundTrip(t *testing.T) {
	before := newTestState(5)
	order := before.HandOf(Player0)[0]
	if !before.ThinksPlayable(order) {
		t.Fatalf("expected card %d to be known playable", order)
	}

	after := Advance(before, NewPlay(Player0, order), y1)

	// Re-derive the expected state by hand.
	expected := before
	expected.PlayStacks[0]++
	expected.ClueTokens++ // Rank 5 refunds a clue.
	expected.Hands[Player0] = NewHand(int(before.NextOrder), before.HandOf(Player0)[1])
	expected.Cards[before.NextOrder] = y1
	expected.Thoughts[before.NextOrder] = before.Identities()
	expected.NextOrder++
	expected.CardsLeft--
	expected.TurnCount++

	if diff := cmp.Diff(expected, after); diff != "" {
		t.Errorf("unexpected state after play (-want +got):\n%s", diff)
	}
	if after.Score() != before.Score()+1 {
		t.Errorf("score %d, expected %d", after.Score(), before.Score()+1)
	}
}

func TestAdvanceDoesNotModifyInput(t *testing.T) {
	before := newTestState(5)
	snapshot := before
	_ = Advance(before, NewDiscard(Player1, before.HandOf(Player1)[0]), cards.Trash)
	if diff := cmp.Diff(snapshot, before); diff != "" {
		t.Errorf("input state was modified (-want +got):\n%s", diff)
	}
}

func TestAdvanceMisplay(t *testing.T) {
	s := newTestState(5)
	order := s.HandOf(Player1)[1] // r2
	after := Advance(s, NewPlay(Player1, order), cards.Trash)
	if after.Strikes != 1 {
		t.Errorf("got %d strikes, expected 1", after.Strikes)
	}
	if after.Discards.CountOf(r2) != 1 {
		t.Errorf("misplayed card was not recorded as discarded: %v", after.Discards)
	}
	if after.PlayStacks[0] != 4 {
		t.Errorf("misplay changed the play stack: %d", after.PlayStacks[0])
	}
	if after.ClueTokens != s.ClueTokens {
		t.Errorf("misplay changed the clue tokens: %d", after.ClueTokens)
	}
}

func TestAdvanceDiscardRefundIsCapped(t *testing.T) {
	s := newTestState(5)
	s.ClueTokens = MaxClueTokens
	after := Advance(s, NewDiscard(Player0, s.HandOf(Player0)[1]), r1)
	if after.ClueTokens != MaxClueTokens {
		t.Errorf("got %d clue tokens, expected %d", after.ClueTokens, MaxClueTokens)
	}
	if after.Discards.CountOf(b3) != 1 {
		t.Errorf("discard not recorded: %v", after.Discards)
	}
}

func TestAdvanceStartsCountdown(t *testing.T) {
	s := newTestState(1)
	if s.InCountdown() {
		t.Fatal("countdown started too early")
	}

	s = Advance(s, NewDiscard(Player1, s.HandOf(Player1)[0]), cards.Trash)
	if s.CardsLeft != 0 || s.EndgameTurns != 2 {
		t.Fatalf("got %d cards left and countdown %d, expected 0 and 2", s.CardsLeft, s.EndgameTurns)
	}

	// Playing with an empty deck draws nothing and counts down.
	s = Advance(s, NewPlay(Player0, s.HandOf(Player0)[0]), cards.Unknown)
	if s.EndgameTurns != 1 || s.Hands[Player0].Len() != 1 {
		t.Errorf("got countdown %d and hand %v", s.EndgameTurns, s.Hands[Player0])
	}

	s = Advance(s, NewRankClue(Player1, Player0, 3), cards.Unknown)
	if s.EndgameTurns != 0 || !s.GameOver() {
		t.Errorf("expected game over, got countdown %d", s.EndgameTurns)
	}
}

func TestAdvanceClue(t *testing.T) {
	s := newTestState(5)
	after := Advance(s, NewColourClue(Player0, Player1, 0), cards.Unknown)
	if after.ClueTokens != s.ClueTokens-1 {
		t.Errorf("got %d clue tokens, expected %d", after.ClueTokens, s.ClueTokens-1)
	}
	if after.EndgameTurns != -1 {
		t.Errorf("clue before the deck ran out changed the countdown: %d", after.EndgameTurns)
	}
	if after.Hands != s.Hands {
		t.Error("clue changed the hands")
	}
}

func TestAdvance_Panics(t *testing.T) {
	s := newTestState(5)
	noClues := s
	noClues.ClueTokens = 0

	testCases := map[string]func(){
		"card not in hand": func() { Advance(s, NewPlay(Player0, s.HandOf(Player1)[0]), cards.Trash) },
		"no clue tokens":   func() { Advance(noClues, NewRankClue(Player0, Player1, 1), cards.Unknown) },
		"clue self":        func() { Advance(s, NewRankClue(Player0, Player0, 1), cards.Unknown) },
		"invalid colour":   func() { Advance(s, NewColourClue(Player0, Player1, 5), cards.Unknown) },
		"invalid action":   func() { Advance(s, Action{}, cards.Unknown) },
	}

	for name, fn := range testCases {
		func() {
			defer func() {
				if r := recover(); r == nil {
					t.Errorf("%s: expected panic", name)
				}
			}()
			fn()
		}()
	}
}

func TestMaxScore(t *testing.T) {
	s := newTestState(5)
	if s.MaxScore() != 25 {
		t.Errorf("max score %d, expected 25", s.MaxScore())
	}

	s.Discards.AddN(b3, 2)
	if s.MaxScore() != 22 {
		t.Errorf("max score %d after losing both b3, expected 22", s.MaxScore())
	}
	if s.Useful(cards.NewCard(3, 4)) {
		t.Error("b4 should no longer be useful")
	}
	if !s.Critical(r5) {
		t.Error("r5 should be critical")
	}
	if s.Pace() != 4+5+2-22 {
		t.Errorf("pace %d, expected %d", s.Pace(), 4+5+2-22)
	}
}

func TestThoughts(t *testing.T) {
	s := newTestState(5)
	p1 := s.HandOf(Player1)
	if s.ThinksPlayable(p1[0]) {
		t.Error("a card thought to be any 1 is not known playable")
	}
	if s.ThinksPlayable(p1[1]) || s.ThinksTrash(p1[1]) {
		t.Error("a card thought to be any red is neither playable nor trash")
	}

	s.PlayStacks = [cards.MaxSuits]uint8{4, 1, 1, 1, 1}
	if !s.ThinksTrash(p1[0]) {
		t.Error("once every 1 is played, a card thought to be any 1 is trash")
	}
}

func TestKeyIgnoresOrders(t *testing.T) {
	a := New(cards.NoVariant, 2)
	a.Deal(Player0, r1, cards.MaskOf(r1))
	a.Deal(Player1, y1, cards.MaskOf(y1))

	b := New(cards.NoVariant, 2)
	b.Deal(Player1, y1, cards.MaskOf(y1))
	b.Deal(Player0, r1, cards.MaskOf(r1))
	b.TurnCount = 7

	if a.Key() != b.Key() {
		t.Error("states differing only in card orders should share a key")
	}

	b.ClueTokens--
	if a.Key() == b.Key() {
		t.Error("states with different clue tokens should not share a key")
	}
}

func TestValidate(t *testing.T) {
	s := newTestState(5)
	if err := s.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	s.Strikes = 4
	if err := s.Validate(); err == nil {
		t.Error("expected error for too many strikes")
	}

	s = newTestState(0)
	s.EndgameTurns = -1
	if err := s.Validate(); err == nil {
		t.Error("expected error for an empty deck without countdown")
	}
}

func TestValidate_Copies(t *testing.T) {
	s := newTestState(5)
	s.Discards.Add(r5)
	if err := s.Validate(); err == nil {
		t.Error("expected error for r5 both held and discarded")
	}

	s = newTestState(5)
	s.Discards.Add(b3)
	if err := s.Validate(); err != nil {
		t.Errorf("unexpected error with one of two b3 discarded: %v", err)
	}
	s.Discards.Add(b3)
	if err := s.Validate(); err == nil {
		t.Error("expected error for three b3 seen")
	}
}

func TestActionString_Panic(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		if err, ok := r.(error); !ok || err.Error() != "invalid action type 9" {
			t.Errorf("unexpected panic: %v", r)
		}
	}()

	_ = Action{Type: ActionType(9)}.String()
}
