package cards

import (
	"testing"
)

var (
	r1 = NewCard(0, 1)
	r5 = NewCard(0, 5)
	y2 = NewCard(1, 2)
	b3 = NewCard(3, 3)
	t5 = NewCard(5, 5)
)

func TestCountOf(t *testing.T) {
	testCards := []Card{r1, r1, y2, b3, t5, t5}
	set := setOf(testCards...)
	expected := map[Card]uint8{
		r1: 2,
		y2: 1,
		b3: 1,
		t5: 2,
	}

	for card, count := range expected {
		if set.CountOf(card) != count {
			t.Errorf("card set has %d of %v, expected %d", set.CountOf(card), card, count)
		}
	}
}

func TestLen(t *testing.T) {
	testCards := []Card{r1, r1, y2, b3, t5, t5}
	set := setOf(testCards...)
	if set.Len() != 6 {
		t.Errorf("card set has len %d, expected %d", set.Len(), 6)
	}
}

func TestAddN(t *testing.T) {
	set := NewSet()
	set.AddN(r1, 3)
	if set != setOf(r1, r1, r1) {
		t.Errorf("got unexpected slice of cards: %v", set)
	}

	set.Add(Trash)
	if set.CountOf(Trash) != 1 {
		t.Errorf("failed to add card in the highest slot: %v", set)
	}
	if set.CountOf(r1) != 3 {
		t.Errorf("adding Trash disturbed other counts: %v", set)
	}
}

func TestAdd_Panic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic when exceeding max count")
		}
	}()

	set := setOf(y2, y2, y2)
	set.Add(y2)
}

func TestRemove(t *testing.T) {
	testCards := []Card{r1, r1, y2, b3, t5, t5}
	set := setOf(testCards...)
	set.Remove(y2)
	if set.CountOf(y2) != 0 {
		t.Error("failed to remove y2 card")
	}

	set.Remove(r1)
	if set.CountOf(r1) != 1 {
		t.Error("failed to remove r1 card")
	}

	expected := []Card{r1, b3, t5, t5}
	if set != setOf(expected...) {
		t.Errorf("got unexpected slice of cards: %v", set)
	}
}

func TestRemove_Panic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic when removing non-existent card")
		}
	}()

	set := setOf(y2)
	set.Remove(b3)
}

func TestRemoveN_Panic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic when removing non-existent card")
		}
	}()

	set := setOf(y2)
	set.RemoveN(y2, 2)
}

func TestVariantDeck(t *testing.T) {
	testCases := []struct {
		variant Variant
		size    int
	}{
		{NoVariant, 50},
		{SixSuits, 60},
		{Black, 55},
	}

	for _, tc := range testCases {
		deck := tc.variant.Deck()
		if deck.Len() != tc.size {
			t.Errorf("%v: deck has %d cards, expected %d", tc.variant, deck.Len(), tc.size)
		}
	}

	if n := Black.Copies(NewCard(5, 1)); n != 1 {
		t.Errorf("dark suit has %d copies of rank 1, expected 1", n)
	}
}

func TestLookupVariant(t *testing.T) {
	v, err := LookupVariant("Black (6 Suits)")
	if err != nil {
		t.Fatal(err)
	}
	if v.NumSuits() != 6 || !v.Suits[5].Dark {
		t.Errorf("unexpected variant: %+v", v)
	}

	if _, err := LookupVariant("Rainbow"); err == nil {
		t.Error("expected error for unknown variant")
	}
}

func TestMask(t *testing.T) {
	m := SuitMask(0) &^ MaskOf(r1)
	if m.Len() != 4 {
		t.Errorf("mask %v has len %d, expected 4", m, m.Len())
	}
	if m.Contains(r1) || !m.Contains(r5) {
		t.Errorf("unexpected mask contents: %v", m)
	}
	if !m.All(func(c Card) bool { return c.Suit() == 0 }) {
		t.Errorf("expected every card of %v to be red", m)
	}
	if Mask(0).All(func(c Card) bool { return true }) {
		t.Error("empty mask should not satisfy All")
	}
	if got := RankMask(5, 6); !got.Contains(t5) || got.Len() != 6 {
		t.Errorf("unexpected rank mask: %v", got)
	}
}

func setOf(cards ...Card) Set {
	set := NewSet()
	for _, card := range cards {
		set.Add(card)
	}
	return set
}
