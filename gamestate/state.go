package gamestate

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/will-hanabi-bot/endgame/cards"
)

const (
	MaxClueTokens = 8
	MaxStrikes    = 3
)

// State is a minimal, simulatable snapshot of a Hanabi game.
//
// State is a flat value type: it is copied by assignment, so every branch
// of a search forks its own copy without aliasing.
type State struct {
	NumPlayers uint8
	NumSuits   uint8
	// Every physical card of the variant.
	Deck cards.Set

	PlayStacks [cards.MaxSuits]uint8
	Discards   cards.Set
	ClueTokens uint8
	Strikes    uint8

	Hands [MaxPlayers]Hand
	// Identity of each card by order, as far as the solver knows.
	Cards [MaxCards]cards.Card
	// Identities the holder of each card still considers possible.
	Thoughts [MaxCards]cards.Mask

	NextOrder uint8
	TurnCount uint16
	CardsLeft uint8
	// Turns left once the deck has run out, or -1 before then.
	EndgameTurns int8
}

// New returns the opening State for the given variant and table size,
// with a full deck and no cards dealt.
func New(variant cards.Variant, numPlayers int) State {
	if numPlayers < 2 || numPlayers > MaxPlayers {
		panic(fmt.Errorf("unsupported number of players: %d", numPlayers))
	}

	deck := variant.Deck()
	return State{
		NumPlayers:   uint8(numPlayers),
		NumSuits:     uint8(variant.NumSuits()),
		Deck:         deck,
		ClueTokens:   MaxClueTokens,
		CardsLeft:    uint8(deck.Len()),
		EndgameTurns: -1,
	}
}

// Deal gives the player a new card with the given identity and thoughts,
// placed in the newest slot, and returns its order.
// Deal does not change the number of cards left in the deck.
func (s *State) Deal(player Player, card cards.Card, thoughts cards.Mask) int {
	order := int(s.NextOrder)
	if order >= MaxCards {
		panic(fmt.Errorf("no more card orders available"))
	}

	s.Cards[order] = card
	s.Thoughts[order] = thoughts
	s.Hands[player].InsertCard(order, 0)
	s.NextOrder++
	return order
}

// Identities returns every identity in the variant.
func (s *State) Identities() cards.Mask {
	var result cards.Mask
	for suit := 0; suit < int(s.NumSuits); suit++ {
		result |= cards.SuitMask(suit)
	}
	return result
}

// HandOf returns the card orders held by the player, newest first.
func (s *State) HandOf(player Player) []int {
	return s.Hands[player].Orders()
}

// Score is the number of cards successfully played.
func (s *State) Score() int {
	score := 0
	for _, rank := range s.PlayStacks {
		score += int(rank)
	}
	return score
}

// MaxRank is the highest rank that can still be played on the suit,
// given which cards have been discarded.
func (s *State) MaxRank(suit int) int {
	for rank := int(s.PlayStacks[suit]) + 1; rank <= cards.MaxRank; rank++ {
		card := cards.NewCard(suit, rank)
		if s.Discards.CountOf(card) >= s.Deck.CountOf(card) {
			return rank - 1
		}
	}
	return cards.MaxRank
}

// MaxScore is the highest score still reachable.
func (s *State) MaxScore() int {
	result := 0
	for suit := 0; suit < int(s.NumSuits); suit++ {
		result += s.MaxRank(suit)
	}
	return result
}

// Pace is the number of discards that can still be afforded before the
// deck runs out with too few turns left to reach the max score.
func (s *State) Pace() int {
	return s.Score() + int(s.CardsLeft) + int(s.NumPlayers) - s.MaxScore()
}

// InCountdown returns whether the deck has run out.
func (s *State) InCountdown() bool {
	return s.EndgameTurns >= 0
}

// GameOver returns whether no more actions can be taken.
func (s *State) GameOver() bool {
	return s.Strikes >= MaxStrikes || s.EndgameTurns == 0 || s.Score() == s.MaxScore()
}

// Playable returns whether the card can be played successfully right now.
func (s *State) Playable(card cards.Card) bool {
	return card.IsIdentity() && card.Rank() == int(s.PlayStacks[card.Suit()])+1
}

// Useful returns whether the card still needs to be played
// to reach the max score.
func (s *State) Useful(card cards.Card) bool {
	if !card.IsIdentity() {
		return false
	}

	suit := card.Suit()
	return card.Rank() > int(s.PlayStacks[suit]) && card.Rank() <= s.MaxRank(suit)
}

// Critical returns whether the card is useful and its last copy
// has not been discarded.
func (s *State) Critical(card cards.Card) bool {
	return s.Useful(card) && s.Deck.CountOf(card)-s.Discards.CountOf(card) == 1
}

// PossiblyUseful returns whether the card with the given order could be
// useful, as far as the solver knows.
func (s *State) PossiblyUseful(order int) bool {
	card := s.Cards[order]
	return card == cards.Unknown || s.Useful(card)
}

// ThinksPlayable returns whether the holder of the card knows it is playable.
func (s *State) ThinksPlayable(order int) bool {
	return s.Thoughts[order].All(s.Playable)
}

// ThinksTrash returns whether the holder of the card knows it is not useful.
func (s *State) ThinksTrash(order int) bool {
	return s.Thoughts[order].All(func(card cards.Card) bool {
		return !s.Useful(card)
	})
}

// Validate checks the invariants of the State.
func (s *State) Validate() error {
	if s.NumPlayers < 2 || s.NumPlayers > MaxPlayers {
		return errors.Errorf("invalid number of players: %d", s.NumPlayers)
	}
	if s.NumSuits == 0 || s.NumSuits > cards.MaxSuits {
		return errors.Errorf("invalid number of suits: %d", s.NumSuits)
	}
	if s.ClueTokens > MaxClueTokens {
		return errors.Errorf("invalid number of clue tokens: %d", s.ClueTokens)
	}
	if s.Strikes > MaxStrikes {
		return errors.Errorf("invalid number of strikes: %d", s.Strikes)
	}
	for suit, rank := range s.PlayStacks {
		if rank > cards.MaxRank || (suit >= int(s.NumSuits) && rank > 0) {
			return errors.Errorf("invalid play stack for suit %d: %d", suit, rank)
		}
	}
	if s.Score() > s.MaxScore() {
		return errors.Errorf("score %d exceeds max score %d", s.Score(), s.MaxScore())
	}
	if s.CardsLeft > 0 && s.InCountdown() {
		return errors.Errorf("countdown started with %d cards left", s.CardsLeft)
	}
	if s.CardsLeft == 0 && !s.InCountdown() {
		return errors.New("deck is empty but countdown has not started")
	}
	if s.EndgameTurns > int8(s.NumPlayers) {
		return errors.Errorf("countdown %d exceeds number of players", s.EndgameTurns)
	}

	seen := make(map[int]bool)
	for p := 0; p < MaxPlayers; p++ {
		if p >= int(s.NumPlayers) {
			if s.Hands[p] != 0 {
				return errors.Errorf("%v is not seated but holds cards", Player(p))
			}
			continue
		}
		if err := s.validateHand(Player(p), seen); err != nil {
			return errors.Wrapf(err, "invalid hand for %v", Player(p))
		}
	}

	return s.validateCopies()
}

// validateCopies checks that no identity is seen more often than the
// deck holds it.
func (s *State) validateCopies() error {
	var seen [cards.NumTypes]int
	for p := 0; p < int(s.NumPlayers); p++ {
		for _, order := range s.HandOf(Player(p)) {
			if card := s.Cards[order]; card.IsIdentity() {
				seen[card]++
			}
		}
	}
	s.Discards.Iter(func(card cards.Card, count uint8) {
		seen[card] += int(count)
	})

	for card, count := range seen {
		if exist := int(s.Deck.CountOf(cards.Card(card))); count > exist {
			return errors.Errorf("%d copies of %v seen, but only %d exist",
				count, cards.Card(card), exist)
		}
	}
	return nil
}

func (s *State) validateHand(player Player, seen map[int]bool) error {
	for _, order := range s.HandOf(player) {
		if order >= int(s.NextOrder) {
			return errors.Errorf("card order %d was never dealt", order)
		}
		if seen[order] {
			return errors.Errorf("card order %d is held twice", order)
		}
		seen[order] = true

		card := s.Cards[order]
		if card.IsIdentity() && card.Suit() >= int(s.NumSuits) {
			return errors.Errorf("card %d has identity %v outside the variant", order, card)
		}
	}
	return nil
}

func (s *State) String() string {
	return fmt.Sprintf("stacks: %v, discards: %s, clues: %d, strikes: %d, cards left: %d, countdown: %d, hands: %s",
		s.PlayStacks[:s.NumSuits], s.Discards, s.ClueTokens, s.Strikes,
		s.CardsLeft, s.EndgameTurns, s.handsString())
}

func (s *State) handsString() string {
	result := ""
	for p := 0; p < int(s.NumPlayers); p++ {
		result += fmt.Sprintf("%v: [", Player(p))
		for i, order := range s.HandOf(Player(p)) {
			if i > 0 {
				result += " "
			}
			result += fmt.Sprintf("%d:%v", order, s.Cards[order])
		}
		result += "] "
	}
	return result
}
