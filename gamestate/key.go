package gamestate

import (
	"crypto/md5"
	"encoding/binary"

	"github.com/will-hanabi-bot/endgame/cards"
)

// Key returns a canonical hash of everything in the State that can affect
// the rest of the game.
//
// Card orders are only labels, so hands are hashed by the identity and
// thoughts of each card rather than by order. The turn count and next
// card order are left out for the same reason.
func (s *State) Key() string {
	var buf [8 + 2*8 + cards.MaxSuits + MaxPlayers*(1+maxHandSize*5)]byte
	n := 0
	buf[n] = s.NumPlayers
	buf[n+1] = s.NumSuits
	buf[n+2] = s.ClueTokens
	buf[n+3] = s.Strikes
	buf[n+4] = s.CardsLeft
	buf[n+5] = byte(s.EndgameTurns)
	n += 8
	binary.LittleEndian.PutUint64(buf[n:], uint64(s.Deck))
	n += 8
	binary.LittleEndian.PutUint64(buf[n:], uint64(s.Discards))
	n += 8
	n += copy(buf[n:], s.PlayStacks[:])
	for p := 0; p < int(s.NumPlayers); p++ {
		orders := s.Hands[p].Orders()
		buf[n] = byte(len(orders))
		n++
		for _, order := range orders {
			buf[n] = byte(s.Cards[order])
			binary.LittleEndian.PutUint32(buf[n+1:], uint32(s.Thoughts[order]))
			n += 5
		}
	}

	// Hash into smaller bitstring since it is sparse.
	hash := md5.Sum(buf[:n])
	return string(hash[:])
}
