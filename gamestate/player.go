package gamestate

import (
	"fmt"
)

// MaxPlayers is the largest supported table.
const MaxPlayers = 6

// Player represents the seat of a player at the table.
type Player uint8

const (
	Player0 Player = iota
	Player1
	Player2
	Player3
	Player4
	Player5
)

var playerStr = [...]string{
	"Player0",
	"Player1",
	"Player2",
	"Player3",
	"Player4",
	"Player5",
}

func (p Player) String() string {
	if int(p) >= len(playerStr) {
		return fmt.Sprintf("Player(%d)", uint8(p))
	}
	return playerStr[p]
}

// Next returns the player seated after p at a table of n players.
func (p Player) Next(n int) Player {
	return Player((int(p) + 1) % n)
}
