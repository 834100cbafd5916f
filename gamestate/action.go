package gamestate

import "fmt"

// ActionType is the kind of action a player takes on their turn.
type ActionType uint8

const (
	NoAction ActionType = iota
	Play
	Discard
	ColourClue
	RankClue
)

var actionTypeStr = [...]string{
	"NoAction",
	"Play",
	"Discard",
	"ColourClue",
	"RankClue",
}

func (t ActionType) String() string {
	if int(t) >= len(actionTypeStr) {
		return fmt.Sprintf("ActionType(%d)", uint8(t))
	}
	return actionTypeStr[t]
}

// Action is one candidate move.
//
// Target is the card order for Play and Discard, and the receiving
// player for clues. Value is the suit index of a ColourClue or the rank
// of a RankClue. Actions are comparable, so equal moves found in
// different searches can be merged by using them as map keys.
type Action struct {
	Type   ActionType
	Player Player
	Target uint8
	Value  uint8
}

func NewPlay(player Player, order int) Action {
	return Action{Type: Play, Player: player, Target: uint8(order)}
}

func NewDiscard(player Player, order int) Action {
	return Action{Type: Discard, Player: player, Target: uint8(order)}
}

func NewColourClue(player, target Player, suit int) Action {
	return Action{Type: ColourClue, Player: player, Target: uint8(target), Value: uint8(suit)}
}

func NewRankClue(player, target Player, rank int) Action {
	return Action{Type: RankClue, Player: player, Target: uint8(target), Value: uint8(rank)}
}

// IsClue returns whether the action spends a clue token.
func (a Action) IsClue() bool {
	return a.Type == ColourClue || a.Type == RankClue
}

// Order returns the card order a Play or Discard acts on.
func (a Action) Order() int {
	return int(a.Target)
}

// Receiver returns the player a clue is given to.
func (a Action) Receiver() Player {
	return Player(a.Target)
}

func (a Action) String() string {
	switch a.Type {
	case NoAction:
		return "NoAction"
	case Play, Discard:
		return fmt.Sprintf("%s:%s:%d", a.Player, a.Type, a.Target)
	case ColourClue, RankClue:
		return fmt.Sprintf("%s:%s:%s:%d", a.Player, a.Type, Player(a.Target), a.Value)
	default:
		panic(fmt.Errorf("invalid action type %d", uint8(a.Type)))
	}
}
