package worker

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/will-hanabi-bot/endgame"
	"github.com/will-hanabi-bot/endgame/cards"
	"github.com/will-hanabi-bot/endgame/frac"
	"github.com/will-hanabi-bot/endgame/gamestate"
)

var (
	r5 = cards.NewCard(0, 5)
	y1 = cards.NewCard(1, 1)
	b1 = cards.NewCard(3, 1)
)

// lastTurnRequest is a final turn where Player0 holds r5 in one of n
// unknown slots, each of which could also be b1.
func lastTurnRequest(n int) *Request {
	s := gamestate.New(cards.NoVariant, 2)
	s.PlayStacks = [cards.MaxSuits]uint8{4, 5, 5, 5, 5}
	s.CardsLeft = 0
	s.EndgameTurns = 1
	s.ClueTokens = 4

	possible := make(map[int][]cards.Card)
	for i := 0; i < n; i++ {
		order := s.Deal(gamestate.Player0, cards.Unknown, cards.MaskOf(r5, b1))
		possible[order] = []cards.Card{r5, b1}
	}
	s.Deal(gamestate.Player1, y1, cards.MaskOf(y1))

	req := NewRequest(s, gamestate.Player0, gamestate.Player0, possible)
	req.Strategy = "aggressive"
	return req
}

func TestRequestRoundTrip(t *testing.T) {
	req := lastTurnRequest(3)

	var buf bytes.Buffer
	require.NoError(t, WriteRequest(&buf, req))
	got, err := ReadRequest(&buf)
	require.NoError(t, err)

	assert.Equal(t, req.ID, got.ID)
	assert.Equal(t, req.State, got.State)
	assert.Equal(t, req.Possible, got.Possible)
	assert.Equal(t, req.Config(), got.Config())
	assert.Equal(t, req.State.Key(), got.State.Key())
}

func TestResponseRoundTrip(t *testing.T) {
	resp := Response{
		ID:      uuid.New(),
		Action:  gamestate.NewRankClue(gamestate.Player0, gamestate.Player1, 5),
		Winrate: frac.New(2, 3),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteResponse(&buf, resp))
	got, err := ReadResponse(&buf)
	require.NoError(t, err)
	assert.Equal(t, resp, got)
}

func TestDecodeRequest_Garbage(t *testing.T) {
	_, err := DecodeRequest([]byte("not a request"))
	require.Error(t, err)
}

func TestSolve(t *testing.T) {
	req := lastTurnRequest(2)
	resp := Solve(context.Background(), req)

	require.Equal(t, NoFailure, resp.Failure, resp.Message)
	assert.Equal(t, req.ID, resp.ID)
	assert.True(t, resp.Winrate.Equal(frac.New(1, 2)), "winrate %v", resp.Winrate)
	assert.Equal(t, gamestate.Play, resp.Action.Type)
}

func TestSolve_Failures(t *testing.T) {
	unknown := lastTurnRequest(2)
	unknown.Strategy = "no_such_strategy"
	assert.Equal(t, Invalid, Solve(context.Background(), unknown).Failure)

	// Without misplays the only move is a clue that ends the game.
	unwinnable := lastTurnRequest(2)
	unwinnable.Strategy = "discard_only"
	resp := Solve(context.Background(), unwinnable)
	assert.Equal(t, Unwinnable, resp.Failure, resp.Message)
	assert.True(t, resp.Winrate.IsZero())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Equal(t, Unsolved, Solve(ctx, lastTurnRequest(2)).Failure)

	badCache := lastTurnRequest(2)
	badCache.CacheSize = 0
	assert.Equal(t, Invalid, Solve(context.Background(), badCache).Failure)
}

func TestSolve_InvalidRequests(t *testing.T) {
	s := lastTurnRequest(2).State
	badTurn := NewRequest(s, gamestate.Player0, gamestate.Player(9), nil)
	resp := Solve(context.Background(), badTurn)
	assert.Equal(t, Invalid, resp.Failure, resp.Message)

	badUs := NewRequest(s, gamestate.Player(9), gamestate.Player0, nil)
	resp = Solve(context.Background(), badUs)
	assert.Equal(t, Invalid, resp.Failure, resp.Message)

	// The only r5 is both held and discarded.
	seen := gamestate.New(cards.NoVariant, 2)
	seen.PlayStacks = [cards.MaxSuits]uint8{4, 5, 5, 5, 5}
	seen.CardsLeft = 0
	seen.EndgameTurns = 2
	seen.Deal(gamestate.Player0, y1, cards.MaskOf(y1))
	seen.Deal(gamestate.Player1, r5, cards.MaskOf(r5))
	seen.Discards.Add(r5)
	resp = Solve(context.Background(), NewRequest(seen, gamestate.Player0, gamestate.Player0, nil))
	assert.Equal(t, Invalid, resp.Failure, resp.Message)
	assert.True(t, resp.Winrate.IsZero())

	pool := NewPool(context.Background(), 1)
	resps, err := pool.SubmitAll(context.Background(), []*Request{badTurn, lastTurnRequest(1)})
	require.NoError(t, err)
	assert.Equal(t, Invalid, resps[0].Failure)
	assert.Equal(t, NoFailure, resps[1].Failure, resps[1].Message)
	require.NoError(t, pool.Close())
}

func TestPool(t *testing.T) {
	pool := NewPool(context.Background(), 3)

	var reqs []*Request
	for n := 1; n <= 6; n++ {
		reqs = append(reqs, lastTurnRequest(n))
	}

	resps, err := pool.SubmitAll(context.Background(), reqs)
	require.NoError(t, err)
	require.Len(t, resps, len(reqs))
	for i, resp := range resps {
		n := uint64(i + 1)
		assert.Equal(t, reqs[i].ID, resp.ID)
		assert.Equal(t, NoFailure, resp.Failure, resp.Message)
		assert.True(t, resp.Winrate.Equal(frac.New(1, n)),
			"%d slots: winrate %v", n, resp.Winrate)
	}

	require.NoError(t, pool.Close())
}

func TestPool_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pool := NewPool(ctx, 2)
	cancel()

	_, err := pool.Submit(context.Background(), lastTurnRequest(2))
	require.Error(t, err)
	require.NoError(t, pool.Close())
}

func TestStrategyNames(t *testing.T) {
	names := StrategyNames()
	assert.Contains(t, names, DefaultStrategyName)
	assert.Contains(t, names, "discard_only")
	assert.Contains(t, names, "aggressive")
	assert.IsIncreasing(t, names)

	_, ok := LookupStrategy("plays_only")
	require.False(t, ok)
	RegisterStrategy("plays_only", endgame.Strategy{})
	_, ok = LookupStrategy("plays_only")
	require.True(t, ok)
}
