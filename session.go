package endgame

import (
	"context"
	"expvar"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	"github.com/will-hanabi-bot/endgame/gamestate"
)

var (
	nodesVisited           = expvar.NewInt("endgame/nodes_visited")
	cacheHits              = expvar.NewInt("endgame/cache_hits")
	branchesPruned         = expvar.NewInt("endgame/branches_pruned")
	arrangementsEnumerated = expvar.NewInt("endgame/arrangements")
)

// Stats counts the work done by a Session since it was created or reset.
type Stats struct {
	NodesVisited   int64
	CacheHits      int64
	BranchesPruned int64
}

// cacheKey identifies a search node. The remaining identities are
// derivable from the state, but are cheap to include.
type cacheKey struct {
	state     string
	remaining Remaining
	actor     gamestate.Player
	target    int
}

// Session owns the memoization caches and deadline of one solve.
//
// A Session is not safe for concurrent use. Reset must be called before
// reusing a Session for an unrelated game, since entries from a
// different deal are wrong rather than merely stale.
type Session struct {
	config   Config
	strategy Strategy

	ctx      context.Context
	deadline time.Time
	// Score that counts as a win: the max score when the search began.
	target int

	winnableCache *lru.Cache
	valueCache    *lru.Cache
	stats         Stats
}

// NewSession returns a Session that searches with the given strategy.
func NewSession(config Config, strategy Strategy) (*Session, error) {
	if config.CacheSize <= 0 {
		return nil, errors.Errorf("invalid cache size: %d", config.CacheSize)
	}

	winnableCache, err := lru.New(config.CacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "creating winnable cache")
	}
	valueCache, err := lru.New(config.CacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "creating value cache")
	}

	return &Session{
		config:        config,
		strategy:      strategy,
		ctx:           context.Background(),
		winnableCache: winnableCache,
		valueCache:    valueCache,
	}, nil
}

// Reset clears the caches and counters of the Session.
func (s *Session) Reset() {
	s.winnableCache.Purge()
	s.valueCache.Purge()
	s.stats = Stats{}
}

// Stats returns the work done since the Session was created or reset.
func (s *Session) Stats() Stats {
	return s.stats
}

// begin starts the clock for a new search from the state.
func (s *Session) begin(ctx context.Context, state *gamestate.State) {
	s.ctx = ctx
	s.target = state.MaxScore()
	s.deadline = time.Time{}
	if s.config.Timeout > 0 {
		s.deadline = time.Now().Add(s.config.Timeout)
	}
}

func (s *Session) checkDeadline() error {
	if err := s.ctx.Err(); err != nil {
		return errors.Wrap(ErrTimedOut, err.Error())
	}
	if !s.deadline.IsZero() && time.Now().After(s.deadline) {
		return errors.Wrapf(ErrTimedOut, "exceeded %v", s.config.Timeout)
	}
	return nil
}

// lost returns whether a card needed for the target score has been
// discarded since the search began.
func (s *Session) lost(state *gamestate.State) bool {
	return state.MaxScore() < s.target
}

func (s *Session) key(state *gamestate.State, actor gamestate.Player, remaining Remaining) cacheKey {
	return cacheKey{state: state.Key(), remaining: remaining, actor: actor, target: s.target}
}

func (s *Session) visit() {
	s.stats.NodesVisited++
	nodesVisited.Add(1)
}

func (s *Session) hit() {
	s.stats.CacheHits++
	cacheHits.Add(1)
}

func (s *Session) prune() {
	s.stats.BranchesPruned++
	branchesPruned.Add(1)
}
