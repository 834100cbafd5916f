package endgame

import (
	"sync"

	"github.com/will-hanabi-bot/endgame/gamestate"
)

var (
	actionSlicePool = sync.Pool{
		New: func() interface{} {
			return make([]gamestate.Action, 0, 8)
		},
	}

	branchSlicePool = sync.Pool{
		New: func() interface{} {
			return make([]branch, 0, 8)
		},
	}
)

func allocActionSlice() []gamestate.Action {
	return actionSlicePool.Get().([]gamestate.Action)
}

func freeActionSlice(s []gamestate.Action) {
	if cap(s) > 0 {
		actionSlicePool.Put(s[:0])
	}
}

func allocBranchSlice() []branch {
	return branchSlicePool.Get().([]branch)
}

func freeBranchSlice(s []branch) {
	if cap(s) > 0 {
		branchSlicePool.Put(s[:0])
	}
}
