package agent

import (
	"time"

	"connect4/game"

	"golang.org/x/exp/rand"
)

func newSource(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewSource(seed))
}

type randomAgent struct {
	player game.Cell
	rng    *rand.Rand
}

// NewRandom returns an agent choosing uniformly among open columns.
func NewRandom(player game.Cell, seed uint64) Agent {
	return &randomAgent{player: player, rng: newSource(seed)}
}

func (a *randomAgent) Name() string      { return "random" }
func (a *randomAgent) Player() game.Cell { return a.player }

func (a *randomAgent) Move(b *game.Board) error {
	open := b.OpenColumns()
	if len(open) == 0 {
		return game.ErrColumnFull
	}
	return commit(b, pick(a.rng, open), a.player)
}

func pick(rng *rand.Rand, columns []int) int {
	return columns[rng.Intn(len(columns))]
}
