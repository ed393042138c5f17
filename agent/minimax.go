package agent

import (
	"fmt"

	"connect4/game"
	"connect4/searcher"

	"github.com/rs/zerolog/log"
)

type minimaxAgent struct {
	search *searcher.Minimax
	last   searcher.SearchMetrics
}

// NewMinimax returns an agent that plays the alpha-beta search result.
func NewMinimax(player game.Cell, options ...searcher.Option) Agent {
	return &minimaxAgent{search: searcher.NewMinimax(player, options...)}
}

func (a *minimaxAgent) Name() string {
	return fmt.Sprintf("minimax(depth=%d)", a.search.Depth())
}

func (a *minimaxAgent) Player() game.Cell {
	return a.search.Player()
}

func (a *minimaxAgent) Move(b *game.Board) error {
	column, score, metrics, err := a.search.FindMove(b)
	if err != nil {
		return err
	}
	a.last = metrics

	log.Debug().Msgf("%s plays column %d with score %d (%d nodes)", a.Player(), column, score, metrics.Nodes)
	return commit(b, column, a.Player())
}

func (a *minimaxAgent) LastSearch() searcher.SearchMetrics {
	return a.last
}
