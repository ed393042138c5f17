package metrics

import (
	"time"

	"connect4/game"
	"connect4/searcher"
)

type MoveMetric struct {
	Step     int
	Player   game.Cell
	Column   int
	Duration time.Duration // wall time of the agent's turn
	Search   searcher.SearchMetrics
}

// Collector times the moves of one game.
type Collector struct {
	startTime time.Time
	moves     []MoveMetric
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Start() {
	c.startTime = time.Now()
}

// Complete records the move started by the last Start call.
func (c *Collector) Complete(player game.Cell, column int, search searcher.SearchMetrics) MoveMetric {
	m := MoveMetric{
		Step:     len(c.moves) + 1,
		Player:   player,
		Column:   column,
		Duration: time.Since(c.startTime),
		Search:   search,
	}
	c.moves = append(c.moves, m)
	return m
}

func (c *Collector) Moves() []MoveMetric {
	return append([]MoveMetric(nil), c.moves...)
}

func (c *Collector) Reset() {
	c.moves = c.moves[:0]
}
