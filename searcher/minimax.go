package searcher

import (
	"errors"
	"fmt"
	"math"

	"connect4/game"

	"github.com/rs/zerolog/log"
)

var (
	ErrNoMoves      = errors.New("searcher: no open column")
	ErrSearchFailed = errors.New("searcher: search failed")
)

type Option func(m *Minimax)

// Minimax is a depth-limited alpha-beta search for one player. It keeps no
// state between calls apart from its configuration.
type Minimax struct {
	player  game.Cell
	depth   int
	order   []int
	metrics MetricsCollector
}

func WithDepth(depth int) Option {
	return func(m *Minimax) {
		if depth >= 0 {
			m.depth = depth
		}
	}
}

// WithOrder sets the order in which columns are tried at every node. Entries
// outside the board are ignored and columns it leaves out are tried last.
func WithOrder(order []int) Option {
	return func(m *Minimax) {
		if len(order) > 0 {
			m.order = append([]int(nil), order...)
		}
	}
}

func WithMetrics() Option {
	return func(m *Minimax) {
		m.metrics = NewMetricsCollector()
	}
}

func NewMinimax(player game.Cell, options ...Option) *Minimax {
	if player != game.Red && player != game.Yellow {
		panic("minimax needs a red or yellow player")
	}
	m := &Minimax{ // Default values, centre-out order for the board searched
		player:  player,
		depth:   DefaultDepth,
		metrics: NewNoMetricsCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *Minimax) Player() game.Cell { return m.player }
func (m *Minimax) Depth() int        { return m.depth }

// orderFor returns the configured order restricted to a board of the given
// width, followed by any column it misses in centre-out order.
func (m *Minimax) orderFor(columns int) []int {
	if m.order == nil {
		return CenterOutOrder(columns)
	}
	seen := make([]bool, columns)
	order := make([]int, 0, columns)
	for _, col := range m.order {
		if col >= 0 && col < columns && !seen[col] {
			seen[col] = true
			order = append(order, col)
		}
	}
	for _, col := range CenterOutOrder(columns) {
		if !seen[col] {
			order = append(order, col)
		}
	}
	return order
}

// FindMove searches a private copy of b and returns the column to play with
// its score. The returned column is always open on b. A search that breaks
// its own board invariants returns ErrSearchFailed and leaves b untouched.
func (m *Minimax) FindMove(b *game.Board) (column, score int, metrics SearchMetrics, err error) {
	if b.IsFull() {
		return NoColumn, 0, SearchMetrics{}, ErrNoMoves
	}

	defer func() {
		if r := recover(); r != nil {
			column, score, metrics = NoColumn, 0, m.metrics.Complete()
			err = fmt.Errorf("%w: %v", ErrSearchFailed, r)
		}
	}()

	work := b.Clone()
	m.metrics.Start(m.depth)
	column, score = m.Search(work, m.depth, math.MinInt, math.MaxInt, true)
	metrics = m.metrics.Complete()

	if !work.Equal(b) {
		panic("search did not restore its working board")
	}

	if column < 0 || column >= b.Columns() || b.IsColumnFull(column) {
		fallback := m.firstOpen(b)
		log.Debug().Msgf("search returned column %d at the root, falling back to %d", column, fallback)
		column = fallback
	}
	return column, score, metrics, nil
}

// Search explores b to depthRemaining plies and returns the best column for
// the node together with its score from the search player's perspective.
// A terminal root reports NoColumn.
func (m *Minimax) Search(b *game.Board, depthRemaining, alpha, beta int, maximizing bool) (int, int) {
	return m.search(b, m.orderFor(b.Columns()), depthRemaining, alpha, beta, maximizing, NoColumn)
}

func (m *Minimax) search(b *game.Board, order []int, depth, alpha, beta int, maximizing bool, last int) (int, int) {
	m.metrics.AddNode()

	// Leaf: horizon reached, board full, or someone has won
	if depth <= 0 || b.IsFull() || b.Outcome() != game.Ongoing {
		m.metrics.AddLeaf()
		return last, game.Evaluate(b, m.player, depth)
	}

	bestColumn := NoColumn
	if maximizing {
		maxEval := math.MinInt
		for _, col := range order {
			if b.IsColumnFull(col) {
				continue
			}

			eval := m.child(b, order, col, m.player, depth-1, alpha, beta, false)

			alpha = max(alpha, eval)
			// Strictly greater keeps the earliest column among equal scores
			if eval > maxEval {
				maxEval = eval
				bestColumn = col
			}
			if beta <= alpha {
				m.metrics.AddCutoff()
				break
			}
		}
		return bestColumn, maxEval
	}

	minEval := math.MaxInt
	for _, col := range order {
		if b.IsColumnFull(col) {
			continue
		}

		eval := m.child(b, order, col, m.player.Opponent(), depth-1, alpha, beta, true)

		beta = min(beta, eval)
		if eval < minEval {
			minEval = eval
			bestColumn = col
		}
		if beta <= alpha {
			m.metrics.AddCutoff()
			break
		}
	}
	return bestColumn, minEval
}

// child plays col for player, scores the resulting position and takes the
// token back before returning.
func (m *Minimax) child(b *game.Board, order []int, col int, player game.Cell, depth, alpha, beta int, maximizing bool) int {
	row, err := b.Place(col, player)
	if err != nil {
		panic(fmt.Sprintf("search placed into column %d: %v", col, err))
	}
	defer func() {
		if err := b.Retract(col, row); err != nil {
			panic(fmt.Sprintf("search retracted column %d row %d: %v", col, row, err))
		}
	}()

	_, eval := m.search(b, order, depth, alpha, beta, maximizing, col)
	return eval
}

func (m *Minimax) firstOpen(b *game.Board) int {
	for _, col := range m.orderFor(b.Columns()) {
		if !b.IsColumnFull(col) {
			return col
		}
	}
	return NoColumn
}
