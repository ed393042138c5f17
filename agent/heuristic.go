package agent

import (
	"connect4/game"

	"golang.org/x/exp/rand"
)

// Column scores used by the brilliant agent.
const (
	scoreWinNow       = 100000
	scoreBlockWin     = 10000
	scoreDoubleThreat = 8000
	scoreThreat       = 2000
	scoreGift         = -6000
	scoreThree        = 400
	scoreTwo          = 100
)

// winsWith reports whether player wins by dropping into col. b is left as found.
func winsWith(b *game.Board, col int, player game.Cell) bool {
	row, err := b.Place(col, player)
	if err != nil {
		return false
	}
	won := b.Outcome().Winner() == player
	_ = b.Retract(col, row)
	return won
}

// winningColumns lists the columns where player would win immediately.
func winningColumns(b *game.Board, player game.Cell) []int {
	var cols []int
	for _, col := range b.OpenColumns() {
		if winsWith(b, col, player) {
			cols = append(cols, col)
		}
	}
	return cols
}

// gives reports whether dropping player's token into col lets the opponent
// win straight after.
func gives(b *game.Board, col int, player game.Cell) bool {
	row, err := b.Place(col, player)
	if err != nil {
		return false
	}
	defer func() { _ = b.Retract(col, row) }()
	return len(winningColumns(b, player.Opponent())) > 0
}

func centreDistance(b *game.Board, col int) int {
	d := 2*col - (b.Columns() - 1)
	if d < 0 {
		d = -d
	}
	return d
}

// beginner takes an immediate win when it sees one and plays randomly otherwise.
type beginner struct {
	player game.Cell
	rng    *rand.Rand
}

func NewBeginner(player game.Cell, seed uint64) Agent {
	return &beginner{player: player, rng: newSource(seed)}
}

func (a *beginner) Name() string      { return "beginner" }
func (a *beginner) Player() game.Cell { return a.player }

func (a *beginner) Move(b *game.Board) error {
	open := b.OpenColumns()
	if len(open) == 0 {
		return game.ErrColumnFull
	}
	work := b.Clone()
	if wins := winningColumns(work, a.player); len(wins) > 0 {
		return commit(b, wins[0], a.player)
	}
	return commit(b, pick(a.rng, open), a.player)
}

// intermediate also blocks the opponent's immediate wins.
type intermediate struct {
	player game.Cell
	rng    *rand.Rand
}

func NewIntermediate(player game.Cell, seed uint64) Agent {
	return &intermediate{player: player, rng: newSource(seed)}
}

func (a *intermediate) Name() string      { return "intermediate" }
func (a *intermediate) Player() game.Cell { return a.player }

func (a *intermediate) Move(b *game.Board) error {
	open := b.OpenColumns()
	if len(open) == 0 {
		return game.ErrColumnFull
	}
	work := b.Clone()
	if wins := winningColumns(work, a.player); len(wins) > 0 {
		return commit(b, wins[0], a.player)
	}
	if blocks := winningColumns(work, a.player.Opponent()); len(blocks) > 0 {
		return commit(b, blocks[0], a.player)
	}
	return commit(b, pick(a.rng, open), a.player)
}

// advanced wins, blocks, then avoids handing the opponent a win and prefers
// columns near the centre.
type advanced struct {
	player game.Cell
	rng    *rand.Rand
}

func NewAdvanced(player game.Cell, seed uint64) Agent {
	return &advanced{player: player, rng: newSource(seed)}
}

func (a *advanced) Name() string      { return "advanced" }
func (a *advanced) Player() game.Cell { return a.player }

func (a *advanced) Move(b *game.Board) error {
	open := b.OpenColumns()
	if len(open) == 0 {
		return game.ErrColumnFull
	}
	work := b.Clone()
	if wins := winningColumns(work, a.player); len(wins) > 0 {
		return commit(b, wins[0], a.player)
	}
	if blocks := winningColumns(work, a.player.Opponent()); len(blocks) > 0 {
		return commit(b, blocks[0], a.player)
	}

	var safe []int
	for _, col := range open {
		if !gives(work, col, a.player) {
			safe = append(safe, col)
		}
	}
	if len(safe) == 0 {
		safe = open
	}

	best := []int{}
	bestDistance := -1
	for _, col := range safe {
		d := centreDistance(b, col)
		switch {
		case bestDistance < 0 || d < bestDistance:
			best = append(best[:0], col)
			bestDistance = d
		case d == bestDistance:
			best = append(best, col)
		}
	}
	return commit(b, pick(a.rng, best), a.player)
}

// brilliant scores every open column and plays the best one, breaking ties
// towards the centre.
type brilliant struct {
	player game.Cell
}

func NewBrilliant(player game.Cell) Agent {
	return &brilliant{player: player}
}

func (a *brilliant) Name() string      { return "brilliant" }
func (a *brilliant) Player() game.Cell { return a.player }

func (a *brilliant) Move(b *game.Board) error {
	open := b.OpenColumns()
	if len(open) == 0 {
		return game.ErrColumnFull
	}
	work := b.Clone()

	bestColumn, bestScore := open[0], 0
	for i, col := range open {
		score := a.score(work, col)
		if i == 0 || score > bestScore ||
			(score == bestScore && centreDistance(b, col) < centreDistance(b, bestColumn)) {
			bestColumn, bestScore = col, score
		}
	}
	return commit(b, bestColumn, a.player)
}

func (a *brilliant) score(b *game.Board, col int) int {
	opponent := a.player.Opponent()
	score := 0
	if winsWith(b, col, opponent) {
		score += scoreBlockWin
	}

	row, err := b.Place(col, a.player)
	if err != nil {
		return scoreGift * 10
	}
	defer func() { _ = b.Retract(col, row) }()

	if b.Outcome().Winner() == a.player {
		return score + scoreWinNow
	}

	switch threats := len(winningColumns(b, a.player)); {
	case threats >= 2:
		score += scoreDoubleThreat
	case threats == 1:
		score += scoreThreat
	}
	if len(winningColumns(b, opponent)) > 0 {
		score += scoreGift
	}

	for _, dir := range [][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}} {
		run, open := lineThrough(b, row, col, dir[0], dir[1], a.player)
		if run+open < game.ToWin {
			continue
		}
		switch {
		case run >= 3:
			score += scoreThree
		case run == 2:
			score += scoreTwo
		}
	}

	switch centreDistance(b, col) {
	case 0:
		score += 30
	case 2:
		score += 20
	case 4:
		score += 5
	}
	return score
}

// lineThrough counts player's connected tokens through (row, col) along the
// direction and the empty cells that could extend them.
func lineThrough(b *game.Board, row, col, dRow, dCol int, player game.Cell) (run, open int) {
	run = 1
	for _, sign := range []int{1, -1} {
		r, c := row+sign*dRow, col+sign*dCol
		for b.InBounds(r, c) && b.At(r, c) == player {
			run++
			r, c = r+sign*dRow, c+sign*dCol
		}
		for b.InBounds(r, c) && b.At(r, c) == game.Empty && open < game.ToWin {
			open++
			r, c = r+sign*dRow, c+sign*dCol
		}
	}
	return run, open
}
