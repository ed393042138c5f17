package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type MatchupRecord struct {
	ID         int
	Red        string // agent name
	Yellow     string
	Games      int
	RedWins    int
	YellowWins int
	Ties       int
	Invalid    int
}

type GameRecord struct {
	ID        int
	Matchup   int // MatchupRecord.ID
	Outcome   string
	Invalid   string // player who forfeited, empty if none
	Moves     int
	StartTime time.Time
	EndTime   time.Time
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates dir/name/<timestamp> to hold the experiment's files.
func NewWriter(dir, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(dir, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteMatchupRecords(records []MatchupRecord) error {
	header := []string{"id", "red", "yellow", "games", "red_wins", "yellow_wins", "ties", "invalid"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			record.Red,
			record.Yellow,
			strconv.Itoa(record.Games),
			strconv.Itoa(record.RedWins),
			strconv.Itoa(record.YellowWins),
			strconv.Itoa(record.Ties),
			strconv.Itoa(record.Invalid),
		})
	}
	return w.write("matchup_records.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "matchup", "outcome", "invalid", "moves", "start_time", "end_time", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Matchup),
			record.Outcome,
			record.Invalid,
			strconv.Itoa(record.Moves),
			record.StartTime.Format(time.RFC3339Nano),
			record.EndTime.Format(time.RFC3339Nano),
			record.EndTime.Sub(record.StartTime).String(),
		})
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "column", "duration", "depth", "nodes", "leaves", "cutoffs"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Player.String(),
			strconv.Itoa(record.Column),
			record.Duration.String(),
			strconv.Itoa(record.Search.Depth),
			strconv.FormatInt(record.Search.Nodes, 10),
			strconv.FormatInt(record.Search.Leaves, 10),
			strconv.FormatInt(record.Search.Cutoffs, 10),
		})
	}
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) write(file string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", file, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", file, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", file, err)
	}
	return nil
}
