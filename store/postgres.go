package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const schema = `
CREATE TABLE IF NOT EXISTS grading_run (
	id         BIGSERIAL PRIMARY KEY,
	subject    TEXT NOT NULL,
	grade      DOUBLE PRECISION NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS matchup (
	run_id      BIGINT NOT NULL REFERENCES grading_run(id) ON DELETE CASCADE,
	seq         INT NOT NULL,
	red         TEXT NOT NULL,
	yellow      TEXT NOT NULL,
	games       INT NOT NULL,
	red_wins    INT NOT NULL,
	yellow_wins INT NOT NULL,
	ties        INT NOT NULL,
	invalid     INT NOT NULL,
	PRIMARY KEY (run_id, seq)
);
`

type Postgres struct {
	db *sql.DB
}

// OpenPostgres connects to connStr and creates the tables if needed.
func OpenPostgres(ctx context.Context, connStr string) (*Postgres, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database schema: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetConnMaxLifetime(30 * time.Minute)

	log.Info().Msg("connected to postgres")
	return &Postgres{db: db}, nil
}

// SaveRun stores the run and its matchups in one transaction.
func (p *Postgres) SaveRun(ctx context.Context, run Run) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	var id int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO grading_run (subject, grade, created_at) VALUES ($1, $2, $3) RETURNING id`,
		run.Subject, run.Grade, createdAt,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO matchup (run_id, seq, red, yellow, games, red_wins, yellow_wins, ties, invalid)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`)
	if err != nil {
		return fmt.Errorf("failed to prepare matchup insert: %w", err)
	}
	defer stmt.Close()

	for _, m := range run.Matchups {
		_, err := stmt.ExecContext(ctx, id, m.ID, m.Red, m.Yellow, m.Games, m.RedWins, m.YellowWins, m.Ties, m.Invalid)
		if err != nil {
			return fmt.Errorf("failed to insert matchup %d: %w", m.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	log.Info().Msgf("saved run %d with %d matchups to postgres", id, len(run.Matchups))
	return nil
}

// BestGrades returns the highest grade recorded per subject.
func (p *Postgres) BestGrades(ctx context.Context) (map[string]float64, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT subject, MAX(grade) FROM grading_run GROUP BY subject`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	grades := map[string]float64{}
	for rows.Next() {
		var subject string
		var grade float64
		if err := rows.Scan(&subject, &grade); err != nil {
			return nil, err
		}
		grades[subject] = grade
	}
	return grades, rows.Err()
}

func (p *Postgres) Close() error {
	return p.db.Close()
}
