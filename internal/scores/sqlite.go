package scores

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog/log"
)

// sqliteStore keeps the leaderboard in the scores table.
type sqliteStore struct {
	db *sql.DB
}

// NewSQLite returns a Store over db. The schema from assets.Migrations must be applied.
func NewSQLite(db *sql.DB) Store {
	return &sqliteStore{db: db}
}

func (s *sqliteStore) Load(ctx context.Context) []Entry {
	rows, err := s.db.QueryContext(ctx, `
        SELECT name, score
        FROM scores
        ORDER BY score DESC, id ASC
        LIMIT ?`, Limit,
	)
	if err != nil {
		log.Warn().Err(err).Msg("load leaderboard")
		return []Entry{}
	}
	defer rows.Close()

	out := make([]Entry, 0, Limit)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Name, &e.Score); err != nil {
			log.Warn().Err(err).Msg("scan leaderboard row")
			return []Entry{}
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		log.Warn().Err(err).Msg("load leaderboard")
		return []Entry{}
	}
	return out
}

// Save inserts the row and prunes everything outside the top Limit in one transaction.
func (s *sqliteStore) Save(ctx context.Context, name string, score int) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Warn().Err(err).Msg("save leaderboard: begin")
		return
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT INTO scores (name, score) VALUES (?, ?)`, name, score); err != nil {
		log.Warn().Err(err).Str("name", name).Msg("save leaderboard: insert")
		return
	}
	if _, err := tx.ExecContext(ctx, `
        DELETE FROM scores
        WHERE id NOT IN (
            SELECT id FROM scores ORDER BY score DESC, id ASC LIMIT ?
        )`, Limit,
	); err != nil {
		log.Warn().Err(err).Msg("save leaderboard: prune")
		return
	}
	if err := tx.Commit(); err != nil {
		log.Warn().Err(err).Msg("save leaderboard: commit")
	}
}
