package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/MyNameIsWhaaat/commentboard/internal/board/model"
	"github.com/MyNameIsWhaaat/commentboard/internal/board/storage"
)

const table = "boards"

const schema = `
CREATE TABLE IF NOT EXISTS boards (
	id         TEXT PRIMARY KEY,
	state      JSONB NOT NULL,
	revision   BIGINT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Repo struct {
	db *sql.DB
}

func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Open connects through the pgx stdlib driver and checks the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

func (r *Repo) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate boards: %w", err)
	}
	return nil
}

func (r *Repo) Load(ctx context.Context, boardID string) (model.Board, error) {
	query, args, err := loadQuery(boardID)
	if err != nil {
		return model.Board{}, err
	}

	var data []byte
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Board{}, storage.ErrNotFound
	}
	if err != nil {
		return model.Board{}, fmt.Errorf("load board %q: %w", boardID, err)
	}

	return storage.Decode(data)
}

func (r *Repo) Save(ctx context.Context, boardID string, b model.Board) error {
	data, err := storage.Encode(b)
	if err != nil {
		return err
	}

	query, args, err := saveQuery(boardID, data, b.Revision)
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save board %q: %w", boardID, err)
	}
	return nil
}

func loadQuery(boardID string) (string, []any, error) {
	return psql.
		Select("state").
		From(table).
		Where(sq.Eq{"id": boardID}).
		ToSql()
}

// saveQuery upserts the snapshot. A row only moves forward: an older
// revision never overwrites a newer one.
func saveQuery(boardID string, data []byte, revision uint64) (string, []any, error) {
	return psql.
		Insert(table).
		Columns("id", "state", "revision").
		Values(boardID, data, int64(revision)).
		Suffix(`ON CONFLICT (id) DO UPDATE
			SET state = EXCLUDED.state, revision = EXCLUDED.revision, updated_at = now()
			WHERE boards.revision <= EXCLUDED.revision`).
		ToSql()
}
