package storage

import (
	"context"
	"errors"

	"github.com/MyNameIsWhaaat/commentboard/internal/board/model"
)

var ErrNotFound = errors.New("board not found")

// Repository persists whole board snapshots keyed by board id.
type Repository interface {
	Load(ctx context.Context, boardID string) (model.Board, error)
	Save(ctx context.Context, boardID string, b model.Board) error
}
