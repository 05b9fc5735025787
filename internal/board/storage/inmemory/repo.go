package inmemory

import (
	"context"
	"sync"

	"github.com/MyNameIsWhaaat/commentboard/internal/board/model"
	"github.com/MyNameIsWhaaat/commentboard/internal/board/storage"
)

// Repo keeps snapshots for the lifetime of the process. Snapshots are
// immutable, so storing the value is enough.
type Repo struct {
	mu sync.RWMutex

	boards map[string]model.Board
}

func New() *Repo {
	return &Repo{
		boards: make(map[string]model.Board),
	}
}

func (r *Repo) Load(ctx context.Context, boardID string) (model.Board, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.boards[boardID]
	if !ok {
		return model.Board{}, storage.ErrNotFound
	}
	return b, nil
}

func (r *Repo) Save(ctx context.Context, boardID string, b model.Board) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	r.boards[boardID] = b
	return nil
}
