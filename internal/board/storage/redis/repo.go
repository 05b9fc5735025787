package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MyNameIsWhaaat/commentboard/internal/board/model"
	"github.com/MyNameIsWhaaat/commentboard/internal/board/storage"
)

const keyPrefix = "commentboard:board:"

type Repo struct {
	client goredis.UniversalClient
}

func New(client goredis.UniversalClient) *Repo {
	return &Repo{client: client}
}

// Open creates a client and checks the connection.
func Open(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return client, nil
}

func (r *Repo) Load(ctx context.Context, boardID string) (model.Board, error) {
	data, err := r.client.Get(ctx, key(boardID)).Bytes()
	if errors.Is(err, goredis.Nil) {
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
	if err := r.client.Set(ctx, key(boardID), data, 0).Err(); err != nil {
		return fmt.Errorf("save board %q: %w", boardID, err)
	}
	return nil
}

func key(boardID string) string {
	return keyPrefix + boardID
}
