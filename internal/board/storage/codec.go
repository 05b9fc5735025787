package storage

import (
	"encoding/json"
	"fmt"

	"github.com/MyNameIsWhaaat/commentboard/internal/board/model"
)

const snapshotVersion = 1

type envelope struct {
	Version int         `json:"v"`
	Board   model.Board `json:"board"`
}

// Encode serializes a snapshot for repositories that store opaque blobs.
func Encode(b model.Board) ([]byte, error) {
	data, err := json.Marshal(envelope{Version: snapshotVersion, Board: b})
	if err != nil {
		return nil, fmt.Errorf("encode board: %w", err)
	}
	return data, nil
}

func Decode(data []byte) (model.Board, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return model.Board{}, fmt.Errorf("decode board: %w", err)
	}
	if env.Version != snapshotVersion {
		return model.Board{}, fmt.Errorf("decode board: unsupported version %d", env.Version)
	}

	b := env.Board
	if b.Comments == nil {
		b.Comments = []model.Comment{}
	}
	for i := range b.Comments {
		if b.Comments[i].Replies == nil {
			b.Comments[i].Replies = []model.Reply{}
		}
	}
	return b, nil
}
