package state

import (
	"fmt"

	"github.com/MyNameIsWhaaat/commentboard/internal/board/model"
)

// IDStrategy decides how new comment and reply ids are picked.
type IDStrategy string

const (
	// IDCounter hands out ids from counters stored in the snapshot, so an
	// id is never reused after a deletion.
	IDCounter IDStrategy = "counter"
	// IDLength uses "current count + 1". Ids can collide after deletions.
	IDLength IDStrategy = "length"
)

func ParseIDStrategy(s string) (IDStrategy, error) {
	switch IDStrategy(s) {
	case "", IDCounter:
		return IDCounter, nil
	case IDLength:
		return IDLength, nil
	default:
		return "", fmt.Errorf("unknown id strategy %q", s)
	}
}

// nextCommentID returns the id for a new comment and the counter value to
// store afterwards. Both strategies move the counter past every id they hand
// out, so switching strategies never makes the counter reuse an id.
func (s IDStrategy) nextCommentID(b model.Board) (id, next int64) {
	if s == IDLength {
		id = int64(len(b.Comments)) + 1
		return id, max(b.NextCommentID, id+1)
	}
	id = b.NextCommentID
	for _, c := range b.Comments {
		if c.ID >= id {
			id = c.ID + 1
		}
	}
	return max(id, 1), max(id, 1) + 1
}

func (s IDStrategy) nextReplyID(c model.Comment) (id, next int64) {
	if s == IDLength {
		id = int64(len(c.Replies)) + 1
		return id, max(c.NextReplyID, id+1)
	}
	id = c.NextReplyID
	for _, r := range c.Replies {
		if r.ID >= id {
			id = r.ID + 1
		}
	}
	return max(id, 1), max(id, 1) + 1
}
