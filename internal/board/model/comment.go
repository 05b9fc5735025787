package model

import "time"

type Comment struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Replies   []Reply   `json:"replies"`
	Timestamp time.Time `json:"timestamp"`
	Starred   bool      `json:"starred"`

	// NextReplyID is only consulted by the counter id strategy.
	NextReplyID int64 `json:"next_reply_id,omitempty"`
}

type Reply struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// FindReply returns the index of the reply with the given id, or -1.
func (c Comment) FindReply(id int64) int {
	for i, r := range c.Replies {
		if r.ID == id {
			return i
		}
	}
	return -1
}
