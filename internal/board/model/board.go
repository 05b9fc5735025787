package model

// Board is one immutable snapshot of the comment board. Code that produces
// a new snapshot copies every slice it changes; a Board handed out by the
// service must never be written to.
type Board struct {
	Comments       []Comment `json:"comments"`
	NewCommentText string    `json:"new_comment_text"`
	ReplyText      string    `json:"reply_text"`
	NextCommentID  int64     `json:"next_comment_id,omitempty"`
	Revision       uint64    `json:"revision"`
}

func Empty() Board {
	return Board{Comments: []Comment{}}
}

// Find returns the index of the comment with the given id, or -1.
func (b Board) Find(id int64) int {
	for i, c := range b.Comments {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// CloneComments returns a shallow copy of the comment slice. Reply slices
// are shared with b and must be copied before they are modified.
func (b Board) CloneComments() []Comment {
	out := make([]Comment, len(b.Comments))
	copy(out, b.Comments)
	return out
}
