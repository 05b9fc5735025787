// Package state holds the pure reducer behind the comment board. Every
// operation takes a snapshot and an action and returns a new snapshot; the
// input is never modified.
package state

import (
	"errors"
	"fmt"

	"github.com/MyNameIsWhaaat/commentboard/internal/board/model"
)

type ActionType string

const (
	ActionPostComment       ActionType = "post_comment"
	ActionDeleteComment     ActionType = "delete_comment"
	ActionReplyToComment    ActionType = "reply_to_comment"
	ActionDeleteReply       ActionType = "delete_reply"
	ActionToggleStar        ActionType = "toggle_star"
	ActionSort              ActionType = "sort"
	ActionSetNewCommentText ActionType = "set_new_comment_text"
	ActionSetReplyText      ActionType = "set_reply_text"
)

var ErrInvalidAction = errors.New("invalid action")

type Action struct {
	Type      ActionType `json:"type"`
	CommentID int64      `json:"comment_id,omitempty"`
	ReplyID   int64      `json:"reply_id,omitempty"`
	Text      string     `json:"text,omitempty"`
	Sort      model.Sort `json:"sort,omitempty"`
}

func PostComment() Action { return Action{Type: ActionPostComment} }

func DeleteComment(commentID int64) Action {
	return Action{Type: ActionDeleteComment, CommentID: commentID}
}

func ReplyToComment(commentID int64) Action {
	return Action{Type: ActionReplyToComment, CommentID: commentID}
}

func DeleteReply(commentID, replyID int64) Action {
	return Action{Type: ActionDeleteReply, CommentID: commentID, ReplyID: replyID}
}

func ToggleStar(commentID int64) Action {
	return Action{Type: ActionToggleStar, CommentID: commentID}
}

func SortBy(mode model.Sort) Action { return Action{Type: ActionSort, Sort: mode} }

func SetNewCommentText(text string) Action {
	return Action{Type: ActionSetNewCommentText, Text: text}
}

func SetReplyText(text string) Action {
	return Action{Type: ActionSetReplyText, Text: text}
}

// Validate reports whether the reducer knows how to apply a. Unknown comment
// or reply ids are not validation errors: applying them is a no-op.
func (a Action) Validate() error {
	if _, ok := reducers[a.Type]; !ok {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidAction, a.Type)
	}
	if a.Type == ActionSort && !a.Sort.Valid() {
		return fmt.Errorf("%w: unknown sort %q", ErrInvalidAction, a.Sort)
	}
	return nil
}
