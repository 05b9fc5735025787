package state

import (
	"sort"
	"time"

	"github.com/MyNameIsWhaaat/commentboard/internal/board/model"
)

type reduceFunc func(r *Reducer, b model.Board, a Action) (model.Board, bool)

var reducers = map[ActionType]reduceFunc{
	ActionPostComment:       postComment,
	ActionDeleteComment:     deleteComment,
	ActionReplyToComment:    replyToComment,
	ActionDeleteReply:       deleteReply,
	ActionToggleStar:        toggleStar,
	ActionSort:              sortComments,
	ActionSetNewCommentText: setNewCommentText,
	ActionSetReplyText:      setReplyText,
}

type Reducer struct {
	ids IDStrategy
	now func() time.Time
}

// New returns a reducer. A nil now falls back to time.Now.
func New(ids IDStrategy, now func() time.Time) *Reducer {
	if ids == "" {
		ids = IDCounter
	}
	if now == nil {
		now = time.Now
	}
	return &Reducer{ids: ids, now: now}
}

// Reduce applies a to b and reports whether the result differs from b.
// Actions that fail Validate leave b unchanged.
func (r *Reducer) Reduce(b model.Board, a Action) (model.Board, bool) {
	fn, ok := reducers[a.Type]
	if !ok {
		return b, false
	}
	out, changed := fn(r, b, a)
	if !changed {
		return b, false
	}
	out.Revision = b.Revision + 1
	return out, true
}

// ReduceAll folds actions over b left to right.
func (r *Reducer) ReduceAll(b model.Board, actions ...Action) (model.Board, bool) {
	changed := false
	for _, a := range actions {
		var c bool
		b, c = r.Reduce(b, a)
		changed = changed || c
	}
	return b, changed
}

func (r *Reducer) timestamp() time.Time {
	return r.now().UTC().Truncate(time.Millisecond)
}

func postComment(r *Reducer, b model.Board, _ Action) (model.Board, bool) {
	id, next := r.ids.nextCommentID(b)

	comments := make([]model.Comment, 0, len(b.Comments)+1)
	comments = append(comments, b.Comments...)
	comments = append(comments, model.Comment{
		ID:        id,
		Text:      b.NewCommentText,
		Replies:   []model.Reply{},
		Timestamp: r.timestamp(),
		Starred:   false,
	})

	b.Comments = comments
	b.NextCommentID = next
	b.NewCommentText = ""
	return b, true
}

func deleteComment(_ *Reducer, b model.Board, a Action) (model.Board, bool) {
	if b.Find(a.CommentID) < 0 {
		return b, false
	}

	comments := make([]model.Comment, 0, len(b.Comments)-1)
	for _, c := range b.Comments {
		if c.ID != a.CommentID {
			comments = append(comments, c)
		}
	}
	b.Comments = comments
	return b, true
}

// updateMatching applies fn to every comment whose id is id. Ids can
// repeat under IDLength, so the first match is not enough.
func updateMatching(b model.Board, id int64, fn func(model.Comment) (model.Comment, bool)) (model.Board, bool) {
	var comments []model.Comment
	for i, c := range b.Comments {
		if c.ID != id {
			continue
		}
		next, ok := fn(c)
		if !ok {
			continue
		}
		if comments == nil {
			comments = b.CloneComments()
		}
		comments[i] = next
	}
	if comments == nil {
		return b, false
	}
	b.Comments = comments
	return b, true
}

// replyToComment always clears the shared reply draft, even when the
// target comment is gone.
func replyToComment(r *Reducer, b model.Board, a Action) (model.Board, bool) {
	draft := b.ReplyText
	b.ReplyText = ""
	ts := r.timestamp()

	out, changed := updateMatching(b, a.CommentID, func(c model.Comment) (model.Comment, bool) {
		id, next := r.ids.nextReplyID(c)

		replies := make([]model.Reply, 0, len(c.Replies)+1)
		replies = append(replies, c.Replies...)
		c.Replies = append(replies, model.Reply{
			ID:        id,
			Text:      draft,
			Timestamp: ts,
		})
		c.NextReplyID = next
		return c, true
	})
	return out, changed || draft != ""
}

func deleteReply(_ *Reducer, b model.Board, a Action) (model.Board, bool) {
	return updateMatching(b, a.CommentID, func(c model.Comment) (model.Comment, bool) {
		if c.FindReply(a.ReplyID) < 0 {
			return c, false
		}
		replies := make([]model.Reply, 0, len(c.Replies)-1)
		for _, rp := range c.Replies {
			if rp.ID != a.ReplyID {
				replies = append(replies, rp)
			}
		}
		c.Replies = replies
		return c, true
	})
}

func toggleStar(_ *Reducer, b model.Board, a Action) (model.Board, bool) {
	return updateMatching(b, a.CommentID, func(c model.Comment) (model.Comment, bool) {
		c.Starred = !c.Starred
		return c, true
	})
}

func sortComments(_ *Reducer, b model.Board, a Action) (model.Board, bool) {
	comments := b.CloneComments()

	switch a.Sort {
	case model.SortLatest:
		sort.SliceStable(comments, func(i, j int) bool {
			return comments[i].Timestamp.After(comments[j].Timestamp)
		})
	case model.SortMostReplies:
		sort.SliceStable(comments, func(i, j int) bool {
			return len(comments[i].Replies) > len(comments[j].Replies)
		})
	default:
		return b, false
	}

	if sameOrder(b.Comments, comments) {
		return b, false
	}
	b.Comments = comments
	return b, true
}

func sameOrder(a, b []model.Comment) bool {
	for i := range a {
		if a[i].ID != b[i].ID || !a[i].Timestamp.Equal(b[i].Timestamp) {
			return false
		}
	}
	return true
}

func setNewCommentText(_ *Reducer, b model.Board, a Action) (model.Board, bool) {
	if b.NewCommentText == a.Text {
		return b, false
	}
	b.NewCommentText = a.Text
	return b, true
}

func setReplyText(_ *Reducer, b model.Board, a Action) (model.Board, bool) {
	if b.ReplyText == a.Text {
		return b, false
	}
	b.ReplyText = a.Text
	return b, true
}
