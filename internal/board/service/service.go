package service

import (
	"context"

	"github.com/MyNameIsWhaaat/commentboard/internal/board/model"
	"github.com/MyNameIsWhaaat/commentboard/internal/board/state"
)

type BoardService interface {
	Snapshot(ctx context.Context) model.Board
	Dispatch(ctx context.Context, actions ...state.Action) (model.Board, error)
	Subscribe(ctx context.Context) <-chan model.Board

	PostComment(ctx context.Context) (model.Board, error)
	DeleteComment(ctx context.Context, commentID int64) (model.Board, error)
	ReplyToComment(ctx context.Context, commentID int64) (model.Board, error)
	DeleteReply(ctx context.Context, commentID, replyID int64) (model.Board, error)
	ToggleStar(ctx context.Context, commentID int64) (model.Board, error)
	SortBy(ctx context.Context, mode model.Sort) (model.Board, error)
	SortByLatest(ctx context.Context) (model.Board, error)
	SortByMostReplies(ctx context.Context) (model.Board, error)
	SetNewCommentText(ctx context.Context, text string) (model.Board, error)
	SetReplyText(ctx context.Context, text string) (model.Board, error)
}
