package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/MyNameIsWhaaat/commentboard/internal/board/model"
	"github.com/MyNameIsWhaaat/commentboard/internal/board/state"
	"github.com/MyNameIsWhaaat/commentboard/internal/board/storage"
)

var ErrInvalidInput = errors.New("invalid input")

const DefaultBoardID = "default"

type Options struct {
	BoardID string
	IDs     state.IDStrategy
	Now     func() time.Time
	Logger  zerolog.Logger
}

type boardService struct {
	repo    storage.Repository
	reducer *state.Reducer
	boardID string
	log     zerolog.Logger

	mu    sync.RWMutex
	board model.Board

	subMu   sync.Mutex
	nextSub int
	subs    map[int]chan model.Board
}

// New loads the board from repo, starting empty when it does not exist yet.
func New(ctx context.Context, repo storage.Repository, opts Options) (BoardService, error) {
	if opts.BoardID == "" {
		opts.BoardID = DefaultBoardID
	}

	b, err := repo.Load(ctx, opts.BoardID)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		b = model.Empty()
	case err != nil:
		return nil, fmt.Errorf("load board: %w", err)
	}

	s := &boardService{
		repo:    repo,
		reducer: state.New(opts.IDs, opts.Now),
		boardID: opts.BoardID,
		log:     opts.Logger.With().Str("board", opts.BoardID).Logger(),
		board:   b,
		subs:    make(map[int]chan model.Board),
	}

	s.log.Info().
		Int("comments", len(b.Comments)).
		Uint64("revision", b.Revision).
		Msg("board loaded")

	return s, nil
}

func (s *boardService) Snapshot(ctx context.Context) model.Board {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board
}

// Dispatch applies actions as one batch. Subscribers see a single snapshot
// for the whole batch. When saving fails the new snapshot is kept and
// returned together with the error.
func (s *boardService) Dispatch(ctx context.Context, actions ...state.Action) (model.Board, error) {
	for _, a := range actions {
		if err := a.Validate(); err != nil {
			return s.Snapshot(ctx), fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	s.mu.Lock()
	next, changed := s.reducer.ReduceAll(s.board, actions...)
	if !changed {
		s.mu.Unlock()
		return next, nil
	}
	s.board = next
	saveErr := s.repo.Save(ctx, s.boardID, next)
	s.publish(next)
	s.mu.Unlock()

	s.log.Debug().
		Interface("actions", actions).
		Uint64("revision", next.Revision).
		Msg("board updated")

	if saveErr != nil {
		s.log.Error().Err(saveErr).Uint64("revision", next.Revision).Msg("save board")
		return next, fmt.Errorf("save board: %w", saveErr)
	}
	return next, nil
}

// Subscribe returns a channel that first receives the current snapshot and
// then the latest one after every change. A slow reader skips intermediate
// snapshots. The channel is closed once ctx is done.
func (s *boardService) Subscribe(ctx context.Context) <-chan model.Board {
	ch := make(chan model.Board, 1)

	// lock order is mu then subMu, same as Dispatch
	s.mu.RLock()
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	ch <- s.board
	s.subMu.Unlock()
	s.mu.RUnlock()

	go func() {
		<-ctx.Done()
		s.subMu.Lock()
		delete(s.subs, id)
		close(ch)
		s.subMu.Unlock()
	}()

	return ch
}

func (s *boardService) publish(b model.Board) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for _, ch := range s.subs {
		select {
		case ch <- b:
			continue
		default:
		}
		// drop the stale snapshot, keep the newest
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- b:
		default:
		}
	}
}

func (s *boardService) PostComment(ctx context.Context) (model.Board, error) {
	return s.Dispatch(ctx, state.PostComment())
}

func (s *boardService) DeleteComment(ctx context.Context, commentID int64) (model.Board, error) {
	return s.Dispatch(ctx, state.DeleteComment(commentID))
}

func (s *boardService) ReplyToComment(ctx context.Context, commentID int64) (model.Board, error) {
	return s.Dispatch(ctx, state.ReplyToComment(commentID))
}

func (s *boardService) DeleteReply(ctx context.Context, commentID, replyID int64) (model.Board, error) {
	return s.Dispatch(ctx, state.DeleteReply(commentID, replyID))
}

func (s *boardService) ToggleStar(ctx context.Context, commentID int64) (model.Board, error) {
	return s.Dispatch(ctx, state.ToggleStar(commentID))
}

func (s *boardService) SortBy(ctx context.Context, mode model.Sort) (model.Board, error) {
	return s.Dispatch(ctx, state.SortBy(mode))
}

func (s *boardService) SortByLatest(ctx context.Context) (model.Board, error) {
	return s.SortBy(ctx, model.SortLatest)
}

func (s *boardService) SortByMostReplies(ctx context.Context) (model.Board, error) {
	return s.SortBy(ctx, model.SortMostReplies)
}

func (s *boardService) SetNewCommentText(ctx context.Context, text string) (model.Board, error) {
	return s.Dispatch(ctx, state.SetNewCommentText(text))
}

func (s *boardService) SetReplyText(ctx context.Context, text string) (model.Board, error) {
	return s.Dispatch(ctx, state.SetReplyText(text))
}
