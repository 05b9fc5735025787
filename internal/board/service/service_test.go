package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/MyNameIsWhaaat/commentboard/internal/board/model"
	"github.com/MyNameIsWhaaat/commentboard/internal/board/state"
	"github.com/MyNameIsWhaaat/commentboard/internal/board/storage"
	inm "github.com/MyNameIsWhaaat/commentboard/internal/board/storage/inmemory"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// failingRepo wraps inmemory.Repo and fails every save.
type failingRepo struct {
	*inm.Repo
}

func (f *failingRepo) Save(ctx context.Context, boardID string, b model.Board) error {
	return errors.New("disk on fire")
}

func newService(t *testing.T, repo storage.Repository) BoardService {
	t.Helper()
	svc, err := New(context.Background(), repo, Options{Logger: zerolog.Nop()})
	require.NoError(t, err)
	return svc
}

func TestPostAndReplyPersist(t *testing.T) {
	ctx := context.Background()
	repo := inm.New()
	svc := newService(t, repo)

	_, err := svc.SetNewCommentText(ctx, "hello")
	require.NoError(t, err)
	b, err := svc.PostComment(ctx)
	require.NoError(t, err)
	require.Len(t, b.Comments, 1)
	assert.Empty(t, b.NewCommentText)

	b, err = svc.Dispatch(ctx, state.SetReplyText("hi"), state.ReplyToComment(b.Comments[0].ID))
	require.NoError(t, err)
	require.Len(t, b.Comments[0].Replies, 1)
	assert.Equal(t, "hi", b.Comments[0].Replies[0].Text)

	saved, err := repo.Load(ctx, DefaultBoardID)
	require.NoError(t, err)
	assert.Equal(t, b.Revision, saved.Revision)
	assert.Len(t, saved.Comments[0].Replies, 1)

	// a fresh service picks up where the last one stopped
	again := newService(t, repo)
	assert.Equal(t, b.Revision, again.Snapshot(ctx).Revision)
}

func TestMissingIDsAreNoops(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, inm.New())

	b, err := svc.PostComment(ctx)
	require.NoError(t, err)
	rev := b.Revision

	for _, op := range []func() (model.Board, error){
		func() (model.Board, error) { return svc.DeleteComment(ctx, 99) },
		func() (model.Board, error) { return svc.ToggleStar(ctx, 99) },
		func() (model.Board, error) { return svc.DeleteReply(ctx, 1, 99) },
		func() (model.Board, error) { return svc.ReplyToComment(ctx, 99) },
	} {
		got, err := op()
		require.NoError(t, err)
		assert.Equal(t, rev, got.Revision)
	}
}

func TestSortByLatestAndMostReplies(t *testing.T) {
	ctx := context.Background()
	tick := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := func() time.Time {
		tick = tick.Add(time.Minute)
		return tick
	}
	svc, err := New(ctx, inm.New(), Options{Now: now, Logger: zerolog.Nop()})
	require.NoError(t, err)

	for _, text := range []string{"old", "mid", "new"} {
		_, err := svc.Dispatch(ctx, state.SetNewCommentText(text), state.PostComment())
		require.NoError(t, err)
	}
	_, err = svc.Dispatch(ctx, state.SetReplyText("r"), state.ReplyToComment(1))
	require.NoError(t, err)

	b, err := svc.SortByLatest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new", b.Comments[0].Text)
	assert.Equal(t, "old", b.Comments[2].Text)

	b, err = svc.SortByMostReplies(ctx)
	require.NoError(t, err)
	assert.Equal(t, "old", b.Comments[0].Text)
}

func TestDispatchRejectsInvalidActions(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, inm.New())

	_, err := svc.SortBy(ctx, "alphabetical")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Dispatch(ctx, state.PostComment(), state.Action{Type: "nuke"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, svc.Snapshot(ctx).Comments, "batch must be rejected as a whole")
}

func TestSaveFailureKeepsSnapshot(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, &failingRepo{inm.New()})

	b, err := svc.PostComment(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")
	assert.Len(t, b.Comments, 1)
	assert.Len(t, svc.Snapshot(ctx).Comments, 1)
}

func TestNewStartsEmptyForUnknownBoard(t *testing.T) {
	svc, err := New(context.Background(), inm.New(), Options{BoardID: "fresh", Logger: zerolog.Nop()})
	require.NoError(t, err)

	b := svc.Snapshot(context.Background())
	assert.NotNil(t, b.Comments)
	assert.Zero(t, b.Revision)
}

func TestSubscribe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	svc := newService(t, inm.New())

	ch := svc.Subscribe(ctx)

	first := <-ch
	assert.Zero(t, first.Revision)

	_, err := svc.PostComment(ctx)
	require.NoError(t, err)
	_, err = svc.ToggleStar(ctx, 1)
	require.NoError(t, err)

	// latest wins: the buffered post snapshot was replaced by the star one
	latest := <-ch
	assert.Equal(t, uint64(2), latest.Revision)
	assert.True(t, latest.Comments[0].Starred)

	cancel()
	for range ch {
	}
}
