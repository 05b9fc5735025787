package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MyNameIsWhaaat/commentboard/internal/board/model"
)

func TestDecodeFillsNilSlices(t *testing.T) {
	b, err := Decode([]byte(`{"v":1,"board":{"comments":[{"id":1,"text":"x","timestamp":"2024-03-01T12:00:00.000Z"}],"revision":4}}`))
	require.NoError(t, err)
	require.Len(t, b.Comments, 1)
	assert.NotNil(t, b.Comments[0].Replies)
	assert.Equal(t, uint64(4), b.Revision)
	assert.True(t, b.Comments[0].Timestamp.Equal(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)))

	b, err = Decode([]byte(`{"v":1,"board":{}}`))
	require.NoError(t, err)
	assert.NotNil(t, b.Comments)
}

func TestDecodeRejectsUnknownVersion(t *testing.T) {
	_, err := Decode([]byte(`{"v":9,"board":{}}`))
	assert.ErrorContains(t, err, "unsupported version")

	_, err = Decode([]byte(`not json`))
	assert.Error(t, err)
}

func TestEncodeKeepsDraftsAndCounters(t *testing.T) {
	in := model.Board{
		Comments:       []model.Comment{{ID: 3, Text: "a", Replies: []model.Reply{}, NextReplyID: 2}},
		NewCommentText: "draft",
		ReplyText:      "reply draft",
		NextCommentID:  4,
		Revision:       7,
	}

	data, err := Encode(in)
	require.NoError(t, err)

	out, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, in.NewCommentText, out.NewCommentText)
	assert.Equal(t, in.ReplyText, out.ReplyText)
	assert.Equal(t, in.NextCommentID, out.NextCommentID)
	assert.Equal(t, int64(2), out.Comments[0].NextReplyID)
}
