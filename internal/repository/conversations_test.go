package repository

import (
	"context"
	"testing"

	"lostfound/internal/models"
	"lostfound/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConvRepo(t *testing.T) (ConversationRepository, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemory()
	return NewConversationRepository(st), st
}

func TestLoadAbsentOrCorruptReadsAsEmpty(t *testing.T) {
	ctx := context.Background()
	convs, st := newConvRepo(t)

	msgs, err := convs.Load(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, msgs)

	require.NoError(t, st.Set(ctx, "lostfound_messages_42", "{{{"))
	msgs, err = convs.Load(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestAppendPreservesSendOrder(t *testing.T) {
	ctx := context.Background()
	convs, _ := newConvRepo(t)

	m1 := models.Message{Text: "first", SenderName: "Ada", SenderEmail: "ada@metu.edu.tr", Timestamp: 10}
	m2 := models.Message{Text: "second", SenderName: "Ece", SenderEmail: "ece@metu.edu.tr", Timestamp: 20}

	require.NoError(t, convs.Append(ctx, 1, m1))
	require.NoError(t, convs.Append(ctx, 1, m2))

	msgs, err := convs.Load(ctx, 1)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, m1, msgs[0])
	assert.Equal(t, m2, msgs[1])
}

func TestSend(t *testing.T) {
	ctx := context.Background()
	sender := &models.User{Name: "Ada", Email: "ada@metu.edu.tr", Department: "CENG"}

	t.Run("stamps sender snapshot and timestamp", func(t *testing.T) {
		convs, _ := newConvRepo(t)
		msg, err := convs.Send(ctx, SendMessageInput{PostID: 1, Text: "  hello  ", Sender: sender})
		require.NoError(t, err)
		require.NotNil(t, msg)
		assert.Equal(t, "hello", msg.Text)
		assert.Equal(t, "Ada", msg.SenderName)
		assert.Equal(t, "ada@metu.edu.tr", msg.SenderEmail)
		assert.Positive(t, msg.Timestamp)

		msgs, err := convs.Load(ctx, 1)
		require.NoError(t, err)
		require.Len(t, msgs, 1)
		assert.Equal(t, *msg, msgs[0])
	})

	t.Run("blank text is a silent no-op", func(t *testing.T) {
		convs, _ := newConvRepo(t)
		msg, err := convs.Send(ctx, SendMessageInput{PostID: 1, Text: "   ", Sender: sender})
		require.NoError(t, err)
		assert.Nil(t, msg)

		msgs, err := convs.Load(ctx, 1)
		require.NoError(t, err)
		assert.Empty(t, msgs)
	})

	t.Run("anonymous sender rejected when guests are not allowed", func(t *testing.T) {
		convs, _ := newConvRepo(t)
		_, err := convs.Send(ctx, SendMessageInput{PostID: 1, Text: "hi", Sender: nil, AllowGuest: false})
		require.Error(t, err)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeUnauthorized, appErr.Code)

		msgs, loadErr := convs.Load(ctx, 1)
		require.NoError(t, loadErr)
		assert.Empty(t, msgs)
	})

	t.Run("anonymous sender falls back to guest identity when allowed", func(t *testing.T) {
		convs, _ := newConvRepo(t)
		msg, err := convs.Send(ctx, SendMessageInput{PostID: 1, Text: "hi", Sender: nil, AllowGuest: true})
		require.NoError(t, err)
		require.NotNil(t, msg)
		assert.Equal(t, models.GuestName, msg.SenderName)
		assert.Equal(t, models.GuestEmail, msg.SenderEmail)
	})
}

func TestListPostIDsWithActivity(t *testing.T) {
	ctx := context.Background()
	convs, st := newConvRepo(t)

	// A: last message at t=10, B: last at t=20, C: conversation key with
	// no messages sorts last.
	require.NoError(t, convs.Append(ctx, 7, models.Message{Text: "a1", Timestamp: 5}))
	require.NoError(t, convs.Append(ctx, 7, models.Message{Text: "a2", Timestamp: 10}))
	require.NoError(t, convs.Append(ctx, 9, models.Message{Text: "b1", Timestamp: 20}))
	require.NoError(t, st.Set(ctx, "lostfound_messages_11", "[]"))

	// Unrelated and malformed keys are ignored.
	require.NoError(t, st.Set(ctx, "lostfound_posts", "[]"))
	require.NoError(t, st.Set(ctx, "lostfound_messages_notanumber", "[]"))

	ids, err := convs.ListPostIDsWithActivity(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{9, 7, 11}, ids)
}

func TestReportFlags(t *testing.T) {
	ctx := context.Background()
	convs, _ := newConvRepo(t)

	reported, err := convs.IsReported(ctx, 3, "ada@metu.edu.tr")
	require.NoError(t, err)
	assert.False(t, reported)

	require.NoError(t, convs.MarkReported(ctx, 3, "ada@metu.edu.tr"))

	reported, err = convs.IsReported(ctx, 3, "ada@metu.edu.tr")
	require.NoError(t, err)
	assert.True(t, reported)

	// Flags are per reporter.
	reported, err = convs.IsReported(ctx, 3, "guest")
	require.NoError(t, err)
	assert.False(t, reported)
}

func TestReporterKey(t *testing.T) {
	assert.Equal(t, "guest", ReporterKey(nil))
	assert.Equal(t, "guest", ReporterKey(&models.User{}))
	assert.Equal(t, "ada@metu.edu.tr", ReporterKey(&models.User{Email: "ada@metu.edu.tr"}))
}
