package repository

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"lostfound/internal/models"
	"lostfound/internal/store"
)

// ConversationRepository owns the per-post message sequences and the
// cosmetic report flags.
type ConversationRepository interface {
	// Load returns a post's messages in send order. Absent or corrupt
	// data reads as an empty conversation.
	Load(ctx context.Context, postID int) ([]models.Message, error)
	// Append pushes a message to the end of the conversation and
	// rewrites the whole sequence.
	Append(ctx context.Context, postID int, msg models.Message) error
	// Send validates and appends a message. Empty text after trimming
	// is a silent no-op (nil message, nil error). A missing sender is
	// rejected unless in.AllowGuest, in which case the fixed guest
	// identity is stamped.
	Send(ctx context.Context, in SendMessageInput) (*models.Message, error)
	// ListPostIDsWithActivity enumerates every post id that has a
	// conversation key, ordered by last-message timestamp descending.
	// Conversations without messages sort last.
	ListPostIDsWithActivity(ctx context.Context) ([]int, error)

	MarkReported(ctx context.Context, postID int, reporterEmail string) error
	IsReported(ctx context.Context, postID int, reporterEmail string) (bool, error)
}

// SendMessageInput is the input for sending a message.
type SendMessageInput struct {
	PostID     int
	Text       string
	Sender     *models.User
	AllowGuest bool
}

type conversationRepository struct {
	store store.Store
	now   func() int64
}

// NewConversationRepository creates a conversation repository over the
// given store.
func NewConversationRepository(st store.Store) ConversationRepository {
	return &conversationRepository{
		store: st,
		now:   func() int64 { return time.Now().UnixMilli() },
	}
}

func messagesKey(postID int) string {
	return messagesPrefix + strconv.Itoa(postID)
}

func (r *conversationRepository) Load(ctx context.Context, postID int) ([]models.Message, error) {
	raw, ok, err := r.store.Get(ctx, messagesKey(postID))
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.Message{}, nil
	}

	var msgs []models.Message
	if err := json.Unmarshal([]byte(raw), &msgs); err != nil {
		return []models.Message{}, nil
	}
	if msgs == nil {
		return []models.Message{}, nil
	}
	return msgs, nil
}

func (r *conversationRepository) Append(ctx context.Context, postID int, msg models.Message) error {
	msgs, err := r.Load(ctx, postID)
	if err != nil {
		return err
	}
	msgs = append(msgs, msg)

	raw, err := json.Marshal(msgs)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, messagesKey(postID), string(raw))
}

func (r *conversationRepository) Send(ctx context.Context, in SendMessageInput) (*models.Message, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, nil
	}

	sender := in.Sender
	if sender == nil {
		if !in.AllowGuest {
			return nil, models.NewUnauthorizedError("Log in to send messages")
		}
		guest := models.Guest()
		sender = &guest
	}

	msg := models.Message{
		Text:        text,
		SenderName:  sender.Name,
		SenderEmail: sender.Email,
		Timestamp:   r.now(),
	}
	if err := r.Append(ctx, in.PostID, msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *conversationRepository) ListPostIDsWithActivity(ctx context.Context) ([]int, error) {
	keys, err := r.store.Keys(ctx)
	if err != nil {
		return nil, err
	}

	var ids []int
	lastActivity := map[int]int64{}
	for _, key := range keys {
		if !strings.HasPrefix(key, messagesPrefix) {
			continue
		}
		id, err := strconv.Atoi(strings.TrimPrefix(key, messagesPrefix))
		if err != nil {
			continue
		}

		msgs, err := r.Load(ctx, id)
		if err != nil {
			return nil, err
		}
		var last int64
		if len(msgs) > 0 {
			last = msgs[len(msgs)-1].Timestamp
		}
		ids = append(ids, id)
		lastActivity[id] = last
	}

	// Newest activity first.
	sort.SliceStable(ids, func(i, j int) bool {
		return lastActivity[ids[i]] > lastActivity[ids[j]]
	})
	return ids, nil
}

// ReporterKey normalizes the reporting identity: the user's email, or
// "guest" for anonymous reporters.
func ReporterKey(user *models.User) string {
	if user == nil || user.Email == "" {
		return "guest"
	}
	return user.Email
}

func reportedKey(postID int, reporterEmail string) string {
	return reportedPrefix + strconv.Itoa(postID) + "_" + reporterEmail
}

func (r *conversationRepository) MarkReported(ctx context.Context, postID int, reporterEmail string) error {
	return r.store.Set(ctx, reportedKey(postID, reporterEmail), "1")
}

func (r *conversationRepository) IsReported(ctx context.Context, postID int, reporterEmail string) (bool, error) {
	v, ok, err := r.store.Get(ctx, reportedKey(postID, reporterEmail))
	if err != nil {
		return false, err
	}
	return ok && v == "1", nil
}
