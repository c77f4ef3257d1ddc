package views

import (
	"testing"
	"time"

	"lostfound/internal/mappin"
	"lostfound/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fp(v float64) *float64 { return &v }

func TestNewPostCard(t *testing.T) {
	p := models.Post{
		ID:             4,
		Type:           models.PostTypeLost,
		Title:          "Lost: Black Wallet",
		CampusArea:     "Library",
		LocationDetail: "2nd floor",
		Date:           "2025-11-15",
		Time:           "Afternoon",
		Description:    "Leather wallet",
		Tags:           []string{"wallet"},
		ImageURL:       "./images/post1.jpg",
		MapX:           fp(0.5),
		MapY:           fp(0.5),
		UserName:       "Ali K.",
		UserDept:       "CEIT",
	}

	card := NewPostCard(p)
	assert.Equal(t, "LOST", card.Badge)
	assert.Equal(t, "2025-11-15, Afternoon", card.When)
	assert.Equal(t, "Posted by Ali K. (CEIT)", card.PostedBy)
	assert.True(t, card.HasImage)
	assert.Equal(t, "./images/post1.jpg", card.ImageSrc)
	assert.True(t, card.HasPin)
}

func TestPostCardPrefersEmbeddedImage(t *testing.T) {
	p := models.Post{ImageData: "data:image/png;base64,xxxx", ImageURL: "./images/post1.jpg"}
	card := NewPostCard(p)
	assert.Equal(t, "data:image/png;base64,xxxx", card.ImageSrc)
}

func TestPostCardDepartmentFallback(t *testing.T) {
	card := NewPostCard(models.Post{UserName: "Ada"})
	assert.Equal(t, "Posted by Ada (Student)", card.PostedBy)
	assert.False(t, card.HasPin)
	assert.False(t, card.HasImage)
}

func TestRenderPostList(t *testing.T) {
	posts := []models.Post{
		{ID: 2, Type: models.PostTypeLost, Title: "Lost: Wallet"},
		{ID: 1, Type: models.PostTypeFound, Title: "Found: Calculator"},
	}

	view := RenderPostList(posts, "all", "")
	require.Len(t, view.Cards, 2)
	assert.Equal(t, 2, view.Cards[0].ID)
	assert.False(t, view.Empty)

	view = RenderPostList(posts, "lost", "calculator")
	assert.Empty(t, view.Cards)
	assert.True(t, view.Empty)
	assert.Equal(t, "No posts match your search yet.", view.EmptyMessage)
}

func TestRenderMyPosts(t *testing.T) {
	posts := []models.Post{
		{ID: 1, UserEmail: "ada@metu.edu.tr"},
		{ID: 2, UserEmail: "ece@metu.edu.tr"},
	}

	t.Run("logged out", func(t *testing.T) {
		view := RenderMyPosts(posts, nil)
		assert.True(t, view.Empty)
		assert.Equal(t, "Login and create posts to see them here.", view.EmptyMessage)
	})

	t.Run("no posts yet", func(t *testing.T) {
		view := RenderMyPosts(posts, &models.User{Email: "new@metu.edu.tr"})
		assert.True(t, view.Empty)
		assert.Equal(t, "You have no posts yet.", view.EmptyMessage)
	})

	t.Run("own posts only", func(t *testing.T) {
		view := RenderMyPosts(posts, &models.User{Email: "ada@metu.edu.tr"})
		require.Len(t, view.Cards, 1)
		assert.Equal(t, 1, view.Cards[0].ID)
		assert.False(t, view.Empty)
	})
}

func TestRenderPostDetail(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		view := RenderPostDetail(nil)
		assert.False(t, view.Found)
		assert.Equal(t, "Post not found. It may have been deleted.", view.NotFoundMessage)
	})

	t.Run("found", func(t *testing.T) {
		view := RenderPostDetail(&models.Post{
			ID: 3, Type: models.PostTypeFound, Title: "Found: Keys",
			Category: "Keys", UserName: "Ada", UserDept: "CENG", UserEmail: "ada@metu.edu.tr",
		})
		assert.True(t, view.Found)
		assert.Equal(t, "FOUND", view.Badge)
		assert.Equal(t, "Keys", view.Category)
		assert.Equal(t, "ada@metu.edu.tr", view.UserEmail)
	})
}

func TestRenderMapViewer(t *testing.T) {
	rect := mappin.Rect{Width: 800, Height: 600}

	t.Run("no pin", func(t *testing.T) {
		view := RenderMapViewer(&models.Post{}, rect)
		assert.False(t, view.HasPin)
		assert.Equal(t, "No pin location provided for this post.", view.Hint)
	})

	t.Run("nil post", func(t *testing.T) {
		view := RenderMapViewer(nil, rect)
		assert.False(t, view.HasPin)
	})

	t.Run("pin positioned against current size", func(t *testing.T) {
		view := RenderMapViewer(&models.Post{MapX: fp(0.5), MapY: fp(0.5)}, rect)
		assert.True(t, view.HasPin)
		assert.Equal(t, "Pinned location", view.Hint)
		assert.Equal(t, 400.0, view.PinLeft)
		assert.Equal(t, 300.0, view.PinTop)
	})
}

func TestRenderConversationItem(t *testing.T) {
	posts := []models.Post{{ID: 5, Title: "Lost: Wallet"}}
	ts := time.Date(2025, 11, 20, 14, 30, 0, 0, time.Local).UnixMilli()
	msgs := []models.Message{
		{Text: "older", SenderName: "Ada", Timestamp: ts - 1000},
		{Text: "latest", SenderName: "Ece", Timestamp: ts},
	}

	item := RenderConversationItem(posts, 5, msgs, true)
	assert.Equal(t, "Lost: Wallet", item.Title)
	assert.Contains(t, item.Meta, "Ece")
	assert.True(t, item.Active)

	t.Run("unknown post falls back to placeholder title", func(t *testing.T) {
		item := RenderConversationItem(posts, 99, nil, false)
		assert.Equal(t, "Post #99", item.Title)
		assert.Equal(t, "No messages", item.Meta)
	})
}

func TestRenderMessages(t *testing.T) {
	me := &models.User{Email: "ada@metu.edu.tr"}
	msgs := []models.Message{
		{Text: "hi", SenderName: "Ada", SenderEmail: "ada@metu.edu.tr", Timestamp: 1000},
		{Text: "hello", SenderName: "Ece", SenderEmail: "ece@metu.edu.tr", Timestamp: 2000},
	}

	view := RenderMessages(msgs, me)
	require.Len(t, view.Items, 2)
	assert.True(t, view.Items[0].IsMe)
	assert.False(t, view.Items[1].IsMe)
	assert.Equal(t, "hi", view.Items[0].Text)

	t.Run("empty conversation", func(t *testing.T) {
		view := RenderMessages(nil, nil)
		assert.True(t, view.Empty)
		assert.Equal(t, "No messages yet. Start the conversation!", view.EmptyMessage)
	})

	t.Run("nil viewer is never me", func(t *testing.T) {
		view := RenderMessages(msgs, nil)
		assert.False(t, view.Items[0].IsMe)
	})
}

func TestRenderProfile(t *testing.T) {
	t.Run("guest", func(t *testing.T) {
		view := RenderProfile(nil)
		assert.Equal(t, "Guest User", view.Name)
		assert.Equal(t, "Not logged in", view.Email)
		assert.Equal(t, "GU", view.Initials)
		assert.False(t, view.CanEdit)
	})

	t.Run("logged in", func(t *testing.T) {
		view := RenderProfile(&models.User{Name: "Ada Lovelace", Email: "ada@metu.edu.tr", Department: "CENG"})
		assert.Equal(t, "AL", view.Initials)
		assert.Equal(t, "Department: CENG", view.Department)
		assert.True(t, view.CanEdit)
	})

	t.Run("single name", func(t *testing.T) {
		view := RenderProfile(&models.User{Name: "ada"})
		assert.Equal(t, "A", view.Initials)
	})

	t.Run("blank name", func(t *testing.T) {
		view := RenderProfile(&models.User{Name: "  "})
		assert.Equal(t, "ME", view.Initials)
	})
}

func TestActivePostID(t *testing.T) {
	tests := []struct {
		fragment string
		wantID   int
		wantOK   bool
	}{
		{fragment: "#post-7", wantID: 7, wantOK: true},
		{fragment: "  #post-12 ", wantID: 12, wantOK: true},
		{fragment: "#post-", wantOK: false},
		{fragment: "#post-abc", wantOK: false},
		{fragment: "#other-7", wantOK: false},
		{fragment: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.fragment, func(t *testing.T) {
			id, ok := ActivePostID(tt.fragment)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantID, id)
			}
		})
	}
}

func TestDetailPostID(t *testing.T) {
	id, ok := DetailPostID("?id=5")
	assert.True(t, ok)
	assert.Equal(t, 5, id)

	id, ok = DetailPostID("id=9&x=1")
	assert.True(t, ok)
	assert.Equal(t, 9, id)

	_, ok = DetailPostID("?id=abc")
	assert.False(t, ok)
	_, ok = DetailPostID("")
	assert.False(t, ok)
}
