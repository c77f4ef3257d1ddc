// Package views turns store state into view models. Every function here
// is pure: it takes already-loaded data plus filters and returns a
// structure ready for rendering, so re-rendering is always "re-read the
// stores, call the renderer again".
package views

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"lostfound/internal/mappin"
	"lostfound/internal/models"
	"lostfound/internal/repository"
)

const metaTimeLayout = "Jan 2, 2006 3:04 PM"

// PostCard is the list-view rendering of one post.
type PostCard struct {
	ID             int      `json:"id"`
	Title          string   `json:"title"`
	Badge          string   `json:"badge"`
	HasImage       bool     `json:"hasImage"`
	ImageSrc       string   `json:"imageSrc,omitempty"`
	CampusArea     string   `json:"campusArea"`
	LocationDetail string   `json:"locationDetail"`
	When           string   `json:"when"`
	Description    string   `json:"description"`
	Tags           []string `json:"tags"`
	PostedBy       string   `json:"postedBy"`
	HasPin         bool     `json:"hasPin"`
}

// NewPostCard builds the card view of one post.
func NewPostCard(p models.Post) PostCard {
	_, hasPin := mappin.FromCoords(p.MapX, p.MapY)
	return PostCard{
		ID:             p.ID,
		Title:          p.Title,
		Badge:          strings.ToUpper(p.Type),
		HasImage:       p.HasImage(),
		ImageSrc:       p.ImageSource(),
		CampusArea:     p.CampusArea,
		LocationDetail: p.LocationDetail,
		When:           p.Date + ", " + p.Time,
		Description:    p.Description,
		Tags:           p.Tags,
		PostedBy:       postedBy(p),
		HasPin:         hasPin,
	}
}

func postedBy(p models.Post) string {
	dept := p.UserDept
	if dept == "" {
		dept = models.DefaultDepartment
	}
	return fmt.Sprintf("Posted by %s (%s)", p.UserName, dept)
}

// PostList is the filtered home listing.
type PostList struct {
	Cards        []PostCard `json:"cards"`
	Empty        bool       `json:"empty"`
	EmptyMessage string     `json:"emptyMessage,omitempty"`
}

// RenderPostList filters the collection and renders it as cards.
func RenderPostList(posts []models.Post, typeFilter, search string) PostList {
	filtered := repository.Filter(posts, typeFilter, search)

	cards := make([]PostCard, 0, len(filtered))
	for _, p := range filtered {
		cards = append(cards, NewPostCard(p))
	}

	view := PostList{Cards: cards}
	if len(cards) == 0 {
		view.Empty = true
		view.EmptyMessage = "No posts match your search yet."
	}
	return view
}

// MyPosts is the profile page's own-posts listing.
type MyPosts struct {
	Cards        []PostCard `json:"cards"`
	Empty        bool       `json:"empty"`
	EmptyMessage string     `json:"emptyMessage,omitempty"`
}

// RenderMyPosts renders the current user's posts, with distinct empty
// states for "not logged in" and "no posts yet".
func RenderMyPosts(posts []models.Post, user *models.User) MyPosts {
	if user == nil {
		return MyPosts{
			Cards:        []PostCard{},
			Empty:        true,
			EmptyMessage: "Login and create posts to see them here.",
		}
	}

	mine := repository.Mine(posts, user.Email)
	cards := make([]PostCard, 0, len(mine))
	for _, p := range mine {
		cards = append(cards, NewPostCard(p))
	}
	if len(cards) == 0 {
		return MyPosts{Cards: cards, Empty: true, EmptyMessage: "You have no posts yet."}
	}
	return MyPosts{Cards: cards}
}

// PostDetail is the single-post page view.
type PostDetail struct {
	Found           bool     `json:"found"`
	NotFoundMessage string   `json:"notFoundMessage,omitempty"`
	ID              int      `json:"id,omitempty"`
	Title           string   `json:"title,omitempty"`
	Badge           string   `json:"badge,omitempty"`
	HasImage        bool     `json:"hasImage"`
	ImageSrc        string   `json:"imageSrc,omitempty"`
	Category        string   `json:"category,omitempty"`
	CampusArea      string   `json:"campusArea,omitempty"`
	LocationDetail  string   `json:"locationDetail,omitempty"`
	Date            string   `json:"date,omitempty"`
	Time            string   `json:"time,omitempty"`
	Description     string   `json:"description,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	PostedBy        string   `json:"postedBy,omitempty"`
	UserEmail       string   `json:"userEmail,omitempty"`
}

// RenderPostDetail renders one post, or the explicit not-found state.
func RenderPostDetail(post *models.Post) PostDetail {
	if post == nil {
		return PostDetail{
			Found:           false,
			NotFoundMessage: "Post not found. It may have been deleted.",
		}
	}
	return PostDetail{
		Found:          true,
		ID:             post.ID,
		Title:          post.Title,
		Badge:          strings.ToUpper(post.Type),
		HasImage:       post.HasImage(),
		ImageSrc:       post.ImageSource(),
		Category:       post.Category,
		CampusArea:     post.CampusArea,
		LocationDetail: post.LocationDetail,
		Date:           post.Date,
		Time:           post.Time,
		Description:    post.Description,
		Tags:           post.Tags,
		PostedBy:       postedBy(*post),
		UserEmail:      post.UserEmail,
	}
}

// MapViewer is the read-only pin display of the detail page.
type MapViewer struct {
	HasPin  bool    `json:"hasPin"`
	Hint    string  `json:"hint"`
	PinLeft float64 `json:"pinLeft,omitempty"`
	PinTop  float64 `json:"pinTop,omitempty"`
}

// RenderMapViewer positions the post's pin against the reference
// image's current rendered size, or reports the explicit no-pin state.
func RenderMapViewer(post *models.Post, rect mappin.Rect) MapViewer {
	if post == nil {
		return MapViewer{Hint: "No pin location provided for this post."}
	}
	pin, ok := mappin.FromCoords(post.MapX, post.MapY)
	if !ok {
		return MapViewer{Hint: "No pin location provided for this post."}
	}
	left, top := pin.PixelPosition(rect)
	return MapViewer{HasPin: true, Hint: "Pinned location", PinLeft: left, PinTop: top}
}

// ConversationItem is one entry of the aggregated conversations list.
type ConversationItem struct {
	PostID int    `json:"postId"`
	Title  string `json:"title"`
	Meta   string `json:"meta"`
	Active bool   `json:"active"`
}

// RenderConversationItem renders one conversation summary. Unknown
// posts keep a placeholder title so orphaned conversations stay
// reachable.
func RenderConversationItem(posts []models.Post, postID int, msgs []models.Message, active bool) ConversationItem {
	title := fmt.Sprintf("Post #%d", postID)
	if p := repository.FindByID(posts, postID); p != nil {
		title = p.Title
	}

	meta := "No messages"
	if len(msgs) > 0 {
		last := msgs[len(msgs)-1]
		meta = fmt.Sprintf("%s • %s", last.SenderName, formatTimestamp(last.Timestamp))
	}

	return ConversationItem{PostID: postID, Title: title, Meta: meta, Active: active}
}

// MessageView is one rendered chat message.
type MessageView struct {
	Text string `json:"text"`
	Meta string `json:"meta"`
	// IsMe marks messages sent by the viewing identity.
	IsMe bool `json:"isMe"`
}

// MessageList is a rendered conversation.
type MessageList struct {
	Items        []MessageView `json:"items"`
	Empty        bool          `json:"empty"`
	EmptyMessage string        `json:"emptyMessage,omitempty"`
}

// RenderMessages renders a conversation in stored order, marking the
// current user's own messages.
func RenderMessages(msgs []models.Message, currentUser *models.User) MessageList {
	if len(msgs) == 0 {
		return MessageList{
			Items:        []MessageView{},
			Empty:        true,
			EmptyMessage: "No messages yet. Start the conversation!",
		}
	}

	items := make([]MessageView, 0, len(msgs))
	for _, m := range msgs {
		items = append(items, MessageView{
			Text: m.Text,
			Meta: fmt.Sprintf("%s • %s", m.SenderName, formatTimestamp(m.Timestamp)),
			IsMe: currentUser != nil && m.SenderEmail == currentUser.Email,
		})
	}
	return MessageList{Items: items}
}

func formatTimestamp(ms int64) string {
	return time.UnixMilli(ms).Format(metaTimeLayout)
}

// Profile is the profile panel view.
type Profile struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Initials   string `json:"initials"`
	CanEdit    bool   `json:"canEdit"`
}

// RenderProfile renders the identity panel, falling back to the guest
// presentation when nobody is logged in.
func RenderProfile(user *models.User) Profile {
	if user == nil {
		return Profile{
			Name:       "Guest User",
			Email:      "Not logged in",
			Department: "Department: -",
			Initials:   "GU",
		}
	}
	return Profile{
		Name:       user.Name,
		Email:      user.Email,
		Department: "Department: " + user.Department,
		Initials:   initials(user.Name),
		CanEdit:    true,
	}
}

// initials derives up to two uppercase initials from a display name.
func initials(name string) string {
	var out []rune
	for _, part := range strings.Fields(name) {
		out = append(out, unicode.ToUpper([]rune(part)[0]))
		if len(out) == 2 {
			break
		}
	}
	if len(out) == 0 {
		return "ME"
	}
	return string(out)
}
