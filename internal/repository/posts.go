package repository

import (
	"context"
	"encoding/json"
	"strings"

	"lostfound/internal/mappin"
	"lostfound/internal/models"
	"lostfound/internal/store"
)

// Type filter values accepted by Filter.
const (
	TypeFilterAll = "all"
)

// PostRepository owns the post collection.
type PostRepository interface {
	// LoadAll reads the whole collection. An absent key installs and
	// persists the seed set; a corrupt payload yields an empty
	// collection without surfacing an error.
	LoadAll(ctx context.Context) ([]models.Post, error)
	// SaveAll overwrites the whole collection in a single store write.
	SaveAll(ctx context.Context, posts []models.Post) error
	// Create validates the draft, assigns the next id, stamps the
	// author snapshot, prepends the post, and persists.
	Create(ctx context.Context, in CreatePostInput, author *models.User) (*models.Post, error)
}

// CreatePostInput is the draft accumulated by the post-creation workflow.
type CreatePostInput struct {
	Type           string
	Title          string
	Category       string
	CampusArea     string
	LocationDetail string
	Date           string
	Time           string
	Description    string
	Tags           []string
	ImageData      string
	MapX           *float64
	MapY           *float64
}

// postRepository implements PostRepository over a key-value store.
type postRepository struct {
	store store.Store
	seed  func() []models.Post
}

// NewPostRepository creates a new post repository. Seeding on first run
// happens only here; every reader goes through LoadAll.
func NewPostRepository(st store.Store, seed func() []models.Post) PostRepository {
	return &postRepository{store: st, seed: seed}
}

func (r *postRepository) LoadAll(ctx context.Context) ([]models.Post, error) {
	raw, ok, err := r.store.Get(ctx, postsKey)
	if err != nil {
		return nil, err
	}

	// Seed only when the key is completely absent. A present-but-empty
	// or corrupt value must never reseed.
	if !ok {
		seeded := r.seed()
		if err := r.SaveAll(ctx, seeded); err != nil {
			return nil, err
		}
		return seeded, nil
	}

	var posts []models.Post
	if err := json.Unmarshal([]byte(raw), &posts); err != nil {
		// Malformed persisted data reads as empty, never as a failure.
		return []models.Post{}, nil
	}
	if posts == nil {
		return []models.Post{}, nil
	}
	return posts, nil
}

func (r *postRepository) SaveAll(ctx context.Context, posts []models.Post) error {
	raw, err := json.Marshal(posts)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, postsKey, string(raw))
}

func (r *postRepository) Create(ctx context.Context, in CreatePostInput, author *models.User) (*models.Post, error) {
	if err := validateDraft(in); err != nil {
		return nil, err
	}

	pin, ok := mappin.FromCoords(in.MapX, in.MapY)
	if !ok {
		return nil, models.NewValidationError("Pin a location on the map before submitting")
	}

	posts, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	poster := models.Anonymous()
	if author != nil {
		poster = *author
	}
	if poster.Department == "" {
		poster.Department = models.DefaultDepartment
	}

	x, y := pin.Coords()
	post := models.Post{
		ID:             nextID(posts),
		Type:           in.Type,
		Title:          strings.TrimSpace(in.Title),
		Category:       in.Category,
		CampusArea:     in.CampusArea,
		LocationDetail: strings.TrimSpace(in.LocationDetail),
		Date:           in.Date,
		Time:           strings.TrimSpace(in.Time),
		Description:    strings.TrimSpace(in.Description),
		Tags:           in.Tags,
		ImageData:      in.ImageData,
		MapX:           x,
		MapY:           y,
		UserName:       poster.Name,
		UserDept:       poster.Department,
		UserEmail:      poster.Email,
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}

	// Most-recent-first: new posts go to the head of the collection.
	posts = append([]models.Post{post}, posts...)
	if err := r.SaveAll(ctx, posts); err != nil {
		return nil, err
	}

	return &post, nil
}

func validateDraft(in CreatePostInput) error {
	if in.Type != models.PostTypeLost && in.Type != models.PostTypeFound {
		return models.NewValidationError("Post type must be lost or found")
	}
	required := []struct {
		label string
		value string
	}{
		{"title", in.Title},
		{"location detail", in.LocationDetail},
		{"date", in.Date},
		{"time", in.Time},
		{"description", in.Description},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return models.NewValidationError("Fill all required fields: missing " + f.label)
		}
	}
	return nil
}

// nextID assigns max existing id + 1, or 1 for an empty collection.
// Non-contiguous ids are fine; only the maximum matters.
func nextID(posts []models.Post) int {
	max := 0
	for _, p := range posts {
		if p.ID > max {
			max = p.ID
		}
	}
	return max + 1
}

// ParseTags splits a comma-separated tag input, trimming each entry and
// dropping empties. Order is preserved and duplicates are allowed.
func ParseTags(raw string) []string {
	tags := []string{}
	for _, part := range strings.Split(raw, ",") {
		if t := strings.TrimSpace(part); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// Filter narrows posts by type and free-text search. typeFilter is
// "all", "lost", or "found"; search matches case-insensitively as a
// substring of the title, description, campus area, location detail,
// and tags. Input order is preserved.
func Filter(posts []models.Post, typeFilter, search string) []models.Post {
	search = strings.ToLower(strings.TrimSpace(search))

	out := []models.Post{}
	for _, p := range posts {
		if typeFilter != "" && typeFilter != TypeFilterAll && p.Type != typeFilter {
			continue
		}
		if search != "" && !strings.Contains(searchText(p), search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func searchText(p models.Post) string {
	parts := []string{p.Title, p.Description, p.CampusArea, p.LocationDetail}
	parts = append(parts, p.Tags...)
	return strings.ToLower(strings.Join(parts, " "))
}

// Mine returns the posts authored by the given email, order preserved.
func Mine(posts []models.Post, email string) []models.Post {
	out := []models.Post{}
	for _, p := range posts {
		if p.UserEmail == email {
			out = append(out, p)
		}
	}
	return out
}

// FindByID returns the post with the given id, or nil when absent.
func FindByID(posts []models.Post, id int) *models.Post {
	for i := range posts {
		if posts[i].ID == id {
			return &posts[i]
		}
	}
	return nil
}
