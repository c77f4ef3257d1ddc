package repository

import (
	"context"
	"testing"

	"lostfound/internal/models"
	"lostfound/internal/seed"
	"lostfound/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func validDraft() CreatePostInput {
	return CreatePostInput{
		Type:           models.PostTypeLost,
		Title:          "Lost: Blue Umbrella",
		Category:       "Accessories",
		CampusArea:     "Library",
		LocationDetail: "Library entrance, umbrella stand",
		Date:           "2025-11-20",
		Time:           "Morning",
		Description:    "Navy blue umbrella with a wooden handle.",
		Tags:           []string{"umbrella", "blue"},
		MapX:           f(0.4),
		MapY:           f(0.6),
	}
}

func newPostRepo(t *testing.T) (PostRepository, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemory()
	return NewPostRepository(st, seed.Posts), st
}

func TestLoadAllSeedsOnlyWhenKeyAbsent(t *testing.T) {
	ctx := context.Background()
	repo, st := newPostRepo(t)

	first, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, first, 2)

	// A second load must return the identical collection, not reseed:
	// the seeded pins are random, so equality proves no second draw.
	second, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// An explicitly emptied collection must stay empty.
	require.NoError(t, repo.SaveAll(ctx, []models.Post{}))
	emptied, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, emptied)

	_ = st
}

func TestLoadAllCorruptDataReadsAsEmpty(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	require.NoError(t, st.Set(ctx, "lostfound_posts", "{not json"))

	repo := NewPostRepository(st, seed.Posts)
	posts, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts)

	// Corrupt data must not trigger reseeding either.
	posts, err = repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestSaveAllLoadAllRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, _ := newPostRepo(t)

	posts, err := repo.LoadAll(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.SaveAll(ctx, posts))
	back, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, posts, back)
}

func TestCreateAssignsMonotonicIDs(t *testing.T) {
	ctx := context.Background()

	t.Run("empty collection starts at 1", func(t *testing.T) {
		st := store.NewMemory()
		repo := NewPostRepository(st, func() []models.Post { return []models.Post{} })

		post, err := repo.Create(ctx, validDraft(), nil)
		require.NoError(t, err)
		assert.Equal(t, 1, post.ID)
	})

	t.Run("non-contiguous ids use max plus one", func(t *testing.T) {
		st := store.NewMemory()
		repo := NewPostRepository(st, func() []models.Post { return []models.Post{} })
		require.NoError(t, repo.SaveAll(ctx, []models.Post{{ID: 1}, {ID: 3}}))

		post, err := repo.Create(ctx, validDraft(), nil)
		require.NoError(t, err)
		assert.Equal(t, 4, post.ID)
	})
}

func TestCreatePrependsAndStampsAuthor(t *testing.T) {
	ctx := context.Background()
	repo, _ := newPostRepo(t)

	author := &models.User{Name: "Ada L.", Email: "ada@metu.edu.tr", Department: "CENG"}
	post, err := repo.Create(ctx, validDraft(), author)
	require.NoError(t, err)

	assert.Equal(t, "Ada L.", post.UserName)
	assert.Equal(t, "CENG", post.UserDept)
	assert.Equal(t, "ada@metu.edu.tr", post.UserEmail)

	posts, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, post.ID, posts[0].ID, "new post goes to the head")
}

func TestCreateWithoutAuthorFallsBackToAnonymous(t *testing.T) {
	ctx := context.Background()
	repo, _ := newPostRepo(t)

	post, err := repo.Create(ctx, validDraft(), nil)
	require.NoError(t, err)
	assert.Equal(t, models.AnonymousName, post.UserName)
	assert.Equal(t, models.AnonymousEmail, post.UserEmail)
	assert.Equal(t, models.DefaultDepartment, post.UserDept)
}

func TestCreateRejectsMissingRequiredFields(t *testing.T) {
	ctx := context.Background()

	mutations := map[string]func(*CreatePostInput){
		"title":           func(in *CreatePostInput) { in.Title = "  " },
		"location detail": func(in *CreatePostInput) { in.LocationDetail = "" },
		"date":            func(in *CreatePostInput) { in.Date = "" },
		"time":            func(in *CreatePostInput) { in.Time = "" },
		"description":     func(in *CreatePostInput) { in.Description = "" },
		"pin x":           func(in *CreatePostInput) { in.MapX = nil },
		"pin y":           func(in *CreatePostInput) { in.MapY = nil },
		"type":            func(in *CreatePostInput) { in.Type = "" },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			repo, _ := newPostRepo(t)
			before, err := repo.LoadAll(ctx)
			require.NoError(t, err)

			draft := validDraft()
			mutate(&draft)

			_, err = repo.Create(ctx, draft, nil)
			require.Error(t, err)
			var appErr *models.AppError
			require.ErrorAs(t, err, &appErr)

			// Rejection leaves the collection untouched.
			after, err := repo.LoadAll(ctx)
			require.NoError(t, err)
			assert.Equal(t, before, after)
		})
	}
}

func TestFilter(t *testing.T) {
	posts := []models.Post{
		{ID: 3, Type: models.PostTypeLost, Title: "Lost: Black Wallet", Description: "leather wallet", Tags: []string{"wallet"}},
		{ID: 2, Type: models.PostTypeFound, Title: "Found: Calculator", CampusArea: "Mühendislik"},
		{ID: 1, Type: models.PostTypeLost, Title: "Lost: Keys", LocationDetail: "near the wallet kiosk"},
	}

	tests := []struct {
		name       string
		typeFilter string
		search     string
		wantIDs    []int
	}{
		{name: "all empty search returns everything in order", typeFilter: "all", search: "", wantIDs: []int{3, 2, 1}},
		{name: "type only", typeFilter: "lost", search: "", wantIDs: []int{3, 1}},
		{name: "type and search", typeFilter: "lost", search: "wallet", wantIDs: []int{3, 1}},
		{name: "search is case-insensitive", typeFilter: "all", search: "WALLET", wantIDs: []int{3, 1}},
		{name: "search over campus area", typeFilter: "all", search: "mühendislik", wantIDs: []int{2}},
		{name: "no match", typeFilter: "found", search: "umbrella", wantIDs: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(posts, tt.typeFilter, tt.search)
			ids := []int{}
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestMine(t *testing.T) {
	posts := []models.Post{
		{ID: 3, UserEmail: "ada@metu.edu.tr"},
		{ID: 2, UserEmail: "ece@metu.edu.tr"},
		{ID: 1, UserEmail: "ada@metu.edu.tr"},
	}

	mine := Mine(posts, "ada@metu.edu.tr")
	require.Len(t, mine, 2)
	assert.Equal(t, 3, mine[0].ID)
	assert.Equal(t, 1, mine[1].ID)

	assert.Empty(t, Mine(posts, "nobody@metu.edu.tr"))
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "plain", raw: "wallet, black, id card", want: []string{"wallet", "black", "id card"}},
		{name: "empties dropped", raw: "wallet,,  ,black", want: []string{"wallet", "black"}},
		{name: "duplicates kept in order", raw: "a,b,a", want: []string{"a", "b", "a"}},
		{name: "empty input", raw: "", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTags(tt.raw))
		})
	}
}

func TestFindByID(t *testing.T) {
	posts := []models.Post{{ID: 2, Title: "two"}, {ID: 5, Title: "five"}}

	found := FindByID(posts, 5)
	require.NotNil(t, found)
	assert.Equal(t, "five", found.Title)

	assert.Nil(t, FindByID(posts, 99))
}
