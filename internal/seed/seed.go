// Package seed provides the first-run example posts and demo-data
// factories.
package seed

import (
	"math/rand"

	"lostfound/internal/models"
)

// Pin coordinates for seeded posts are drawn uniformly from
// [pinMin, pinMin+pinSpan] per axis so the examples land somewhere
// visible on the map rather than at its edges.
const (
	pinMin  = 0.15
	pinSpan = 0.70
)

// Posts returns the fixed example posts installed on first run, each
// with freshly randomized pin coordinates.
func Posts() []models.Post {
	posts := []models.Post{
		{
			ID:             1,
			Type:           models.PostTypeLost,
			Title:          "Lost: Black Wallet",
			Category:       "Accessories",
			CampusArea:     "Library",
			LocationDetail: "Main Library 2nd floor, group study area",
			Date:           "2025-11-15",
			Time:           "Afternoon",
			Description:    "Black leather wallet with a few cards and student ID inside.",
			Tags:           []string{"wallet", "black", "id card"},
			ImageURL:       "./images/post1.jpg",
			UserName:       "Ali K.",
			UserDept:       "CEIT",
			UserEmail:      "ali@example.com",
		},
		{
			ID:             2,
			Type:           models.PostTypeFound,
			Title:          "Found: Casio Calculator",
			Category:       "Electronics",
			CampusArea:     "Mühendislik",
			LocationDetail: "EEE building 1st floor, corridor near E-107",
			Date:           "2025-11-14",
			Time:           "Morning",
			Description:    "Grey Casio calculator, looks like engineering model.",
			Tags:           []string{"calculator", "casio", "electronics"},
			ImageURL:       "./images/post2.jpg",
			UserName:       "Ece Y.",
			UserDept:       "EEE",
			UserEmail:      "ece@example.com",
		},
	}

	for i := range posts {
		x := pinMin + rand.Float64()*pinSpan
		y := pinMin + rand.Float64()*pinSpan
		posts[i].MapX = &x
		posts[i].MapY = &y
	}

	return posts
}
