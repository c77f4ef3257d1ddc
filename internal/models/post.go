// Package models contains data structures for the application's domain models.
package models

// Post type values.
const (
	PostTypeLost  = "lost"
	PostTypeFound = "found"
)

// Post represents a lost or found item report.
//
// MapX and MapY are normalized map coordinates in [0,1]; both are set or
// both are nil (nil means the post has no pin). Author fields are a
// snapshot taken at creation time and never updated afterwards.
type Post struct {
	ID             int      `json:"id"`
	Type           string   `json:"type"`
	Title          string   `json:"title"`
	Category       string   `json:"category"`
	CampusArea     string   `json:"campusArea"`
	LocationDetail string   `json:"locationDetail"`
	Date           string   `json:"date"`
	Time           string   `json:"time"`
	Description    string   `json:"description"`
	Tags           []string `json:"tags"`
	// ImageData holds an embedded base64 data URL for user uploads.
	// ImageURL is a reference path used only by pre-seeded posts; at most
	// one of the two is meaningfully populated.
	ImageData string   `json:"imageData,omitempty"`
	ImageURL  string   `json:"imageUrl,omitempty"`
	MapX      *float64 `json:"mapX,omitempty"`
	MapY      *float64 `json:"mapY,omitempty"`
	UserName  string   `json:"userName"`
	UserDept  string   `json:"userDept"`
	UserEmail string   `json:"userEmail"`
}

// ImageSource returns the renderable image source, preferring embedded
// data over the seed reference path. Empty string means no image.
func (p Post) ImageSource() string {
	if p.ImageData != "" {
		return p.ImageData
	}
	return p.ImageURL
}

// HasImage reports whether the post has any renderable image.
func (p Post) HasImage() bool {
	return p.ImageSource() != ""
}
