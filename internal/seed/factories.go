package seed

import (
	"fmt"
	"math/rand"
	"strings"

	"lostfound/internal/models"

	"github.com/brianvoe/gofakeit/v6"
)

var (
	categories  = []string{"Accessories", "Electronics", "Books & Notes", "Clothing", "Cards & IDs", "Keys", "Other"}
	campusAreas = []string{"Library", "Mühendislik", "Fizik", "Yurtlar", "Çarşı", "Stadyum", "Kimya"}
	timeSlots   = []string{"Morning", "Noon", "Afternoon", "Evening"}

	itemNouns = []string{"Wallet", "Umbrella", "Calculator", "Notebook", "Student ID", "Headphones", "Water Bottle", "Jacket", "USB Drive", "Keychain"}
)

// RandomPostInput describes a plausible demo draft for the given
// institutional domain. It is meant to be fed through the repository's
// Create path so ids and ordering follow the real rules.
type RandomPostInput struct {
	Post   models.Post
	Author models.User
}

// RandomPost generates one demo post draft with a pinned location.
func RandomPost(domain string) RandomPostInput {
	postType := models.PostTypeLost
	verb := "Lost"
	if gofakeit.Bool() {
		postType = models.PostTypeFound
		verb = "Found"
	}

	item := itemNouns[rand.Intn(len(itemNouns))]
	area := campusAreas[rand.Intn(len(campusAreas))]

	author := models.User{
		Name:       gofakeit.Name(),
		Email:      fmt.Sprintf("%s@%s", strings.ToLower(gofakeit.Username()), strings.TrimPrefix(domain, "@")),
		Department: gofakeit.RandomString([]string{"CEIT", "EEE", "CENG", "ME", "ARCH", "PHYS"}),
	}

	x := pinMin + rand.Float64()*pinSpan
	y := pinMin + rand.Float64()*pinSpan

	post := models.Post{
		Type:           postType,
		Title:          fmt.Sprintf("%s: %s %s", verb, gofakeit.Color(), item),
		Category:       categories[rand.Intn(len(categories))],
		CampusArea:     area,
		LocationDetail: fmt.Sprintf("%s, near %s", area, gofakeit.StreetName()),
		Date:           gofakeit.PastDate().Format("2006-01-02"),
		Time:           timeSlots[rand.Intn(len(timeSlots))],
		Description:    gofakeit.Sentence(12),
		Tags:           []string{strings.ToLower(item), strings.ToLower(gofakeit.Color())},
		MapX:           &x,
		MapY:           &y,
	}

	return RandomPostInput{Post: post, Author: author}
}

// RandomMessageText generates one plausible conversation message body.
func RandomMessageText() string {
	return gofakeit.RandomString([]string{
		"Hi, I think this might be mine. Can we meet?",
		"Is this still with you?",
		"I saw something like this near the cafeteria.",
		"Could you describe it in more detail?",
		gofakeit.Sentence(8),
	})
}
