// Command main populates the store with demo lost-and-found data.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"lostfound/internal/config"
	"lostfound/internal/models"
	"lostfound/internal/repository"
	"lostfound/internal/seed"
	"lostfound/internal/store"
)

func main() {
	numPosts := flag.Int("n", 10, "Number of demo posts to create")
	withChats := flag.Bool("chats", true, "Also start a few demo conversations")
	flag.Parse()

	log.Println("Demo data seeder")
	log.Printf("Target: %d posts, chats=%v\n", *numPosts, *withChats)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	st, err := store.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Printf("Store close error: %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	posts := repository.NewPostRepository(st, seed.Posts)
	convs := repository.NewConversationRepository(st)

	// First load installs the fixed example posts when the store is empty.
	if _, err := posts.LoadAll(ctx); err != nil {
		log.Fatalf("Initial load failed: %v", err)
	}

	created := make([]*models.Post, 0, *numPosts)
	for i := 0; i < *numPosts; i++ {
		draft := seed.RandomPost(cfg.InstitutionDomain)
		in := repository.CreatePostInput{
			Type:           draft.Post.Type,
			Title:          draft.Post.Title,
			Category:       draft.Post.Category,
			CampusArea:     draft.Post.CampusArea,
			LocationDetail: draft.Post.LocationDetail,
			Date:           draft.Post.Date,
			Time:           draft.Post.Time,
			Description:    draft.Post.Description,
			Tags:           draft.Post.Tags,
			MapX:           draft.Post.MapX,
			MapY:           draft.Post.MapY,
		}
		post, err := posts.Create(ctx, in, &draft.Author)
		if err != nil {
			log.Fatalf("Post seeding failed: %v", err)
		}
		created = append(created, post)
	}
	log.Printf("Created %d demo posts", len(created))

	if *withChats {
		sent := 0
		for i, post := range created {
			if i%3 != 0 {
				continue
			}
			sender := models.Guest()
			msg, err := convs.Send(ctx, repository.SendMessageInput{
				PostID:     post.ID,
				Text:       seed.RandomMessageText(),
				Sender:     &sender,
				AllowGuest: true,
			})
			if err != nil {
				log.Fatalf("Conversation seeding failed: %v", err)
			}
			if msg != nil {
				sent++
			}
		}
		log.Printf("Started %d demo conversations", sent)
	}

	log.Println("All done! The store is populated with demo data.")
}
