package server

import (
	"lostfound/internal/models"
	"lostfound/internal/repository"
	"lostfound/internal/views"

	"github.com/gofiber/fiber/v2"
)

// ListConversations handles GET /api/conversations?active=#post-<id>.
// The optional active parameter is the address-bar fragment; the
// matching conversation is flagged in the rendered list.
func (s *Server) ListConversations(c *fiber.Ctx) error {
	ctx := c.Context()

	ids, err := s.convs.ListPostIDsWithActivity(ctx)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	posts, err := s.loadPosts(c)
	if err != nil {
		return nil
	}

	activeID, _ := views.ActivePostID(c.Query("active"))

	items := make([]views.ConversationItem, 0, len(ids))
	for _, id := range ids {
		msgs, err := s.convs.Load(ctx, id)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}
		items = append(items, views.RenderConversationItem(posts, id, msgs, id == activeID))
	}
	return c.JSON(fiber.Map{"items": items})
}

// GetMessages handles GET /api/posts/:id/messages
func (s *Server) GetMessages(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	msgs, err := s.convs.Load(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	user, err := s.currentUser(c)
	if err != nil {
		return nil
	}
	return c.JSON(views.RenderMessages(msgs, user))
}

// SendDetailMessage handles POST /api/posts/:id/messages. This is the
// detail-page surface: guests may send, stamped with the fixed guest
// identity, but the post itself must exist.
func (s *Server) SendDetailMessage(c *fiber.Ctx) error {
	return s.sendMessage(c, true)
}

// SendConversationMessage handles POST /api/conversations/:id/messages.
// This is the aggregated-messages surface: sending requires a login,
// and orphaned conversations are still writable.
func (s *Server) SendConversationMessage(c *fiber.Ctx) error {
	return s.sendMessage(c, false)
}

func (s *Server) sendMessage(c *fiber.Ctx, allowGuest bool) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	// The detail surface only exists for a real post.
	if allowGuest {
		posts, err := s.loadPosts(c)
		if err != nil {
			return nil
		}
		if repository.FindByID(posts, id) == nil {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Post", id))
		}
	}

	user, err := s.currentUser(c)
	if err != nil {
		return nil
	}

	msg, err := s.convs.Send(c.Context(), repository.SendMessageInput{
		PostID:     id,
		Text:       req.Text,
		Sender:     user,
		AllowGuest: allowGuest,
	})
	if err != nil {
		return respondAppError(c, err)
	}
	if msg == nil {
		// Blank text is a silent no-op.
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}
