package server

import (
	"lostfound/internal/models"
	"lostfound/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// ReportPost handles POST /api/posts/:id/report. The flag is scoped to
// the reporting identity; guests report under a shared guest key.
func (s *Server) ReportPost(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}
	posts, err := s.loadPosts(c)
	if err != nil {
		return nil
	}
	if repository.FindByID(posts, id) == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Post", id))
	}

	user, err := s.currentUser(c)
	if err != nil {
		return nil
	}
	reporter := repository.ReporterKey(user)
	if err := s.convs.MarkReported(c.Context(), id, reporter); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(fiber.Map{"reported": true})
}

// ReportStatus handles GET /api/posts/:id/report. It answers whether
// the current identity already reported this post.
func (s *Server) ReportStatus(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}
	user, err := s.currentUser(c)
	if err != nil {
		return nil
	}

	reported, err := s.convs.IsReported(c.Context(), id, repository.ReporterKey(user))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(fiber.Map{"reported": reported})
}
