package server

import (
	"mime/multipart"
	"strconv"

	"lostfound/internal/mappin"
	"lostfound/internal/models"
	"lostfound/internal/repository"
	"lostfound/internal/views"
	"lostfound/internal/wizard"

	"github.com/gofiber/fiber/v2"
)

// ListPosts handles GET /api/posts?type=&q=
func (s *Server) ListPosts(c *fiber.Ctx) error {
	posts, err := s.loadPosts(c)
	if err != nil {
		return nil
	}

	typeFilter := c.Query("type", "all")
	search := c.Query("q")
	return c.JSON(views.RenderPostList(posts, typeFilter, search))
}

// MyPosts handles GET /api/posts/mine
func (s *Server) MyPosts(c *fiber.Ctx) error {
	posts, err := s.loadPosts(c)
	if err != nil {
		return nil
	}
	user, err := s.currentUser(c)
	if err != nil {
		return nil
	}
	return c.JSON(views.RenderMyPosts(posts, user))
}

// GetPost handles GET /api/posts/:id. The response is the full detail
// surface: post detail, map viewer state, and the conversation as seen
// by the current user. Unknown ids respond 404 with the not-found view
// so the page can still render.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}
	posts, err := s.loadPosts(c)
	if err != nil {
		return nil
	}

	post := repository.FindByID(posts, id)
	detail := views.RenderPostDetail(post)
	if !detail.Found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": detail})
	}

	rect := mappin.Rect{
		Width:  c.QueryFloat("mapWidth", 800),
		Height: c.QueryFloat("mapHeight", 600),
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

	return c.JSON(fiber.Map{
		"detail":   detail,
		"map":      views.RenderMapViewer(post, rect),
		"messages": views.RenderMessages(msgs, user),
	})
}

// CreatePost handles POST /api/posts. The multipart form carries the
// accumulated wizard fields plus an optional image part; submission
// re-validates every step before the post is committed.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return nil
	}

	w := wizard.New(s.posts)
	w.SetFields(wizard.Fields{
		Type:           c.FormValue("type"),
		Title:          c.FormValue("title"),
		Category:       c.FormValue("category"),
		CampusArea:     c.FormValue("campusArea"),
		LocationDetail: c.FormValue("locationDetail"),
		Date:           c.FormValue("date"),
		Time:           c.FormValue("time"),
		Description:    c.FormValue("description"),
		TagsRaw:        c.FormValue("tags"),
	})
	if pin, ok := formPin(c); ok {
		w.PlacePin(pin)
	}

	image, closeImage, err := formImage(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid image upload"))
	}
	defer closeImage()

	post, err := w.Submit(c.Context(), user, image)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// formPin parses the mapX/mapY form fields. Both must be present and
// numeric for a pin to exist.
func formPin(c *fiber.Ctx) (mappin.Pin, bool) {
	rawX, rawY := c.FormValue("mapX"), c.FormValue("mapY")
	if rawX == "" || rawY == "" {
		return mappin.Pin{}, false
	}
	x, errX := strconv.ParseFloat(rawX, 64)
	y, errY := strconv.ParseFloat(rawY, 64)
	if errX != nil || errY != nil {
		return mappin.Pin{}, false
	}
	pin, ok := mappin.FromCoords(&x, &y)
	return pin, ok
}

// formImage opens the optional image part. A missing part is not an
// error; the post simply carries no embedded image.
func formImage(c *fiber.Ctx) (multipart.File, func(), error) {
	fh, err := c.FormFile("image")
	if err != nil {
		// No image attached.
		return nil, func() {}, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, err
	}
	return f, func() { _ = f.Close() }, nil
}
