// Package wizard implements the multi-step post-creation workflow: a
// linear four-step form that accumulates a draft and commits it to the
// post repository on submit.
package wizard

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"lostfound/internal/mappin"
	"lostfound/internal/middleware"
	"lostfound/internal/models"
	"lostfound/internal/repository"
)

// Step identifies one wizard panel. Steps are ordered; Advance moves
// forward only after the current step validates, Retreat moves back
// unconditionally.
type Step int

const (
	StepBasics Step = iota + 1 // type, title, category
	StepLocation               // campus area, location detail, date, time
	StepDescription
	StepReview // media, pin, review
)

// Fields holds the accumulated form values. The wizard keeps them as
// raw strings, the way the form fields themselves do; parsing happens
// at submit.
type Fields struct {
	Type           string
	Title          string
	Category       string
	CampusArea     string
	LocationDetail string
	Date           string
	Time           string
	Description    string
	TagsRaw        string
}

// Wizard is the workflow state machine. It is not safe for concurrent
// use; each creation flow owns its own instance.
type Wizard struct {
	posts  repository.PostRepository
	step   Step
	fields Fields
	pin    *mappin.Pin
}

// New returns a wizard at the first step with empty fields.
func New(posts repository.PostRepository) *Wizard {
	return &Wizard{posts: posts, step: StepBasics}
}

// Step returns the currently visible step.
func (w *Wizard) Step() Step {
	return w.step
}

// Fields returns the current accumulated values.
func (w *Wizard) Fields() Fields {
	return w.fields
}

// SetFields replaces the accumulated values, as if the user had filled
// the form fields directly.
func (w *Wizard) SetFields(f Fields) {
	w.fields = f
}

// PlacePin records the pending map pin.
func (w *Wizard) PlacePin(pin mappin.Pin) {
	w.pin = &pin
}

// ClearPin removes the pending map pin.
func (w *Wizard) ClearPin() {
	w.pin = nil
}

// Pin returns the pending pin, or nil when none is placed.
func (w *Wizard) Pin() *mappin.Pin {
	return w.pin
}

// Advance validates the fields required for the current step and, only
// if all are filled, moves to the next step. File attachments are
// optional at every step and never checked here.
func (w *Wizard) Advance() error {
	for _, v := range requiredForStep(w.step, w.fields) {
		if strings.TrimSpace(v) == "" {
			return models.NewValidationError("Complete the required fields before continuing")
		}
	}
	if w.step < StepReview {
		w.step++
	}
	return nil
}

// Retreat moves to the previous step unconditionally.
func (w *Wizard) Retreat() {
	if w.step > StepBasics {
		w.step--
	}
}

// Submit re-validates every cross-step required field and the pin
// regardless of which step is currently visible, ingests the optional
// image, commits the post, and resets the wizard to its initial state.
// image may be nil when no file was attached.
func (w *Wizard) Submit(ctx context.Context, author *models.User, image io.Reader) (*models.Post, error) {
	in := repository.CreatePostInput{
		Type:           w.fields.Type,
		Title:          w.fields.Title,
		Category:       w.fields.Category,
		CampusArea:     w.fields.CampusArea,
		LocationDetail: w.fields.LocationDetail,
		Date:           w.fields.Date,
		Time:           w.fields.Time,
		Description:    w.fields.Description,
		Tags:           repository.ParseTags(w.fields.TagsRaw),
	}
	if w.pin != nil {
		in.MapX, in.MapY = w.pin.Coords()
	}

	// The image read runs off the submit path and the submit suspends
	// until it finishes. A failed read degrades to "no image"; it never
	// aborts the post.
	if image != nil {
		done := make(chan string, 1)
		go func() {
			data, err := ReadImageData(image)
			if err != nil {
				middleware.Logger.Warn("image ingestion failed, posting without image",
					slog.String("error", err.Error()))
				data = ""
			}
			done <- data
		}()
		select {
		case in.ImageData = <-done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	post, err := w.posts.Create(ctx, in, author)
	if err != nil {
		return nil, err
	}

	// Reset: cleared fields, no pin, back to the first step.
	w.fields = Fields{}
	w.pin = nil
	w.step = StepBasics

	return post, nil
}

func requiredForStep(step Step, f Fields) []string {
	switch step {
	case StepBasics:
		return []string{f.Type, f.Title, f.Category}
	case StepLocation:
		return []string{f.CampusArea, f.LocationDetail, f.Date, f.Time}
	case StepDescription:
		return []string{f.Description}
	default:
		return nil
	}
}
