// Package service implements the feedback business logic.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"checkout_backend/internal/events"
	"checkout_backend/internal/feedback/repository"
	"checkout_backend/platform/apperr"
	"checkout_backend/platform/logger"
	"checkout_backend/platform/sanitize"
)

// Store abstracts the feedback persistence layer.
type Store interface {
	Save(rec repository.Record) error
	List() ([]repository.Record, error)
}

// Service handles satisfaction feedback.
type Service struct {
	store Store
	bus   events.Bus
	log   *logger.Logger
}

// New creates a feedback service.
func New(store Store, bus events.Bus, log *logger.Logger) *Service {
	return &Service{store: store, bus: bus, log: log}
}

// Submit validates and persists a feedback record, then announces it on the
// event bus.
func (s *Service) Submit(ctx context.Context, rating int, comment, email string) (repository.Record, error) {
	if rating < 1 || rating > 5 {
		return repository.Record{}, apperr.Validation("rating must be between 1 and 5")
	}

	rec := repository.Record{
		ID:        uuid.New(),
		Rating:    rating,
		Comment:   sanitize.Text(comment),
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Save(rec); err != nil {
		return repository.Record{}, apperr.Internal("failed to store feedback").WithOp("feedback.Submit")
	}

	s.bus.Publish(ctx, events.FeedbackSubmitted{
		BaseEvent:     events.NewBaseEvent(),
		FeedbackID:    rec.ID,
		Rating:        rec.Rating,
		Comment:       rec.Comment,
		CustomerEmail: rec.Email,
	})

	s.log.Info("feedback recorded", "feedback_id", rec.ID, "rating", rec.Rating)
	return rec, nil
}

// List returns all feedback records, newest first.
func (s *Service) List(ctx context.Context) ([]repository.Record, error) {
	records, err := s.store.List()
	if err != nil {
		return nil, apperr.Internal("failed to list feedback").WithOp("feedback.List")
	}
	return records, nil
}
