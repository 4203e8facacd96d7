package service

import (
	"context"
	"time"

	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/domain"
	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/repository"
)

// CardService handles business logic for dashboard cards
type CardService struct {
	cardRepo repository.CardRepository
	now      func() time.Time
}

// NewCardService creates a new CardService
func NewCardService(cardRepo repository.CardRepository) *CardService {
	return &CardService{
		cardRepo: cardRepo,
		now:      now,
	}
}

// CardFields holds the client supplied card fields (nil means absent)
type CardFields struct {
	Title *string
	Desc  *string
	Link  *string
}

// List returns all cards, oldest first
func (s *CardService) List(ctx context.Context) ([]*domain.Card, error) {
	return s.cardRepo.List(ctx)
}

// Create stores a new card. Absent fields become empty strings.
func (s *CardService) Create(ctx context.Context, fields CardFields) (*domain.Card, error) {
	ts := s.now()
	card := &domain.Card{
		ID:        domain.NewID(),
		Title:     deref(fields.Title),
		Desc:      deref(fields.Desc),
		Link:      deref(fields.Link),
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	if err := s.cardRepo.Create(ctx, card); err != nil {
		return nil, err
	}

	return card, nil
}

// Update changes the given fields of a card.
// Returns domain.ErrCardNotFound if there is no such card; nothing is created in that case.
func (s *CardService) Update(ctx context.Context, id string, fields CardFields) (*domain.Card, error) {
	return s.cardRepo.Update(ctx, id, domain.CardUpdate{
		Title:     fields.Title,
		Desc:      fields.Desc,
		Link:      fields.Link,
		UpdatedAt: s.now(),
	})
}

// Delete removes a card. Deleting a missing card is not an error.
func (s *CardService) Delete(ctx context.Context, id string) error {
	return s.cardRepo.Delete(ctx, id)
}

// now returns the current time truncated to what every store can persist
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
