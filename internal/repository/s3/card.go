package s3

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/domain"
)

const cardsCollection = "cards"

// CardRepository реализует repository.CardRepository для S3
type CardRepository struct {
	objects *objectStore
}

// newCardRepository создает новый экземпляр CardRepository
func newCardRepository(objects *objectStore) *CardRepository {
	return &CardRepository{objects: objects}
}

// List читает все объекты карточек и сортирует их по времени создания
func (r *CardRepository) List(ctx context.Context) ([]*domain.Card, error) {
	keys, err := r.objects.keys(ctx, cardsCollection)
	if err != nil {
		return nil, err
	}

	cards := make([]*domain.Card, 0, len(keys))
	for _, key := range keys {
		var card domain.Card
		if err := r.objects.get(ctx, key, &card); err != nil {
			// объект мог быть удален между листингом и чтением
			if errors.Is(err, errNoSuchKey) {
				continue
			}
			return nil, err
		}
		cards = append(cards, &card)
	}

	slices.SortFunc(cards, func(a, b *domain.Card) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return compareIDs(a.ID, b.ID)
	})

	return cards, nil
}

// Create сохраняет карточку отдельным объектом
func (r *CardRepository) Create(ctx context.Context, card *domain.Card) error {
	return r.objects.put(ctx, r.objects.key(cardsCollection, card.ID), card)
}

// Update читает карточку, применяет изменения и перезаписывает объект
func (r *CardRepository) Update(ctx context.Context, id string, update domain.CardUpdate) (*domain.Card, error) {
	key := r.objects.key(cardsCollection, id)

	var card domain.Card
	if err := r.objects.get(ctx, key, &card); err != nil {
		if errors.Is(err, errNoSuchKey) {
			return nil, domain.ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to load card: %w", err)
	}

	update.Apply(&card)

	if err := r.objects.put(ctx, key, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// Delete удаляет объект карточки (удаление отсутствующего ключа в S3 успешно)
func (r *CardRepository) Delete(ctx context.Context, id string) error {
	return r.objects.delete(ctx, r.objects.key(cardsCollection, id))
}

func compareIDs(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
