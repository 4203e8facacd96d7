package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/domain"
)

// CardRepository реализует repository.CardRepository для MongoDB
type CardRepository struct {
	coll *mongo.Collection
}

// NewCardRepository создает новый экземпляр CardRepository
func NewCardRepository(coll *mongo.Collection) *CardRepository {
	return &CardRepository{coll: coll}
}

// List возвращает все карточки в порядке создания
func (r *CardRepository) List(ctx context.Context) ([]*domain.Card, error) {
	cursor, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(creationOrder()))
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	cards := make([]*domain.Card, 0)
	if err := cursor.All(ctx, &cards); err != nil {
		return nil, fmt.Errorf("failed to decode cards: %w", err)
	}

	return cards, nil
}

// Create сохраняет новую карточку
func (r *CardRepository) Create(ctx context.Context, card *domain.Card) error {
	if _, err := r.coll.InsertOne(ctx, card); err != nil {
		return fmt.Errorf("failed to create card: %w", err)
	}
	return nil
}

// Update выполняет $set только для переданных полей
func (r *CardRepository) Update(ctx context.Context, id string, update domain.CardUpdate) (*domain.Card, error) {
	set := bson.M{"updatedAt": update.UpdatedAt}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Desc != nil {
		set["desc"] = *update.Desc
	}
	if update.Link != nil {
		set["link"] = *update.Link
	}

	var card domain.Card
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&card)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to update card: %w", err)
	}

	return &card, nil
}

// Delete удаляет карточку
func (r *CardRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}
	return nil
}
