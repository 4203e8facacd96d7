package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/domain"
)

// UnitRepository реализует repository.UnitRepository для MongoDB.
// Вложенные списки изменяются встроенными операторами $push и $pull.
type UnitRepository struct {
	coll *mongo.Collection
}

// NewUnitRepository создает новый экземпляр UnitRepository
func NewUnitRepository(coll *mongo.Collection) *UnitRepository {
	return &UnitRepository{coll: coll}
}

// List возвращает все подразделения в порядке создания
func (r *UnitRepository) List(ctx context.Context) ([]*domain.Unit, error) {
	cursor, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(creationOrder()))
	if err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}

	units := make([]*domain.Unit, 0)
	if err := cursor.All(ctx, &units); err != nil {
		return nil, fmt.Errorf("failed to decode units: %w", err)
	}

	for _, unit := range units {
		unit.Normalize()
	}

	return units, nil
}

// Create сохраняет новое подразделение
func (r *UnitRepository) Create(ctx context.Context, unit *domain.Unit) error {
	// Пустые списки сохраняем массивами, иначе $push по null завершится ошибкой
	unit.Normalize()

	if _, err := r.coll.InsertOne(ctx, unit); err != nil {
		return fmt.Errorf("failed to create unit: %w", err)
	}
	return nil
}

// GetByID получает подразделение по ID
func (r *UnitRepository) GetByID(ctx context.Context, id string) (*domain.Unit, error) {
	var unit domain.Unit
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&unit); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUnitNotFound
		}
		return nil, fmt.Errorf("failed to get unit: %w", err)
	}

	unit.Normalize()
	return &unit, nil
}

// Update выполняет $set только для переданных полей верхнего уровня
func (r *UnitRepository) Update(ctx context.Context, id string, update domain.UnitUpdate) (*domain.Unit, error) {
	set := bson.M{"updatedAt": update.UpdatedAt}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Managers != nil {
		set["managers"] = *update.Managers
	}

	return r.findOneAndUpdate(ctx, id, bson.M{"$set": set})
}

// Delete удаляет подразделение
func (r *UnitRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete unit: %w", err)
	}
	return nil
}

// PushEntry добавляет элемент в конец списка оператором $push
func (r *UnitRepository) PushEntry(ctx context.Context, unitID string, entry domain.Entry, at time.Time) (*domain.Unit, error) {
	if !entry.List().Valid() {
		return nil, domain.ErrUnknownList
	}

	return r.findOneAndUpdate(ctx, unitID, bson.M{
		"$push": bson.M{string(entry.List()): entry},
		"$set":  bson.M{"updatedAt": at},
	})
}

// PullEntry удаляет элементы списка с указанным _id через $filter
func (r *UnitRepository) PullEntry(ctx context.Context, unitID string, list domain.UnitList, entryID string, at time.Time) (*domain.Unit, error) {
	if !list.Valid() {
		return nil, domain.ErrUnknownList
	}

	field := string(list)
	// Конвейер обновления: updatedAt меняется, только если элемент был в списке
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"updatedAt": bson.M{"$cond": bson.A{
				bson.M{"$in": bson.A{entryID, bson.M{"$ifNull": bson.A{"$" + field + "._id", bson.A{}}}}},
				at,
				"$updatedAt",
			}},
			field: bson.M{"$filter": bson.M{
				"input": bson.M{"$ifNull": bson.A{"$" + field, bson.A{}}},
				"cond":  bson.M{"$ne": bson.A{"$$this._id", entryID}},
			}},
		}}},
	}

	return r.findOneAndUpdate(ctx, unitID, pipeline)
}

func (r *UnitRepository) findOneAndUpdate(ctx context.Context, id string, update any) (*domain.Unit, error) {
	var unit domain.Unit
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&unit)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUnitNotFound
		}
		return nil, fmt.Errorf("failed to update unit: %w", err)
	}

	unit.Normalize()
	return &unit, nil
}
