package s3

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/domain"
)

const unitsCollection = "units"

// UnitRepository реализует repository.UnitRepository для S3.
// Операции со вложенными списками выполняются как чтение-изменение-запись документа.
type UnitRepository struct {
	objects *objectStore
}

// newUnitRepository создает новый экземпляр UnitRepository
func newUnitRepository(objects *objectStore) *UnitRepository {
	return &UnitRepository{objects: objects}
}

// List читает все подразделения и сортирует их по времени создания
func (r *UnitRepository) List(ctx context.Context) ([]*domain.Unit, error) {
	keys, err := r.objects.keys(ctx, unitsCollection)
	if err != nil {
		return nil, err
	}

	units := make([]*domain.Unit, 0, len(keys))
	for _, key := range keys {
		var unit domain.Unit
		if err := r.objects.get(ctx, key, &unit); err != nil {
			if errors.Is(err, errNoSuchKey) {
				continue
			}
			return nil, err
		}
		unit.Normalize()
		units = append(units, &unit)
	}

	slices.SortFunc(units, func(a, b *domain.Unit) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return compareIDs(a.ID, b.ID)
	})

	return units, nil
}

// Create сохраняет подразделение отдельным объектом
func (r *UnitRepository) Create(ctx context.Context, unit *domain.Unit) error {
	unit.Normalize()
	return r.objects.put(ctx, r.objects.key(unitsCollection, unit.ID), unit)
}

// GetByID читает подразделение по ID
func (r *UnitRepository) GetByID(ctx context.Context, id string) (*domain.Unit, error) {
	var unit domain.Unit
	if err := r.objects.get(ctx, r.objects.key(unitsCollection, id), &unit); err != nil {
		if errors.Is(err, errNoSuchKey) {
			return nil, domain.ErrUnitNotFound
		}
		return nil, fmt.Errorf("failed to load unit: %w", err)
	}

	unit.Normalize()
	return &unit, nil
}

// Update изменяет поля верхнего уровня
func (r *UnitRepository) Update(ctx context.Context, id string, update domain.UnitUpdate) (*domain.Unit, error) {
	return r.modify(ctx, id, func(unit *domain.Unit) (bool, error) {
		update.Apply(unit)
		return true, nil
	})
}

// Delete удаляет объект подразделения
func (r *UnitRepository) Delete(ctx context.Context, id string) error {
	return r.objects.delete(ctx, r.objects.key(unitsCollection, id))
}

// PushEntry дописывает элемент в конец списка
func (r *UnitRepository) PushEntry(ctx context.Context, unitID string, entry domain.Entry, at time.Time) (*domain.Unit, error) {
	return r.modify(ctx, unitID, func(unit *domain.Unit) (bool, error) {
		if err := unit.Append(entry); err != nil {
			return false, err
		}
		unit.UpdatedAt = at
		return true, nil
	})
}

// PullEntry удаляет элемент списка по ID
func (r *UnitRepository) PullEntry(ctx context.Context, unitID string, list domain.UnitList, entryID string, at time.Time) (*domain.Unit, error) {
	return r.modify(ctx, unitID, func(unit *domain.Unit) (bool, error) {
		removed, err := unit.Remove(list, entryID)
		if err != nil || !removed {
			return false, err
		}
		unit.UpdatedAt = at
		return true, nil
	})
}

// modify читает подразделение, изменяет его в памяти и записывает обратно
func (r *UnitRepository) modify(ctx context.Context, id string, mutate func(*domain.Unit) (bool, error)) (*domain.Unit, error) {
	unit, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changed, err := mutate(unit)
	if err != nil {
		return nil, err
	}
	if !changed {
		return unit, nil
	}

	if err := r.objects.put(ctx, r.objects.key(unitsCollection, id), unit); err != nil {
		return nil, err
	}
	return unit, nil
}
