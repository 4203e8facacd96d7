// Package memory реализует хранилище документов в памяти процесса.
// Используется для локального запуска (DATABASE_URL=memory://) и в тестах.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/domain"
	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/repository"
)

// Store реализует repository.Store в памяти
type Store struct {
	cards *CardRepository
	units *UnitRepository
}

// New создает пустое хранилище
func New() *Store {
	return &Store{
		cards: &CardRepository{byID: make(map[string]domain.Card)},
		units: &UnitRepository{byID: make(map[string]domain.Unit)},
	}
}

// Cards возвращает репозиторий карточек
func (s *Store) Cards() repository.CardRepository { return s.cards }

// Units возвращает репозиторий подразделений
func (s *Store) Units() repository.UnitRepository { return s.units }

// Migrate ничего не делает
func (s *Store) Migrate(context.Context) error { return nil }

// Ping всегда успешен
func (s *Store) Ping(context.Context) error { return nil }

// Close ничего не делает
func (s *Store) Close(context.Context) error { return nil }

// CardRepository хранит карточки в map, порядок вставки хранится отдельно
type CardRepository struct {
	mu    sync.RWMutex
	byID  map[string]domain.Card
	order []string
}

func (r *CardRepository) List(_ context.Context) ([]*domain.Card, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cards := make([]*domain.Card, 0, len(r.order))
	for _, id := range r.order {
		card := r.byID[id]
		cards = append(cards, &card)
	}
	return cards, nil
}

func (r *CardRepository) Create(_ context.Context, card *domain.Card) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[card.ID]; !exists {
		r.order = append(r.order, card.ID)
	}
	r.byID[card.ID] = *card
	return nil
}

func (r *CardRepository) Update(_ context.Context, id string, update domain.CardUpdate) (*domain.Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	card, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCardNotFound
	}
	update.Apply(&card)
	r.byID[id] = card
	return &card, nil
}

func (r *CardRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byID, id)
	r.order = slices.DeleteFunc(r.order, func(s string) bool { return s == id })
	return nil
}

// UnitRepository хранит подразделения в map, порядок вставки хранится отдельно
type UnitRepository struct {
	mu    sync.RWMutex
	byID  map[string]domain.Unit
	order []string
}

func (r *UnitRepository) List(_ context.Context) ([]*domain.Unit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	units := make([]*domain.Unit, 0, len(r.order))
	for _, id := range r.order {
		units = append(units, cloneUnit(r.byID[id]))
	}
	return units, nil
}

func (r *UnitRepository) Create(_ context.Context, unit *domain.Unit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	unit.Normalize()
	if _, exists := r.byID[unit.ID]; !exists {
		r.order = append(r.order, unit.ID)
	}
	r.byID[unit.ID] = *cloneUnit(*unit)
	return nil
}

func (r *UnitRepository) GetByID(_ context.Context, id string) (*domain.Unit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	unit, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUnitNotFound
	}
	return cloneUnit(unit), nil
}

func (r *UnitRepository) Update(_ context.Context, id string, update domain.UnitUpdate) (*domain.Unit, error) {
	return r.modify(id, func(unit *domain.Unit) (bool, error) {
		update.Apply(unit)
		return true, nil
	})
}

func (r *UnitRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byID, id)
	r.order = slices.DeleteFunc(r.order, func(s string) bool { return s == id })
	return nil
}

func (r *UnitRepository) PushEntry(_ context.Context, unitID string, entry domain.Entry, at time.Time) (*domain.Unit, error) {
	return r.modify(unitID, func(unit *domain.Unit) (bool, error) {
		if err := unit.Append(entry); err != nil {
			return false, err
		}
		unit.UpdatedAt = at
		return true, nil
	})
}

func (r *UnitRepository) PullEntry(_ context.Context, unitID string, list domain.UnitList, entryID string, at time.Time) (*domain.Unit, error) {
	return r.modify(unitID, func(unit *domain.Unit) (bool, error) {
		removed, err := unit.Remove(list, entryID)
		if err != nil || !removed {
			return false, err
		}
		unit.UpdatedAt = at
		return true, nil
	})
}

// modify выполняет чтение-изменение-запись под блокировкой, поэтому гонок здесь нет
func (r *UnitRepository) modify(id string, mutate func(*domain.Unit) (bool, error)) (*domain.Unit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUnitNotFound
	}

	unit := cloneUnit(stored)
	changed, err := mutate(unit)
	if err != nil {
		return nil, err
	}
	if !changed {
		return unit, nil
	}
	r.byID[id] = *unit
	return cloneUnit(*unit), nil
}

// cloneUnit копирует подразделение вместе со списками, чтобы вызывающий код не разделял память с хранилищем
func cloneUnit(u domain.Unit) *domain.Unit {
	u.Sites = slices.Clone(u.Sites)
	u.Contacts = slices.Clone(u.Contacts)
	u.MailmanLists = slices.Clone(u.MailmanLists)
	u.Normalize()
	return &u
}
