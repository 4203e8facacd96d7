package repository

import (
	"context"
	"time"

	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/domain"
)

// CardRepository определяет методы для работы с карточками дашборда
type CardRepository interface {
	// List возвращает все карточки в порядке создания
	List(ctx context.Context) ([]*domain.Card, error)

	// Create сохраняет новую карточку
	Create(ctx context.Context, card *domain.Card) error

	// Update изменяет карточку и возвращает ее новое состояние (domain.ErrCardNotFound если ее нет)
	Update(ctx context.Context, id string, update domain.CardUpdate) (*domain.Card, error)

	// Delete удаляет карточку; отсутствие карточки не считается ошибкой
	Delete(ctx context.Context, id string) error
}

// UnitRepository определяет методы для работы с подразделениями
type UnitRepository interface {
	// List возвращает все подразделения в порядке создания
	List(ctx context.Context) ([]*domain.Unit, error)

	// Create сохраняет новое подразделение вместе с вложенными списками
	Create(ctx context.Context, unit *domain.Unit) error

	// GetByID получает подразделение по ID (domain.ErrUnitNotFound если его нет)
	GetByID(ctx context.Context, id string) (*domain.Unit, error)

	// Update изменяет поля верхнего уровня и возвращает новое состояние
	Update(ctx context.Context, id string, update domain.UnitUpdate) (*domain.Unit, error)

	// Delete удаляет подразделение; отсутствие подразделения не считается ошибкой
	Delete(ctx context.Context, id string) error

	// PushEntry добавляет элемент в конец вложенного списка и возвращает подразделение целиком
	PushEntry(ctx context.Context, unitID string, entry domain.Entry, at time.Time) (*domain.Unit, error)

	// PullEntry удаляет элемент вложенного списка по ID и возвращает подразделение целиком
	PullEntry(ctx context.Context, unitID string, list domain.UnitList, entryID string, at time.Time) (*domain.Unit, error)
}

// Store это подключенное документное хранилище, создаваемое один раз при старте
type Store interface {
	Cards() CardRepository
	Units() UnitRepository

	// Migrate подготавливает хранилище (схема, индексы, проверка бакета)
	Migrate(ctx context.Context) error

	// Ping проверяет доступность хранилища
	Ping(ctx context.Context) error

	// Close освобождает подключение
	Close(ctx context.Context) error
}
