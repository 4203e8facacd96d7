package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/repository"
)

// DefaultDatabase используется когда имя базы не указано ни в URI, ни в настройках
const DefaultDatabase = "dashboard"

// Коллекции документов
const (
	cardsCollection = "cards"
	unitsCollection = "units"
)

// Options содержит настройки подключения к MongoDB
type Options struct {
	URI      string
	Database string
}

// Store реализует repository.Store поверх MongoDB
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	cards  *CardRepository
	units  *UnitRepository
}

// New подключается к MongoDB и проверяет соединение
func New(ctx context.Context, opts Options) (*Store, error) {
	cs, err := connstring.ParseAndValidate(opts.URI)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mongo uri: %w", err)
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	// Приоритет: явная настройка, затем путь URI, затем имя по умолчанию
	name := opts.Database
	if name == "" {
		name = cs.Database
	}
	if name == "" {
		name = DefaultDatabase
	}

	return NewWithClient(client, name), nil
}

// NewWithClient создает хранилище поверх уже подключенного клиента
func NewWithClient(client *mongo.Client, database string) *Store {
	db := client.Database(database)
	return &Store{
		client: client,
		db:     db,
		cards:  NewCardRepository(db.Collection(cardsCollection)),
		units:  NewUnitRepository(db.Collection(unitsCollection)),
	}
}

// Cards возвращает репозиторий карточек
func (s *Store) Cards() repository.CardRepository {
	return s.cards
}

// Units возвращает репозиторий подразделений
func (s *Store) Units() repository.UnitRepository {
	return s.units
}

// Migrate создает индексы для сортировки по времени создания
func (s *Store) Migrate(ctx context.Context) error {
	index := mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}},
	}

	for _, name := range []string{cardsCollection, unitsCollection} {
		if _, err := s.db.Collection(name).Indexes().CreateOne(ctx, index); err != nil {
			return fmt.Errorf("failed to create index on %s: %w", name, err)
		}
	}

	return nil
}

// Ping проверяет доступность MongoDB
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close отключает клиента
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// creationOrder сортирует документы в порядке создания
func creationOrder() bson.D {
	return bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}
}
