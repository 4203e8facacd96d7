package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/repository"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Options содержит настройки подключения к PostgreSQL
type Options struct {
	URL      string
	MaxConns int32
	MinConns int32
}

// Store реализует repository.Store поверх PostgreSQL (документы хранятся в JSONB)
type Store struct {
	db    *pgxpool.Pool
	cards *CardRepository
	units *UnitRepository
}

// New устанавливает подключение к PostgreSQL с connection pool и проверяет его
func New(ctx context.Context, opts Options) (*Store, error) {
	poolConfig, err := pgxpool.ParseConfig(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// Настраиваем размеры connection pool
	if opts.MaxConns > 0 {
		poolConfig.MaxConns = opts.MaxConns
	}
	if opts.MinConns > 0 {
		poolConfig.MinConns = opts.MinConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Проверяем подключение к БД
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return NewWithPool(pool), nil
}

// NewWithPool оборачивает уже созданный пул подключений
func NewWithPool(pool *pgxpool.Pool) *Store {
	return &Store{
		db:    pool,
		cards: NewCardRepository(pool),
		units: NewUnitRepository(pool),
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

// Migrate применяет встроенные миграции goose
func (s *Store) Migrate(ctx context.Context) error {
	// goose работает через database/sql, поэтому оборачиваем пул.
	// Закрывать обертку не нужно: простаивающие соединения остаются в пуле.
	db := stdlib.OpenDBFromPool(s.db)

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrationsFS())
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}

// Ping проверяет доступность базы данных
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close закрывает пул подключений
func (s *Store) Close(_ context.Context) error {
	s.db.Close()
	return nil
}

func migrationsFS() fs.FS {
	sub, err := fs.Sub(migrations, "migrations")
	if err != nil {
		// каталог встроен при компиляции
		panic(err)
	}
	return sub
}
