package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/domain"
)

const cardColumns = `id, title, description, link, created_at, updated_at`

// CardRepository реализует repository.CardRepository для PostgreSQL
type CardRepository struct {
	db *pgxpool.Pool
}

// NewCardRepository создает новый экземпляр CardRepository
func NewCardRepository(db *pgxpool.Pool) *CardRepository {
	return &CardRepository{db: db}
}

// List возвращает все карточки в порядке создания
func (r *CardRepository) List(ctx context.Context) ([]*domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	cards := make([]*domain.Card, 0)
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}

	return cards, rows.Err()
}

// Create сохраняет новую карточку
func (r *CardRepository) Create(ctx context.Context, card *domain.Card) error {
	query := `
		INSERT INTO cards (id, title, description, link, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		card.ID, card.Title, card.Desc, card.Link, card.CreatedAt, card.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create card: %w", err)
	}

	return nil
}

// Update изменяет только переданные поля карточки
func (r *CardRepository) Update(ctx context.Context, id string, update domain.CardUpdate) (*domain.Card, error) {
	query := `
		UPDATE cards
		SET title = COALESCE($2, title),
		    description = COALESCE($3, description),
		    link = COALESCE($4, link),
		    updated_at = $5
		WHERE id = $1
		RETURNING ` + cardColumns

	card, err := scanCard(r.db.QueryRow(ctx, query,
		id, update.Title, update.Desc, update.Link, update.UpdatedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to update card: %w", err)
	}

	return card, nil
}

// Delete удаляет карточку
func (r *CardRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM cards WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}
	return nil
}

func scanCard(row pgx.Row) (*domain.Card, error) {
	var card domain.Card
	err := row.Scan(
		&card.ID,
		&card.Title,
		&card.Desc,
		&card.Link,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &card, nil
}
