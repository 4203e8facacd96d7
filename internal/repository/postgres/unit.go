package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/domain"
)

const unitColumns = `id, name, description, managers, sites, contacts, mailman_lists, created_at, updated_at`

// listColumns сопоставляет вложенные списки с JSONB-колонками таблицы units
var listColumns = map[domain.UnitList]string{
	domain.ListSites:        "sites",
	domain.ListContacts:     "contacts",
	domain.ListMailmanLists: "mailman_lists",
}

// UnitRepository реализует repository.UnitRepository для PostgreSQL.
// Вложенные списки хранятся в JSONB и изменяются атомарно одним UPDATE.
type UnitRepository struct {
	db *pgxpool.Pool
}

// NewUnitRepository создает новый экземпляр UnitRepository
func NewUnitRepository(db *pgxpool.Pool) *UnitRepository {
	return &UnitRepository{db: db}
}

// List возвращает все подразделения в порядке создания
func (r *UnitRepository) List(ctx context.Context) ([]*domain.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}
	defer rows.Close()

	units := make([]*domain.Unit, 0)
	for rows.Next() {
		unit, err := scanUnit(rows)
		if err != nil {
			return nil, err
		}
		units = append(units, unit)
	}

	return units, rows.Err()
}

// Create сохраняет новое подразделение
func (r *UnitRepository) Create(ctx context.Context, unit *domain.Unit) error {
	unit.Normalize()

	query := `
		INSERT INTO units (id, name, description, managers, sites, contacts, mailman_lists, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5::jsonb, $6::jsonb, $7::jsonb, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		unit.ID,
		unit.Name,
		unit.Description,
		unit.Managers,
		unit.Sites,
		unit.Contacts,
		unit.MailmanLists,
		unit.CreatedAt,
		unit.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create unit: %w", err)
	}

	return nil
}

// GetByID получает подразделение со всеми вложенными списками
func (r *UnitRepository) GetByID(ctx context.Context, id string) (*domain.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units WHERE id = $1`

	unit, err := scanUnit(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUnitNotFound
		}
		return nil, fmt.Errorf("failed to get unit: %w", err)
	}

	return unit, nil
}

// Update изменяет только переданные поля верхнего уровня
func (r *UnitRepository) Update(ctx context.Context, id string, update domain.UnitUpdate) (*domain.Unit, error) {
	query := `
		UPDATE units
		SET name = COALESCE($2, name),
		    description = COALESCE($3, description),
		    managers = COALESCE($4, managers),
		    updated_at = $5
		WHERE id = $1
		RETURNING ` + unitColumns

	return r.updateOne(ctx, query, id, update.Name, update.Description, update.Managers, update.UpdatedAt)
}

// Delete удаляет подразделение вместе с вложенными списками
func (r *UnitRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM units WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete unit: %w", err)
	}
	return nil
}

// PushEntry дописывает элемент в конец JSONB-массива
func (r *UnitRepository) PushEntry(ctx context.Context, unitID string, entry domain.Entry, at time.Time) (*domain.Unit, error) {
	column, ok := listColumns[entry.List()]
	if !ok {
		return nil, domain.ErrUnknownList
	}

	query := fmt.Sprintf(`
		UPDATE units
		SET %[1]s = %[1]s || jsonb_build_array($2::jsonb),
		    updated_at = $3
		WHERE id = $1
		RETURNING `+unitColumns, column)

	return r.updateOne(ctx, query, unitID, entry, at)
}

// PullEntry удаляет из JSONB-массива элементы с указанным _id, сохраняя порядок остальных.
// Если элемента нет, updated_at не меняется.
func (r *UnitRepository) PullEntry(ctx context.Context, unitID string, list domain.UnitList, entryID string, at time.Time) (*domain.Unit, error) {
	column, ok := listColumns[list]
	if !ok {
		return nil, domain.ErrUnknownList
	}

	query := fmt.Sprintf(`
		UPDATE units
		SET %[1]s = COALESCE((
		        SELECT jsonb_agg(t.entry ORDER BY t.ord)
		        FROM jsonb_array_elements(%[1]s) WITH ORDINALITY AS t(entry, ord)
		        WHERE t.entry->>'_id' IS DISTINCT FROM $2::text
		    ), '[]'::jsonb),
		    updated_at = CASE
		        WHEN %[1]s @> jsonb_build_array(jsonb_build_object('_id', $2::text)) THEN $3
		        ELSE updated_at
		    END
		WHERE id = $1
		RETURNING `+unitColumns, column)

	return r.updateOne(ctx, query, unitID, entryID, at)
}

func (r *UnitRepository) updateOne(ctx context.Context, query string, args ...any) (*domain.Unit, error) {
	unit, err := scanUnit(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUnitNotFound
		}
		return nil, fmt.Errorf("failed to update unit: %w", err)
	}
	return unit, nil
}

func scanUnit(row pgx.Row) (*domain.Unit, error) {
	var unit domain.Unit
	err := row.Scan(
		&unit.ID,
		&unit.Name,
		&unit.Description,
		&unit.Managers,
		&unit.Sites,
		&unit.Contacts,
		&unit.MailmanLists,
		&unit.CreatedAt,
		&unit.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	unit.Normalize()
	return &unit, nil
}
