package storage

import (
	"context"
	"database/sql"

	"restaurant-backend/restaurant-svc/internal/domain"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

func (r *PostgresRepository) CreateCategory(ctx context.Context, c *domain.Category) error {
	err := r.DB.QueryRowContext(ctx,
		"INSERT INTO categories (id, name) VALUES ($1, $2) RETURNING created_at, updated_at",
		c.ID, c.Name,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	return translate(err, "insert category", domain.MsgCategoryNotFound)
}

func (r *PostgresRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id, name, created_at, updated_at FROM categories ORDER BY name")
	if err != nil {
		return nil, errors.Wrap(err, "query categories")
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, errors.Wrap(err, "scan category")
		}
		categories = append(categories, c)
	}
	return categories, errors.Wrap(rows.Err(), "iterate categories")
}

func (r *PostgresRepository) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	var c domain.Category
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, created_at, updated_at FROM categories WHERE id = $1", id,
	).Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, translate(err, "get category", domain.MsgCategoryNotFound)
	}
	return &c, nil
}

func (r *PostgresRepository) UpdateCategory(ctx context.Context, c *domain.Category) error {
	err := r.DB.QueryRowContext(ctx,
		"UPDATE categories SET name = $1, updated_at = NOW() WHERE id = $2 RETURNING created_at, updated_at",
		c.Name, c.ID,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	return translate(err, "update category", domain.MsgCategoryNotFound)
}

func (r *PostgresRepository) DeleteCategory(ctx context.Context, id string) (int64, error) {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return 0, domain.Conflict("Category still has menu items")
		}
		return 0, errors.Wrap(err, "delete category")
	}
	return result.RowsAffected()
}

const menuItemSelect = `
	SELECT m.id, m.name, m.image, m.price, m.category_id, m.description, m.is_available, m.created_at, m.updated_at,
		c.id, c.name, c.created_at, c.updated_at
	FROM menu_items m
	LEFT JOIN categories c ON c.id = m.category_id`

func scanMenuItem(row rowScanner) (*domain.MenuItem, error) {
	var (
		item                   domain.MenuItem
		catID, catName         sql.NullString
		catCreated, catUpdated sql.NullTime
	)
	if err := row.Scan(
		&item.ID, &item.Name, &item.Image, &item.Price, &item.CategoryID, &item.Description, &item.IsAvailable, &item.CreatedAt, &item.UpdatedAt,
		&catID, &catName, &catCreated, &catUpdated,
	); err != nil {
		return nil, err
	}
	if catID.Valid {
		item.Category = &domain.Category{ID: catID.String, Name: catName.String, CreatedAt: catCreated.Time, UpdatedAt: catUpdated.Time}
	}
	return &item, nil
}

func (r *PostgresRepository) queryMenuItems(ctx context.Context, query string, args ...any) ([]domain.MenuItem, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query menu items")
	}
	defer rows.Close()

	items := []domain.MenuItem{}
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan menu item")
		}
		items = append(items, *item)
	}
	return items, errors.Wrap(rows.Err(), "iterate menu items")
}

func (r *PostgresRepository) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO menu_items (id, name, image, price, category_id, description, is_available)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`,
		item.ID, item.Name, item.Image, item.Price, item.CategoryID, item.Description, item.IsAvailable,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
	return translate(err, "insert menu item", domain.MsgMenuItemNotFound)
}

func (r *PostgresRepository) ListMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	return r.queryMenuItems(ctx, menuItemSelect+" ORDER BY m.name")
}

func (r *PostgresRepository) GetMenuItem(ctx context.Context, id string) (*domain.MenuItem, error) {
	item, err := scanMenuItem(r.DB.QueryRowContext(ctx, menuItemSelect+" WHERE m.id = $1", id))
	if err != nil {
		return nil, translate(err, "get menu item", domain.MsgMenuItemNotFound)
	}
	return item, nil
}

func (r *PostgresRepository) GetMenuItems(ctx context.Context, ids []string) ([]domain.MenuItem, error) {
	if len(ids) == 0 {
		return []domain.MenuItem{}, nil
	}
	return r.queryMenuItems(ctx, menuItemSelect+" WHERE m.id = ANY($1) ORDER BY m.name", pq.Array(ids))
}

func (r *PostgresRepository) UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	err := r.DB.QueryRowContext(ctx, `
		UPDATE menu_items
		SET name = $1, image = $2, price = $3, category_id = $4, description = $5, is_available = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING created_at, updated_at`,
		item.Name, item.Image, item.Price, item.CategoryID, item.Description, item.IsAvailable, item.ID,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
	return translate(err, "update menu item", domain.MsgMenuItemNotFound)
}

func (r *PostgresRepository) DeleteMenuItem(ctx context.Context, id string) (int64, error) {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM menu_items WHERE id = $1", id)
	if err != nil {
		return 0, errors.Wrap(err, "delete menu item")
	}
	return result.RowsAffected()
}
