package products

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shikhasoumya1612/ecommerce/pkg/apperr"
)

// InsertCategory creates a category. Names are unique across the catalog.
func (c *Conf) InsertCategory(ctx context.Context, nc NewCategory) (Category, error) {
	category := Category{
		ID:         uuid.NewString(),
		Name:       nc.Name,
		Attributes: nc.Attributes,
		ImgLink:    nc.ImgLink,
	}
	if category.Attributes == nil {
		category.Attributes = []string{}
	}

	attributes, err := json.Marshal(category.Attributes)
	if err != nil {
		return Category{}, fmt.Errorf("encoding category attributes: %w", err)
	}

	query := `
		INSERT INTO categories (id, name, attributes, img_link)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := c.db.ExecContext(ctx, query, category.ID, category.Name, attributes, category.ImgLink); err != nil {
		if isUniqueViolation(err) {
			return Category{}, apperr.New(apperr.Conflict, "Category already exists with this name")
		}
		return Category{}, fmt.Errorf("inserting category: %w", err)
	}
	return category, nil
}

func (c *Conf) CategoryByID(ctx context.Context, id string) (Category, error) {
	query := `SELECT id, name, attributes, img_link FROM categories WHERE id = $1`

	var category Category
	var attributes []byte
	err := c.db.QueryRowContext(ctx, query, id).Scan(&category.ID, &category.Name, &attributes, &category.ImgLink)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Category{}, apperr.New(apperr.NotFound, "Category not found")
		}
		return Category{}, fmt.Errorf("fetching category %s: %w", id, err)
	}
	if err := json.Unmarshal(attributes, &category.Attributes); err != nil {
		return Category{}, fmt.Errorf("decoding category attributes: %w", err)
	}
	return category, nil
}

func (c *Conf) AllCategories(ctx context.Context) ([]Category, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT id, name, attributes, img_link FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	categories := []Category{}
	for rows.Next() {
		var category Category
		var attributes []byte
		if err := rows.Scan(&category.ID, &category.Name, &attributes, &category.ImgLink); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		if err := json.Unmarshal(attributes, &category.Attributes); err != nil {
			return nil, fmt.Errorf("decoding category attributes: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}
	return categories, nil
}

// UpdateCategory patches the category name; the permitted attribute list is
// fixed at creation.
func (c *Conf) UpdateCategory(ctx context.Context, id string, patch UpdateCategory) (Category, error) {
	category, err := c.CategoryByID(ctx, id)
	if err != nil {
		return Category{}, err
	}

	if patch.Name != nil {
		category.Name = *patch.Name
		if _, err := c.db.ExecContext(ctx, `UPDATE categories SET name = $1 WHERE id = $2`, category.Name, id); err != nil {
			if isUniqueViolation(err) {
				return Category{}, apperr.New(apperr.Conflict, "Category already exists with this name")
			}
			return Category{}, fmt.Errorf("updating category %s: %w", id, err)
		}
	}
	return category, nil
}

// DeleteCategory removes a category; its products cascade.
func (c *Conf) DeleteCategory(ctx context.Context, id string) error {
	res, err := c.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting category %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.New(apperr.NotFound, "Category not found")
	}
	return nil
}
