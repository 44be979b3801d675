// Package products is the catalog: categories, products with jsonb-backed
// attributes, images and reviews, and the quantity endpoints the cart and
// order services depend on.
package products

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shikhasoumya1612/ecommerce/pkg/apperr"
)

type Conf struct {
	db *sql.DB
}

func NewConf(db *sql.DB) (*Conf, error) {
	if db == nil {
		return nil, fmt.Errorf("db is nil")
	}
	return &Conf{db: db}, nil
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func (c *Conf) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rolling back transaction: %w", rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

const productColumns = `
	p.id, p.name, p.description, p.brand, p.gender, p.attributes, p.price,
	p.quantity, p.img_links, p.reviews,
	c.id, c.name, c.attributes, c.img_link
`

const productSelect = `
	SELECT ` + productColumns + `
	FROM products p
	JOIN categories c ON c.id = p.category_id
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (Product, error) {
	var p Product
	var attributes, imgLinks, reviews, categoryAttributes []byte
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Brand, &p.Gender, &attributes,
		&p.Price, &p.Quantity, &imgLinks, &reviews,
		&p.Category.ID, &p.Category.Name, &categoryAttributes, &p.Category.ImgLink)
	if err != nil {
		return Product{}, err
	}
	if err := json.Unmarshal(attributes, &p.Attributes); err != nil {
		return Product{}, fmt.Errorf("decoding attributes: %w", err)
	}
	if err := json.Unmarshal(imgLinks, &p.ImgLinks); err != nil {
		return Product{}, fmt.Errorf("decoding img links: %w", err)
	}
	if err := json.Unmarshal(reviews, &p.Reviews); err != nil {
		return Product{}, fmt.Errorf("decoding reviews: %w", err)
	}
	if err := json.Unmarshal(categoryAttributes, &p.Category.Attributes); err != nil {
		return Product{}, fmt.Errorf("decoding category attributes: %w", err)
	}
	return p, nil
}

// AddProduct creates a product under a category. Attributes the category does
// not permit are dropped silently.
func (c *Conf) AddProduct(ctx context.Context, categoryID string, np NewProduct) (Product, error) {
	category, err := c.CategoryByID(ctx, categoryID)
	if err != nil {
		return Product{}, err
	}

	product := Product{
		ID:          uuid.NewString(),
		Name:        np.Name,
		Description: np.Description,
		Brand:       np.Brand,
		Attributes:  filterAttributes(np.Attributes, category.Attributes),
		Price:       np.Price,
		Category:    category,
		Quantity:    np.Quantity,
		ImgLinks:    np.ImgLinks,
		Gender:      np.Gender,
		Reviews:     []Review{},
	}
	if product.ImgLinks == nil {
		product.ImgLinks = []string{}
	}

	if err := c.insertProduct(ctx, c.db, product); err != nil {
		return Product{}, err
	}
	return product, nil
}

func (c *Conf) insertProduct(ctx context.Context, q querier, p Product) error {
	attributes, err := json.Marshal(p.Attributes)
	if err != nil {
		return fmt.Errorf("encoding attributes: %w", err)
	}
	imgLinks, err := json.Marshal(p.ImgLinks)
	if err != nil {
		return fmt.Errorf("encoding img links: %w", err)
	}
	reviews, err := json.Marshal(p.Reviews)
	if err != nil {
		return fmt.Errorf("encoding reviews: %w", err)
	}

	query := `
		INSERT INTO products (id, category_id, name, description, brand, gender,
			attributes, price, quantity, img_links, reviews)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = q.ExecContext(ctx, query, p.ID, p.Category.ID, p.Name, p.Description,
		p.Brand, p.Gender, attributes, p.Price, p.Quantity, imgLinks, reviews)
	if err != nil {
		return fmt.Errorf("inserting product: %w", err)
	}
	return nil
}

// ProductByID fetches a product together with its category.
func (c *Conf) ProductByID(ctx context.Context, id string) (Product, error) {
	row := c.db.QueryRowContext(ctx, productSelect+` WHERE p.id = $1`, id)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Product{}, apperr.New(apperr.NotFound, "Product not found")
		}
		return Product{}, fmt.Errorf("fetching product %s: %w", id, err)
	}
	return product, nil
}

// Filter narrows the catalog listing. Zero values are open bounds.
type Filter struct {
	MinPrice   float64
	MaxPrice   float64
	Keyword    string
	CategoryID string
	Genders    []string
}

// FilteredProducts runs the filter pipeline: price range and keyword in SQL,
// then category restriction (unknown category id is NotFound), then genders.
func (c *Conf) FilteredProducts(ctx context.Context, f Filter) ([]Product, error) {
	query := productSelect + `
		WHERE p.price >= $1 AND p.price <= $2
		AND (p.brand ILIKE $3 OR p.name ILIKE $3 OR p.description ILIKE $3)
		ORDER BY p.name
	`
	rows, err := c.db.QueryContext(ctx, query, f.MinPrice, f.MaxPrice, "%"+f.Keyword+"%")
	if err != nil {
		return nil, fmt.Errorf("filtering products: %w", err)
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating products: %w", err)
	}

	if f.CategoryID != "" {
		if _, err := c.CategoryByID(ctx, f.CategoryID); err != nil {
			return nil, err
		}
		products = restrictToCategory(products, f.CategoryID)
	}
	return restrictToGenders(products, f.Genders), nil
}

// ProductsByCategory lists a category's products. A category with no products
// reads the same as a missing one.
func (c *Conf) ProductsByCategory(ctx context.Context, categoryID string) ([]Product, error) {
	rows, err := c.db.QueryContext(ctx, productSelect+` WHERE p.category_id = $1 ORDER BY p.name`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("listing products by category: %w", err)
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating products: %w", err)
	}
	if len(products) == 0 {
		return nil, apperr.New(apperr.NotFound, "Category not found")
	}
	return products, nil
}

// UpdateProduct applies the patch inside one transaction. A name shorter than
// 3 characters is ignored rather than rejected; a non-positive price fails the
// whole patch.
func (c *Conf) UpdateProduct(ctx context.Context, id string, patch UpdateProduct) (Product, error) {
	var updated Product
	err := c.withTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, productSelect+` WHERE p.id = $1 FOR UPDATE OF p`, id)
		product, err := scanProduct(row)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperr.New(apperr.NotFound, "Product not found")
			}
			return fmt.Errorf("fetching product %s: %w", id, err)
		}

		if patch.Name != nil && len(*patch.Name) >= 3 {
			product.Name = *patch.Name
		}
		if patch.Description != nil {
			product.Description = *patch.Description
		}
		if patch.Brand != nil {
			product.Brand = *patch.Brand
		}
		if patch.Price != nil {
			if *patch.Price <= 0 {
				return apperr.New(apperr.InvalidInput, "Price should be greater than 0")
			}
			product.Price = *patch.Price
		}
		if patch.Attributes != nil {
			product.Attributes = filterAttributes(patch.Attributes, product.Category.Attributes)
		}
		if patch.Quantity != nil {
			quantity, err := strconv.Atoi(*patch.Quantity)
			if err != nil {
				return apperr.New(apperr.InvalidInput, "Quantity should be an integer")
			}
			product.Quantity = quantity
		}
		if patch.ImgLinks != nil {
			product.ImgLinks = patch.ImgLinks
		}

		if err := c.saveProduct(ctx, tx, product); err != nil {
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		return Product{}, err
	}
	return updated, nil
}

func (c *Conf) saveProduct(ctx context.Context, q querier, p Product) error {
	attributes, err := json.Marshal(p.Attributes)
	if err != nil {
		return fmt.Errorf("encoding attributes: %w", err)
	}
	imgLinks, err := json.Marshal(p.ImgLinks)
	if err != nil {
		return fmt.Errorf("encoding img links: %w", err)
	}
	reviews, err := json.Marshal(p.Reviews)
	if err != nil {
		return fmt.Errorf("encoding reviews: %w", err)
	}

	query := `
		UPDATE products
		SET name = $1, description = $2, brand = $3, gender = $4, attributes = $5,
			price = $6, quantity = $7, img_links = $8, reviews = $9
		WHERE id = $10
	`
	_, err = q.ExecContext(ctx, query, p.Name, p.Description, p.Brand, p.Gender,
		attributes, p.Price, p.Quantity, imgLinks, reviews, p.ID)
	if err != nil {
		return fmt.Errorf("updating product %s: %w", p.ID, err)
	}
	return nil
}

func (c *Conf) DeleteProduct(ctx context.Context, id string) error {
	res, err := c.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting product %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.New(apperr.NotFound, "Product not found")
	}
	return nil
}

// AddReview appends a review to the product. Rating bounds are not checked.
func (c *Conf) AddReview(ctx context.Context, productID string, userID int, nr NewReview) (Product, error) {
	var updated Product
	err := c.withTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, productSelect+` WHERE p.id = $1 FOR UPDATE OF p`, productID)
		product, err := scanProduct(row)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperr.New(apperr.NotFound, "Product not found")
			}
			return fmt.Errorf("fetching product %s: %w", productID, err)
		}

		product.Reviews = append(product.Reviews, Review{
			UserID:      userID,
			Description: nr.Description,
			Rating:      *nr.Rating,
		})

		if err := c.saveProduct(ctx, tx, product); err != nil {
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		return Product{}, err
	}
	return updated, nil
}

// DetailsForOrder is the pricing view for the order workflow.
func (c *Conf) DetailsForOrder(ctx context.Context, productID string) (DetailsForOrder, error) {
	product, err := c.ProductByID(ctx, productID)
	if err != nil {
		return DetailsForOrder{}, err
	}

	details := DetailsForOrder{
		Name:     product.Name,
		Category: product.Category.Name,
		Quantity: product.Quantity,
		Price:    product.Price,
		Img:      "default-link",
	}
	if len(product.ImgLinks) > 0 {
		details.Img = product.ImgLinks[0]
	}
	return details, nil
}

func (c *Conf) QuantityByID(ctx context.Context, productID string) (int, error) {
	var quantity int
	err := c.db.QueryRowContext(ctx, `SELECT quantity FROM products WHERE id = $1`, productID).Scan(&quantity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, apperr.New(apperr.NotFound, "Product not found")
		}
		return 0, fmt.Errorf("fetching quantity of product %s: %w", productID, err)
	}
	return quantity, nil
}

// UpdateQuantity sets the absolute stock level.
func (c *Conf) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity < 0 {
		return apperr.New(apperr.InvalidInput, "Invalid quantity entered")
	}
	res, err := c.db.ExecContext(ctx, `UPDATE products SET quantity = $1 WHERE id = $2`, quantity, productID)
	if err != nil {
		return fmt.Errorf("updating quantity of product %s: %w", productID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.New(apperr.NotFound, "Product not found")
	}
	return nil
}
