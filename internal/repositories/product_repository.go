package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/giftboxhq/giftbox-platform/internal/models"
	"github.com/giftboxhq/giftbox-platform/internal/utils"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductBySKU(ctx context.Context, sku string) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	ListProducts(ctx context.Context, page, pageSize int) ([]*models.Product, int, error)
	ListAvailableProducts(ctx context.Context, category string) ([]*models.Product, error)
	AdjustStock(ctx context.Context, sku string, delta int) error
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

const productColumns = `id, sku, category, name, description, price, stock_quantity, image_data, available, status, created_at, updated_at`

func scanProduct(row interface{ Scan(dest ...any) error }) (*models.Product, error) {
	p := &models.Product{}

	err := row.Scan(&p.ID, &p.SKU, &p.Category, &p.Name, &p.Description, &p.Price,
		&p.StockQuantity, &p.ImageData, &p.Available, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO products (id, sku, category, name, description, price, stock_quantity, image_data, available, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query,
		product.ID, product.SKU, product.Category, product.Name, product.Description,
		product.Price, product.StockQuantity, product.ImageData, product.Available, product.Status).
		Scan(&product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) GetProductBySKU(ctx context.Context, sku string) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1`

	product, err := scanProduct(r.DB.QueryRowContext(dbCtx, query, sku))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get product %q: %w", sku, err)
	}

	return product, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE products
		SET category = $1, name = $2, description = $3, price = $4, stock_quantity = $5,
		    image_data = $6, available = $7, status = $8, updated_at = $9
		WHERE sku = $10
	`

	result, err := r.DB.ExecContext(dbCtx, query,
		product.Category, product.Name, product.Description, product.Price, product.StockQuantity,
		product.ImageData, product.Available, product.Status, time.Now(), product.SKU)
	if err != nil {
		return fmt.Errorf("failed to update product %q: %w", product.SKU, err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *productRepository) ListProducts(ctx context.Context, page, pageSize int) ([]*models.Product, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int
	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM products`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	offset := (page - 1) * pageSize

	query := `SELECT ` + productColumns + ` FROM products ORDER BY name LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(dbCtx, query, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// ListAvailableProducts returns the staff-curated subset customers can pick
// from. Category is optional; empty means all categories.
func (r *productRepository) ListAvailableProducts(ctx context.Context, category string) ([]*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + productColumns + ` FROM products WHERE available = TRUE AND status = 'active'`

	var rows *sql.Rows
	var err error

	if category != "" {
		query += ` AND category = $1 ORDER BY name`
		rows, err = r.DB.QueryContext(dbCtx, query, category)
	} else {
		query += ` ORDER BY category, name`
		rows, err = r.DB.QueryContext(dbCtx, query)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to list available products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

// AdjustStock applies a delta to a product's stock, refusing to go negative.
func (r *productRepository) AdjustStock(ctx context.Context, sku string, delta int) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE products
		SET stock_quantity = stock_quantity + $1, updated_at = $2
		WHERE sku = $3 AND stock_quantity + $1 >= 0
	`

	result, err := r.DB.ExecContext(dbCtx, query, delta, time.Now(), sku)
	if err != nil {
		return fmt.Errorf("failed to adjust stock for %q: %w", sku, err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}
