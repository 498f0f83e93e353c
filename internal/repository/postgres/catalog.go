package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/AmeyKuradeAK/nuventa/internal/domain"
	"github.com/AmeyKuradeAK/nuventa/internal/repository"
	"github.com/AmeyKuradeAK/nuventa/pkg/database"
	apperrors "github.com/AmeyKuradeAK/nuventa/pkg/errors"
)

const productColumns = `
	id, name, slug, description, price, cancelled_price, images,
	category, is_latest, materials, packaging, shipping, product_info,
	created_at, updated_at`

// CatalogRepository implements repository.CatalogRepository using
// PostgreSQL. The images column is jsonb with inconsistent seed shapes
// and is normalized to a flat URL list at scan time.
type CatalogRepository struct {
	db database.DBTX
}

// NewCatalogRepository creates a new PostgreSQL-backed catalog repository.
func NewCatalogRepository(db database.DBTX) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// GetByID returns a single product.
func (r *CatalogRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `SELECT` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("product", id)
		}
		return nil, storeError("get product", err)
	}

	return p, nil
}

// GetBySlug returns a single product looked up by its URL slug.
func (r *CatalogRepository) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	query := `SELECT` + productColumns + ` FROM products WHERE slug = $1`

	p, err := scanProduct(r.db.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("product", slug)
		}
		return nil, storeError("get product by slug", err)
	}

	return p, nil
}

// ListByIDs returns all catalog rows matching ids in one round trip.
// Ids without a row are absent from the result.
func (r *CatalogRepository) ListByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}

	query := `SELECT` + productColumns + ` FROM products WHERE id = ANY($1)`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, storeError("list products by ids", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

// List returns a page of the catalog, optionally narrowed by category
// or the latest flag.
func (r *CatalogRepository) List(ctx context.Context, filter repository.CatalogFilter) ([]domain.Product, error) {
	query := `SELECT` + productColumns + ` FROM products WHERE 1=1`
	args := []any{}
	argn := 1

	if filter.Category != nil {
		query += fmt.Sprintf(" AND category = $%d", argn)
		args = append(args, *filter.Category)
		argn++
	}
	if filter.Latest != nil {
		query += fmt.Sprintf(" AND is_latest = $%d", argn)
		args = append(args, *filter.Latest)
		argn++
	}

	p := filter.Normalized()
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argn, argn+1)
	args = append(args, p.PerPage, p.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, storeError("list products", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var (
		p      domain.Product
		images []byte
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.CancelledPrice,
		&images, &p.Category, &p.IsLatest, &p.Materials, &p.Packaging,
		&p.Shipping, &p.ProductInfo, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Images = domain.NormalizeImages(images)
	return &p, nil
}

func collectProducts(rows pgx.Rows) ([]domain.Product, error) {
	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, storeError("iterate product rows", err)
	}

	return products, nil
}
