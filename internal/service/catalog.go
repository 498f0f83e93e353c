package service

import (
	"context"
	"log/slog"

	"github.com/AmeyKuradeAK/nuventa/internal/domain"
	"github.com/AmeyKuradeAK/nuventa/internal/repository"
	apperrors "github.com/AmeyKuradeAK/nuventa/pkg/errors"
	"github.com/AmeyKuradeAK/nuventa/pkg/pagination"
)

// ProductQuery is the single entry point's query shape. Exactly one of
// ID or Slug selects a single product; otherwise the filter fields
// select a listing page.
type ProductQuery struct {
	ID       string
	Slug     string
	Category string
	Latest   *bool
	pagination.Params
}

// CatalogService serves read-only product lookups.
type CatalogService struct {
	catalog repository.CatalogRepository
	logger  *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(catalog repository.CatalogRepository, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		catalog: catalog,
		logger:  logger,
	}
}

// Query branches on the shape of q: id lookup, slug lookup, or a
// filtered listing. Single lookups return a one-element slice so every
// shape produces the same result type.
func (s *CatalogService) Query(ctx context.Context, q ProductQuery) ([]domain.Product, error) {
	switch {
	case q.ID != "" && q.Slug != "":
		return nil, apperrors.InvalidInput("id and slug are mutually exclusive")
	case q.ID != "":
		p, err := s.catalog.GetByID(ctx, q.ID)
		if err != nil {
			return nil, err
		}
		return []domain.Product{*p}, nil
	case q.Slug != "":
		p, err := s.catalog.GetBySlug(ctx, q.Slug)
		if err != nil {
			return nil, err
		}
		return []domain.Product{*p}, nil
	default:
		filter := repository.CatalogFilter{
			Latest: q.Latest,
			Params: q.Params,
		}
		if q.Category != "" {
			filter.Category = &q.Category
		}
		return s.catalog.List(ctx, filter)
	}
}

// GetProduct returns a single product by id.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	return s.catalog.GetByID(ctx, id)
}
