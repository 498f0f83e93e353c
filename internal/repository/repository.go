package repository

import (
	"context"

	"github.com/AmeyKuradeAK/nuventa/internal/domain"
	"github.com/AmeyKuradeAK/nuventa/pkg/pagination"
)

// MembershipRepository is the authoritative store for per-shopper
// membership sets. Toggle is atomic: concurrent toggles against the
// same record never lose writes.
type MembershipRepository interface {
	// Get returns the membership record, or apperrors.ErrNotFound when
	// the shopper has no record yet. Reading never creates state.
	Get(ctx context.Context, identity string) (*domain.Membership, error)

	// Toggle makes present the desired membership of productID in the
	// named set and returns the resulting record. Adding an id already
	// present and removing an id already absent are no-ops that still
	// succeed. An add for a shopper with no record creates the record.
	Toggle(ctx context.Context, identity string, set domain.SetName, productID string, present bool) (*domain.Membership, error)
}

// CatalogFilter narrows a catalog listing. Nil fields match everything.
type CatalogFilter struct {
	Category *string
	Latest   *bool
	pagination.Params
}

// CatalogRepository reads the product catalog. The catalog is read-only
// from the service's point of view; rows are maintained out of band.
type CatalogRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	// ListByIDs returns the products that exist among ids, in no
	// particular order. Ids without a catalog row are silently absent
	// from the result.
	ListByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
	List(ctx context.Context, filter CatalogFilter) ([]domain.Product, error)
}

// ProfileRepository stores shopper contact fields. Profiles share the
// record that holds membership sets, so Get also surfaces both sets.
type ProfileRepository interface {
	// Get returns the profile, or apperrors.ErrNotFound when the
	// shopper has no record yet.
	Get(ctx context.Context, identity string) (*domain.Profile, error)

	// Upsert writes the contact fields, creating the record if needed,
	// and returns the resulting profile.
	Upsert(ctx context.Context, identity, firstName, lastName, address string) (*domain.Profile, error)
}
