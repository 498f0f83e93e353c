package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/AmeyKuradeAK/nuventa/internal/domain"
	"github.com/AmeyKuradeAK/nuventa/pkg/database"
	apperrors "github.com/AmeyKuradeAK/nuventa/pkg/errors"
)

// ProfileRepository implements repository.ProfileRepository using
// PostgreSQL. Profiles live on the same shoppers row as the membership
// sets, so a single read serves the storefront's session snapshot.
type ProfileRepository struct {
	db database.DBTX
}

// NewProfileRepository creates a new PostgreSQL-backed profile repository.
func NewProfileRepository(db database.DBTX) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Get returns the shopper's profile together with both membership sets.
func (r *ProfileRepository) Get(ctx context.Context, identity string) (*domain.Profile, error) {
	query := `
		SELECT first_name, last_name, address, cart, wishlist, updated_at
		FROM shoppers
		WHERE identity = $1`

	p := domain.Profile{Identity: identity}
	err := r.db.QueryRow(ctx, query, identity).Scan(
		&p.FirstName, &p.LastName, &p.Address, &p.Cart, &p.Wishlist, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("profile", identity)
		}
		return nil, storeError("get profile", err)
	}

	if p.Cart == nil {
		p.Cart = []string{}
	}
	if p.Wishlist == nil {
		p.Wishlist = []string{}
	}

	return &p, nil
}

// Upsert writes the contact fields, creating the shopper row when it
// does not exist yet.
func (r *ProfileRepository) Upsert(ctx context.Context, identity, firstName, lastName, address string) (*domain.Profile, error) {
	query := `
		INSERT INTO shoppers (identity, first_name, last_name, address, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (identity) DO UPDATE SET
			first_name = $2,
			last_name = $3,
			address = $4,
			updated_at = NOW()
		RETURNING first_name, last_name, address, cart, wishlist, updated_at`

	p := domain.Profile{Identity: identity}
	err := r.db.QueryRow(ctx, query, identity, firstName, lastName, address).Scan(
		&p.FirstName, &p.LastName, &p.Address, &p.Cart, &p.Wishlist, &p.UpdatedAt,
	)
	if err != nil {
		return nil, storeError("upsert profile", err)
	}

	if p.Cart == nil {
		p.Cart = []string{}
	}
	if p.Wishlist == nil {
		p.Wishlist = []string{}
	}

	return &p, nil
}
