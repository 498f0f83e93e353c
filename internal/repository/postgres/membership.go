package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/AmeyKuradeAK/nuventa/internal/domain"
	"github.com/AmeyKuradeAK/nuventa/pkg/database"
	apperrors "github.com/AmeyKuradeAK/nuventa/pkg/errors"
)

// MembershipRepository implements repository.MembershipRepository using
// PostgreSQL. Both sets live as text arrays on the shoppers row, and
// every toggle is a single statement, so concurrent toggles serialize
// on the row instead of losing writes.
type MembershipRepository struct {
	db database.DBTX
}

// NewMembershipRepository creates a new PostgreSQL-backed membership repository.
func NewMembershipRepository(db database.DBTX) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// Get returns the membership record for a shopper.
func (r *MembershipRepository) Get(ctx context.Context, identity string) (*domain.Membership, error) {
	query := `
		SELECT cart, wishlist, updated_at
		FROM shoppers
		WHERE identity = $1`

	m := domain.Membership{Identity: identity}
	err := r.db.QueryRow(ctx, query, identity).Scan(&m.Cart, &m.Wishlist, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("membership", identity)
		}
		return nil, storeError("get membership", err)
	}

	normalizeSets(&m)
	return &m, nil
}

// Toggle adds or removes a product id in one of the shopper's sets.
// Adds upsert the row so the record is created lazily on first write;
// removes against a missing row are a no-op returning an empty record.
func (r *MembershipRepository) Toggle(ctx context.Context, identity string, set domain.SetName, productID string, present bool) (*domain.Membership, error) {
	if present {
		return r.add(ctx, identity, set, productID)
	}
	return r.remove(ctx, identity, set, productID)
}

func (r *MembershipRepository) add(ctx context.Context, identity string, set domain.SetName, productID string) (*domain.Membership, error) {
	// set is validated upstream; only "cart" or "wishlist" reach here.
	query := fmt.Sprintf(`
		INSERT INTO shoppers (identity, %[1]s, updated_at)
		VALUES ($1, ARRAY[$2::text], NOW())
		ON CONFLICT (identity) DO UPDATE SET
			%[1]s = CASE
				WHEN $2 = ANY(shoppers.%[1]s) THEN shoppers.%[1]s
				ELSE array_append(shoppers.%[1]s, $2)
			END,
			updated_at = NOW()
		RETURNING cart, wishlist, updated_at`, set)

	m := domain.Membership{Identity: identity}
	err := r.db.QueryRow(ctx, query, identity, productID).Scan(&m.Cart, &m.Wishlist, &m.UpdatedAt)
	if err != nil {
		return nil, storeError(fmt.Sprintf("add to %s", set), err)
	}

	normalizeSets(&m)
	return &m, nil
}

func (r *MembershipRepository) remove(ctx context.Context, identity string, set domain.SetName, productID string) (*domain.Membership, error) {
	query := fmt.Sprintf(`
		UPDATE shoppers
		SET %[1]s = array_remove(%[1]s, $2), updated_at = NOW()
		WHERE identity = $1
		RETURNING cart, wishlist, updated_at`, set)

	m := domain.Membership{Identity: identity}
	err := r.db.QueryRow(ctx, query, identity, productID).Scan(&m.Cart, &m.Wishlist, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Removing from a record that was never created succeeds
			// without creating one.
			return domain.NewMembership(identity), nil
		}
		return nil, storeError(fmt.Sprintf("remove from %s", set), err)
	}

	normalizeSets(&m)
	return &m, nil
}

func normalizeSets(m *domain.Membership) {
	if m.Cart == nil {
		m.Cart = []string{}
	}
	if m.Wishlist == nil {
		m.Wishlist = []string{}
	}
}
