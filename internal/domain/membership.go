package domain

import (
	"time"

	apperrors "github.com/AmeyKuradeAK/nuventa/pkg/errors"
)

// SetName identifies one of the two membership sets kept per shopper.
type SetName string

const (
	SetCart     SetName = "cart"
	SetWishlist SetName = "wishlist"
)

// ParseSetName validates a set name coming from a URL segment or payload.
func ParseSetName(s string) (SetName, error) {
	switch SetName(s) {
	case SetCart, SetWishlist:
		return SetName(s), nil
	default:
		return "", apperrors.InvalidInput("set must be one of: cart, wishlist")
	}
}

// Membership is the authoritative pair of product-id sets for one shopper.
// Each set holds distinct ids; slice order is insertion order and carries
// no semantic meaning.
type Membership struct {
	Identity  string    `json:"identity"`
	Cart      []string  `json:"cart"`
	Wishlist  []string  `json:"wishlist"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewMembership returns an empty membership for a shopper that has no
// record yet. Reading never creates state; callers use this for the
// lazy-record case.
func NewMembership(identity string) *Membership {
	return &Membership{
		Identity: identity,
		Cart:     []string{},
		Wishlist: []string{},
	}
}

// Set returns the ids of the named set. The returned slice is the
// membership's own backing slice; callers must not mutate it.
func (m *Membership) Set(name SetName) []string {
	if name == SetCart {
		return m.Cart
	}
	return m.Wishlist
}

// Contains reports whether the named set holds the given product id.
func (m *Membership) Contains(name SetName, productID string) bool {
	for _, id := range m.Set(name) {
		if id == productID {
			return true
		}
	}
	return false
}
