package domain

import "time"

// Profile is the shopper-facing view of a record: contact fields plus
// both membership sets in one payload, which is what the storefront
// fetches on session start and after every commit.
type Profile struct {
	Identity  string    `json:"identity"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Address   string    `json:"address"`
	Cart      []string  `json:"cart"`
	Wishlist  []string  `json:"wishlist"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewProfile returns an empty profile for a shopper without a stored
// record yet.
func NewProfile(identity string) *Profile {
	return &Profile{
		Identity: identity,
		Cart:     []string{},
		Wishlist: []string{},
	}
}

// ProfileUpdate carries the mutable contact fields of a profile. Nil
// fields are left unchanged.
type ProfileUpdate struct {
	FirstName *string `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
	Address   *string `json:"address" validate:"omitempty,max=500"`
}
