package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/AmeyKuradeAK/nuventa/internal/domain"
	"github.com/AmeyKuradeAK/nuventa/internal/repository"
	apperrors "github.com/AmeyKuradeAK/nuventa/pkg/errors"
)

// ProfileEventPublisher publishes profile change events.
type ProfileEventPublisher interface {
	PublishProfileUpdated(ctx context.Context, profile *domain.Profile) error
}

// ProfileService serves the shopper's session snapshot: contact fields
// plus both membership sets in one payload.
type ProfileService struct {
	profiles repository.ProfileRepository
	producer ProfileEventPublisher
	logger   *slog.Logger
}

// NewProfileService creates a new profile service.
func NewProfileService(profiles repository.ProfileRepository, producer ProfileEventPublisher, logger *slog.Logger) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		producer: producer,
		logger:   logger,
	}
}

// Get returns the shopper's profile. Shoppers without a record get an
// empty profile; reading never creates state.
func (s *ProfileService) Get(ctx context.Context, identity string) (*domain.Profile, error) {
	if identity == "" {
		return nil, apperrors.Unauthorized("missing identity")
	}

	p, err := s.profiles.Get(ctx, identity)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.NewProfile(identity), nil
		}
		return nil, err
	}

	return p, nil
}

// Update applies the non-nil contact fields on top of the current
// profile and persists the result.
func (s *ProfileService) Update(ctx context.Context, identity string, update domain.ProfileUpdate) (*domain.Profile, error) {
	current, err := s.Get(ctx, identity)
	if err != nil {
		return nil, err
	}

	firstName := current.FirstName
	if update.FirstName != nil {
		firstName = *update.FirstName
	}
	lastName := current.LastName
	if update.LastName != nil {
		lastName = *update.LastName
	}
	address := current.Address
	if update.Address != nil {
		address = *update.Address
	}

	p, err := s.profiles.Upsert(ctx, identity, firstName, lastName, address)
	if err != nil {
		return nil, err
	}

	// Publish profile event (non-blocking on failure).
	if err := s.producer.PublishProfileUpdated(ctx, p); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish profile.updated event",
			slog.String("identity", identity),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "profile updated", slog.String("identity", identity))

	return p, nil
}
