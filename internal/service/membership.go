package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/AmeyKuradeAK/nuventa/internal/domain"
	"github.com/AmeyKuradeAK/nuventa/internal/repository"
	apperrors "github.com/AmeyKuradeAK/nuventa/pkg/errors"
)

// MembershipEventPublisher publishes membership change events.
type MembershipEventPublisher interface {
	PublishMembershipUpdated(ctx context.Context, m *domain.Membership, set domain.SetName, productID string, present bool) error
}

// MembershipService drives the two per-shopper product-id sets.
type MembershipService struct {
	memberships repository.MembershipRepository
	catalog     repository.CatalogRepository
	producer    MembershipEventPublisher
	logger      *slog.Logger
}

// NewMembershipService creates a new membership service.
func NewMembershipService(
	memberships repository.MembershipRepository,
	catalog repository.CatalogRepository,
	producer MembershipEventPublisher,
	logger *slog.Logger,
) *MembershipService {
	return &MembershipService{
		memberships: memberships,
		catalog:     catalog,
		producer:    producer,
		logger:      logger,
	}
}

// Toggle makes present the desired membership of productID in the named
// set and returns the full record afterward. Adds verify the product
// exists in the catalog first; removes skip that check so stale ids can
// always be cleared.
func (s *MembershipService) Toggle(ctx context.Context, identity string, set domain.SetName, productID string, present bool) (*domain.Membership, error) {
	if identity == "" {
		return nil, apperrors.Unauthorized("missing identity")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	if present {
		if _, err := s.catalog.GetByID(ctx, productID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NotFound("product", productID)
			}
			return nil, err
		}
	}

	m, err := s.memberships.Toggle(ctx, identity, set, productID, present)
	if err != nil {
		return nil, err
	}

	// Publish membership event (non-blocking on failure).
	if err := s.producer.PublishMembershipUpdated(ctx, m, set, productID, present); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish membership.updated event",
			slog.String("identity", identity),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "membership toggled",
		slog.String("identity", identity),
		slog.String("set", string(set)),
		slog.String("product_id", productID),
		slog.Bool("present", present),
	)

	return m, nil
}

// Get returns the shopper's membership record. Shoppers without a
// record get an empty one; reading never creates state.
func (s *MembershipService) Get(ctx context.Context, identity string) (*domain.Membership, error) {
	if identity == "" {
		return nil, apperrors.Unauthorized("missing identity")
	}

	m, err := s.memberships.Get(ctx, identity)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.NewMembership(identity), nil
		}
		return nil, err
	}

	return m, nil
}

// GetIDs returns the raw product ids of one set.
func (s *MembershipService) GetIDs(ctx context.Context, identity string, set domain.SetName) ([]string, error) {
	m, err := s.Get(ctx, identity)
	if err != nil {
		return nil, err
	}
	return m.Set(set), nil
}

// GetJoined returns the named set joined against the catalog, in
// membership order. Ids whose catalog row has disappeared are omitted
// from the result rather than failing the whole read.
func (s *MembershipService) GetJoined(ctx context.Context, identity string, set domain.SetName) ([]domain.Product, error) {
	ids, err := s.GetIDs(ctx, identity, set)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}

	products, err := s.catalog.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	joined := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			joined = append(joined, p)
		}
	}

	if dangling := len(ids) - len(joined); dangling > 0 {
		s.logger.WarnContext(ctx, "membership references missing catalog rows",
			slog.String("identity", identity),
			slog.String("set", string(set)),
			slog.Int("dangling", dangling),
		)
	}

	return joined, nil
}
