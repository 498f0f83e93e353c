package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/AmeyKuradeAK/nuventa/internal/domain"
	pkgkafka "github.com/AmeyKuradeAK/nuventa/pkg/kafka"
)

// Kafka topic constants for storefront domain events.
const (
	TopicMembershipUpdated = "nuventa.membership.updated"
	TopicProfileUpdated    = "nuventa.profile.updated"
)

// Aggregate type constant.
const AggregateTypeShopper = "shopper"

// Source identifier for events originating from this service.
const SourceStorefront = "storefront-api"

// MembershipUpdatedData is the payload for a membership.updated event.
type MembershipUpdatedData struct {
	Identity     string `json:"identity"`
	Set          string `json:"set"`
	ProductID    string `json:"product_id"`
	Present      bool   `json:"present"`
	CartSize     int    `json:"cart_size"`
	WishlistSize int    `json:"wishlist_size"`
}

// ProfileUpdatedData is the payload for a profile.updated event.
type ProfileUpdatedData struct {
	Identity  string `json:"identity"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Producer publishes storefront domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishMembershipUpdated publishes a membership.updated event after
// an effective toggle.
func (p *Producer) PublishMembershipUpdated(ctx context.Context, m *domain.Membership, set domain.SetName, productID string, present bool) error {
	data := MembershipUpdatedData{
		Identity:     m.Identity,
		Set:          string(set),
		ProductID:    productID,
		Present:      present,
		CartSize:     len(m.Cart),
		WishlistSize: len(m.Wishlist),
	}

	event, err := pkgkafka.NewEvent(TopicMembershipUpdated, m.Identity, AggregateTypeShopper, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create membership.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicMembershipUpdated, event); err != nil {
		return fmt.Errorf("publish membership.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published membership.updated",
		"identity", m.Identity,
		"set", set,
		"product_id", productID,
		"present", present,
	)

	return nil
}

// PublishProfileUpdated publishes a profile.updated event.
func (p *Producer) PublishProfileUpdated(ctx context.Context, profile *domain.Profile) error {
	data := ProfileUpdatedData{
		Identity:  profile.Identity,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
	}

	event, err := pkgkafka.NewEvent(TopicProfileUpdated, profile.Identity, AggregateTypeShopper, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create profile.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicProfileUpdated, event); err != nil {
		return fmt.Errorf("publish profile.updated event: %w", err)
	}

	return nil
}
