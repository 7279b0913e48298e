package messaging

import (
	"context"

	"github.com/roundlabs/quadmatch/internal/domain"
)

// Publisher defines the interface for publishing engine events to the message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishRoundMatchUpdated announces a recomputed matching distribution
	PublishRoundMatchUpdated(ctx context.Context, event *domain.RoundMatchUpdatedEvent) error
	// Close closes the connection
	Close()
}
