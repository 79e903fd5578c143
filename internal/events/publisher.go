// Package events delivers draft events to interested parties: the NATS JetStream stream and
// connected websocket clients.
package events

//go:generate mockgen -package=mocks -destination=mocks/mock_publisher.go github.com/KirkDiggler/lightthelamp/internal/events Publisher

import (
	"context"
	"errors"

	"github.com/KirkDiggler/lightthelamp/internal/models"
)

// Publisher delivers draft events
type Publisher interface {
	Publish(ctx context.Context, event *models.DraftEvent) error
}

// Nop drops every event
type Nop struct{}

func (Nop) Publish(context.Context, *models.DraftEvent) error {
	return nil
}

// Multi fans an event out to every publisher. All publishers are tried; their errors are
// joined.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, event *models.DraftEvent) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
