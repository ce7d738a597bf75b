// Package subscribers provides HTTP handlers and business logic for subscriber records.
package subscribers

import (
	"context"

	"github.com/bissquit/subscribers-api/internal/domain"
)

// Repository defines the interface for subscriber data operations.
// Implementations return ErrNotFound for missing records and wrap
// ErrInvalidID when an id cannot be represented by the store.
type Repository interface {
	// ListNames returns the name of every subscriber in natural store order.
	ListNames(ctx context.Context) ([]string, error)
	// List returns every subscriber in the same order as ListNames.
	List(ctx context.Context) ([]domain.Subscriber, error)
	GetByID(ctx context.Context, id string) (*domain.Subscriber, error)
	// Create persists the subscriber and sets its ID.
	Create(ctx context.Context, subscriber *domain.Subscriber) error
}
