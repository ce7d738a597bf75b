package subscribers

import (
	"context"
	"errors"
	"time"

	"github.com/bissquit/subscribers-api/internal/domain"
	"github.com/bissquit/subscribers-api/internal/pkg/metrics"
	"github.com/go-playground/validator/v10"
)

// CreateInput holds the fields required to create a subscriber.
type CreateInput struct {
	Name              string `validate:"required"`
	SubscribedChannel string `validate:"required"`
}

// Service provides subscriber business logic.
type Service struct {
	repo      Repository
	validator *validator.Validate
}

// NewService creates a new subscribers service.
func NewService(repo Repository) *Service {
	return &Service{
		repo:      repo,
		validator: validator.New(),
	}
}

// ListNames returns the names of all subscribers.
func (s *Service) ListNames(ctx context.Context) ([]string, error) {
	start := time.Now()
	names, err := s.repo.ListNames(ctx)
	observe("list_names", start, err)
	if err != nil {
		return nil, storeError(msgListNames, err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// List returns all subscribers.
func (s *Service) List(ctx context.Context) ([]domain.Subscriber, error) {
	start := time.Now()
	subscribers, err := s.repo.List(ctx)
	observe("list", start, err)
	if err != nil {
		return nil, storeError(msgList, err)
	}
	if subscribers == nil {
		subscribers = []domain.Subscriber{}
	}
	return subscribers, nil
}

// Get returns the subscriber with the given id.
func (s *Service) Get(ctx context.Context, id string) (*domain.Subscriber, error) {
	start := time.Now()
	subscriber, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		observe("get", start, nil)
		return nil, notFoundError()
	}
	observe("get", start, err)
	if err != nil {
		return nil, storeError(msgGet, err)
	}
	return subscriber, nil
}

// Create validates the input and persists a new subscriber.
// Invalid input never reaches the repository.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Subscriber, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, validationError()
	}

	subscriber := &domain.Subscriber{
		Name:              input.Name,
		SubscribedChannel: input.SubscribedChannel,
	}

	start := time.Now()
	err := s.repo.Create(ctx, subscriber)
	observe("create", start, err)
	if err != nil {
		return nil, storeError(msgCreate, err)
	}

	metrics.SubscribersCreated.Inc()
	return subscriber, nil
}

func observe(operation string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.StoreOperationDuration.WithLabelValues(operation, result).Observe(time.Since(start).Seconds())
}
