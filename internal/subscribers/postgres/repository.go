// Package postgres provides PostgreSQL implementation of the subscribers repository.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/bissquit/subscribers-api/internal/domain"
	"github.com/bissquit/subscribers-api/internal/subscribers"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository implements the subscribers.Repository interface using PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// ListNames retrieves subscriber names in insertion order.
func (r *Repository) ListNames(ctx context.Context) ([]string, error) {
	query := `SELECT name FROM subscribers ORDER BY seq`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list subscriber names: %w", err)
	}

	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan subscriber names: %w", err)
	}
	return names, nil
}

// List retrieves all subscribers in insertion order.
func (r *Repository) List(ctx context.Context) ([]domain.Subscriber, error) {
	query := `
		SELECT id, name, subscribed_channel
		FROM subscribers
		ORDER BY seq
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	defer rows.Close()

	result := make([]domain.Subscriber, 0)
	for rows.Next() {
		sub, err := scanSubscriber(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subscriber: %w", err)
		}
		result = append(result, *sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subscribers: %w", err)
	}
	return result, nil
}

// GetByID retrieves a subscriber by its ID.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Subscriber, error) {
	subscriberID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", subscribers.ErrInvalidID, id, err)
	}

	query := `
		SELECT id, name, subscribed_channel
		FROM subscribers
		WHERE id = $1
	`
	sub, err := scanSubscriber(r.db.QueryRow(ctx, query, subscriberID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, subscribers.ErrNotFound
		}
		return nil, fmt.Errorf("get subscriber by id: %w", err)
	}
	return sub, nil
}

// Create inserts a subscriber and sets the ID generated by the database.
func (r *Repository) Create(ctx context.Context, sub *domain.Subscriber) error {
	query := `
		INSERT INTO subscribers (name, subscribed_channel)
		VALUES ($1, $2)
		RETURNING id
	`
	var id uuid.UUID
	if err := r.db.QueryRow(ctx, query, sub.Name, sub.SubscribedChannel).Scan(&id); err != nil {
		return fmt.Errorf("create subscriber: %w", err)
	}
	sub.ID = id.String()
	return nil
}

// Ping verifies the database is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

// scanSubscriber maps a subscribers row onto the domain type.
func scanSubscriber(row pgx.Row) (*domain.Subscriber, error) {
	var (
		id  uuid.UUID
		sub domain.Subscriber
	)
	if err := row.Scan(&id, &sub.Name, &sub.SubscribedChannel); err != nil {
		return nil, err
	}
	sub.ID = id.String()
	return &sub, nil
}
