// Package seed populates a record store with a fixed set of subscribers.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bissquit/subscribers-api/internal/domain"
	"github.com/bissquit/subscribers-api/internal/subscribers"
)

// Subscribers returns the records inserted by Run, in insertion order.
func Subscribers() []domain.Subscriber {
	return []domain.Subscriber{
		{Name: "Jeread Krus", SubscribedChannel: "CNET"},
		{Name: "John Doe", SubscribedChannel: "freeCodeCamp.org"},
		{Name: "Lucifer", SubscribedChannel: "Sentry"},
	}
}

// Run inserts every record from Subscribers into repo. It does not check
// for existing records, so running it twice creates duplicates with new ids.
// The first failure aborts the run; records created before it stay.
func Run(ctx context.Context, repo subscribers.Repository, logger *slog.Logger) ([]domain.Subscriber, error) {
	records := Subscribers()
	created := make([]domain.Subscriber, 0, len(records))

	for i := range records {
		rec := records[i]
		if err := repo.Create(ctx, &rec); err != nil {
			return created, fmt.Errorf("create subscriber %q: %w", rec.Name, err)
		}
		logger.Info("subscriber created", "id", rec.ID, "name", rec.Name)
		created = append(created, rec)
	}

	logger.Info("database seeded", "count", len(created))
	return created, nil
}
