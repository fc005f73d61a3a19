// Package social is the relationship engine: user directory, friendship
// ledger, group membership, posts, comments, search and traffic. Every
// operation takes the acting user explicitly.
package social

import (
	"context"

	"github.com/google/uuid"

	"hive-social-network/database"
	"hive-social-network/logging"
	"hive-social-network/metrics"
)

// Service runs engine operations against the store.
type Service struct {
	store *database.Store
}

func New(store *database.Store) *Service {
	return &Service{store: store}
}

// track records the outcome of an operation. Internal failures are logged by
// the HTTP layer, so here they only go to debug.
func (s *Service) track(ctx context.Context, op string, err error) {
	outcome := outcomeOf(err)
	metrics.RecordSocialOperation(op, outcome)
	if err != nil {
		logging.Ctx(ctx).Debug().Str("operation", op).Str("outcome", outcome).Err(err).Msg("Operation rejected")
	}
}

func newID() string {
	return uuid.NewString()
}
