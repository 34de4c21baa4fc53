// Package store persists procurement records in Postgres and serves the
// read views behind the ask pipeline.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/procure-cli/internal/ask"
	"github.com/sells-group/procure-cli/internal/model"
)

var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = eris.New("store: not found")
	// ErrConflict is returned when a supplier name or component SKU is
	// already taken.
	ErrConflict = eris.New("store: already exists")
)

// Store defines the persistence interface for procurement data.
type Store interface {
	ask.Querier

	// Master data
	CreateSupplier(ctx context.Context, s *model.Supplier) error
	CreateComponent(ctx context.Context, c *model.Component) error

	// Transactions
	SaveQuote(ctx context.Context, rec *model.QuoteRecord) (*model.SaveResult, error)
	CreatePurchaseOrder(ctx context.Context, po *model.PurchaseOrder) error
	CreateLandedCost(ctx context.Context, lc *model.LandedCost) error
	CreatePayment(ctx context.Context, p *model.Payment) error
	InsertPriceHistory(ctx context.Context, entries []model.PriceHistoryEntry) (int64, error)

	// Lifecycle
	Ping(ctx context.Context) error
	Migrate(ctx context.Context) error
	Close() error
}
