package server

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sells-group/procure-cli/internal/ask"
	"github.com/sells-group/procure-cli/internal/extract"
	"github.com/sells-group/procure-cli/internal/ingest"
	"github.com/sells-group/procure-cli/internal/model"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) CreateSupplier(ctx context.Context, sup *model.Supplier) error {
	args := m.Called(ctx, sup)
	if args.Error(0) == nil {
		sup.ID = "sup-1"
	}
	return args.Error(0)
}

func (m *mockStore) CreateComponent(ctx context.Context, c *model.Component) error {
	args := m.Called(ctx, c)
	if args.Error(0) == nil {
		c.ID = "comp-1"
	}
	return args.Error(0)
}

func (m *mockStore) SaveQuote(ctx context.Context, rec *model.QuoteRecord) (*model.SaveResult, error) {
	args := m.Called(ctx, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SaveResult), args.Error(1)
}

func (m *mockStore) CreatePurchaseOrder(ctx context.Context, po *model.PurchaseOrder) error {
	args := m.Called(ctx, po)
	if args.Error(0) == nil {
		po.ID = "po-1"
	}
	return args.Error(0)
}

func (m *mockStore) CreateLandedCost(ctx context.Context, lc *model.LandedCost) error {
	args := m.Called(ctx, lc)
	if args.Error(0) == nil {
		lc.ID = "lc-1"
		if lc.TrueUnitCost == 0 {
			lc.TrueUnitCost = 150005
		}
	}
	return args.Error(0)
}

func (m *mockStore) CreatePayment(ctx context.Context, p *model.Payment) error {
	args := m.Called(ctx, p)
	if args.Error(0) == nil {
		p.ID = "pay-1"
	}
	return args.Error(0)
}

type mockIngester struct {
	mock.Mock
}

func (m *mockIngester) Ingest(ctx context.Context, doc extract.Document, mode ingest.Mode, dryRun bool) (*ingest.Result, error) {
	args := m.Called(ctx, doc, mode, dryRun)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ingest.Result), args.Error(1)
}

// fakeQuerier returns rows per relation, or err for every query.
type fakeQuerier struct {
	rows map[string][]ask.Row
	err  error
}

func (f *fakeQuerier) QuerySource(_ context.Context, q ask.Query) ([]ask.Row, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows[q.Relation], nil
}

type fakeCompleter struct {
	text string
	err  error
	last ask.CompletionRequest
}

func (f *fakeCompleter) Complete(_ context.Context, req ask.CompletionRequest) (*ask.Completion, error) {
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return &ask.Completion{Text: f.text, Model: "test-model"}, nil
}
