package ask

import (
	"context"
	"strings"
	"sync"

	"github.com/stretchr/testify/mock"
)

// fakeQuerier serves rows from an in-memory table per relation, applying the
// same OR-of-substring filter, limit and (pre-sorted) order the store would.
type fakeQuerier struct {
	mu      sync.Mutex
	tables  map[string][]Row
	errs    map[string]error
	queries []Query
}

func newFakeQuerier() *fakeQuerier {
	return &fakeQuerier{tables: map[string][]Row{}, errs: map[string]error{}}
}

func (f *fakeQuerier) QuerySource(ctx context.Context, q Query) ([]Row, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	err := f.errs[q.Relation]
	rows := f.tables[q.Relation]
	f.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var out []Row
	for _, r := range rows {
		if q.Filtered() && !matches(r, q) {
			continue
		}
		out = append(out, r)
		if len(out) == q.Limit {
			break
		}
	}
	return out, nil
}

func (f *fakeQuerier) query(relation string) (Query, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, q := range f.queries {
		if q.Relation == relation {
			return q, true
		}
	}
	return Query{}, false
}

func matches(r Row, q Query) bool {
	for _, kw := range q.Keywords {
		for _, col := range q.FilterColumns {
			v, ok := r[col].(string)
			if ok && strings.Contains(strings.ToLower(v), strings.ToLower(kw)) {
				return true
			}
		}
	}
	return false
}

// MockCompleter implements Completer for testing.
type MockCompleter struct {
	mock.Mock
}

func (m *MockCompleter) Complete(ctx context.Context, req CompletionRequest) (*Completion, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Completion), args.Error(1)
}
