package ask

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/procure-cli/internal/metrics"
)

// Row is one result row keyed by column name.
type Row map[string]any

// Query is a single-relation read: an optional OR of case-insensitive
// substring matches of every keyword against every filter column, ordered
// by OrderColumn descending and capped at Limit.
type Query struct {
	Source        string
	Relation      string
	Columns       []string
	FilterColumns []string
	Keywords      []string
	OrderColumn   string
	Limit         int
}

// Filtered reports whether the query carries a keyword predicate.
func (q Query) Filtered() bool {
	return len(q.Keywords) > 0 && len(q.FilterColumns) > 0
}

// Querier runs source reads against the data store.
type Querier interface {
	QuerySource(ctx context.Context, q Query) ([]Row, error)
}

// FetchContext queries every source concurrently and waits for all of them.
// Any failing source aborts the fetch and cancels the others. On success
// every source name maps to a non-nil slice, empty when nothing matched.
func FetchContext(ctx context.Context, querier Querier, keywords []string, sources []Source) (map[string][]Row, error) {
	results := make([][]Row, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			q := src.Query(keywords)
			start := time.Now()
			rows, err := querier.QuerySource(gctx, q)
			metrics.SourceQueryDuration.WithLabelValues(src.Name).Observe(time.Since(start).Seconds())
			if err != nil {
				return eris.Wrapf(err, "ask: query source %s", src.Name)
			}
			zap.L().Debug("source fetched",
				zap.String("source", src.Name),
				zap.Bool("filtered", q.Filtered()),
				zap.Int("rows", len(rows)),
			)
			results[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string][]Row, len(sources))
	for i, src := range sources {
		rows := results[i]
		if rows == nil {
			rows = []Row{}
		}
		out[src.Name] = rows
	}
	return out, nil
}
