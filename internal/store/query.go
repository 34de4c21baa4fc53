package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rotisserie/eris"

	"github.com/sells-group/procure-cli/internal/ask"
)

// QuerySource reads one source view. Keywords become a case-insensitive
// substring match OR-ed across every filter column; an unfiltered query
// returns the most recent rows.
func (s *PostgresStore) QuerySource(ctx context.Context, q ask.Query) ([]ask.Row, error) {
	sql, args, err := buildSourceSQL(q)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: query %s", q.Relation)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	var out []ask.Row
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, eris.Wrapf(err, "postgres: scan %s", q.Relation)
		}
		row := make(ask.Row, len(fields))
		for i, fd := range fields {
			if i < len(vals) {
				row[fd.Name] = normalizeValue(vals[i])
			}
		}
		out = append(out, row)
	}
	return out, eris.Wrapf(rows.Err(), "postgres: iterate %s", q.Relation)
}

// buildSourceSQL renders the SELECT for a source query. Identifiers are
// quoted; keyword patterns are bound as parameters, one per keyword.
func buildSourceSQL(q ask.Query) (string, []any, error) {
	if q.Relation == "" || len(q.Columns) == 0 {
		return "", nil, eris.Errorf("postgres: source %s: relation and columns are required", q.Source)
	}
	if q.Limit <= 0 {
		return "", nil, eris.Errorf("postgres: source %s: limit must be positive", q.Source)
	}

	cols := make([]string, len(q.Columns))
	for i, c := range q.Columns {
		cols[i] = quoteIdent(c)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s FROM %s", strings.Join(cols, ", "), quoteIdent(q.Relation))

	var args []any
	if q.Filtered() {
		var preds []string
		for _, kw := range q.Keywords {
			args = append(args, "%"+escapeLike(kw)+"%")
			for _, c := range q.FilterColumns {
				preds = append(preds, fmt.Sprintf("%s::text ILIKE $%d", quoteIdent(c), len(args)))
			}
		}
		fmt.Fprintf(&b, " WHERE (%s)", strings.Join(preds, " OR "))
	}
	if q.OrderColumn != "" {
		fmt.Fprintf(&b, " ORDER BY %s DESC NULLS LAST", quoteIdent(q.OrderColumn))
	}
	fmt.Fprintf(&b, " LIMIT %d", q.Limit)
	return b.String(), args, nil
}

func quoteIdent(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

// escapeLike escapes LIKE wildcards so keywords match literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// normalizeValue converts driver types into the plain Go values the
// formatter understands.
func normalizeValue(v any) any {
	switch n := v.(type) {
	case pgtype.Numeric:
		if !n.Valid {
			return nil
		}
		f, err := n.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	case *pgtype.Numeric:
		if n == nil {
			return nil
		}
		return normalizeValue(*n)
	case pgtype.Interval:
		if !n.Valid {
			return nil
		}
		return float64(n.Days) + float64(n.Microseconds)/86_400_000_000
	}
	return v
}
