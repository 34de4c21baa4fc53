package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rotisserie/eris"

	"github.com/sells-group/procure-cli/internal/db"
	"github.com/sells-group/procure-cli/internal/model"
)

// dbtx is satisfied by both db.Pool and pgx.Tx.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	db.Copier
}

// SQLSTATE for unique_violation.
const uniqueViolation = "23505"

var lineItemColumns = []string{"id", "quote_id", "component_id", "qty", "unit_price", "total"}

var priceHistoryColumns = []string{
	"id", "entry_date", "supplier_name", "sku", "description", "qty", "unit_price", "currency", "source",
}

func (s *PostgresStore) CreateSupplier(ctx context.Context, sup *model.Supplier) error {
	return insertSupplier(ctx, s.pool, sup)
}

func (s *PostgresStore) CreateComponent(ctx context.Context, c *model.Component) error {
	return insertComponent(ctx, s.pool, c)
}

// SaveQuote writes a supplier document in one transaction: supplier and
// component lookup-or-create, the quote, its line items and an optional
// proforma invoice. Nothing is persisted if any step fails.
func (s *PostgresStore) SaveQuote(ctx context.Context, rec *model.QuoteRecord) (*model.SaveResult, error) {
	if rec == nil {
		return nil, eris.New("postgres: save quote: nil record")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: save quote: begin tx")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	supplierID, err := findOrCreateSupplier(ctx, tx, rec.Supplier)
	if err != nil {
		return nil, err
	}

	res := &model.SaveResult{SupplierID: supplierID}
	q := rec.Quote
	q.ID = uuid.New().String()
	q.SupplierID = supplierID

	rows := make([][]any, 0, len(q.Items))
	var total float64
	for i := range q.Items {
		item := &q.Items[i]
		compID, err := findOrCreateComponent(ctx, tx, model.Component{
			SKU:         item.SKU,
			Description: item.Description,
			Brand:       item.Brand,
		})
		if err != nil {
			return nil, err
		}
		item.ComponentID = compID
		res.ComponentIDs = append(res.ComponentIDs, compID)
		lineTotal := item.LineTotal()
		total += lineTotal
		rows = append(rows, []any{uuid.New().String(), q.ID, compID, item.Qty, item.UnitPrice, lineTotal})
	}
	if q.TotalValue == 0 {
		q.TotalValue = total
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO quotes (id, supplier_id, quote_number, quote_date, currency, total_value) VALUES ($1, $2, $3, $4, $5, $6)`,
		q.ID, q.SupplierID, q.QuoteNumber, nullDate(q.QuoteDate), q.Currency, q.TotalValue,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: insert quote %s", q.QuoteNumber)
	}
	res.QuoteID = q.ID

	res.LineItems, err = db.CopyFrom(ctx, tx, "quote_line_items", lineItemColumns, rows)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: insert line items for quote %s", q.QuoteNumber)
	}

	if rec.Proforma != nil {
		pf := *rec.Proforma
		pf.ID = uuid.New().String()
		pf.QuoteID = q.ID
		pf.SupplierID = supplierID
		if pf.Currency == "" {
			pf.Currency = q.Currency
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO proforma_invoices (id, quote_id, supplier_id, invoice_number, invoice_date, currency, total_value) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			pf.ID, pf.QuoteID, pf.SupplierID, pf.InvoiceNumber, nullDate(pf.InvoiceDate), pf.Currency, pf.TotalValue,
		)
		if err != nil {
			return nil, eris.Wrapf(err, "postgres: insert proforma invoice %s", pf.InvoiceNumber)
		}
		res.ProformaID = pf.ID
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, eris.Wrap(err, "postgres: save quote: commit")
	}
	return res, nil
}

// CreatePurchaseOrder inserts a single-line PO, resolving the supplier and
// component by name and SKU.
func (s *PostgresStore) CreatePurchaseOrder(ctx context.Context, po *model.PurchaseOrder) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "postgres: create purchase order: begin tx")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	supplierID, err := findOrCreateSupplier(ctx, tx, model.Supplier{Name: po.SupplierName, Currency: po.Currency})
	if err != nil {
		return err
	}
	compID, err := findOrCreateComponent(ctx, tx, model.Component{
		SKU:         po.SKU,
		Description: po.Description,
		Brand:       po.Brand,
	})
	if err != nil {
		return err
	}

	po.ID = uuid.New().String()
	_, err = tx.Exec(ctx,
		`INSERT INTO purchase_orders (id, po_number, po_date, supplier_id, component_id, qty, unit_price, currency, company, expected_date, received_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		po.ID, po.PONumber, po.PODate, supplierID, compID, po.Qty, po.UnitPrice, po.Currency, po.Company,
		po.ExpectedDate, po.ReceivedDate,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: insert purchase order %s", po.PONumber)
	}
	return eris.Wrap(tx.Commit(ctx), "postgres: create purchase order: commit")
}

// CreateLandedCost inserts a landed cost row against an existing PO line.
// When TrueUnitCost is unset it is computed from the most recent matching
// line.
func (s *PostgresStore) CreateLandedCost(ctx context.Context, lc *model.LandedCost) error {
	var unitPrice, qty float64
	err := s.pool.QueryRow(ctx,
		`SELECT po.unit_price::float8, po.qty::float8 FROM purchase_orders po
		 JOIN components c ON c.id = po.component_id
		 WHERE po.po_number = $1 AND upper(c.sku) = upper($2)
		 ORDER BY po.po_date DESC LIMIT 1`,
		lc.PONumber, lc.SKU,
	).Scan(&unitPrice, &qty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return eris.Wrapf(ErrNotFound, "purchase order %s line %s", lc.PONumber, lc.SKU)
		}
		return eris.Wrapf(err, "postgres: lookup purchase order %s", lc.PONumber)
	}
	if lc.TrueUnitCost == 0 {
		lc.TrueUnitCost = lc.ComputeTrueUnitCost(unitPrice, qty)
	}
	if lc.FXRate == 0 {
		lc.FXRate = 1
	}
	if lc.CostDate.IsZero() {
		lc.CostDate = time.Now().UTC().Truncate(24 * time.Hour)
	}

	lc.ID = uuid.New().String()
	_, err = s.pool.Exec(ctx,
		`INSERT INTO landed_costs (id, po_number, sku, cost_date, freight, duty, tax, other, fx_rate, true_unit_cost)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		lc.ID, lc.PONumber, lc.SKU, lc.CostDate, lc.Freight, lc.Duty, lc.Tax, lc.Other, lc.FXRate, lc.TrueUnitCost,
	)
	return eris.Wrapf(err, "postgres: insert landed cost for %s", lc.PONumber)
}

func (s *PostgresStore) CreatePayment(ctx context.Context, p *model.Payment) error {
	p.ID = uuid.New().String()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO payments (id, po_number, due_date, amount, paid_amount, currency, status) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.PONumber, p.DueDate, p.Amount, p.PaidAmount, p.Currency, p.Status(),
	)
	return eris.Wrapf(err, "postgres: insert payment for %s", p.PONumber)
}

// InsertPriceHistory bulk-inserts flat price observations with COPY.
func (s *PostgresStore) InsertPriceHistory(ctx context.Context, entries []model.PriceHistoryEntry) (int64, error) {
	rows := make([][]any, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		if e.ID == "" {
			e.ID = uuid.New().String()
		}
		if e.Source == "" {
			e.Source = "manual"
		}
		rows = append(rows, []any{
			e.ID, nullDate(e.EntryDate), e.SupplierName, e.SKU, e.Description, e.Qty, e.UnitPrice, e.Currency, e.Source,
		})
	}
	n, err := db.CopyFrom(ctx, s.pool, "price_history", priceHistoryColumns, rows)
	return n, eris.Wrap(err, "postgres: insert price history")
}

func findOrCreateSupplier(ctx context.Context, q dbtx, sup model.Supplier) (string, error) {
	name := strings.TrimSpace(sup.Name)
	if name == "" {
		return "", eris.New("postgres: supplier name is required")
	}

	var id string
	err := q.QueryRow(ctx, `SELECT id FROM suppliers WHERE lower(name) = lower($1)`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", eris.Wrapf(err, "postgres: lookup supplier %s", name)
	}

	sup.Name = name
	if err := insertSupplier(ctx, q, &sup); err != nil {
		return "", err
	}
	return sup.ID, nil
}

func findOrCreateComponent(ctx context.Context, q dbtx, c model.Component) (string, error) {
	sku := strings.TrimSpace(c.SKU)
	if sku == "" {
		return "", eris.New("postgres: component sku is required")
	}

	var id string
	err := q.QueryRow(ctx, `SELECT id FROM components WHERE upper(sku) = upper($1)`, sku).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", eris.Wrapf(err, "postgres: lookup component %s", sku)
	}

	c.SKU = sku
	if err := insertComponent(ctx, q, &c); err != nil {
		return "", err
	}
	return c.ID, nil
}

func insertSupplier(ctx context.Context, q dbtx, sup *model.Supplier) error {
	sup.ID = uuid.New().String()
	sup.CreatedAt = time.Now().UTC()
	_, err := q.Exec(ctx,
		`INSERT INTO suppliers (id, name, country, currency, contact_email, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		sup.ID, sup.Name, nullString(sup.Country), nullString(sup.Currency), nullString(sup.ContactEmail), sup.CreatedAt,
	)
	if isUniqueViolation(err) {
		return eris.Wrapf(ErrConflict, "supplier %s already exists", sup.Name)
	}
	return eris.Wrapf(err, "postgres: insert supplier %s", sup.Name)
}

func insertComponent(ctx context.Context, q dbtx, c *model.Component) error {
	c.ID = uuid.New().String()
	c.CreatedAt = time.Now().UTC()
	_, err := q.Exec(ctx,
		`INSERT INTO components (id, sku, description, brand, category, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.SKU, c.Description, nullString(c.Brand), nullString(c.Category), c.CreatedAt,
	)
	if isUniqueViolation(err) {
		return eris.Wrapf(ErrConflict, "component %s already exists", c.SKU)
	}
	return eris.Wrapf(err, "postgres: insert component %s", c.SKU)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
