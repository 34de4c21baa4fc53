package ask

import (
	"github.com/rotisserie/eris"
)

// FieldKind controls how a column value is rendered in a context line.
type FieldKind int

// Field kinds.
const (
	KindText FieldKind = iota
	KindDate
	KindMonth
	KindNumber
	KindMoney
	KindPercent
)

// DescriptionWidth bounds long free-text fields in context lines.
const DescriptionWidth = 30

// Field describes one labelled value in a source's context line.
type Field struct {
	Label    string
	Column   string
	Kind     FieldKind
	Truncate int    // 0 = no truncation
	Unit     string // fixed suffix, e.g. "IDR"
	// UnitColumn names a column whose value is appended as the unit,
	// e.g. the row's currency code. Ignored when Unit is set.
	UnitColumn string
}

// Source is a read-only view queried for question context.
type Source struct {
	Name     string
	Heading  string // section heading in the prompt
	Label    string // plural noun used in the empty placeholder
	Tag      string // line prefix, e.g. "PO"
	Relation string // table or view

	FilterColumns []string
	OrderColumn   string
	Limit         int // row cap when keywords are present
	DefaultLimit  int // row cap when no keywords remain

	// IgnoreKeywords are dropped before filtering this source.
	IgnoreKeywords []string

	Fields []Field
}

// Columns returns the distinct columns the source's fields read, in field order.
func (s Source) Columns() []string {
	seen := make(map[string]bool, len(s.Fields))
	cols := make([]string, 0, len(s.Fields))
	add := func(c string) {
		if c == "" || seen[c] {
			return
		}
		seen[c] = true
		cols = append(cols, c)
	}
	for _, f := range s.Fields {
		add(f.Column)
		if f.Unit == "" {
			add(f.UnitColumn)
		}
	}
	return cols
}

// Keywords returns the subset of keywords this source filters on.
func (s Source) Keywords(keywords []string) []string {
	if len(s.IgnoreKeywords) == 0 {
		return keywords
	}
	ignore := make(map[string]bool, len(s.IgnoreKeywords))
	for _, k := range s.IgnoreKeywords {
		ignore[k] = true
	}
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if !ignore[k] {
			out = append(out, k)
		}
	}
	return out
}

// Query builds the read for this source. When no keywords apply the filter is
// omitted and the most recent DefaultLimit rows are returned instead.
func (s Source) Query(keywords []string) Query {
	q := Query{
		Source:      s.Name,
		Relation:    s.Relation,
		Columns:     s.Columns(),
		OrderColumn: s.OrderColumn,
		Limit:       s.DefaultLimit,
	}
	if kw := s.Keywords(keywords); len(kw) > 0 {
		q.Keywords = kw
		q.FilterColumns = s.FilterColumns
		q.Limit = s.Limit
	}
	return q
}

// Validate checks the descriptor is internally consistent.
func (s Source) Validate() error {
	switch {
	case s.Name == "":
		return eris.New("ask: source name is required")
	case s.Relation == "":
		return eris.Errorf("ask: source %s: relation is required", s.Name)
	case s.OrderColumn == "":
		return eris.Errorf("ask: source %s: order column is required", s.Name)
	case len(s.FilterColumns) == 0:
		return eris.Errorf("ask: source %s: at least one filter column is required", s.Name)
	case len(s.Fields) == 0:
		return eris.Errorf("ask: source %s: at least one field is required", s.Name)
	case s.DefaultLimit <= 0 || s.Limit <= s.DefaultLimit:
		return eris.Errorf("ask: source %s: filtered limit %d must exceed default limit %d", s.Name, s.Limit, s.DefaultLimit)
	}
	return nil
}

// Source names.
const (
	SourcePurchaseOrders      = "purchase_orders"
	SourceQuotes              = "quotes"
	SourceHistoricalStats     = "historical_stats"
	SourceSupplierPerformance = "supplier_performance"
	SourceComponentDemand     = "component_demand"
	SourcePaymentTracking     = "payment_tracking"
	SourceLandedCosts         = "landed_costs"
)

var catalog = map[string]Source{
	SourcePurchaseOrders: {
		Name:          SourcePurchaseOrders,
		Heading:       "RECENT PURCHASE ORDERS",
		Label:         "POs",
		Tag:           "PO",
		Relation:      "v_purchase_orders",
		FilterColumns: []string{"supplier_name", "sku", "description", "brand"},
		OrderColumn:   "po_date",
		Limit:         10,
		DefaultLimit:  5,
		Fields: []Field{
			{Label: "Date", Column: "po_date", Kind: KindDate},
			{Label: "PO", Column: "po_number"},
			{Label: "Supplier", Column: "supplier_name"},
			{Label: "SKU", Column: "sku"},
			{Label: "Item", Column: "description", Truncate: DescriptionWidth},
			{Label: "Qty", Column: "qty", Kind: KindNumber},
			{Label: "Unit Price", Column: "unit_price", Kind: KindMoney, UnitColumn: "currency"},
			{Label: "True Cost", Column: "true_unit_cost", Kind: KindMoney, Unit: "IDR"},
			{Label: "Company", Column: "company"},
		},
	},
	SourceQuotes: {
		Name:          SourceQuotes,
		Heading:       "RECENT SUPPLIER QUOTES",
		Label:         "quotes",
		Tag:           "QUOTE",
		Relation:      "v_quotes",
		FilterColumns: []string{"supplier_name", "sku", "description", "brand"},
		OrderColumn:   "quote_date",
		Limit:         10,
		DefaultLimit:  5,
		Fields: []Field{
			{Label: "Date", Column: "quote_date", Kind: KindDate},
			{Label: "Quote", Column: "quote_number"},
			{Label: "Supplier", Column: "supplier_name"},
			{Label: "SKU", Column: "sku"},
			{Label: "Item", Column: "description", Truncate: DescriptionWidth},
			{Label: "Qty", Column: "qty", Kind: KindNumber},
			{Label: "Unit Price", Column: "unit_price", Kind: KindMoney, UnitColumn: "currency"},
			{Label: "Est. True Cost", Column: "est_true_unit_cost", Kind: KindMoney, Unit: "IDR"},
		},
	},
	SourceHistoricalStats: {
		Name:          SourceHistoricalStats,
		Heading:       "HISTORICAL MONTHLY STATS",
		Label:         "historical stats",
		Tag:           "STATS",
		Relation:      "v_historical_stats",
		FilterColumns: []string{"supplier_name", "sku", "brand"},
		OrderColumn:   "period_month",
		Limit:         10,
		DefaultLimit:  5,
		Fields: []Field{
			{Label: "Month", Column: "period_month", Kind: KindMonth},
			{Label: "Supplier", Column: "supplier_name"},
			{Label: "SKU", Column: "sku"},
			{Label: "ICL POs", Column: "po_count_icl", Kind: KindNumber},
			{Label: "ISL POs", Column: "po_count_isl", Kind: KindNumber},
			{Label: "MBS POs", Column: "po_count_mbs", Kind: KindNumber},
			{Label: "Total Qty", Column: "total_qty", Kind: KindNumber},
			{Label: "Avg True Cost", Column: "avg_true_unit_cost", Kind: KindMoney, Unit: "IDR"},
		},
	},
	SourceSupplierPerformance: {
		Name:          SourceSupplierPerformance,
		Heading:       "SUPPLIER PERFORMANCE",
		Label:         "supplier performance data",
		Tag:           "SUPPLIER",
		Relation:      "v_supplier_performance",
		FilterColumns: []string{"supplier_name"},
		OrderColumn:   "last_po_date",
		Limit:         5,
		DefaultLimit:  3,
		// Analytic words would substring-match supplier names spuriously.
		IgnoreKeywords: []string{
			"total", "spend", "spending", "best", "worst", "top", "average", "avg",
			"performance", "supplier", "suppliers", "vendor", "vendors", "rank", "ranking",
		},
		Fields: []Field{
			{Label: "Supplier", Column: "supplier_name"},
			{Label: "Country", Column: "country"},
			{Label: "POs", Column: "po_count", Kind: KindNumber},
			{Label: "Total Spend", Column: "total_spend_idr", Kind: KindMoney, Unit: "IDR"},
			{Label: "Avg Lead Days", Column: "avg_lead_days", Kind: KindNumber},
			{Label: "On-Time", Column: "on_time_rate", Kind: KindPercent},
			{Label: "Last PO", Column: "last_po_date", Kind: KindDate},
		},
	},
	SourceComponentDemand: {
		Name:          SourceComponentDemand,
		Heading:       "COMPONENT DEMAND",
		Label:         "component demand data",
		Tag:           "DEMAND",
		Relation:      "v_component_demand",
		FilterColumns: []string{"sku", "description", "brand"},
		OrderColumn:   "last_order_date",
		Limit:         5,
		DefaultLimit:  3,
		Fields: []Field{
			{Label: "SKU", Column: "sku"},
			{Label: "Item", Column: "description", Truncate: DescriptionWidth},
			{Label: "Brand", Column: "brand"},
			{Label: "Total Qty", Column: "total_qty", Kind: KindNumber},
			{Label: "Orders", Column: "order_count", Kind: KindNumber},
			{Label: "Last Ordered", Column: "last_order_date", Kind: KindDate},
		},
	},
	SourcePaymentTracking: {
		Name:          SourcePaymentTracking,
		Heading:       "PAYMENT TRACKING",
		Label:         "payments",
		Tag:           "PAYMENT",
		Relation:      "v_payment_tracking",
		FilterColumns: []string{"supplier_name", "po_number"},
		OrderColumn:   "due_date",
		Limit:         5,
		DefaultLimit:  3,
		Fields: []Field{
			{Label: "PO", Column: "po_number"},
			{Label: "Supplier", Column: "supplier_name"},
			{Label: "Due", Column: "due_date", Kind: KindDate},
			{Label: "Amount", Column: "amount", Kind: KindMoney, UnitColumn: "currency"},
			{Label: "Paid", Column: "paid_amount", Kind: KindMoney, UnitColumn: "currency"},
			{Label: "Status", Column: "status"},
		},
	},
	SourceLandedCosts: {
		Name:          SourceLandedCosts,
		Heading:       "LANDED COSTS",
		Label:         "landed costs",
		Tag:           "LANDED",
		Relation:      "v_landed_costs",
		FilterColumns: []string{"supplier_name", "sku", "description"},
		OrderColumn:   "cost_date",
		Limit:         5,
		DefaultLimit:  3,
		Fields: []Field{
			{Label: "Date", Column: "cost_date", Kind: KindDate},
			{Label: "PO", Column: "po_number"},
			{Label: "Supplier", Column: "supplier_name"},
			{Label: "SKU", Column: "sku"},
			{Label: "Item", Column: "description", Truncate: DescriptionWidth},
			{Label: "Freight", Column: "freight", Kind: KindMoney, Unit: "IDR"},
			{Label: "Duty", Column: "duty", Kind: KindMoney, Unit: "IDR"},
			{Label: "Tax", Column: "tax", Kind: KindMoney, Unit: "IDR"},
			{Label: "True Cost", Column: "true_unit_cost", Kind: KindMoney, Unit: "IDR"},
		},
	},
}

// sourceOrder is the canonical section order in prompts.
var sourceOrder = []string{
	SourcePurchaseOrders,
	SourceQuotes,
	SourceHistoricalStats,
	SourceSupplierPerformance,
	SourceComponentDemand,
	SourcePaymentTracking,
	SourceLandedCosts,
}

// LookupSource returns the named source descriptor.
func LookupSource(name string) (Source, bool) {
	s, ok := catalog[name]
	return s, ok
}

// AllSources returns every source descriptor in canonical order.
func AllSources() []Source {
	out := make([]Source, 0, len(sourceOrder))
	for _, name := range sourceOrder {
		out = append(out, catalog[name])
	}
	return out
}
