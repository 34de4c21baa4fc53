package store

const tablesMigration = `
CREATE TABLE IF NOT EXISTS suppliers (
	id            TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	name          TEXT NOT NULL,
	country       TEXT,
	currency      TEXT,
	contact_email TEXT,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_suppliers_name ON suppliers (lower(name));

CREATE TABLE IF NOT EXISTS components (
	id          TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	sku         TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	brand       TEXT,
	category    TEXT,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_components_sku ON components (upper(sku));

CREATE TABLE IF NOT EXISTS quotes (
	id           TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	supplier_id  TEXT NOT NULL REFERENCES suppliers(id),
	quote_number TEXT NOT NULL,
	quote_date   DATE,
	currency     TEXT NOT NULL,
	total_value  NUMERIC(18,2),
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_quotes_supplier ON quotes (supplier_id);

CREATE TABLE IF NOT EXISTS quote_line_items (
	id           TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	quote_id     TEXT NOT NULL REFERENCES quotes(id) ON DELETE CASCADE,
	component_id TEXT NOT NULL REFERENCES components(id),
	qty          NUMERIC(18,4) NOT NULL,
	unit_price   NUMERIC(18,4) NOT NULL,
	total        NUMERIC(18,2) NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_quote_line_items_quote ON quote_line_items (quote_id);

CREATE TABLE IF NOT EXISTS proforma_invoices (
	id             TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	quote_id       TEXT NOT NULL REFERENCES quotes(id) ON DELETE CASCADE,
	supplier_id    TEXT NOT NULL REFERENCES suppliers(id),
	invoice_number TEXT NOT NULL,
	invoice_date   DATE,
	currency       TEXT NOT NULL,
	total_value    NUMERIC(18,2),
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS purchase_orders (
	id            TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	po_number     TEXT NOT NULL,
	po_date       DATE NOT NULL,
	supplier_id   TEXT NOT NULL REFERENCES suppliers(id),
	component_id  TEXT NOT NULL REFERENCES components(id),
	qty           NUMERIC(18,4) NOT NULL,
	unit_price    NUMERIC(18,4) NOT NULL,
	currency      TEXT NOT NULL,
	company       TEXT NOT NULL CHECK (company IN ('ICL', 'ISL', 'MBS')),
	expected_date DATE,
	received_date DATE,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_purchase_orders_number ON purchase_orders (po_number);
CREATE INDEX IF NOT EXISTS idx_purchase_orders_date ON purchase_orders (po_date DESC);

CREATE TABLE IF NOT EXISTS landed_costs (
	id             TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	po_number      TEXT NOT NULL,
	sku            TEXT NOT NULL,
	cost_date      DATE NOT NULL,
	freight        NUMERIC(18,2) NOT NULL DEFAULT 0,
	duty           NUMERIC(18,2) NOT NULL DEFAULT 0,
	tax            NUMERIC(18,2) NOT NULL DEFAULT 0,
	other          NUMERIC(18,2) NOT NULL DEFAULT 0,
	fx_rate        NUMERIC(18,6) NOT NULL DEFAULT 1,
	true_unit_cost NUMERIC(18,2) NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_landed_costs_po ON landed_costs (po_number, sku);

CREATE TABLE IF NOT EXISTS payments (
	id          TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	po_number   TEXT NOT NULL,
	due_date    DATE NOT NULL,
	amount      NUMERIC(18,2) NOT NULL,
	paid_amount NUMERIC(18,2) NOT NULL DEFAULT 0,
	currency    TEXT NOT NULL,
	status      TEXT NOT NULL DEFAULT 'pending',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS price_history (
	id            TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	entry_date    DATE,
	supplier_name TEXT NOT NULL,
	sku           TEXT,
	description   TEXT,
	qty           NUMERIC(18,4),
	unit_price    NUMERIC(18,4) NOT NULL,
	currency      TEXT,
	source        TEXT NOT NULL DEFAULT 'manual',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_price_history_sku ON price_history (sku);
`

// Read views consumed by the ask sources. Each exposes the columns its
// source descriptor reads; money is rendered in IDR where "true" cost is
// involved. Views are dropped and recreated so column changes apply.
const viewsMigration = `
DROP VIEW IF EXISTS v_historical_stats, v_supplier_performance, v_component_demand,
	v_payment_tracking, v_landed_costs, v_quotes, v_purchase_orders;

CREATE VIEW v_purchase_orders AS
SELECT po.po_date, po.po_number, s.name AS supplier_name, c.sku, c.description, c.brand,
	po.qty, po.unit_price, po.currency, lc.true_unit_cost, po.company,
	po.expected_date, po.received_date
FROM purchase_orders po
JOIN suppliers s ON s.id = po.supplier_id
JOIN components c ON c.id = po.component_id
LEFT JOIN LATERAL (
	SELECT l.true_unit_cost FROM landed_costs l
	WHERE l.po_number = po.po_number AND upper(l.sku) = upper(c.sku)
	ORDER BY l.cost_date DESC LIMIT 1
) lc ON true;

CREATE VIEW v_quotes AS
SELECT q.quote_date, q.quote_number, s.name AS supplier_name, c.sku, c.description, c.brand,
	li.qty, li.unit_price, q.currency,
	round(li.unit_price * last.cost_ratio, 2) AS est_true_unit_cost
FROM quote_line_items li
JOIN quotes q ON q.id = li.quote_id
JOIN suppliers s ON s.id = q.supplier_id
JOIN components c ON c.id = li.component_id
LEFT JOIN LATERAL (
	SELECT v.true_unit_cost / NULLIF(v.unit_price, 0) AS cost_ratio
	FROM v_purchase_orders v
	WHERE upper(v.sku) = upper(c.sku) AND v.true_unit_cost IS NOT NULL AND v.currency = q.currency
	ORDER BY v.po_date DESC LIMIT 1
) last ON true;

CREATE VIEW v_historical_stats AS
SELECT date_trunc('month', po_date)::date AS period_month, supplier_name, sku, brand,
	count(*) FILTER (WHERE company = 'ICL') AS po_count_icl,
	count(*) FILTER (WHERE company = 'ISL') AS po_count_isl,
	count(*) FILTER (WHERE company = 'MBS') AS po_count_mbs,
	sum(qty) AS total_qty,
	round(avg(true_unit_cost), 2) AS avg_true_unit_cost
FROM v_purchase_orders
GROUP BY 1, 2, 3, 4;

CREATE VIEW v_supplier_performance AS
SELECT s.name AS supplier_name, s.country,
	count(v.po_number) AS po_count,
	round(sum(v.true_unit_cost * v.qty), 2) AS total_spend_idr,
	round(avg(v.received_date - v.po_date), 1) AS avg_lead_days,
	round(avg(CASE WHEN v.received_date IS NULL OR v.expected_date IS NULL THEN NULL
		WHEN v.received_date <= v.expected_date THEN 1.0 ELSE 0.0 END), 3) AS on_time_rate,
	max(v.po_date) AS last_po_date
FROM suppliers s
LEFT JOIN v_purchase_orders v ON v.supplier_name = s.name
GROUP BY s.name, s.country;

CREATE VIEW v_component_demand AS
SELECT sku, max(description) AS description, max(brand) AS brand,
	sum(qty) AS total_qty, count(*) AS order_count, max(po_date) AS last_order_date
FROM v_purchase_orders
GROUP BY sku;

CREATE VIEW v_payment_tracking AS
SELECT p.po_number, po.supplier_name, p.due_date, p.amount, p.paid_amount, p.currency, p.status
FROM payments p
LEFT JOIN LATERAL (
	SELECT v.supplier_name FROM v_purchase_orders v
	WHERE v.po_number = p.po_number LIMIT 1
) po ON true;

CREATE VIEW v_landed_costs AS
SELECT l.cost_date, l.po_number, po.supplier_name, l.sku, po.description,
	l.freight, l.duty, l.tax, l.true_unit_cost
FROM landed_costs l
LEFT JOIN LATERAL (
	SELECT v.supplier_name, v.description FROM v_purchase_orders v
	WHERE v.po_number = l.po_number AND upper(v.sku) = upper(l.sku) LIMIT 1
) po ON true;
`
