package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/procure-cli/internal/metrics"
	"github.com/sells-group/procure-cli/internal/model"
	"github.com/sells-group/procure-cli/internal/store"
)

const dateLayout = "2006-01-02"

type createdResponse struct {
	ID string `json:"id"`
}

type supplierRequest struct {
	Name         string `json:"name" validate:"required"`
	Country      string `json:"country"`
	Currency     string `json:"currency" validate:"omitempty,len=3,alpha"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
}

func (r *supplierRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Currency = strings.ToUpper(strings.TrimSpace(r.Currency))
}

type componentRequest struct {
	SKU         string `json:"sku" validate:"required"`
	Description string `json:"description" validate:"required"`
	Brand       string `json:"brand"`
	Category    string `json:"category"`
}

func (r *componentRequest) normalize() {
	r.SKU = strings.TrimSpace(r.SKU)
	r.Description = strings.TrimSpace(r.Description)
}

type quoteItemRequest struct {
	SKU         string  `json:"sku" validate:"required"`
	Description string  `json:"description"`
	Brand       string  `json:"brand"`
	Qty         float64 `json:"qty" validate:"gt=0"`
	UnitPrice   float64 `json:"unit_price" validate:"gte=0"`
	Total       float64 `json:"total" validate:"gte=0"`
}

type quoteRequest struct {
	SupplierName string             `json:"supplier_name" validate:"required"`
	QuoteNumber  string             `json:"quote_number" validate:"required"`
	QuoteDate    string             `json:"quote_date" validate:"omitempty,datetime=2006-01-02"`
	Currency     string             `json:"currency" validate:"required,len=3,alpha"`
	TotalValue   float64            `json:"total_value" validate:"gte=0"`
	Items        []quoteItemRequest `json:"items" validate:"required,min=1,dive"`
}

func (r *quoteRequest) normalize() {
	r.SupplierName = strings.TrimSpace(r.SupplierName)
	r.QuoteNumber = strings.TrimSpace(r.QuoteNumber)
	r.Currency = strings.ToUpper(strings.TrimSpace(r.Currency))
	for i := range r.Items {
		r.Items[i].SKU = strings.TrimSpace(r.Items[i].SKU)
	}
}

type purchaseOrderRequest struct {
	PONumber     string  `json:"po_number" validate:"required"`
	PODate       string  `json:"po_date" validate:"required,datetime=2006-01-02"`
	SupplierName string  `json:"supplier_name" validate:"required"`
	SKU          string  `json:"sku" validate:"required"`
	Description  string  `json:"description"`
	Brand        string  `json:"brand"`
	Qty          float64 `json:"qty" validate:"gt=0"`
	UnitPrice    float64 `json:"unit_price" validate:"gte=0"`
	Currency     string  `json:"currency" validate:"required,len=3,alpha"`
	Company      string  `json:"company" validate:"required,oneof=ICL ISL MBS"`
	ExpectedDate string  `json:"expected_date" validate:"omitempty,datetime=2006-01-02"`
	ReceivedDate string  `json:"received_date" validate:"omitempty,datetime=2006-01-02"`
}

func (r *purchaseOrderRequest) normalize() {
	r.PONumber = strings.TrimSpace(r.PONumber)
	r.SupplierName = strings.TrimSpace(r.SupplierName)
	r.SKU = strings.TrimSpace(r.SKU)
	r.Currency = strings.ToUpper(strings.TrimSpace(r.Currency))
	r.Company = strings.ToUpper(strings.TrimSpace(r.Company))
}

type landedCostRequest struct {
	PONumber     string  `json:"po_number" validate:"required"`
	SKU          string  `json:"sku" validate:"required"`
	CostDate     string  `json:"cost_date" validate:"omitempty,datetime=2006-01-02"`
	Freight      float64 `json:"freight" validate:"gte=0"`
	Duty         float64 `json:"duty" validate:"gte=0"`
	Tax          float64 `json:"tax" validate:"gte=0"`
	Other        float64 `json:"other" validate:"gte=0"`
	FXRate       float64 `json:"fx_rate" validate:"gte=0"`
	TrueUnitCost float64 `json:"true_unit_cost" validate:"gte=0"`
}

func (r *landedCostRequest) normalize() {
	r.PONumber = strings.TrimSpace(r.PONumber)
	r.SKU = strings.TrimSpace(r.SKU)
}

type paymentRequest struct {
	PONumber   string  `json:"po_number" validate:"required"`
	DueDate    string  `json:"due_date" validate:"required,datetime=2006-01-02"`
	Amount     float64 `json:"amount" validate:"gt=0"`
	PaidAmount float64 `json:"paid_amount" validate:"gte=0"`
	Currency   string  `json:"currency" validate:"required,len=3,alpha"`
}

func (r *paymentRequest) normalize() {
	r.PONumber = strings.TrimSpace(r.PONumber)
	r.Currency = strings.ToUpper(strings.TrimSpace(r.Currency))
}

func (s *Server) handleCreateSupplier(w http.ResponseWriter, r *http.Request) {
	var req supplierRequest
	if msg, ok := s.decode(w, r, &req); !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	sup := &model.Supplier{
		Name:         req.Name,
		Country:      req.Country,
		Currency:     req.Currency,
		ContactEmail: req.ContactEmail,
	}
	if err := s.store.CreateSupplier(r.Context(), sup); err != nil {
		writeStoreError(w, err)
		return
	}
	s.created(w, "supplier", sup.ID)
}

func (s *Server) handleCreateComponent(w http.ResponseWriter, r *http.Request) {
	var req componentRequest
	if msg, ok := s.decode(w, r, &req); !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	c := &model.Component{
		SKU:         req.SKU,
		Description: req.Description,
		Brand:       req.Brand,
		Category:    req.Category,
	}
	if err := s.store.CreateComponent(r.Context(), c); err != nil {
		writeStoreError(w, err)
		return
	}
	s.created(w, "component", c.ID)
}

func (s *Server) handleCreateQuote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if msg, ok := s.decode(w, r, &req); !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	rec := &model.QuoteRecord{
		Supplier: model.Supplier{Name: req.SupplierName, Currency: req.Currency},
		Quote: model.Quote{
			QuoteNumber: req.QuoteNumber,
			QuoteDate:   parseDate(req.QuoteDate),
			Currency:    req.Currency,
			TotalValue:  req.TotalValue,
		},
	}
	for _, it := range req.Items {
		rec.Quote.Items = append(rec.Quote.Items, model.QuoteLineItem{
			SKU:         it.SKU,
			Description: it.Description,
			Brand:       it.Brand,
			Qty:         it.Qty,
			UnitPrice:   it.UnitPrice,
			Total:       it.Total,
		})
	}

	res, err := s.store.SaveQuote(r.Context(), rec)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	metrics.EntriesCreated.WithLabelValues("quote").Inc()
	writeJSON(w, http.StatusCreated, res)
}

func (s *Server) handleCreatePurchaseOrder(w http.ResponseWriter, r *http.Request) {
	var req purchaseOrderRequest
	if msg, ok := s.decode(w, r, &req); !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	po := &model.PurchaseOrder{
		PONumber:     req.PONumber,
		PODate:       parseDate(req.PODate),
		SupplierName: req.SupplierName,
		SKU:          req.SKU,
		Description:  req.Description,
		Brand:        req.Brand,
		Qty:          req.Qty,
		UnitPrice:    req.UnitPrice,
		Currency:     req.Currency,
		Company:      req.Company,
		ExpectedDate: optionalDate(req.ExpectedDate),
		ReceivedDate: optionalDate(req.ReceivedDate),
	}
	if err := s.store.CreatePurchaseOrder(r.Context(), po); err != nil {
		writeStoreError(w, err)
		return
	}
	s.created(w, "purchase_order", po.ID)
}

func (s *Server) handleCreateLandedCost(w http.ResponseWriter, r *http.Request) {
	var req landedCostRequest
	if msg, ok := s.decode(w, r, &req); !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	lc := &model.LandedCost{
		PONumber:     req.PONumber,
		SKU:          req.SKU,
		CostDate:     parseDate(req.CostDate),
		Freight:      req.Freight,
		Duty:         req.Duty,
		Tax:          req.Tax,
		Other:        req.Other,
		FXRate:       req.FXRate,
		TrueUnitCost: req.TrueUnitCost,
	}
	if err := s.store.CreateLandedCost(r.Context(), lc); err != nil {
		writeStoreError(w, err)
		return
	}
	metrics.EntriesCreated.WithLabelValues("landed_cost").Inc()
	writeJSON(w, http.StatusCreated, map[string]any{"id": lc.ID, "true_unit_cost": lc.TrueUnitCost})
}

func (s *Server) handleCreatePayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if msg, ok := s.decode(w, r, &req); !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	p := &model.Payment{
		PONumber:   req.PONumber,
		DueDate:    parseDate(req.DueDate),
		Amount:     req.Amount,
		PaidAmount: req.PaidAmount,
		Currency:   req.Currency,
	}
	if err := s.store.CreatePayment(r.Context(), p); err != nil {
		writeStoreError(w, err)
		return
	}
	s.created(w, "payment", p.ID)
}

func (s *Server) created(w http.ResponseWriter, kind, id string) {
	metrics.EntriesCreated.WithLabelValues(kind).Inc()
	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case eris.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case eris.Is(err, store.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// parseDate parses a value the validator already accepted. Empty yields
// the zero time.
func parseDate(s string) time.Time {
	t, _ := time.Parse(dateLayout, s)
	return t
}

func optionalDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t := parseDate(s)
	return &t
}
