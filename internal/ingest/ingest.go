// Package ingest stores extracted supplier documents, either as a full
// quote record or as flat price history rows.
package ingest

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/procure-cli/internal/extract"
	"github.com/sells-group/procure-cli/internal/metrics"
	"github.com/sells-group/procure-cli/internal/model"
)

// Mode selects how an extracted document is stored.
type Mode string

// Ingest modes.
const (
	ModeFormal  Mode = "formal"
	ModeHistory Mode = "history"
)

// ParseMode maps a form or flag value to a Mode. Empty means formal.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeFormal, "":
		return ModeFormal, nil
	case ModeHistory:
		return ModeHistory, nil
	default:
		return "", eris.Errorf("ingest: unknown mode %q", s)
	}
}

// Writer is the part of the store ingestion writes to.
type Writer interface {
	SaveQuote(ctx context.Context, rec *model.QuoteRecord) (*model.SaveResult, error)
	InsertPriceHistory(ctx context.Context, entries []model.PriceHistoryEntry) (int64, error)
}

// Result reports what was extracted and what was written.
type Result struct {
	Mode        Mode                     `json:"mode"`
	DryRun      bool                     `json:"dry_run"`
	Document    *model.ExtractedDocument `json:"document"`
	Saved       *model.SaveResult        `json:"saved,omitempty"`
	HistoryRows int64                    `json:"history_rows,omitempty"`
}

// Service extracts documents and writes them to the store.
type Service struct {
	extractor extract.Extractor
	writer    Writer
}

// New creates a Service.
func New(extractor extract.Extractor, writer Writer) *Service {
	return &Service{extractor: extractor, writer: writer}
}

// Ingest extracts doc and stores it in mode. A dry run only extracts.
func (s *Service) Ingest(ctx context.Context, doc extract.Document, mode Mode, dryRun bool) (*Result, error) {
	extracted, err := s.extractor.Extract(ctx, doc)
	if err != nil {
		return nil, err
	}

	res := &Result{Mode: mode, DryRun: dryRun, Document: extracted}
	if dryRun {
		return res, nil
	}

	log := zap.L().With(zap.String("file", doc.Name), zap.String("mode", string(mode)))
	switch mode {
	case ModeFormal:
		rec, err := ToQuoteRecord(extracted)
		if err != nil {
			return nil, err
		}
		saved, err := s.writer.SaveQuote(ctx, rec)
		if err != nil {
			return nil, err
		}
		res.Saved = saved
		metrics.EntriesCreated.WithLabelValues("quote").Inc()
		log.Info("quote stored", zap.String("quote_id", saved.QuoteID), zap.Int64("line_items", saved.LineItems))
	case ModeHistory:
		entries, err := ToPriceHistory(extracted, "extract:"+doc.Name)
		if err != nil {
			return nil, err
		}
		n, err := s.writer.InsertPriceHistory(ctx, entries)
		if err != nil {
			return nil, err
		}
		res.HistoryRows = n
		metrics.EntriesCreated.WithLabelValues("price_history").Add(float64(n))
		log.Info("price history stored", zap.Int64("rows", n))
	default:
		return nil, eris.Errorf("ingest: unknown mode %q", mode)
	}
	return res, nil
}
