package report

import (
	"context"
	"math"
	"time"

	"github.com/4tenlab/prism-insight/internal/marketdata"
	"github.com/4tenlab/prism-insight/internal/screen"
	"github.com/4tenlab/prism-insight/pkg/logger"
)

// StockRecord is one pick as it appears in the signal JSON. The optional
// pointer fields are category specific: only the metric that triggered the
// category is attached.
type StockRecord struct {
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	CurrentPrice float64 `json:"current_price"`
	ChangeRate   float64 `json:"change_rate"`
	Volume       float64 `json:"volume"`
	TradeValue   float64 `json:"trade_value"`

	VolumeIncrease  *float64 `json:"volume_increase,omitempty"`
	GapRate         *float64 `json:"gap_rate,omitempty"`
	TradeValueRatio *float64 `json:"trade_value_ratio,omitempty"`
	MarketCap       *float64 `json:"market_cap,omitempty"`
	ClosingStrength *float64 `json:"closing_strength,omitempty"`
}

// Metadata describes the run that produced a document
type Metadata struct {
	RunTime     string `json:"run_time"`
	TriggerMode string `json:"trigger_mode"`
	TradeDate   string `json:"trade_date"`
}

// Document is the signal report: category display name → picks, split by
// tier. Categories without picks are omitted entirely.
type Document struct {
	Free     map[string][]StockRecord `json:"free"`
	Premium  map[string][]StockRecord `json:"premium"`
	Metadata Metadata                 `json:"metadata"`
}

// Builder turns an allocation into a serializable document, resolving ticker
// display names along the way.
type Builder struct {
	names  nameResolver
	logger *logger.Logger
}

type nameResolver interface {
	ResolveTickerName(ctx context.Context, ticker string) (string, error)
}

// NewBuilder creates a document builder
func NewBuilder(names nameResolver, log *logger.Logger) *Builder {
	return &Builder{names: names, logger: log}
}

// Build assembles the report document. Name resolution is best effort: on
// failure the raw ticker code stands in, never an error.
func (b *Builder) Build(ctx context.Context, alloc screen.Allocation, mode string, tradeDate time.Time, runTime time.Time) *Document {
	doc := &Document{
		Free:    make(map[string][]StockRecord),
		Premium: make(map[string][]StockRecord),
		Metadata: Metadata{
			RunTime:     runTime.Format(time.RFC3339),
			TriggerMode: mode,
			TradeDate:   marketdata.DateKey(tradeDate),
		},
	}

	for cat, stocks := range alloc.Free {
		doc.Free[cat.DisplayName()] = b.records(ctx, cat, stocks)
	}
	for cat, stocks := range alloc.Premium {
		doc.Premium[cat.DisplayName()] = b.records(ctx, cat, stocks)
	}

	return doc
}

func (b *Builder) records(ctx context.Context, cat screen.Category, stocks []screen.ScoredCandidate) []StockRecord {
	records := make([]StockRecord, 0, len(stocks))
	for i := range stocks {
		records = append(records, b.record(ctx, cat, &stocks[i]))
	}
	return records
}

func (b *Builder) record(ctx context.Context, cat screen.Category, s *screen.ScoredCandidate) StockRecord {
	rec := StockRecord{
		Code:         s.Ticker,
		Name:         b.resolveName(ctx, s.Ticker),
		CurrentPrice: s.Close,
		ChangeRate:   sanitize(s.DayOverDayChangePct),
		Volume:       s.Volume,
		TradeValue:   s.TradeValue,
	}

	// 카테고리별 보조 지표: 일중 상승률 상위주는 기본 필드만
	switch cat {
	case screen.CategoryVolumeSurge, screen.CategoryVolumeSurgeFlat:
		rec.VolumeIncrease = sanitized(s.VolumeGrowthPct)
	case screen.CategoryGapUpMomentum:
		rec.GapRate = sanitized(s.GapPct)
	case screen.CategoryValueToCap:
		rec.TradeValueRatio = sanitized(s.ValueToCapRatioPct)
		rec.MarketCap = sanitized(s.MarketCap)
	case screen.CategoryClosingStrength:
		rec.ClosingStrength = sanitized(s.ClosingStrength)
	}

	return rec
}

func (b *Builder) resolveName(ctx context.Context, ticker string) string {
	name, err := b.names.ResolveTickerName(ctx, ticker)
	if err != nil || name == "" {
		b.logger.WithField("ticker", ticker).Debug("Name resolution failed, using code")
		return ticker
	}
	return name
}

// sanitize maps NaN to 0 at the serialization boundary. encoding/json cannot
// emit NaN, and the engine guarantees NaN never reached a threshold check.
func sanitize(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}

func sanitized(v float64) *float64 {
	s := sanitize(v)
	return &s
}
