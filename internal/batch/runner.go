package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/4tenlab/prism-insight/internal/marketdata"
	"github.com/4tenlab/prism-insight/internal/report"
	"github.com/4tenlab/prism-insight/internal/screen"
	"github.com/4tenlab/prism-insight/pkg/logger"
)

// Mode selects which trigger set a batch run executes
type Mode string

const (
	ModeMorning   Mode = "morning"
	ModeAfternoon Mode = "afternoon"
)

// ParseMode validates a mode string from CLI or scheduler input
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeMorning, ModeAfternoon:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown trigger mode %q (want morning or afternoon)", s)
	}
}

// Categories returns the trigger categories this mode runs
func (m Mode) Categories() []screen.Category {
	if m == ModeMorning {
		return screen.MorningCategories()
	}
	return screen.AfternoonCategories()
}

// Runner orchestrates one batch run: resolve the trade date, fetch
// snapshots, execute the mode's triggers, allocate tiers and publish the
// report.
// ⭐ SSOT: 배치 오케스트레이션은 여기서만
type Runner struct {
	provider marketdata.Provider
	engine   *screen.Engine
	builder  *report.Builder
	writer   *report.Writer
	logger   *logger.Logger

	// now is injectable for tests
	now func() time.Time
}

// NewRunner wires a batch runner
func NewRunner(provider marketdata.Provider, engine *screen.Engine, builder *report.Builder, writer *report.Writer, log *logger.Logger) *Runner {
	return &Runner{
		provider: provider,
		engine:   engine,
		builder:  builder,
		writer:   writer,
		logger:   log,
		now:      time.Now,
	}
}

// Run executes one batch for the mode and returns the written report path.
// An empty result set is a normal outcome and still produces a report.
func (r *Runner) Run(ctx context.Context, mode Mode) (string, error) {
	runTime := r.now()

	// 오늘 포함 가장 가까운 영업일
	tradeDate := r.provider.ResolvePriorBusinessDay(runTime.AddDate(0, 0, 1))

	r.logger.WithFields(map[string]interface{}{
		"mode":       string(mode),
		"trade_date": marketdata.DateKey(tradeDate),
	}).Info("Batch run started")

	today, tradeDate, err := r.fetchWithFallback(ctx, tradeDate)
	if err != nil {
		return "", fmt.Errorf("fetch daily snapshot: %w", err)
	}

	prevDate := r.provider.ResolvePriorBusinessDay(tradeDate)
	prev, err := r.provider.FetchDailySnapshot(ctx, prevDate)
	if err != nil {
		return "", fmt.Errorf("fetch prior snapshot: %w", err)
	}

	// 시총 스냅샷은 오전 트리거3에서만 쓴다. 실패해도 배치는 계속 간다.
	var caps *marketdata.MarketCapSnapshot
	if mode == ModeMorning {
		caps, err = r.provider.FetchMarketCapSnapshot(ctx, tradeDate)
		if err != nil {
			r.logger.WithError(err).Warn("Market cap fetch failed, value-to-cap trigger will be empty")
			caps = nil
		}
	}

	cands := screen.BuildCandidates(today, prev)
	r.logger.WithFields(map[string]interface{}{
		"today_rows": len(today.Bars),
		"candidates": len(cands),
	}).Info("Candidate set built")

	results := make([]screen.TriggerResult, 0, len(mode.Categories()))
	for _, cat := range mode.Categories() {
		res := r.runCategory(cat, cands, caps)
		if len(res.Stocks) == 0 {
			r.logger.WithField("category", cat.String()).Info("Trigger produced no picks")
		}
		results = append(results, res)
	}

	alloc := screen.Allocate(results)
	doc := r.builder.Build(ctx, alloc, string(mode), tradeDate, runTime)

	path, err := r.writer.Write(doc)
	if err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	r.logger.WithFields(map[string]interface{}{
		"mode": string(mode),
		"path": path,
	}).Info("Batch run completed")

	return path, nil
}

// fetchWithFallback fetches the trade date snapshot, falling back to the
// prior business day exactly once when the date has no data yet (휴장일 또는
// 집계 전).
func (r *Runner) fetchWithFallback(ctx context.Context, tradeDate time.Time) (*marketdata.DailySnapshot, time.Time, error) {
	snap, err := r.provider.FetchDailySnapshot(ctx, tradeDate)
	if err == nil {
		return snap, tradeDate, nil
	}
	if !marketdata.IsDataUnavailable(err) {
		return nil, tradeDate, err
	}

	fallback := r.provider.ResolvePriorBusinessDay(tradeDate)
	r.logger.WithFields(map[string]interface{}{
		"trade_date": marketdata.DateKey(tradeDate),
		"fallback":   marketdata.DateKey(fallback),
	}).Warn("No data for trade date, retrying prior business day")

	snap, err = r.provider.FetchDailySnapshot(ctx, fallback)
	if err != nil {
		return nil, fallback, err
	}
	return snap, fallback, nil
}

// runCategory isolates one trigger pipeline: a panic inside a category is
// logged and yields an empty result instead of killing the batch.
func (r *Runner) runCategory(cat screen.Category, cands []screen.Candidate, caps *marketdata.MarketCapSnapshot) (res screen.TriggerResult) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.WithFields(map[string]interface{}{
				"category": cat.String(),
				"panic":    fmt.Sprint(rec),
			}).Error("Trigger pipeline panicked")
			res = screen.TriggerResult{Category: cat}
		}
	}()

	return r.engine.Run(cat, cands, caps)
}
