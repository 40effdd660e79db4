package batch

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/4tenlab/prism-insight/internal/marketdata"
	"github.com/4tenlab/prism-insight/internal/params"
	"github.com/4tenlab/prism-insight/internal/report"
	"github.com/4tenlab/prism-insight/internal/screen"
	"github.com/4tenlab/prism-insight/pkg/logger"
)

// fakeProvider serves canned snapshots keyed by date and records fetches
type fakeProvider struct {
	calendar  *marketdata.Calendar
	snapshots map[string]*marketdata.DailySnapshot
	caps      map[string]*marketdata.MarketCapSnapshot
	fetched   []string
}

func (f *fakeProvider) FetchDailySnapshot(ctx context.Context, date time.Time) (*marketdata.DailySnapshot, error) {
	key := marketdata.DateKey(date)
	f.fetched = append(f.fetched, key)
	if snap, ok := f.snapshots[key]; ok {
		return snap, nil
	}
	return nil, &marketdata.DataUnavailableError{Date: date, Kind: "ohlcv"}
}

func (f *fakeProvider) FetchMarketCapSnapshot(ctx context.Context, date time.Time) (*marketdata.MarketCapSnapshot, error) {
	key := marketdata.DateKey(date)
	if caps, ok := f.caps[key]; ok {
		return caps, nil
	}
	return nil, &marketdata.DataUnavailableError{Date: date, Kind: "market_cap"}
}

func (f *fakeProvider) ResolvePriorBusinessDay(date time.Time) time.Time {
	return f.calendar.PriorBusinessDay(date)
}

func (f *fakeProvider) ResolveTickerName(ctx context.Context, ticker string) (string, error) {
	return "종목" + ticker, nil
}

func bar(open, close, volume, tradeValue int64) marketdata.Bar {
	return marketdata.Bar{
		Open: open, High: close + 100, Low: open - 100, Close: close,
		Volume: volume, TradeValue: tradeValue,
	}
}

// newTestRunner wires a runner over the fake provider writing to a temp dir.
// 기준일: 2026-08-28 금요일, 전일: 2026-08-27 목요일.
func newTestRunner(t *testing.T, provider *fakeProvider) (*Runner, string) {
	t.Helper()
	dir := t.TempDir()

	writer, err := report.NewWriter(dir, logger.Nop())
	require.NoError(t, err)

	r := NewRunner(
		provider,
		screen.NewEngine(params.Default(), logger.Nop()),
		report.NewBuilder(provider, logger.Nop()),
		writer,
		logger.Nop(),
	)
	r.now = func() time.Time {
		return time.Date(2026, 8, 28, 8, 45, 0, 0, time.UTC)
	}
	return r, dir
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func marketSnapshots() (map[string]*marketdata.DailySnapshot, map[string]*marketdata.MarketCapSnapshot) {
	snapshots := map[string]*marketdata.DailySnapshot{
		"20260828": {
			Date: day(2026, 8, 28),
			Bars: map[string]marketdata.Bar{
				"005930": bar(70_000, 73_500, 2_000_000, 140_000_000_000), // 거래량 +100%, 상승
				"000660": bar(200_000, 210_000, 900_000, 180_000_000_000), // 거래량 +50%, 상승
				"035720": bar(50_000, 49_000, 700_000, 35_000_000_000),    // 하락
			},
		},
		"20260827": {
			Date: day(2026, 8, 27),
			Bars: map[string]marketdata.Bar{
				"005930": bar(69_000, 70_000, 1_000_000, 70_000_000_000),
				"000660": bar(195_000, 200_000, 600_000, 120_000_000_000),
				"035720": bar(50_000, 50_000, 650_000, 32_000_000_000),
			},
		},
	}
	caps := map[string]*marketdata.MarketCapSnapshot{
		"20260828": {
			Date: day(2026, 8, 28),
			Caps: map[string]int64{
				"005930": 4_400_000_000_000,
				"000660": 1_500_000_000_000,
				"035720": 220_000_000_000,
			},
		},
	}
	return snapshots, caps
}

func TestRunner_MorningRun(t *testing.T) {
	snapshots, caps := marketSnapshots()
	provider := &fakeProvider{
		calendar:  marketdata.NewCalendar(),
		snapshots: snapshots,
		caps:      caps,
	}
	r, _ := newTestRunner(t, provider)

	path, err := r.Run(context.Background(), ModeMorning)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc report.Document
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "morning", doc.Metadata.TriggerMode)
	assert.Equal(t, "20260828", doc.Metadata.TradeDate)

	// 무료 티어는 정확히 한 항목
	require.Len(t, doc.Free, 1)
	for _, stocks := range doc.Free {
		require.Len(t, stocks, 1)
		assert.NotEmpty(t, stocks[0].Code)
		assert.Contains(t, stocks[0].Name, "종목")
	}

	// 프리미엄 전체 distinct 종목 수 ≤ 3
	distinct := make(map[string]bool)
	for _, stocks := range doc.Premium {
		for _, s := range stocks {
			distinct[s.Code] = true
		}
	}
	assert.LessOrEqual(t, len(distinct), 3)
	assert.NotEmpty(t, distinct)
}

func TestRunner_FallsBackOncePriorBusinessDay(t *testing.T) {
	// 기준일(금요일) 데이터가 아직 없다: 전 영업일로 정확히 1회 재시도
	snapshots, caps := marketSnapshots()
	provider := &fakeProvider{
		calendar: marketdata.NewCalendar(),
		snapshots: map[string]*marketdata.DailySnapshot{
			"20260827": snapshots["20260828"], // 27일에 데이터가 있다
			"20260826": snapshots["20260827"],
		},
		caps: map[string]*marketdata.MarketCapSnapshot{
			"20260827": caps["20260828"],
		},
	}
	r, _ := newTestRunner(t, provider)

	path, err := r.Run(context.Background(), ModeMorning)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc report.Document
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "20260827", doc.Metadata.TradeDate)

	// 28 실패 → 27 성공 → 전일 26
	assert.Equal(t, []string{"20260828", "20260827", "20260826"}, provider.fetched)
}

func TestRunner_NoSecondFallback(t *testing.T) {
	provider := &fakeProvider{
		calendar:  marketdata.NewCalendar(),
		snapshots: map[string]*marketdata.DailySnapshot{}, // 아무 날짜도 없음
	}
	r, _ := newTestRunner(t, provider)

	_, err := r.Run(context.Background(), ModeMorning)
	require.Error(t, err)
	assert.True(t, marketdata.IsDataUnavailable(err))
	// 재시도는 정확히 한 번
	assert.Len(t, provider.fetched, 2)
}

func TestRunner_MissingCapsKeepsBatchAlive(t *testing.T) {
	snapshots, _ := marketSnapshots()
	provider := &fakeProvider{
		calendar:  marketdata.NewCalendar(),
		snapshots: snapshots,
		caps:      map[string]*marketdata.MarketCapSnapshot{}, // 시총 없음
	}
	r, _ := newTestRunner(t, provider)

	path, err := r.Run(context.Background(), ModeMorning)
	require.NoError(t, err)

	var doc report.Document
	data, _ := os.ReadFile(path)
	require.NoError(t, json.Unmarshal(data, &doc))

	// 시총 기반 카테고리만 비고 나머지는 산다
	assert.NotContains(t, doc.Premium, screen.CategoryValueToCap.DisplayName())
	assert.NotEmpty(t, doc.Free)
}

func TestRunner_AfternoonRun(t *testing.T) {
	snapshots, _ := marketSnapshots()
	provider := &fakeProvider{
		calendar:  marketdata.NewCalendar(),
		snapshots: snapshots,
	}
	r, _ := newTestRunner(t, provider)
	r.now = func() time.Time {
		return time.Date(2026, 8, 28, 15, 40, 0, 0, time.UTC)
	}

	path, err := r.Run(context.Background(), ModeAfternoon)
	require.NoError(t, err)

	var doc report.Document
	data, _ := os.ReadFile(path)
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "afternoon", doc.Metadata.TriggerMode)

	// 오후 모드는 시총 스냅샷을 아예 건드리지 않는다 (fetch 에러도 없어야 한다)
	assert.NotEmpty(t, doc.Free)
}

func TestRunner_EmptyMarketStillWritesReport(t *testing.T) {
	// 교집합이 공집합: 모든 트리거가 비지만 리포트는 나온다
	provider := &fakeProvider{
		calendar: marketdata.NewCalendar(),
		snapshots: map[string]*marketdata.DailySnapshot{
			"20260828": {Date: day(2026, 8, 28), Bars: map[string]marketdata.Bar{
				"005930": bar(70_000, 71_000, 100, 7_000_000_000),
			}},
			"20260827": {Date: day(2026, 8, 27), Bars: map[string]marketdata.Bar{
				"000660": bar(200_000, 201_000, 100, 20_000_000_000),
			}},
		},
	}
	r, _ := newTestRunner(t, provider)

	path, err := r.Run(context.Background(), ModeAfternoon)
	require.NoError(t, err)

	var doc report.Document
	data, _ := os.ReadFile(path)
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Empty(t, doc.Free)
	assert.Empty(t, doc.Premium)
	assert.Equal(t, "20260828", doc.Metadata.TradeDate)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("morning")
	require.NoError(t, err)
	assert.Equal(t, ModeMorning, m)

	m, err = ParseMode("afternoon")
	require.NoError(t, err)
	assert.Equal(t, ModeAfternoon, m)

	_, err = ParseMode("evening")
	assert.Error(t, err)
}
