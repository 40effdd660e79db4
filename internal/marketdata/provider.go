package marketdata

import (
	"context"
	"fmt"
	"time"
)

// Provider supplies daily market data for the trigger batch.
// ⭐ SSOT: 시장 데이터 조회 인터페이스는 여기서만 정의
type Provider interface {
	// FetchDailySnapshot returns the full-market OHLCV table for one trading
	// date. Fails with *DataUnavailableError when the date has no rows.
	FetchDailySnapshot(ctx context.Context, date time.Time) (*DailySnapshot, error)

	// FetchMarketCapSnapshot returns the full-market capitalization table for
	// one trading date. Fails with *DataUnavailableError when empty.
	FetchMarketCapSnapshot(ctx context.Context, date time.Time) (*MarketCapSnapshot, error)

	// ResolvePriorBusinessDay returns the nearest trading date strictly
	// earlier than the given calendar date.
	ResolvePriorBusinessDay(date time.Time) time.Time

	// ResolveTickerName returns a display name for the ticker. Best effort:
	// callers fall back to the raw ticker code on error.
	ResolveTickerName(ctx context.Context, ticker string) (string, error)
}

// DataUnavailableError indicates the requested trading date has no data.
// 배치 레벨에서 직전 영업일로 한 번 재시도하는 근거가 되는 에러.
type DataUnavailableError struct {
	Date time.Time
	Kind string // "ohlcv" or "market_cap"
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("no %s data available for %s", e.Kind, e.Date.Format(DateFormat))
}
