package marketdata

import "time"

// DateFormat is the KRX trade date format (YYYYMMDD)
const DateFormat = "20060102"

// Bar holds one ticker's daily OHLCV and trade value (KRW)
type Bar struct {
	Open       int64 `json:"open"`
	High       int64 `json:"high"`
	Low        int64 `json:"low"`
	Close      int64 `json:"close"`
	Volume     int64 `json:"volume"`
	TradeValue int64 `json:"trade_value"`
}

// DailySnapshot is a full-market table of one trading day keyed by ticker.
// Immutable once fetched — 트리거 파이프라인은 스냅샷을 절대 변경하지 않는다.
type DailySnapshot struct {
	Date time.Time      `json:"date"`
	Bars map[string]Bar `json:"bars"`
}

// MarketCapSnapshot maps ticker to market capitalization (KRW) for one date
type MarketCapSnapshot struct {
	Date time.Time        `json:"date"`
	Caps map[string]int64 `json:"caps"`
}

// DateKey formats a date as the YYYYMMDD key used in cache keys and reports
func DateKey(t time.Time) string {
	return t.Format(DateFormat)
}
