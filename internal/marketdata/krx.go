package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/4tenlab/prism-insight/pkg/config"
	"github.com/4tenlab/prism-insight/pkg/httputil"
	"github.com/4tenlab/prism-insight/pkg/logger"
)

// KRXClient fetches full-market daily quotes from the KRX data portal.
// ⭐ SSOT: KRX 전종목 시세 호출은 이 클라이언트에서만
type KRXClient struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	calendar   *Calendar
	names      *NaverNames

	// per-run memo: the same date's rows back both snapshot and cap fetches
	mu   sync.Mutex
	rows map[string][]krxQuoteRow
}

// NewKRXClient creates a new KRX client
func NewKRXClient(cfg *config.Config, httpClient *httputil.Client, names *NaverNames, log *logger.Logger) *KRXClient {
	return &KRXClient{
		httpClient: httpClient,
		logger:     log,
		baseURL:    cfg.KRX.BaseURL,
		calendar:   NewCalendar(),
		names:      names,
		rows:       make(map[string][]krxQuoteRow),
	}
}

// krxQuoteResponse represents the KRX daily quote API response
type krxQuoteResponse struct {
	OutBlock1 []krxQuoteRow `json:"OutBlock_1"`
}

// krxQuoteRow represents a row in the KRX whole-market daily quote block
type krxQuoteRow struct {
	ISU_SRT_CD string `json:"ISU_SRT_CD"` // 종목코드 (단축)
	ISU_ABBRV  string `json:"ISU_ABBRV"`  // 종목명
	TDD_OPNPRC string `json:"TDD_OPNPRC"` // 시가
	TDD_HGPRC  string `json:"TDD_HGPRC"`  // 고가
	TDD_LWPRC  string `json:"TDD_LWPRC"`  // 저가
	TDD_CLSPRC string `json:"TDD_CLSPRC"` // 종가
	ACC_TRDVOL string `json:"ACC_TRDVOL"` // 거래량
	ACC_TRDVAL string `json:"ACC_TRDVAL"` // 거래대금
	MKTCAP     string `json:"MKTCAP"`     // 시가총액
}

// FetchDailySnapshot returns the full-market OHLCV table for one trading date
func (c *KRXClient) FetchDailySnapshot(ctx context.Context, date time.Time) (*DailySnapshot, error) {
	rows, err := c.fetchQuotes(ctx, date)
	if err != nil {
		return nil, err
	}

	bars := make(map[string]Bar, len(rows))
	for _, row := range rows {
		closePrice := parseKRXNumber(row.TDD_CLSPRC)
		if row.ISU_SRT_CD == "" || closePrice == 0 {
			continue
		}
		bars[row.ISU_SRT_CD] = Bar{
			Open:       parseKRXNumber(row.TDD_OPNPRC),
			High:       parseKRXNumber(row.TDD_HGPRC),
			Low:        parseKRXNumber(row.TDD_LWPRC),
			Close:      closePrice,
			Volume:     parseKRXNumber(row.ACC_TRDVOL),
			TradeValue: parseKRXNumber(row.ACC_TRDVAL),
		}
	}

	// On holidays KRX answers with placeholder rows; an all-zero close table
	// counts as unavailable.
	if len(bars) == 0 {
		return nil, &DataUnavailableError{Date: date, Kind: "ohlcv"}
	}

	c.logger.WithFields(map[string]interface{}{
		"trade_date": DateKey(date),
		"tickers":    len(bars),
	}).Info("Fetched daily snapshot from KRX")

	return &DailySnapshot{Date: date, Bars: bars}, nil
}

// FetchMarketCapSnapshot returns the full-market capitalization table
func (c *KRXClient) FetchMarketCapSnapshot(ctx context.Context, date time.Time) (*MarketCapSnapshot, error) {
	rows, err := c.fetchQuotes(ctx, date)
	if err != nil {
		if _, ok := err.(*DataUnavailableError); ok {
			return nil, &DataUnavailableError{Date: date, Kind: "market_cap"}
		}
		return nil, err
	}

	caps := make(map[string]int64, len(rows))
	for _, row := range rows {
		cap := parseKRXNumber(row.MKTCAP)
		if row.ISU_SRT_CD == "" || cap == 0 {
			continue
		}
		caps[row.ISU_SRT_CD] = cap
	}

	if len(caps) == 0 {
		return nil, &DataUnavailableError{Date: date, Kind: "market_cap"}
	}

	c.logger.WithFields(map[string]interface{}{
		"trade_date": DateKey(date),
		"tickers":    len(caps),
	}).Debug("Fetched market cap snapshot from KRX")

	return &MarketCapSnapshot{Date: date, Caps: caps}, nil
}

// ResolvePriorBusinessDay returns the nearest trading day before the date
func (c *KRXClient) ResolvePriorBusinessDay(date time.Time) time.Time {
	return c.calendar.PriorBusinessDay(date)
}

// ResolveTickerName returns the ticker's display name via Naver Finance
func (c *KRXClient) ResolveTickerName(ctx context.Context, ticker string) (string, error) {
	return c.names.Resolve(ctx, ticker)
}

// fetchQuotes fetches (or reuses) the raw whole-market quote rows for a date
func (c *KRXClient) fetchQuotes(ctx context.Context, date time.Time) ([]krxQuoteRow, error) {
	key := DateKey(date)

	c.mu.Lock()
	cached, ok := c.rows[key]
	c.mu.Unlock()
	if ok {
		return cached, nil
	}

	krxURL := c.baseURL + "/comm/bldAttendant/getJsonData.cmd"

	formData := url.Values{
		"bld":         {"dbms/MDC/STAT/standard/MDCSTAT01501"},
		"locale":      {"ko_KR"},
		"mktId":       {"ALL"},
		"trdDd":       {key},
		"share":       {"1"},
		"money":       {"1"},
		"csvxls_isNo": {"false"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, krxURL, strings.NewReader(formData.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	// Browser-like headers (KRX blocks bot requests)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "application/json, text/javascript, */*; q=0.01")
	req.Header.Set("Accept-Language", "ko-KR,ko;q=0.9,en-US;q=0.8,en;q=0.7")
	req.Header.Set("Origin", "http://data.krx.co.kr")
	req.Header.Set("Referer", "http://data.krx.co.kr/contents/MDC/MDI/mdiLoader/index.cmd?menuId=MDC0201020101")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("KRX API request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("KRX API returned status %d: %s", resp.StatusCode, string(body[:min(200, len(body))]))
	}

	var apiResp krxQuoteResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		preview := string(body)
		if len(preview) > 500 {
			preview = preview[:500]
		}
		c.logger.WithField("response_preview", preview).Error("Failed to parse KRX response")
		return nil, fmt.Errorf("decode KRX response: %w", err)
	}

	if len(apiResp.OutBlock1) == 0 {
		return nil, &DataUnavailableError{Date: date, Kind: "ohlcv"}
	}

	c.mu.Lock()
	c.rows[key] = apiResp.OutBlock1
	c.mu.Unlock()

	return apiResp.OutBlock1, nil
}

// parseKRXNumber parses KRX number format (with commas) to int64
func parseKRXNumber(s string) int64 {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return 0
	}
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}
