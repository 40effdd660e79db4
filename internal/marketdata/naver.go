package marketdata

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"github.com/4tenlab/prism-insight/pkg/config"
	"github.com/4tenlab/prism-insight/pkg/httputil"
	"github.com/4tenlab/prism-insight/pkg/logger"
	"github.com/4tenlab/prism-insight/pkg/redis"
)

// NaverNames resolves ticker display names from Naver Finance.
// ⭐ SSOT: 종목명 조회는 여기서만
type NaverNames struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	cache      *redis.Cache

	mu    sync.RWMutex
	names map[string]string
}

// NewNaverNames creates a new name resolver
func NewNaverNames(cfg *config.Config, httpClient *httputil.Client, cache *redis.Cache, log *logger.Logger) *NaverNames {
	return &NaverNames{
		httpClient: httpClient,
		logger:     log,
		baseURL:    cfg.Naver.BaseURL,
		cache:      cache,
		names:      make(map[string]string),
	}
}

// Resolve returns the display name for a ticker code. Best effort: callers
// must fall back to the raw code on error.
func (n *NaverNames) Resolve(ctx context.Context, ticker string) (string, error) {
	n.mu.RLock()
	name, ok := n.names[ticker]
	n.mu.RUnlock()
	if ok {
		return name, nil
	}

	var cached string
	if found, _ := n.cache.Get(ctx, redis.TickerNameKey(ticker), &cached); found && cached != "" {
		n.store(ticker, cached)
		return cached, nil
	}

	name, err := n.scrapeName(ctx, ticker)
	if err != nil {
		return "", err
	}

	n.store(ticker, name)
	_ = n.cache.Set(ctx, redis.TickerNameKey(ticker), name, redis.TTLShort)

	return name, nil
}

func (n *NaverNames) store(ticker, name string) {
	n.mu.Lock()
	n.names[ticker] = name
	n.mu.Unlock()
}

// scrapeName fetches the company page and extracts the name from the header
func (n *NaverNames) scrapeName(ctx context.Context, ticker string) (string, error) {
	fullURL := fmt.Sprintf("%s/item/main.naver?code=%s", n.baseURL, ticker)

	resp, err := n.httpClient.Get(ctx, fullURL)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse HTML failed: %w", err)
	}

	name := parseCompanyName(doc)
	if name == "" {
		return "", fmt.Errorf("company name not found for %s", ticker)
	}

	n.logger.WithFields(map[string]interface{}{
		"ticker": ticker,
		"name":   name,
	}).Debug("Resolved ticker name")

	return name, nil
}

// parseCompanyName extracts the company name from a Naver Finance item page
func parseCompanyName(doc *goquery.Document) string {
	// 종목 페이지 상단: <div class="wrap_company"><h2><a>삼성전자</a></h2>...
	name := strings.TrimSpace(doc.Find("div.wrap_company h2 a").First().Text())
	if name != "" {
		return name
	}

	// Fallback for the older page layout
	return strings.TrimSpace(doc.Find("div.wrap_company h2").First().Text())
}
