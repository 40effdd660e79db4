package marketdata

import (
	"context"
	"errors"
	"time"

	"github.com/4tenlab/prism-insight/pkg/logger"
	"github.com/4tenlab/prism-insight/pkg/redis"
)

// CachedProvider decorates a Provider with a Redis snapshot cache so the
// afternoon run reuses the morning run's prior-day fetches.
// 캐시는 당일 원시 시세만 담는다 — 엔진 상태는 절대 저장하지 않는다.
type CachedProvider struct {
	inner  Provider
	cache  *redis.Cache
	logger *logger.Logger
}

// NewCachedProvider wraps a provider with the snapshot cache
func NewCachedProvider(inner Provider, cache *redis.Cache, log *logger.Logger) *CachedProvider {
	return &CachedProvider{
		inner:  inner,
		cache:  cache,
		logger: log,
	}
}

// FetchDailySnapshot returns a cached snapshot or fetches and caches one
func (p *CachedProvider) FetchDailySnapshot(ctx context.Context, date time.Time) (*DailySnapshot, error) {
	key := redis.SnapshotKey(DateKey(date))

	var snap DailySnapshot
	if found, err := p.cache.Get(ctx, key, &snap); err == nil && found && len(snap.Bars) > 0 {
		p.logger.WithField("trade_date", DateKey(date)).Debug("Snapshot cache hit")
		return &snap, nil
	}

	fetched, err := p.inner.FetchDailySnapshot(ctx, date)
	if err != nil {
		return nil, err
	}

	// Unavailable dates are never cached; a failed Set only costs a refetch
	if cerr := p.cache.Set(ctx, key, fetched, redis.TTLDaily); cerr != nil {
		p.logger.WithError(cerr).Warn("Snapshot cache write failed")
	}

	return fetched, nil
}

// FetchMarketCapSnapshot returns a cached cap table or fetches and caches one
func (p *CachedProvider) FetchMarketCapSnapshot(ctx context.Context, date time.Time) (*MarketCapSnapshot, error) {
	key := redis.MarketCapKey(DateKey(date))

	var snap MarketCapSnapshot
	if found, err := p.cache.Get(ctx, key, &snap); err == nil && found && len(snap.Caps) > 0 {
		p.logger.WithField("trade_date", DateKey(date)).Debug("Market cap cache hit")
		return &snap, nil
	}

	fetched, err := p.inner.FetchMarketCapSnapshot(ctx, date)
	if err != nil {
		return nil, err
	}

	if cerr := p.cache.Set(ctx, key, fetched, redis.TTLDaily); cerr != nil {
		p.logger.WithError(cerr).Warn("Market cap cache write failed")
	}

	return fetched, nil
}

// ResolvePriorBusinessDay delegates to the wrapped provider
func (p *CachedProvider) ResolvePriorBusinessDay(date time.Time) time.Time {
	return p.inner.ResolvePriorBusinessDay(date)
}

// ResolveTickerName delegates to the wrapped provider
func (p *CachedProvider) ResolveTickerName(ctx context.Context, ticker string) (string, error) {
	return p.inner.ResolveTickerName(ctx, ticker)
}

// IsDataUnavailable reports whether the error is the DataUnavailable class
func IsDataUnavailable(err error) bool {
	var unavailable *DataUnavailableError
	return errors.As(err, &unavailable)
}
