package commands

import (
	"fmt"

	"github.com/4tenlab/prism-insight/internal/batch"
	"github.com/4tenlab/prism-insight/internal/marketdata"
	"github.com/4tenlab/prism-insight/internal/params"
	"github.com/4tenlab/prism-insight/internal/report"
	"github.com/4tenlab/prism-insight/internal/screen"
	"github.com/4tenlab/prism-insight/pkg/config"
	"github.com/4tenlab/prism-insight/pkg/httputil"
	"github.com/4tenlab/prism-insight/pkg/logger"
	"github.com/4tenlab/prism-insight/pkg/redis"
)

// setup loads config and builds the logger, applying CLI flag overrides
func setup() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFormat != "" {
		cfg.LogFormat = logFormat
	}

	return cfg, logger.New(cfg.LogLevel, cfg.LogFormat), nil
}

// buildRunner wires the full batch stack. The returned cleanup closes the
// Redis connection.
func buildRunner(cfg *config.Config, log *logger.Logger) (*batch.Runner, func(), error) {
	// 1. Redis (optional snapshot cache)
	redisClient, err := redis.New(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to redis: %w", err)
	}
	cache := redis.NewCache(redisClient, "prism")

	// 2. HTTP client with KRX rate limit
	httpClient := httputil.New(log, cfg.KRX.Timeout).
		WithRateLimit(cfg.KRX.RequestsPerSec, 1)

	// 3. Market data provider
	names := marketdata.NewNaverNames(cfg, httpClient, cache, log)
	krxClient := marketdata.NewKRXClient(cfg, httpClient, names, log)
	provider := marketdata.NewCachedProvider(krxClient, cache, log)

	// 4. Trigger parameters (defaults, optionally overridden by YAML)
	p := params.Default()
	if cfg.Batch.ParamsFile != "" {
		p, err = params.Load(cfg.Batch.ParamsFile)
		if err != nil {
			redisClient.Close()
			return nil, nil, fmt.Errorf("load trigger params: %w", err)
		}
	}

	// 5. Engine, report builder, writer
	engine := screen.NewEngine(p, log)
	builder := report.NewBuilder(provider, log)
	writer, err := report.NewWriter(cfg.Batch.OutputDir, log)
	if err != nil {
		redisClient.Close()
		return nil, nil, err
	}

	runner := batch.NewRunner(provider, engine, builder, writer, log)
	cleanup := func() { redisClient.Close() }

	return runner, cleanup, nil
}
