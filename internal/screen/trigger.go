package screen

import (
	"github.com/4tenlab/prism-insight/internal/marketdata"
	"github.com/4tenlab/prism-insight/internal/params"
	"github.com/4tenlab/prism-insight/pkg/logger"
)

// Category identifies one detection pipeline. The declaration order is a
// contract: the allocator's first premium pass walks categories in this
// order.
type Category int

const (
	// 오전 트리거
	CategoryVolumeSurge Category = iota
	CategoryGapUpMomentum
	CategoryValueToCap
	// 오후 트리거
	CategoryDailyRiseTop
	CategoryClosingStrength
	CategoryVolumeSurgeFlat
)

// maxSelected caps every trigger's final pick count
const maxSelected = 3

// String returns the category's stable identifier
func (c Category) String() string {
	switch c {
	case CategoryVolumeSurge:
		return "volume_surge"
	case CategoryGapUpMomentum:
		return "gap_up_momentum"
	case CategoryValueToCap:
		return "value_to_cap"
	case CategoryDailyRiseTop:
		return "daily_rise_top"
	case CategoryClosingStrength:
		return "closing_strength"
	case CategoryVolumeSurgeFlat:
		return "volume_surge_flat"
	default:
		return "unknown"
	}
}

// DisplayName returns the category's report key (리포트 JSON의 키)
func (c Category) DisplayName() string {
	switch c {
	case CategoryVolumeSurge:
		return "거래량 급증 상위주"
	case CategoryGapUpMomentum:
		return "갭 상승 모멘텀 상위주"
	case CategoryValueToCap:
		return "시총 대비 집중 자금 유입 상위주"
	case CategoryDailyRiseTop:
		return "일중 상승률 상위주"
	case CategoryClosingStrength:
		return "마감 강도 상위주"
	case CategoryVolumeSurgeFlat:
		return "거래량 증가 상위 횡보주"
	default:
		return "unknown"
	}
}

// MorningCategories returns the morning pipelines in declaration order
func MorningCategories() []Category {
	return []Category{CategoryVolumeSurge, CategoryGapUpMomentum, CategoryValueToCap}
}

// AfternoonCategories returns the afternoon pipelines in declaration order
func AfternoonCategories() []Category {
	return []Category{CategoryDailyRiseTop, CategoryClosingStrength, CategoryVolumeSurgeFlat}
}

// TriggerResult is one category's ranked picks: at most 3 rows, descending
// composite score. May be empty — an empty result is a valid outcome.
type TriggerResult struct {
	Category Category
	Stocks   []ScoredCandidate
}

// Engine runs the trigger pipelines over a candidate set.
// ⭐ SSOT: 스크리닝/랭킹 로직은 이 패키지에서만
type Engine struct {
	params params.Params
	logger *logger.Logger
}

// NewEngine creates an engine with the given trigger parameters
func NewEngine(p params.Params, log *logger.Logger) *Engine {
	return &Engine{
		params: p,
		logger: log,
	}
}

// Run executes one category pipeline. Candidates are shared read-only across
// categories; every stage works on fresh slices (no derived column leaks
// between pipelines).
func (e *Engine) Run(cat Category, cands []Candidate, caps *marketdata.MarketCapSnapshot) TriggerResult {
	var picked []ScoredCandidate

	switch cat {
	case CategoryVolumeSurge:
		picked = e.volumeSurge(cands)
	case CategoryGapUpMomentum:
		picked = e.gapUpMomentum(cands)
	case CategoryValueToCap:
		picked = e.valueToCap(cands, caps)
	case CategoryDailyRiseTop:
		picked = e.dailyRiseTop(cands)
	case CategoryClosingStrength:
		picked = e.closingStrength(cands)
	case CategoryVolumeSurgeFlat:
		picked = e.volumeSurgeFlat(cands)
	}

	e.logger.WithFields(map[string]interface{}{
		"category": cat.String(),
		"picked":   len(picked),
	}).Debug("Trigger pipeline completed")

	return TriggerResult{Category: cat, Stocks: picked}
}

// volumeSurge implements [오전 트리거1] 당일 거래량 급증 상위주
func (e *Engine) volumeSurge(cands []Candidate) []ScoredCandidate {
	p := e.params.VolumeSurge

	rows := ComputeMetrics(ApplyAbsoluteFilter(cands, p.MinTradeValue))
	rows = keep(rows, func(r *ScoredCandidate) bool {
		return Defined(r.VolumeGrowthPct) && r.VolumeGrowthPct >= p.MinVolumeGrowthPct
	})
	if len(rows) == 0 {
		return nil
	}

	rows = Score(rows, []WeightedMetric{
		{Metric: func(r *ScoredCandidate) float64 { return r.VolumeGrowthPct }, Weight: p.GrowthWeight},
		{Metric: func(r *ScoredCandidate) float64 { return r.Volume }, Weight: p.VolumeWeight},
	})

	// 1차: 점수 상위 top_n, 2차: 상승세 종목만 — the qualifier runs after the
	// cut, so it may shrink the result below 3 even when more raw candidates
	// exist. 정밀도 우선.
	rows = head(rows, p.TopN)
	rows = keep(rows, stillRising)

	return head(rows, maxSelected)
}

// gapUpMomentum implements [오전 트리거2] 갭 상승 모멘텀 상위주
func (e *Engine) gapUpMomentum(cands []Candidate) []ScoredCandidate {
	p := e.params.GapUpMomentum

	rows := ComputeMetrics(ApplyAbsoluteFilter(cands, p.MinTradeValue))
	rows = keep(rows, func(r *ScoredCandidate) bool {
		return Defined(r.GapPct) && r.GapPct >= p.MinGapPct
	})
	if len(rows) == 0 {
		return nil
	}

	rows = Score(rows, []WeightedMetric{
		{Metric: func(r *ScoredCandidate) float64 { return r.GapPct }, Weight: p.GapWeight},
		{Metric: func(r *ScoredCandidate) float64 { return r.IntradayChangePct }, Weight: p.IntradayWeight},
		{Metric: func(r *ScoredCandidate) float64 { return r.TradeValue }, Weight: p.TradeValueWeight},
	})

	rows = head(rows, p.TopN)
	rows = keep(rows, stillRising)

	return head(rows, maxSelected)
}

// valueToCap implements [오전 트리거3] 시총 대비 집중 자금 유입 상위주
func (e *Engine) valueToCap(cands []Candidate, caps *marketdata.MarketCapSnapshot) []ScoredCandidate {
	p := e.params.ValueToCap

	if caps == nil || len(caps.Caps) == 0 {
		e.logger.Warn("Value-to-cap trigger skipped: no market cap data")
		return nil
	}

	joined := WithMarketCaps(cands, caps)
	rows := ComputeMetrics(ApplyAbsoluteFilter(joined, p.MinTradeValue))
	rows = keep(rows, func(r *ScoredCandidate) bool {
		return Defined(r.MarketCap) && r.MarketCap >= p.MinMarketCap
	})
	if len(rows) == 0 {
		return nil
	}

	rows = Score(rows, []WeightedMetric{
		{Metric: func(r *ScoredCandidate) float64 { return r.ValueToCapRatioPct }, Weight: p.RatioWeight},
		{Metric: func(r *ScoredCandidate) float64 { return r.TradeValue }, Weight: p.TradeValueWeight},
		{Metric: func(r *ScoredCandidate) float64 { return r.IntradayChangePct }, Weight: p.IntradayWeight},
	})

	rows = head(rows, p.TopN)
	rows = keep(rows, stillRising)

	return head(rows, maxSelected)
}

// dailyRiseTop implements [오후 트리거1] 일중 상승률 상위주. 유일하게 2차
// 필터가 없는 트리거.
func (e *Engine) dailyRiseTop(cands []Candidate) []ScoredCandidate {
	p := e.params.DailyRiseTop

	rows := ComputeMetrics(ApplyAbsoluteFilter(cands, p.MinTradeValue))
	rows = keep(rows, func(r *ScoredCandidate) bool {
		return Defined(r.IntradayChangePct) && r.IntradayChangePct >= p.MinIntradayChangePct
	})
	if len(rows) == 0 {
		return nil
	}

	rows = Score(rows, []WeightedMetric{
		{Metric: func(r *ScoredCandidate) float64 { return r.IntradayChangePct }, Weight: p.IntradayWeight},
		{Metric: func(r *ScoredCandidate) float64 { return r.TradeValue }, Weight: p.TradeValueWeight},
	})

	rows = head(rows, p.TopN)

	return head(rows, maxSelected)
}

// closingStrength implements [오후 트리거2] 마감 강도 상위주
func (e *Engine) closingStrength(cands []Candidate) []ScoredCandidate {
	p := e.params.ClosingStrength

	rows := ComputeMetrics(ApplyAbsoluteFilter(cands, p.MinTradeValue))
	// 전일 대비 거래량 증가 종목만. 전일 거래량 0은 undefined로 제외된다.
	rows = keep(rows, func(r *ScoredCandidate) bool {
		return Defined(r.VolumeRatio) && r.Volume > r.PrevVolume
	})
	if len(rows) == 0 {
		return nil
	}

	rows = Score(rows, []WeightedMetric{
		{Metric: func(r *ScoredCandidate) float64 { return r.ClosingStrength }, Weight: p.StrengthWeight},
		{Metric: func(r *ScoredCandidate) float64 { return r.VolumeGrowthPct }, Weight: p.GrowthWeight},
		{Metric: func(r *ScoredCandidate) float64 { return r.TradeValue }, Weight: p.TradeValueWeight},
	})

	rows = head(rows, p.TopN)
	rows = keep(rows, stillRising)

	return head(rows, maxSelected)
}

// volumeSurgeFlat implements [오후 트리거3] 거래량 증가 상위 횡보주
func (e *Engine) volumeSurgeFlat(cands []Candidate) []ScoredCandidate {
	p := e.params.VolumeSurgeFlat

	rows := ComputeMetrics(ApplyAbsoluteFilter(cands, p.MinTradeValue))
	rows = keep(rows, func(r *ScoredCandidate) bool {
		return Defined(r.VolumeGrowthPct) && r.VolumeGrowthPct >= p.MinVolumeGrowthPct
	})
	if len(rows) == 0 {
		return nil
	}

	rows = Score(rows, []WeightedMetric{
		{Metric: func(r *ScoredCandidate) float64 { return r.VolumeGrowthPct }, Weight: p.GrowthWeight},
		{Metric: func(r *ScoredCandidate) float64 { return r.TradeValue }, Weight: p.TradeValueWeight},
	})

	rows = head(rows, p.TopN)
	// 횡보 종목만: 장중등락률 ±5% 이내
	rows = keep(rows, func(r *ScoredCandidate) bool {
		return Defined(r.IntradayChangePct) &&
			r.IntradayChangePct >= -p.MaxAbsIntradayChangePct &&
			r.IntradayChangePct <= p.MaxAbsIntradayChangePct
	})

	return head(rows, maxSelected)
}

// stillRising is the shared "상승세" qualifier: close above open
func stillRising(r *ScoredCandidate) bool {
	return r.Close > r.Open
}
