package params

import "fmt"

// Params holds the six trigger pipelines' thresholds and score weights.
// 기본값이 계약이다 — YAML 오버라이드는 운영 실험용.
type Params struct {
	VolumeSurge     VolumeSurgeParams     `yaml:"volume_surge"`
	GapUpMomentum   GapUpMomentumParams   `yaml:"gap_up_momentum"`
	ValueToCap      ValueToCapParams      `yaml:"value_to_cap"`
	DailyRiseTop    DailyRiseTopParams    `yaml:"daily_rise_top"`
	ClosingStrength ClosingStrengthParams `yaml:"closing_strength"`
	VolumeSurgeFlat VolumeSurgeFlatParams `yaml:"volume_surge_flat"`
}

// VolumeSurgeParams configures [오전 트리거1] 거래량 급증 상위주
type VolumeSurgeParams struct {
	MinTradeValue      float64 `yaml:"min_trade_value"`
	MinVolumeGrowthPct float64 `yaml:"min_volume_growth_pct"`
	TopN               int     `yaml:"top_n"`
	GrowthWeight       float64 `yaml:"growth_weight"`
	VolumeWeight       float64 `yaml:"volume_weight"`
}

// GapUpMomentumParams configures [오전 트리거2] 갭 상승 모멘텀 상위주
type GapUpMomentumParams struct {
	MinTradeValue    float64 `yaml:"min_trade_value"`
	MinGapPct        float64 `yaml:"min_gap_pct"`
	TopN             int     `yaml:"top_n"`
	GapWeight        float64 `yaml:"gap_weight"`
	IntradayWeight   float64 `yaml:"intraday_weight"`
	TradeValueWeight float64 `yaml:"trade_value_weight"`
}

// ValueToCapParams configures [오전 트리거3] 시총 대비 집중 자금 유입 상위주
type ValueToCapParams struct {
	MinTradeValue    float64 `yaml:"min_trade_value"`
	MinMarketCap     float64 `yaml:"min_market_cap"`
	TopN             int     `yaml:"top_n"`
	RatioWeight      float64 `yaml:"ratio_weight"`
	TradeValueWeight float64 `yaml:"trade_value_weight"`
	IntradayWeight   float64 `yaml:"intraday_weight"`
}

// DailyRiseTopParams configures [오후 트리거1] 일중 상승률 상위주
type DailyRiseTopParams struct {
	MinTradeValue       float64 `yaml:"min_trade_value"`
	MinIntradayChangePct float64 `yaml:"min_intraday_change_pct"`
	TopN                int     `yaml:"top_n"`
	IntradayWeight      float64 `yaml:"intraday_weight"`
	TradeValueWeight    float64 `yaml:"trade_value_weight"`
}

// ClosingStrengthParams configures [오후 트리거2] 마감 강도 상위주
type ClosingStrengthParams struct {
	MinTradeValue    float64 `yaml:"min_trade_value"`
	TopN             int     `yaml:"top_n"`
	StrengthWeight   float64 `yaml:"strength_weight"`
	GrowthWeight     float64 `yaml:"growth_weight"`
	TradeValueWeight float64 `yaml:"trade_value_weight"`
}

// VolumeSurgeFlatParams configures [오후 트리거3] 거래량 증가 상위 횡보주
type VolumeSurgeFlatParams struct {
	MinTradeValue          float64 `yaml:"min_trade_value"`
	MinVolumeGrowthPct     float64 `yaml:"min_volume_growth_pct"`
	MaxAbsIntradayChangePct float64 `yaml:"max_abs_intraday_change_pct"`
	TopN                   int     `yaml:"top_n"`
	GrowthWeight           float64 `yaml:"growth_weight"`
	TradeValueWeight       float64 `yaml:"trade_value_weight"`
}

// Default returns the contract parameter values
func Default() Params {
	return Params{
		VolumeSurge: VolumeSurgeParams{
			MinTradeValue:      500_000_000, // 5억원
			MinVolumeGrowthPct: 30.0,
			TopN:               10,
			GrowthWeight:       0.6,
			VolumeWeight:       0.4,
		},
		GapUpMomentum: GapUpMomentumParams{
			MinTradeValue:    500_000_000,
			MinGapPct:        1.0,
			TopN:             15,
			GapWeight:        0.5,
			IntradayWeight:   0.3,
			TradeValueWeight: 0.2,
		},
		ValueToCap: ValueToCapParams{
			MinTradeValue:    500_000_000,
			MinMarketCap:     10_000_000_000, // 100억원
			TopN:             10,
			RatioWeight:      0.5,
			TradeValueWeight: 0.3,
			IntradayWeight:   0.2,
		},
		DailyRiseTop: DailyRiseTopParams{
			MinTradeValue:        1_000_000_000, // 10억원
			MinIntradayChangePct: 3.0,
			TopN:                 15,
			IntradayWeight:       0.6,
			TradeValueWeight:     0.4,
		},
		ClosingStrength: ClosingStrengthParams{
			MinTradeValue:    500_000_000,
			TopN:             15,
			StrengthWeight:   0.5,
			GrowthWeight:     0.3,
			TradeValueWeight: 0.2,
		},
		VolumeSurgeFlat: VolumeSurgeFlatParams{
			MinTradeValue:           500_000_000,
			MinVolumeGrowthPct:      50.0,
			MaxAbsIntradayChangePct: 5.0,
			TopN:                    20,
			GrowthWeight:            0.6,
			TradeValueWeight:        0.4,
		},
	}
}

// Validate checks thresholds and weight sums for every trigger
func Validate(p *Params) error {
	checks := []struct {
		name    string
		minVal  float64
		topN    int
		weights []float64
	}{
		{"volume_surge", p.VolumeSurge.MinTradeValue, p.VolumeSurge.TopN,
			[]float64{p.VolumeSurge.GrowthWeight, p.VolumeSurge.VolumeWeight}},
		{"gap_up_momentum", p.GapUpMomentum.MinTradeValue, p.GapUpMomentum.TopN,
			[]float64{p.GapUpMomentum.GapWeight, p.GapUpMomentum.IntradayWeight, p.GapUpMomentum.TradeValueWeight}},
		{"value_to_cap", p.ValueToCap.MinTradeValue, p.ValueToCap.TopN,
			[]float64{p.ValueToCap.RatioWeight, p.ValueToCap.TradeValueWeight, p.ValueToCap.IntradayWeight}},
		{"daily_rise_top", p.DailyRiseTop.MinTradeValue, p.DailyRiseTop.TopN,
			[]float64{p.DailyRiseTop.IntradayWeight, p.DailyRiseTop.TradeValueWeight}},
		{"closing_strength", p.ClosingStrength.MinTradeValue, p.ClosingStrength.TopN,
			[]float64{p.ClosingStrength.StrengthWeight, p.ClosingStrength.GrowthWeight, p.ClosingStrength.TradeValueWeight}},
		{"volume_surge_flat", p.VolumeSurgeFlat.MinTradeValue, p.VolumeSurgeFlat.TopN,
			[]float64{p.VolumeSurgeFlat.GrowthWeight, p.VolumeSurgeFlat.TradeValueWeight}},
	}

	for _, c := range checks {
		if c.minVal <= 0 {
			return fmt.Errorf("%s: min_trade_value must be positive", c.name)
		}
		if c.topN < 1 {
			return fmt.Errorf("%s: top_n must be at least 1", c.name)
		}
		if !weightsSumToOne(c.weights) {
			return fmt.Errorf("%s: score weights must sum to 1.0", c.name)
		}
	}

	return nil
}

// weightsSumToOne checks the sum with a small floating point tolerance
func weightsSumToOne(weights []float64) bool {
	sum := 0.0
	for _, w := range weights {
		if w < 0 {
			return false
		}
		sum += w
	}
	return sum >= 0.99 && sum <= 1.01
}
