package screen

import "math"

// Metrics holds the day-over-day relative metrics for one candidate.
// Undefined values are NaN — they propagate through arithmetic, and every
// qualifier is written "Defined(x) && condition" so undefined rows drop out
// of filters instead of raising.
type Metrics struct {
	VolumeRatio         float64 // 당일거래량 / 전일거래량
	VolumeGrowthPct     float64 // (비율 - 1) × 100
	IntradayChangePct   float64 // 시가 대비 종가 등락률
	DayOverDayChangePct float64 // 전일 종가 대비 등락률
	GapPct              float64 // 전일 종가 대비 시가 갭
	ClosingStrength     float64 // (종가-저가)/(고가-저가), 고가==저가이면 0
	ValueToCapRatioPct  float64 // 거래대금 / 시가총액 × 100
}

// ScoredCandidate is a candidate row with its derived metrics and, after
// scoring, a composite score in [0,1].
type ScoredCandidate struct {
	Candidate
	Metrics
	Score float64
}

// Defined reports whether a metric value is defined (not NaN)
func Defined(v float64) bool {
	return !math.IsNaN(v)
}

// ComputeMetrics derives the relative metrics for every candidate. The input
// slice is not modified.
func ComputeMetrics(cands []Candidate) []ScoredCandidate {
	rows := make([]ScoredCandidate, 0, len(cands))

	for _, c := range cands {
		m := Metrics{
			VolumeRatio:         ratio(c.Volume, c.PrevVolume),
			IntradayChangePct:   changePct(c.Close, c.Open),
			DayOverDayChangePct: changePct(c.Close, c.PrevClose),
			GapPct:              changePct(c.Open, c.PrevClose),
			ClosingStrength:     closingStrength(c),
			ValueToCapRatioPct:  valueToCapPct(c),
		}
		m.VolumeGrowthPct = (m.VolumeRatio - 1) * 100

		rows = append(rows, ScoredCandidate{Candidate: c, Metrics: m})
	}

	return rows
}

// ratio returns num/den, NaN when the denominator is zero
func ratio(num, den float64) float64 {
	if den == 0 {
		return math.NaN()
	}
	return num / den
}

// changePct returns (cur/base - 1) × 100, NaN when base is zero
func changePct(cur, base float64) float64 {
	if base == 0 {
		return math.NaN()
	}
	return (cur/base - 1) * 100
}

// closingStrength measures how close the close is to the high:
// (close-low)/(high-low), with a fixed 0 when the day's range is zero.
func closingStrength(c Candidate) float64 {
	if c.High == c.Low {
		return 0
	}
	return (c.Close - c.Low) / (c.High - c.Low)
}

// valueToCapPct returns tradeValue/marketCap × 100; NaN without a cap join
func valueToCapPct(c Candidate) float64 {
	if !Defined(c.MarketCap) || c.MarketCap == 0 {
		return math.NaN()
	}
	return c.TradeValue / c.MarketCap * 100
}
