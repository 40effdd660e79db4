package screen

// volumeMeanFraction is the liquidity floor relative to the market:
// 시장 평균 거래량의 20% 미만 종목은 제외한다.
const volumeMeanFraction = 0.2

// ApplyAbsoluteFilter returns the subset passing the fixed liquidity floors:
// tradeValue ≥ minTradeValue AND volume ≥ 0.2 × mean(volume), where the mean
// is computed over the pre-filter set. An empty result is a valid terminal
// state, not an error.
func ApplyAbsoluteFilter(cands []Candidate, minTradeValue float64) []Candidate {
	if len(cands) == 0 {
		return nil
	}

	var volumeSum float64
	for _, c := range cands {
		volumeSum += c.Volume
	}
	minVolume := volumeSum / float64(len(cands)) * volumeMeanFraction

	filtered := make([]Candidate, 0, len(cands))
	for _, c := range cands {
		if c.TradeValue >= minTradeValue && c.Volume >= minVolume {
			filtered = append(filtered, c)
		}
	}

	return filtered
}
