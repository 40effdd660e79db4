package screen

import (
	"math"
	"sort"

	"github.com/4tenlab/prism-insight/internal/marketdata"
)

// Candidate is one ticker's raw working row: today's bar joined with
// yesterday's close/volume. Rows are immutable values — every stage returns a
// new slice instead of adding columns in place.
type Candidate struct {
	Ticker     string
	Open       float64
	High       float64
	Low        float64
	Close      float64
	Volume     float64
	TradeValue float64

	PrevClose  float64
	PrevVolume float64

	// MarketCap is NaN until WithMarketCaps joins the cap table
	MarketCap float64
}

// BuildCandidates joins today's snapshot against the prior day on the ticker
// intersection. Rows come out sorted by ticker so every run over the same
// snapshots is deterministic.
func BuildCandidates(today, prev *marketdata.DailySnapshot) []Candidate {
	cands := make([]Candidate, 0, len(today.Bars))

	for ticker, bar := range today.Bars {
		prevBar, ok := prev.Bars[ticker]
		if !ok {
			continue
		}

		cands = append(cands, Candidate{
			Ticker:     ticker,
			Open:       float64(bar.Open),
			High:       float64(bar.High),
			Low:        float64(bar.Low),
			Close:      float64(bar.Close),
			Volume:     float64(bar.Volume),
			TradeValue: float64(bar.TradeValue),
			PrevClose:  float64(prevBar.Close),
			PrevVolume: float64(prevBar.Volume),
			MarketCap:  math.NaN(),
		})
	}

	sort.Slice(cands, func(i, j int) bool {
		return cands[i].Ticker < cands[j].Ticker
	})

	return cands
}

// WithMarketCaps inner-joins the market cap table: rows without a cap entry
// are dropped, the rest get MarketCap set. The input is not modified.
func WithMarketCaps(cands []Candidate, caps *marketdata.MarketCapSnapshot) []Candidate {
	joined := make([]Candidate, 0, len(cands))

	for _, c := range cands {
		cap, ok := caps.Caps[c.Ticker]
		if !ok || cap <= 0 {
			continue
		}
		c.MarketCap = float64(cap)
		joined = append(joined, c)
	}

	return joined
}
