package screen

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeMetrics_TypicalRow(t *testing.T) {
	cands := []Candidate{{
		Ticker:     "005930",
		Open:       10_100,
		High:       10_600,
		Low:        10_000,
		Close:      10_500,
		Volume:     1_500_000,
		TradeValue: 15_000_000_000,
		PrevClose:  10_000,
		PrevVolume: 1_000_000,
		MarketCap:  3_000_000_000_000,
	}}

	rows := ComputeMetrics(cands)
	require.Len(t, rows, 1)
	m := rows[0].Metrics

	assert.InDelta(t, 1.5, m.VolumeRatio, 1e-9)
	assert.InDelta(t, 50.0, m.VolumeGrowthPct, 1e-9)
	assert.InDelta(t, 3.960396, m.IntradayChangePct, 1e-4) // (10500/10100-1)*100
	assert.InDelta(t, 5.0, m.DayOverDayChangePct, 1e-9)
	assert.InDelta(t, 1.0, m.GapPct, 1e-9)
	assert.InDelta(t, 500.0/600.0, m.ClosingStrength, 1e-9)
	assert.InDelta(t, 0.5, m.ValueToCapRatioPct, 1e-9)
}

func TestComputeMetrics_ZeroPrevVolumeIsUndefined(t *testing.T) {
	rows := ComputeMetrics([]Candidate{{
		Ticker: "A", Open: 100, High: 110, Low: 90, Close: 105,
		Volume: 1000, PrevClose: 100, PrevVolume: 0,
		MarketCap: math.NaN(),
	}})

	m := rows[0].Metrics
	assert.False(t, Defined(m.VolumeRatio))
	assert.False(t, Defined(m.VolumeGrowthPct)) // NaN 전파
	assert.True(t, Defined(m.IntradayChangePct))
}

func TestComputeMetrics_ZeroBasesAreUndefined(t *testing.T) {
	rows := ComputeMetrics([]Candidate{{
		Ticker: "A", Open: 0, High: 110, Low: 90, Close: 105,
		Volume: 1000, PrevClose: 0, PrevVolume: 500,
		MarketCap: math.NaN(),
	}})

	m := rows[0].Metrics
	assert.False(t, Defined(m.IntradayChangePct))
	assert.False(t, Defined(m.DayOverDayChangePct))
	assert.False(t, Defined(m.GapPct))
}

func TestComputeMetrics_FlatRangeClosingStrength(t *testing.T) {
	// 고가 == 저가(점상 등): 관례적으로 0
	rows := ComputeMetrics([]Candidate{{
		Ticker: "A", Open: 100, High: 100, Low: 100, Close: 100,
		Volume: 1000, PrevClose: 90, PrevVolume: 500,
		MarketCap: math.NaN(),
	}})

	assert.Equal(t, 0.0, rows[0].ClosingStrength)
}

func TestComputeMetrics_NoMarketCap(t *testing.T) {
	rows := ComputeMetrics([]Candidate{{
		Ticker: "A", Open: 100, High: 110, Low: 90, Close: 105,
		Volume: 1000, TradeValue: 1e9, PrevClose: 100, PrevVolume: 500,
		MarketCap: math.NaN(),
	}})

	assert.False(t, Defined(rows[0].ValueToCapRatioPct))
}
