package screen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pick(ticker string, score float64) ScoredCandidate {
	return ScoredCandidate{Candidate: Candidate{Ticker: ticker}, Score: score}
}

func TestAllocate_FreeIsGlobalTop(t *testing.T) {
	results := []TriggerResult{
		{Category: CategoryVolumeSurge, Stocks: []ScoredCandidate{pick("A", 0.92), pick("B", 0.80)}},
		{Category: CategoryGapUpMomentum, Stocks: []ScoredCandidate{pick("C", 0.95)}},
	}

	alloc := Allocate(results)

	require.Len(t, alloc.Free, 1)
	free := alloc.Free[CategoryGapUpMomentum]
	require.Len(t, free, 1)
	assert.Equal(t, "C", free[0].Ticker)
	assert.Equal(t, 0.95, free[0].Score)
}

func TestAllocate_PremiumDistinctTickers(t *testing.T) {
	results := []TriggerResult{
		{Category: CategoryVolumeSurge, Stocks: []ScoredCandidate{pick("A", 0.9), pick("B", 0.8)}},
		{Category: CategoryGapUpMomentum, Stocks: []ScoredCandidate{pick("C", 0.7)}},
		{Category: CategoryValueToCap, Stocks: []ScoredCandidate{pick("D", 0.6), pick("E", 0.5)}},
		{Category: CategoryDailyRiseTop, Stocks: []ScoredCandidate{pick("F", 0.99)}},
	}

	alloc := Allocate(results)

	// 1차 패스는 카테고리 선언 순서: A, C, D에서 3종목 충족, F는 못 들어간다
	distinct := make(map[string]bool)
	for _, stocks := range alloc.Premium {
		for _, s := range stocks {
			distinct[s.Ticker] = true
		}
	}
	assert.Len(t, distinct, 3)
	assert.True(t, distinct["A"])
	assert.True(t, distinct["C"])
	assert.True(t, distinct["D"])
}

func TestAllocate_FirstPassSkipsTakenTicker(t *testing.T) {
	// 갭 상승 1위가 이미 선택된 A면 그 카테고리는 1차에서 건너뛴다
	results := []TriggerResult{
		{Category: CategoryVolumeSurge, Stocks: []ScoredCandidate{pick("A", 0.9)}},
		{Category: CategoryGapUpMomentum, Stocks: []ScoredCandidate{pick("A", 0.85), pick("B", 0.4)}},
		{Category: CategoryValueToCap, Stocks: []ScoredCandidate{pick("C", 0.3)}},
	}

	alloc := Allocate(results)

	distinct := make(map[string]bool)
	for _, stocks := range alloc.Premium {
		for _, s := range stocks {
			distinct[s.Ticker] = true
		}
	}
	assert.True(t, distinct["A"])
	assert.True(t, distinct["C"])
	assert.True(t, distinct["B"]) // 1차에서 2종목뿐이라 2차 풀에서 B를 채운다
}

func TestAllocate_SecondPassFillsFromPool(t *testing.T) {
	// 카테고리가 하나뿐이어도 풀의 차순위 종목으로 3종목을 채운다
	results := []TriggerResult{
		{Category: CategoryVolumeSurge, Stocks: []ScoredCandidate{pick("A", 0.9), pick("B", 0.8), pick("C", 0.7)}},
	}

	alloc := Allocate(results)

	stocks := alloc.Premium[CategoryVolumeSurge]
	require.Len(t, stocks, 3)
	assert.Equal(t, "A", stocks[0].Ticker)
	assert.Equal(t, "B", stocks[1].Ticker)
	assert.Equal(t, "C", stocks[2].Ticker)
}

func TestAllocate_TickerAppearsOnceAcrossCategories(t *testing.T) {
	// 두 카테고리 1위가 같은 A면 프리미엄에는 한 번만 실린다
	results := []TriggerResult{
		{Category: CategoryVolumeSurge, Stocks: []ScoredCandidate{pick("A", 0.9)}},
		{Category: CategoryGapUpMomentum, Stocks: []ScoredCandidate{pick("A", 0.85)}},
	}

	alloc := Allocate(results)

	count := 0
	for _, stocks := range alloc.Premium {
		for _, s := range stocks {
			if s.Ticker == "A" {
				count++
			}
		}
	}
	assert.Equal(t, 1, count)
	require.Len(t, alloc.Premium[CategoryVolumeSurge], 1)
	assert.Empty(t, alloc.Premium[CategoryGapUpMomentum])
}

func TestAllocate_NoDuplicateWithinCategory(t *testing.T) {
	results := []TriggerResult{
		{Category: CategoryVolumeSurge, Stocks: []ScoredCandidate{pick("A", 0.9), pick("B", 0.8)}},
		{Category: CategoryGapUpMomentum, Stocks: []ScoredCandidate{pick("B", 0.7)}},
	}

	alloc := Allocate(results)

	for cat, stocks := range alloc.Premium {
		seen := make(map[string]bool)
		for _, s := range stocks {
			assert.False(t, seen[s.Ticker], "duplicate %s in %s", s.Ticker, cat)
			seen[s.Ticker] = true
		}
	}
}

func TestAllocate_Empty(t *testing.T) {
	alloc := Allocate(nil)
	assert.Empty(t, alloc.Free)
	assert.Empty(t, alloc.Premium)

	alloc = Allocate([]TriggerResult{
		{Category: CategoryVolumeSurge},
		{Category: CategoryGapUpMomentum},
	})
	assert.Empty(t, alloc.Free)
	assert.Empty(t, alloc.Premium)
}
