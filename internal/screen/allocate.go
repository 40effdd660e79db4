package screen

import "sort"

// premiumMaxTickers caps the distinct tickers across all premium categories
const premiumMaxTickers = 3

// Allocation is the free/premium tier split of a run's trigger results.
// Category keys only appear when they carry at least one stock.
type Allocation struct {
	Free    map[Category][]ScoredCandidate
	Premium map[Category][]ScoredCandidate
}

// poolEntry is one (category, stock) occurrence. A ticker picked by two
// categories contributes two entries.
type poolEntry struct {
	Category Category
	Stock    ScoredCandidate
}

// Allocate splits trigger results into the free pick and the premium set.
//
// Free tier gets the single highest-scoring occurrence across every category.
// Premium gets at most 3 distinct tickers: a first pass walks categories in
// declaration order taking each one's top stock when its ticker is still
// unchosen, then a second pass walks the score-sorted pool adding stocks whose
// tickers are not yet chosen until the cap is reached or the pool runs out.
// A ticker never appears under more than one premium category.
func Allocate(results []TriggerResult) Allocation {
	alloc := Allocation{
		Free:    make(map[Category][]ScoredCandidate),
		Premium: make(map[Category][]ScoredCandidate),
	}

	pool := make([]poolEntry, 0)
	for _, res := range results {
		for _, s := range res.Stocks {
			pool = append(pool, poolEntry{Category: res.Category, Stock: s})
		}
	}
	if len(pool) == 0 {
		return alloc
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return scoredLess(pool[i].Stock, pool[j].Stock)
	})

	// 무료: 전체 풀 최고 점수 1건
	top := pool[0]
	alloc.Free[top.Category] = []ScoredCandidate{top.Stock}

	// 프리미엄 1차: 카테고리 선언 순서대로 각 트리거의 1위 종목
	chosen := make(map[string]bool)
	for _, res := range sortByCategory(results) {
		if len(chosen) >= premiumMaxTickers {
			break
		}
		if len(res.Stocks) == 0 {
			continue
		}
		best := res.Stocks[0]
		if chosen[best.Ticker] {
			continue
		}
		chosen[best.Ticker] = true
		alloc.Premium[res.Category] = append(alloc.Premium[res.Category], best)
	}

	// 프리미엄 2차: 점수순 풀에서 아직 안 뽑힌 종목으로 상한까지 채운다
	for _, entry := range pool {
		if len(chosen) >= premiumMaxTickers {
			break
		}
		if chosen[entry.Stock.Ticker] {
			continue
		}
		chosen[entry.Stock.Ticker] = true
		alloc.Premium[entry.Category] = append(alloc.Premium[entry.Category], entry.Stock)
	}

	return alloc
}

// sortByCategory returns results ordered by category declaration order
func sortByCategory(results []TriggerResult) []TriggerResult {
	out := make([]TriggerResult, len(results))
	copy(out, results)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Category < out[j].Category
	})
	return out
}
