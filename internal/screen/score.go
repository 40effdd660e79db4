package screen

import "sort"

// WeightedMetric pairs a metric accessor with its score weight
type WeightedMetric struct {
	Metric func(*ScoredCandidate) float64
	Weight float64
}

// Score computes the weighted composite score for every row: each metric is
// min-max normalized over the set, then summed as Σ weight_i × norm_i. With
// weights summing to 1 the score lies in [0,1]. Returns a new slice sorted
// descending by score; equal scores break ties by ascending ticker code (the
// incoming table order is not a contract).
func Score(rows []ScoredCandidate, terms []WeightedMetric) []ScoredCandidate {
	scored := make([]ScoredCandidate, len(rows))
	copy(scored, rows)

	norms := make([][]float64, len(terms))
	for t, term := range terms {
		norms[t] = MinMaxNormalize(scored, term.Metric)
	}

	for i := range scored {
		score := 0.0
		for t, term := range terms {
			score += term.Weight * norms[t][i]
		}
		scored[i].Score = score
	}

	SortByScore(scored)
	return scored
}

// SortByScore orders rows descending by composite score, ties by ascending
// ticker. NaN scores sort last.
func SortByScore(rows []ScoredCandidate) {
	sort.SliceStable(rows, func(i, j int) bool {
		return scoredLess(rows[i], rows[j])
	})
}

// scoredLess is the package-wide ranking order: score descending, NaN scores
// last, ties by ascending ticker
func scoredLess(a, b ScoredCandidate) bool {
	aDef, bDef := Defined(a.Score), Defined(b.Score)
	if aDef != bDef {
		return aDef
	}
	if aDef && a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Ticker < b.Ticker
}

// head returns at most n leading rows
func head(rows []ScoredCandidate, n int) []ScoredCandidate {
	if len(rows) <= n {
		return rows
	}
	return rows[:n]
}

// keep returns the rows satisfying the predicate, preserving order
func keep(rows []ScoredCandidate, pred func(*ScoredCandidate) bool) []ScoredCandidate {
	kept := make([]ScoredCandidate, 0, len(rows))
	for i := range rows {
		if pred(&rows[i]) {
			kept = append(kept, rows[i])
		}
	}
	return kept
}
