package screen

// MinMaxNormalize rescales a metric to [0,1] over the current candidate set:
// (x - min) / (max - min). When max == min the divisor is fixed to 1, mapping
// every row to 0. Ranges are computed per call — never reused across
// categories or runs. NaN inputs stay NaN; NaN rows do not contribute to the
// min/max range.
func MinMaxNormalize(rows []ScoredCandidate, metric func(*ScoredCandidate) float64) []float64 {
	norms := make([]float64, len(rows))
	if len(rows) == 0 {
		return norms
	}

	lo, hi, any := minMax(rows, metric)
	if !any {
		// Every value undefined: NaN passes through
		for i := range rows {
			norms[i] = metric(&rows[i])
		}
		return norms
	}

	divisor := hi - lo
	if divisor == 0 {
		divisor = 1
	}

	for i := range rows {
		norms[i] = (metric(&rows[i]) - lo) / divisor
	}

	return norms
}

// minMax scans the defined values of a metric; any is false when none exist
func minMax(rows []ScoredCandidate, metric func(*ScoredCandidate) float64) (lo, hi float64, any bool) {
	for i := range rows {
		v := metric(&rows[i])
		if !Defined(v) {
			continue
		}
		if !any {
			lo, hi, any = v, v, true
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi, any
}
