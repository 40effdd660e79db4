package screen

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func volumeOf(r *ScoredCandidate) float64 { return r.Volume }

func rowsWithVolumes(vols ...float64) []ScoredCandidate {
	rows := make([]ScoredCandidate, len(vols))
	for i, v := range vols {
		rows[i].Volume = v
	}
	return rows
}

func TestMinMaxNormalize_Range(t *testing.T) {
	rows := rowsWithVolumes(10, 55, 100)

	norms := MinMaxNormalize(rows, volumeOf)

	assert.Equal(t, 0.0, norms[0]) // 최솟값 → 0
	assert.Equal(t, 1.0, norms[2]) // 최댓값 → 1
	assert.InDelta(t, 0.5, norms[1], 1e-9)
	for _, n := range norms {
		assert.GreaterOrEqual(t, n, 0.0)
		assert.LessOrEqual(t, n, 1.0)
	}
}

func TestMinMaxNormalize_ConstantMetric(t *testing.T) {
	// max == min이면 분모를 1로 고정, 전부 0
	norms := MinMaxNormalize(rowsWithVolumes(42, 42, 42), volumeOf)

	for _, n := range norms {
		assert.Equal(t, 0.0, n)
	}
}

func TestMinMaxNormalize_NaNPassthrough(t *testing.T) {
	rows := rowsWithVolumes(10, 0, 100)
	rows[1].Volume = math.NaN()

	norms := MinMaxNormalize(rows, volumeOf)

	// NaN 행은 범위 계산에서 제외되고 결과도 NaN
	assert.Equal(t, 0.0, norms[0])
	assert.True(t, math.IsNaN(norms[1]))
	assert.Equal(t, 1.0, norms[2])
}

func TestMinMaxNormalize_AllNaN(t *testing.T) {
	rows := rowsWithVolumes(0, 0)
	rows[0].Volume = math.NaN()
	rows[1].Volume = math.NaN()

	norms := MinMaxNormalize(rows, volumeOf)

	for _, n := range norms {
		assert.True(t, math.IsNaN(n))
	}
}

func TestMinMaxNormalize_Empty(t *testing.T) {
	assert.Empty(t, MinMaxNormalize(nil, volumeOf))
}
