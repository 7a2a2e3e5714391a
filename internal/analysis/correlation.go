package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/bplemons/flow-metrics/internal/errs"
)

// Pearson computes the Pearson product-moment correlation coefficient. It is
// undefined for fewer than two points or when either variable is constant.
func Pearson(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, fmt.Errorf("mismatched series lengths %d and %d", len(x), len(y))
	}
	if len(x) < 2 {
		return 0, fmt.Errorf("correlation of %d points: %w", len(x), errs.ErrDivisionUndefined)
	}

	n := float64(len(x))
	var meanX, meanY float64
	for i := range x {
		meanX += x[i]
		meanY += y[i]
	}
	meanX /= n
	meanY /= n

	var cov, varX, varY float64
	for i := range x {
		dx := x[i] - meanX
		dy := y[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	if varX == 0 || varY == 0 {
		return 0, fmt.Errorf("constant series: %w", errs.ErrDivisionUndefined)
	}
	return cov / math.Sqrt(varX*varY), nil
}

// Spearman computes the Spearman rank correlation, which is the Pearson
// coefficient of the two series' ranks. Ties receive their average rank.
func Spearman(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, fmt.Errorf("mismatched series lengths %d and %d", len(x), len(y))
	}
	return Pearson(ranks(x), ranks(y))
}

func ranks(values []float64) []float64 {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return values[idx[a]] < values[idx[b]] })

	result := make([]float64, len(values))
	for i := 0; i < len(idx); {
		j := i
		for j+1 < len(idx) && values[idx[j+1]] == values[idx[i]] {
			j++
		}
		// Average rank across the tie group, 1-based.
		avg := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			result[idx[k]] = avg
		}
		i = j + 1
	}
	return result
}
