package typist

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// epsilon is the near-zero threshold shared by normalization and
// correlation.
const epsilon = 1e-12

// Correlation returns the Pearson correlation coefficient of a and b.
//
// ErrNotComparable is returned when the vectors differ in length or either
// is empty. When the denominator vanishes the result is 1.0 if both
// vectors are flat at the same level and 0.0 otherwise. The result is not
// clamped; Pearson stays within [-1, 1] by construction.
func Correlation(a, b []float64) (float64, error) {
	if len(a) != len(b) || len(a) == 0 {
		return 0, ErrNotComparable
	}

	meanA := stat.Mean(a, nil)
	meanB := stat.Mean(b, nil)

	var num, ssA, ssB float64
	for i := range a {
		da := a[i] - meanA
		db := b[i] - meanB
		num += da * db
		ssA += da * da
		ssB += db * db
	}

	// A single root keeps Correlation(a, a) exactly 1.
	den := math.Sqrt(ssA * ssB)
	if math.Abs(den) < epsilon {
		if ssA < epsilon && ssB < epsilon && math.Abs(meanA-meanB) < epsilon {
			return 1.0, nil
		}
		return 0.0, nil
	}
	return num / den, nil
}
