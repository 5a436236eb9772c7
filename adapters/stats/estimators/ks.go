package estimators

import (
	"math"
	"sort"
)

// KSStatistic computes the two-sample Kolmogorov-Smirnov statistic: the
// supremum distance between the empirical CDFs of x and y. Inputs are copied
// before sorting; ties across the two samples are handled by evaluating the
// ECDF difference only after consuming every observation equal to the current
// value.
func KSStatistic(x, y []float64) float64 {
	xs := make([]float64, len(x))
	ys := make([]float64, len(y))
	copy(xs, x)
	copy(ys, y)
	sort.Float64s(xs)
	sort.Float64s(ys)

	n := float64(len(xs))
	m := float64(len(ys))

	var d float64
	i, j := 0, 0
	for i < len(xs) && j < len(ys) {
		v := math.Min(xs[i], ys[j])
		for i < len(xs) && xs[i] <= v {
			i++
		}
		for j < len(ys) && ys[j] <= v {
			j++
		}
		diff := math.Abs(float64(i)/n - float64(j)/m)
		if diff > d {
			d = diff
		}
	}
	return d
}

// KSPValue returns the asymptotic two-sided p-value for a two-sample KS
// statistic d with sample sizes n and m, using the Kolmogorov distribution
// with Stephens' effective-sample-size correction. This matches the classic
// asymptotic two-sample test the original PAWN implementations delegate to.
func KSPValue(d float64, n, m int) float64 {
	if d <= 0 {
		return 1.0
	}
	ne := float64(n) * float64(m) / float64(n+m)
	sqrtNe := math.Sqrt(ne)
	lambda := (sqrtNe + 0.12 + 0.11/sqrtNe) * d
	return kolmogorovQ(lambda)
}

// KSMinPValue returns the smallest p-value attainable for the given sample
// sizes, i.e. the p-value at the maximal statistic D=1. If this is not below
// the test's alpha, no rejection is possible at those sizes.
func KSMinPValue(n, m int) float64 {
	return KSPValue(1.0, n, m)
}

// kolmogorovQ evaluates the Kolmogorov survival function
// Q(lambda) = 2 * sum_{k>=1} (-1)^{k-1} exp(-2 k^2 lambda^2).
// The series converges fast for lambda of practical size; 100 terms is far
// more than needed.
func kolmogorovQ(lambda float64) float64 {
	if lambda <= 0 {
		return 1.0
	}
	sum := 0.0
	sign := 1.0
	for k := 1; k <= 100; k++ {
		term := sign * math.Exp(-2*float64(k*k)*lambda*lambda)
		sum += term
		if math.Abs(term) < 1e-12 {
			break
		}
		sign = -sign
	}
	q := 2 * sum
	if q < 0 {
		return 0
	}
	if q > 1 {
		return 1
	}
	return q
}
