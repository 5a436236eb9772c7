package testkit

import (
	"math/rand"
)

// ModelFunc maps one parameter vector to a scalar model output.
type ModelFunc func(x []float64) float64

// SobolDesign generates the flat output vector of a Sobol sampling design for
// a synthetic model: nsets evaluations of the A sample, nsets of the B
// sample, then for each parameter i the A sample with column i resampled from
// B. Parameters are drawn uniformly on [0,1) from a seeded source, so
// fixtures are deterministic.
type SobolDesign struct {
	NSets  int
	Params int
	Seed   int64
}

// Outputs evaluates fn over the design and returns the vector in file order.
func (d SobolDesign) Outputs(fn ModelFunc) []float64 {
	rng := rand.New(rand.NewSource(d.Seed))

	a := make([][]float64, d.NSets)
	b := make([][]float64, d.NSets)
	for j := 0; j < d.NSets; j++ {
		a[j] = randRow(rng, d.Params)
		b[j] = randRow(rng, d.Params)
	}

	out := make([]float64, 0, (d.Params+2)*d.NSets)
	for j := 0; j < d.NSets; j++ {
		out = append(out, fn(a[j]))
	}
	for j := 0; j < d.NSets; j++ {
		out = append(out, fn(b[j]))
	}
	ci := make([]float64, d.Params)
	for i := 0; i < d.Params; i++ {
		for j := 0; j < d.NSets; j++ {
			copy(ci, a[j])
			ci[i] = b[j][i]
			out = append(out, fn(ci))
		}
	}
	return out
}

// LinearModel returns an additive test function y = sum(coeffs[i]*x[i]).
// For independent U(0,1) inputs its first-order and total-order indices
// coincide and equal coeffs[i]^2 / sum(coeffs^2).
func LinearModel(coeffs []float64) ModelFunc {
	return func(x []float64) float64 {
		var y float64
		for i, c := range coeffs {
			y += c * x[i]
		}
		return y
	}
}

// IdenticalDistributionVector generates a PAWN-ordered output vector whose
// conditional groups are drawn from the same distribution as the
// unconditional group, so every PAWN index should tend to zero.
func IdenticalDistributionVector(nsets, nf, params int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	l := nsets + nf*params*nsets
	out := make([]float64, l)
	for i := range out {
		out[i] = rng.NormFloat64()
	}
	return out
}

// ShiftedConditionalVector generates a PAWN-ordered output vector whose
// conditional groups for every parameter are shifted by delta relative to the
// unconditional group, so every parameter should be influential for a large
// enough shift.
func ShiftedConditionalVector(nsets, nf, params int, delta float64, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, 0, nsets+nf*params*nsets)
	for j := 0; j < nsets; j++ {
		out = append(out, rng.NormFloat64())
	}
	for i := 0; i < params; i++ {
		for r := 0; r < nf; r++ {
			for j := 0; j < nsets; j++ {
				out = append(out, rng.NormFloat64()+delta)
			}
		}
	}
	return out
}

func randRow(rng *rand.Rand, n int) []float64 {
	row := make([]float64, n)
	for i := range row {
		row[i] = rng.Float64()
	}
	return row
}
