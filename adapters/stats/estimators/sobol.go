package estimators

import (
	"context"
	"strconv"

	"gonum.org/v1/gonum/stat"

	"github.com/Mazzol/MVA/domain/sensitivity"
)

// SobolEstimator computes variance-based first-order (Si) and total-order
// (STi) sensitivity indices from the three Sobol sample groups. The C rows
// are expected to come from the A design with one parameter resampled from B,
// so the first-order index uses the difference-of-products form
//
//	Si = mean(b * (c_i - a)) / varAB
//
// and the total-order index the squared-difference form
//
//	STi = mean((a - c_i)^2) / (2 * varAB)
//
// where varAB is the population variance of the pooled a and b samples,
// computed once. Either index can be switched off independently; disabled
// indices are reported as zero.
type SobolEstimator struct {
	FirstOrder bool
	TotalOrder bool
}

// NewSobolEstimator creates an estimator computing both index families.
func NewSobolEstimator() *SobolEstimator {
	return &SobolEstimator{FirstOrder: true, TotalOrder: true}
}

// Estimate produces one record per parameter. It fails with ShapeError on
// inconsistent group dimensions and DegenerateSampleError when the pooled
// sample variance is zero, rather than returning NaN.
func (e *SobolEstimator) Estimate(ctx context.Context, g sensitivity.SobolGroups) (*sensitivity.SobolTable, error) {
	nsets := g.NSets()
	if nsets == 0 {
		return nil, &sensitivity.ShapeError{What: "model A sample count", Want: 1, Got: 0}
	}
	if len(g.ModelB) != nsets {
		return nil, &sensitivity.ShapeError{What: "model B sample count", Want: nsets, Got: len(g.ModelB)}
	}
	for i, row := range g.ModelC {
		if len(row) != nsets {
			return nil, &sensitivity.ShapeError{What: "model C row " + strconv.Itoa(i) + " sample count", Want: nsets, Got: len(row)}
		}
	}

	pool := make([]float64, 0, 2*nsets)
	pool = append(pool, g.ModelA...)
	pool = append(pool, g.ModelB...)
	varAB := stat.PopVariance(pool, nil)
	if varAB == 0 {
		return nil, &sensitivity.DegenerateSampleError{NSets: nsets}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n := float64(nsets)
	table := &sensitivity.SobolTable{Records: make([]sensitivity.SobolRecord, g.ParameterCount())}
	for i, ci := range g.ModelC {
		rec := sensitivity.SobolRecord{Parameter: i}
		if e.FirstOrder {
			var acc float64
			for j := 0; j < nsets; j++ {
				acc += g.ModelB[j] * (ci[j] - g.ModelA[j])
			}
			rec.FirstOrder = acc / n / varAB
		}
		if e.TotalOrder {
			var acc float64
			for j := 0; j < nsets; j++ {
				d := g.ModelA[j] - ci[j]
				acc += d * d
			}
			rec.TotalOrder = acc / (2 * n * varAB)
		}
		table.Records[i] = rec
	}
	return table, nil
}
