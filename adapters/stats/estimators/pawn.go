package estimators

import (
	"context"
	"strconv"
	"sync"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/semaphore"

	"github.com/Mazzol/MVA/domain/sensitivity"
)

// PawnEstimator computes the distribution-based PAWN index per parameter: the
// Kolmogorov-Smirnov statistic between each conditional sample group and the
// unconditional group, aggregated across conditioning replicates with the
// configured statistic.
//
// Influence rule: a parameter is flagged influential when at least one
// replicate rejects the KS null of distributional equality at level Alpha.
//
// Parallelism bounds how many parameters are being processed concurrently;
// the default of 1 keeps estimation sequential. Parameters are independent,
// so results are identical at any parallelism level.
type PawnEstimator struct {
	Stat        sensitivity.Statistic
	Alpha       float64
	Parallelism int64
}

// NewPawnEstimator creates an estimator for the given PAWN specification.
func NewPawnEstimator(spec sensitivity.Pawn) *PawnEstimator {
	return &PawnEstimator{Stat: spec.Stat, Alpha: spec.Alpha, Parallelism: 1}
}

// Estimate produces one record per parameter. It fails with ShapeError on
// empty or ragged conditional groups and InsufficientSampleError when the
// sample sizes cannot reject the KS null at Alpha even for the maximal
// statistic.
func (e *PawnEstimator) Estimate(ctx context.Context, g sensitivity.PawnGroups) (*sensitivity.PawnTable, error) {
	nsets := g.NSets()
	if nsets == 0 {
		return nil, &sensitivity.ShapeError{What: "unconditional sample count", Want: 1, Got: 0}
	}
	nf := g.Conditional.Replicates()
	if nf == 0 {
		return nil, &sensitivity.ShapeError{What: "conditioning replicate count", Want: 1, Got: 0}
	}
	npara := g.ParameterCount()
	for r, byParam := range g.Conditional {
		if len(byParam) != npara {
			return nil, &sensitivity.ShapeError{What: "replicate " + strconv.Itoa(r) + " parameter count", Want: npara, Got: len(byParam)}
		}
		for i, row := range byParam {
			if len(row) != nsets {
				return nil, &sensitivity.ShapeError{What: "conditional group [" + strconv.Itoa(r) + "][" + strconv.Itoa(i) + "] sample count", Want: nsets, Got: len(row)}
			}
		}
	}

	if minP := KSMinPValue(nsets, nsets); minP >= e.Alpha {
		return nil, &sensitivity.InsufficientSampleError{NSets: nsets, Alpha: e.Alpha, MinPValue: minP}
	}

	par := e.Parallelism
	if par < 1 {
		par = 1
	}
	sem := semaphore.NewWeighted(par)

	records := make([]sensitivity.PawnRecord, npara)
	errs := make([]error, npara)
	var wg sync.WaitGroup
	for i := 0; i < npara; i++ {
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return nil, err
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer sem.Release(1)
			records[i], errs[i] = e.estimateParameter(i, g)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return &sensitivity.PawnTable{
		Spec:    sensitivity.Pawn{NF: nf, Stat: e.Stat, Alpha: e.Alpha},
		Records: records,
	}, nil
}

func (e *PawnEstimator) estimateParameter(i int, g sensitivity.PawnGroups) (sensitivity.PawnRecord, error) {
	nsets := g.NSets()
	nf := g.Conditional.Replicates()

	ks := make([]float64, nf)
	influential := false
	for r := 0; r < nf; r++ {
		d := KSStatistic(g.Conditional[r][i], g.Unconditional)
		ks[r] = d
		if KSPValue(d, nsets, nsets) < e.Alpha {
			influential = true
		}
	}

	index, err := aggregate(e.Stat, ks)
	if err != nil {
		return sensitivity.PawnRecord{}, err
	}
	return sensitivity.PawnRecord{Parameter: i, Index: index, Influential: influential}, nil
}

func aggregate(s sensitivity.Statistic, ks []float64) (float64, error) {
	data := stats.Float64Data(ks)
	switch s {
	case sensitivity.StatMean:
		return stats.Mean(data)
	case sensitivity.StatMedian:
		return stats.Median(data)
	case sensitivity.StatMax:
		return stats.Max(data)
	default:
		return 0, &sensitivity.InvalidFieldError{Field: "stat", Value: string(s), Reason: "must be one of mean, median, max"}
	}
}
