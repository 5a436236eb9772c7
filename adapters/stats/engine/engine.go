package engine

import (
	"context"

	"github.com/Mazzol/MVA/adapters/stats/estimators"
	"github.com/Mazzol/MVA/domain/sensitivity"
	"github.com/Mazzol/MVA/internal"
)

// Engine dispatches a flat model output vector to the estimator selected by
// the method variant: decode the layout, run the estimator, return the table.
// All errors abort the run; no partial tables are produced.
type Engine struct {
	log *internal.Logger

	// PawnParallelism bounds concurrent per-parameter KS computation in the
	// PAWN estimator. 1 keeps the reference single-threaded behavior.
	PawnParallelism int64
}

// New creates an engine with sequential estimation.
func New(logger *internal.Logger) *Engine {
	return &Engine{log: logger, PawnParallelism: 1}
}

// Run computes the sensitivity index table for the given outputs.
func (e *Engine) Run(ctx context.Context, outputs []float64, nsets int, method sensitivity.Method) (sensitivity.Table, error) {
	switch m := method.(type) {
	case sensitivity.Sobol:
		groups, err := sensitivity.DecodeSobol(outputs, nsets)
		if err != nil {
			return nil, err
		}
		e.log.Debug("decoded sobol layout: nsets=%d npara=%d", groups.NSets(), groups.ParameterCount())
		return estimators.NewSobolEstimator().Estimate(ctx, groups)

	case sensitivity.Pawn:
		if err := m.Validate(); err != nil {
			return nil, err
		}
		groups, err := sensitivity.DecodePawn(outputs, nsets, m.NF)
		if err != nil {
			return nil, err
		}
		e.log.Debug("decoded pawn layout: nsets=%d nf=%d npara=%d", groups.NSets(), m.NF, groups.ParameterCount())
		est := estimators.NewPawnEstimator(m)
		est.Parallelism = e.PawnParallelism
		return est.Estimate(ctx, groups)

	default:
		tag := ""
		if method != nil {
			tag = method.Name()
		}
		return nil, &sensitivity.UnsupportedMethodError{Tag: tag}
	}
}
