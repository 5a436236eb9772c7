package estimators

import (
	"context"
	"errors"
	"testing"

	"github.com/Mazzol/MVA/domain/sensitivity"
	"github.com/Mazzol/MVA/internal/testkit"
)

func scenarioBGroups(t *testing.T) sensitivity.PawnGroups {
	t.Helper()
	// nsets=3, nf=2, 1 parameter; both conditional groups fully shifted
	// away from the unconditional group.
	y := []float64{0, 0, 0, 1, 1, 1, 2, 2, 2}
	g, err := sensitivity.DecodePawn(y, 3, 2)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return g
}

func TestPawnEstimator_ShiftedConditionalsAreInfluential(t *testing.T) {
	g := scenarioBGroups(t)

	est := NewPawnEstimator(sensitivity.Pawn{NF: 2, Stat: sensitivity.StatMean, Alpha: 0.05})
	table, err := est.Estimate(context.Background(), g)
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	if len(table.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(table.Records))
	}

	rec := table.Records[0]
	// Both replicates are completely separated from the unconditional
	// sample, so every KS statistic is 1 and so is their mean.
	if rec.Index != 1.0 {
		t.Errorf("pawn index = %v, want 1.0", rec.Index)
	}
	if !rec.Influential {
		t.Error("expected parameter to be flagged influential")
	}
}

func TestPawnEstimator_AggregationStatistics(t *testing.T) {
	// Replicate 0 is identical to the unconditional group (D=0), replicate 1
	// fully shifted (D=1): mean=0.5, median=0.5, max=1.
	y := []float64{0, 1, 2, 0, 1, 2, 10, 11, 12}
	g, err := sensitivity.DecodePawn(y, 3, 2)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	cases := []struct {
		stat sensitivity.Statistic
		want float64
	}{
		{sensitivity.StatMean, 0.5},
		{sensitivity.StatMedian, 0.5},
		{sensitivity.StatMax, 1.0},
	}
	for _, tc := range cases {
		t.Run(string(tc.stat), func(t *testing.T) {
			est := NewPawnEstimator(sensitivity.Pawn{NF: 2, Stat: tc.stat, Alpha: 0.05})
			table, err := est.Estimate(context.Background(), g)
			if err != nil {
				t.Fatalf("estimate: %v", err)
			}
			if got := table.Records[0].Index; got != tc.want {
				t.Errorf("index with %s = %v, want %v", tc.stat, got, tc.want)
			}
		})
	}
}

func TestPawnEstimator_IdenticalDistributionIndexNearZero(t *testing.T) {
	// When conditional groups are drawn from the same distribution as the
	// unconditional group, the PAWN index is a statistical zero; with 500
	// samples the expected KS statistic is well under 0.1.
	y := testkit.IdenticalDistributionVector(500, 8, 2, 7)
	g, err := sensitivity.DecodePawn(y, 500, 8)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	est := NewPawnEstimator(sensitivity.Pawn{NF: 8, Stat: sensitivity.StatMean, Alpha: 0.01})
	table, err := est.Estimate(context.Background(), g)
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	for _, rec := range table.Records {
		if rec.Index > 0.12 {
			t.Errorf("pawn index for parameter %d = %v, expected near zero", rec.Parameter, rec.Index)
		}
	}
}

func TestPawnEstimator_StrongShiftDetectedAcrossParameters(t *testing.T) {
	y := testkit.ShiftedConditionalVector(200, 3, 2, 2.0, 11)
	g, err := sensitivity.DecodePawn(y, 200, 3)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	est := NewPawnEstimator(sensitivity.Pawn{NF: 3, Stat: sensitivity.StatMedian, Alpha: 0.05})
	table, err := est.Estimate(context.Background(), g)
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	for _, rec := range table.Records {
		if !rec.Influential {
			t.Errorf("parameter %d not flagged influential despite 2-sigma shift", rec.Parameter)
		}
		if rec.Index < 0.4 {
			t.Errorf("pawn index for parameter %d = %v, expected a strong signal", rec.Parameter, rec.Index)
		}
	}
}

func TestPawnEstimator_InsufficientSample(t *testing.T) {
	y := []float64{0, 0, 1, 1, 2, 2} // nsets=2, nf=2, 1 parameter
	g, err := sensitivity.DecodePawn(y, 2, 2)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	est := NewPawnEstimator(sensitivity.Pawn{NF: 2, Stat: sensitivity.StatMean, Alpha: 0.05})
	_, err = est.Estimate(context.Background(), g)
	var insufficient *sensitivity.InsufficientSampleError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientSampleError, got %v", err)
	}
	if insufficient.NSets != 2 || insufficient.Alpha != 0.05 {
		t.Errorf("error fields = %+v", insufficient)
	}
}

func TestPawnEstimator_ShapeErrors(t *testing.T) {
	cases := []struct {
		name string
		g    sensitivity.PawnGroups
	}{
		{"empty unconditional", sensitivity.PawnGroups{}},
		{"no replicates", sensitivity.PawnGroups{Unconditional: []float64{1, 2, 3}}},
		{"empty conditional group", sensitivity.PawnGroups{
			Unconditional: []float64{1, 2, 3},
			Conditional:   sensitivity.ConditionalTensor{{{}}},
		}},
		{"ragged replicate", sensitivity.PawnGroups{
			Unconditional: []float64{1, 2, 3},
			Conditional: sensitivity.ConditionalTensor{
				{{1, 2, 3}},
				{{1, 2, 3}, {4, 5, 6}},
			},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			est := NewPawnEstimator(sensitivity.Pawn{NF: 1, Stat: sensitivity.StatMean, Alpha: 0.05})
			_, err := est.Estimate(context.Background(), tc.g)
			var shapeErr *sensitivity.ShapeError
			if !errors.As(err, &shapeErr) {
				t.Fatalf("expected ShapeError, got %v", err)
			}
		})
	}
}

func TestPawnEstimator_ParallelismMatchesSequential(t *testing.T) {
	y := testkit.ShiftedConditionalVector(100, 4, 5, 1.0, 3)
	g, err := sensitivity.DecodePawn(y, 100, 4)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	spec := sensitivity.Pawn{NF: 4, Stat: sensitivity.StatMean, Alpha: 0.05}
	seq := NewPawnEstimator(spec)
	par := NewPawnEstimator(spec)
	par.Parallelism = 4

	seqTable, err := seq.Estimate(context.Background(), g)
	if err != nil {
		t.Fatalf("sequential estimate: %v", err)
	}
	parTable, err := par.Estimate(context.Background(), g)
	if err != nil {
		t.Fatalf("parallel estimate: %v", err)
	}

	for i := range seqTable.Records {
		if seqTable.Records[i] != parTable.Records[i] {
			t.Errorf("record %d differs: sequential %+v, parallel %+v",
				i, seqTable.Records[i], parTable.Records[i])
		}
	}
}
