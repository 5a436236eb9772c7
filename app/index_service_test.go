package app

import (
	"context"
	"errors"
	"testing"

	"github.com/Mazzol/MVA/adapters/stats/engine"
	"github.com/Mazzol/MVA/domain/sensitivity"
	"github.com/Mazzol/MVA/internal"
	interrors "github.com/Mazzol/MVA/internal/errors"
	"github.com/Mazzol/MVA/ports"
)

type memorySource struct {
	outputs []float64
	err     error
}

func (s *memorySource) ReadOutputs(ctx context.Context) ([]float64, error) {
	return s.outputs, s.err
}

type captureSink struct {
	table sensitivity.Table
	err   error
}

func (s *captureSink) Write(ctx context.Context, table sensitivity.Table) error {
	s.table = table
	return s.err
}

type captureLedger struct {
	run   sensitivity.RunRecord
	saved bool
}

func (l *captureLedger) SaveRun(ctx context.Context, run sensitivity.RunRecord) error {
	l.run = run
	l.saved = true
	return nil
}

func newTestService() *IndexService {
	logger := internal.NewLogger(internal.LogLevelError)
	return NewIndexService(engine.New(logger), logger)
}

func TestIndexService_FullRun(t *testing.T) {
	sink := &captureSink{}
	ledger := &captureLedger{}

	table, err := newTestService().Run(context.Background(), RunRequest{
		Source: &memorySource{outputs: []float64{1, 2, 3, 4, 5, 6}},
		NSets:  2,
		Method: sensitivity.Sobol{},
		Sinks:  []ports.ReportSink{sink},
		Ledger: ledger,
		Infile: "model_output.out",
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if sink.table != table {
		t.Error("sink did not receive the result table")
	}
	if !ledger.saved {
		t.Fatal("ledger did not record the run")
	}
	if ledger.run.Infile != "model_output.out" || ledger.run.NSets != 2 {
		t.Errorf("ledger record = %+v", ledger.run)
	}
	if ledger.run.ID.String() == "" {
		t.Error("run ID not assigned")
	}
}

func TestIndexService_SinkFailureAborts(t *testing.T) {
	sinkErr := errors.New("disk full")
	sink := &captureSink{err: sinkErr}
	ledger := &captureLedger{}

	_, err := newTestService().Run(context.Background(), RunRequest{
		Source: &memorySource{outputs: []float64{1, 2, 3, 4, 5, 6}},
		NSets:  2,
		Method: sensitivity.Sobol{},
		Sinks:  []ports.ReportSink{sink},
		Ledger: ledger,
	})
	if !errors.Is(err, sinkErr) {
		t.Fatalf("expected sink error, got %v", err)
	}
	if ledger.saved {
		t.Error("ledger must not record a failed run")
	}
}

func TestIndexService_RejectsMissingSource(t *testing.T) {
	_, err := newTestService().Run(context.Background(), RunRequest{
		NSets:  2,
		Method: sensitivity.Sobol{},
	})
	if interrors.GetCode(err) != interrors.CodeInvalidInput {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
}

func TestIndexService_RejectsNonPositiveNSets(t *testing.T) {
	_, err := newTestService().Run(context.Background(), RunRequest{
		Source: &memorySource{outputs: []float64{1, 2}},
		NSets:  0,
		Method: sensitivity.Sobol{},
	})
	if interrors.GetCode(err) != interrors.CodeInvalidInput {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
}
