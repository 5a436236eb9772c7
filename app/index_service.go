package app

import (
	"context"

	"github.com/Mazzol/MVA/adapters/stats/engine"
	"github.com/Mazzol/MVA/domain/core"
	"github.com/Mazzol/MVA/domain/sensitivity"
	"github.com/Mazzol/MVA/internal"
	"github.com/Mazzol/MVA/internal/errors"
	"github.com/Mazzol/MVA/ports"
)

// IndexService orchestrates one sensitivity computation: read the output
// vector, run the engine, fan the table out to every sink, and optionally
// record the run in the ledger. Any failure aborts the whole run; no partial
// results are written.
type IndexService struct {
	engine *engine.Engine
	log    *internal.Logger
}

// NewIndexService creates the orchestration service.
func NewIndexService(eng *engine.Engine, logger *internal.Logger) *IndexService {
	return &IndexService{engine: eng, log: logger}
}

// RunRequest describes one computation.
type RunRequest struct {
	Source ports.SampleSource
	NSets  int
	Method sensitivity.Method
	Sinks  []ports.ReportSink
	Ledger ports.RunLedger // optional
	Infile string          // recorded in the ledger
}

// Run executes the request and returns the resulting table.
func (s *IndexService) Run(ctx context.Context, req RunRequest) (sensitivity.Table, error) {
	if req.Source == nil {
		return nil, errors.InvalidInput("no sample source configured")
	}
	if req.NSets < 1 {
		return nil, errors.InvalidInput("nsets must be a positive integer")
	}

	outputs, err := req.Source.ReadOutputs(ctx)
	if err != nil {
		return nil, err
	}
	s.log.Info("read %d model outputs", len(outputs))

	table, err := s.engine.Run(ctx, outputs, req.NSets, req.Method)
	if err != nil {
		return nil, err
	}
	s.log.Info("estimated %s indices for %d parameters", table.Method().Name(), table.Len())

	for _, sink := range req.Sinks {
		if err := sink.Write(ctx, table); err != nil {
			return nil, err
		}
	}

	if req.Ledger != nil {
		record := sensitivity.RunRecord{
			ID:        core.NewRunID(),
			Infile:    req.Infile,
			NSets:     req.NSets,
			Table:     table,
			CreatedAt: core.Now(),
		}
		if err := req.Ledger.SaveRun(ctx, record); err != nil {
			return nil, err
		}
		s.log.Info("recorded run %s in ledger", record.ID.String())
	}

	return table, nil
}
