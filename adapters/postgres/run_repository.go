package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Mazzol/MVA/domain/sensitivity"
	"github.com/Mazzol/MVA/internal/errors"
	"github.com/Mazzol/MVA/ports"
)

// RunRepository implements the run ledger on PostgreSQL. Each run stores its
// metadata plus one row per parameter; Sobol and PAWN columns are nullable so
// both table shapes share one schema.
type RunRepository struct {
	db *sqlx.DB
}

// NewRunRepository creates a new PostgreSQL run ledger
func NewRunRepository(db *sqlx.DB) *RunRepository {
	return &RunRepository{db: db}
}

var _ ports.RunLedger = (*RunRepository)(nil)

// EnsureSchema creates the ledger tables if they do not exist.
func (r *RunRepository) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sensitivity_runs (
			id UUID PRIMARY KEY,
			infile TEXT NOT NULL,
			method TEXT NOT NULL,
			nsets INTEGER NOT NULL,
			parameter_count INTEGER NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS sensitivity_indices (
			run_id UUID NOT NULL REFERENCES sensitivity_runs(id) ON DELETE CASCADE,
			parameter INTEGER NOT NULL,
			first_order DOUBLE PRECISION,
			total_order DOUBLE PRECISION,
			pawn_index DOUBLE PRECISION,
			influential BOOLEAN,
			PRIMARY KEY (run_id, parameter)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "ensure run ledger schema")
		}
	}
	return nil
}

// SaveRun persists a run and its per-parameter indices in one transaction.
func (r *RunRepository) SaveRun(ctx context.Context, run sensitivity.RunRecord) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin ledger transaction")
	}
	defer tx.Rollback()

	createdAt := run.CreatedAt.Time()
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sensitivity_runs (id, infile, method, nsets, parameter_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		run.ID.String(), run.Infile, run.Table.Method().Name(), run.NSets, run.Table.Len(), createdAt)
	if err != nil {
		return errors.Wrap(err, "insert run row")
	}

	switch t := run.Table.(type) {
	case *sensitivity.SobolTable:
		for _, rec := range t.Records {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO sensitivity_indices (run_id, parameter, first_order, total_order)
				VALUES ($1, $2, $3, $4)`,
				run.ID.String(), rec.Parameter, rec.FirstOrder, rec.TotalOrder)
			if err != nil {
				return errors.Wrap(err, "insert sobol index row")
			}
		}
	case *sensitivity.PawnTable:
		for _, rec := range t.Records {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO sensitivity_indices (run_id, parameter, pawn_index, influential)
				VALUES ($1, $2, $3, $4)`,
				run.ID.String(), rec.Parameter, rec.Index, rec.Influential)
			if err != nil {
				return errors.Wrap(err, "insert pawn index row")
			}
		}
	default:
		return &sensitivity.UnsupportedMethodError{Tag: run.Table.Method().Name()}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit ledger transaction")
	}
	return nil
}
