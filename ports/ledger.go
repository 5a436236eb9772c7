package ports

import (
	"context"

	"github.com/Mazzol/MVA/domain/sensitivity"
)

// RunLedger persists completed runs for cross-run diagnostic comparison.
type RunLedger interface {
	SaveRun(ctx context.Context, run sensitivity.RunRecord) error
}
