package ports

import (
	"context"

	"github.com/Mazzol/MVA/domain/sensitivity"
)

// ReportSink serializes a result table. Implementations write the values as
// given, with no transformation.
type ReportSink interface {
	Write(ctx context.Context, table sensitivity.Table) error
}
