package sensitivity

import (
	"github.com/Mazzol/MVA/domain/core"
)

// SobolRecord holds the variance-based indices for one parameter. Both values
// are nominally in [0,1] but may fall slightly outside due to finite-sample
// estimator variance; that is expected, not an error.
type SobolRecord struct {
	Parameter  int     `json:"parameter"`
	FirstOrder float64 `json:"si"`
	TotalOrder float64 `json:"sti"`
}

// PawnRecord holds the distribution-based PAWN index for one parameter.
// Influential is true when at least one conditioning replicate rejected the
// Kolmogorov-Smirnov null of distributional equality at the configured alpha.
type PawnRecord struct {
	Parameter   int     `json:"parameter"`
	Index       float64 `json:"pawn"`
	Influential bool    `json:"influential"`
}

// Table is the ordered per-parameter result set produced by an estimator.
// The concrete type is either SobolTable or PawnTable.
type Table interface {
	Method() Method
	Len() int
}

// SobolTable is the result table of a Sobol estimation run.
type SobolTable struct {
	Records []SobolRecord `json:"records"`
}

// Method returns the method tag for this table.
func (t *SobolTable) Method() Method { return Sobol{} }

// Len returns the number of parameters.
func (t *SobolTable) Len() int { return len(t.Records) }

// PawnTable is the result table of a PAWN estimation run.
type PawnTable struct {
	Spec    Pawn         `json:"spec"`
	Records []PawnRecord `json:"records"`
}

// Method returns the method tag for this table.
func (t *PawnTable) Method() Method { return t.Spec }

// Len returns the number of parameters.
func (t *PawnTable) Len() int { return len(t.Records) }

// RunRecord captures one complete computation for persistence: the inputs
// that shaped it and the table it produced.
type RunRecord struct {
	ID        core.RunID
	Infile    string
	NSets     int
	Table     Table
	CreatedAt core.Timestamp
}
