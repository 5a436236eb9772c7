package ports

import "context"

// SampleSource supplies the flat model output vector consumed by the engine.
// The contract is a newline-delimited sequence of floating-point numbers in
// the fixed, method-dependent order produced by the upstream sampling design.
type SampleSource interface {
	ReadOutputs(ctx context.Context) ([]float64, error)
}
