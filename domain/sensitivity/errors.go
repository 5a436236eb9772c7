package sensitivity

import "fmt"

// LayoutError reports an output vector whose length is inconsistent with the
// chosen method and sample counts. The computation cannot proceed.
type LayoutError struct {
	Method string
	Length int
	NSets  int
	NF     int // zero for sobol
	Reason string
}

func (e *LayoutError) Error() string {
	if e.NF > 0 {
		return fmt.Sprintf("layout: %s output vector of length %d inconsistent with nsets=%d nf=%d: %s",
			e.Method, e.Length, e.NSets, e.NF, e.Reason)
	}
	return fmt.Sprintf("layout: %s output vector of length %d inconsistent with nsets=%d: %s",
		e.Method, e.Length, e.NSets, e.Reason)
}

// ShapeError reports derived sample groups whose dimensions do not match what
// the estimator expects.
type ShapeError struct {
	What string
	Want int
	Got  int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("shape: %s: want %d, got %d", e.What, e.Want, e.Got)
}

// DegenerateSampleError reports a zero-variance sample pool, for which
// variance-based indices are mathematically undefined.
type DegenerateSampleError struct {
	NSets int
}

func (e *DegenerateSampleError) Error() string {
	return fmt.Sprintf("degenerate sample: pooled model output variance is zero over 2*%d samples; sensitivity indices are undefined", e.NSets)
}

// InsufficientSampleError reports a sample size too small for the requested
// Kolmogorov-Smirnov test: even the maximal statistic D=1 cannot reject the
// null at the given alpha.
type InsufficientSampleError struct {
	NSets     int
	Alpha     float64
	MinPValue float64
}

func (e *InsufficientSampleError) Error() string {
	return fmt.Sprintf("insufficient sample: nsets=%d cannot reach p < %g (minimum attainable p-value %.4g)", e.NSets, e.Alpha, e.MinPValue)
}

// UnsupportedMethodError reports a method tag outside the supported set.
type UnsupportedMethodError struct {
	Tag string
}

func (e *UnsupportedMethodError) Error() string {
	return fmt.Sprintf("unsupported method %q: only sobol and pawn are implemented", e.Tag)
}

// InvalidFieldError reports a malformed configuration field, identifying the
// field so callers fail fast instead of producing wrong downstream shapes.
type InvalidFieldError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}
