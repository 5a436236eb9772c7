package sensitivity

// SobolGroups holds the three sample groups of a Sobol sampling design.
// ModelA and ModelB are the two independent base samples; ModelC holds one
// row per parameter, where row i was produced from the A design with
// parameter i resampled.
type SobolGroups struct {
	ModelA []float64
	ModelB []float64
	ModelC [][]float64
}

// NSets returns the number of samples per group.
func (g SobolGroups) NSets() int { return len(g.ModelA) }

// ParameterCount returns the number of model parameters.
func (g SobolGroups) ParameterCount() int { return len(g.ModelC) }

// Flatten reassembles the groups into the original file order:
// a, b, then the C rows parameter by parameter.
func (g SobolGroups) Flatten() []float64 {
	out := make([]float64, 0, len(g.ModelA)+len(g.ModelB)+len(g.ModelC)*g.NSets())
	out = append(out, g.ModelA...)
	out = append(out, g.ModelB...)
	for _, row := range g.ModelC {
		out = append(out, row...)
	}
	return out
}

// ConditionalTensor holds conditional PAWN samples with axis semantics
// [replicate][parameter][sample]: the outermost axis is the conditioning
// replicate, so that all parameters are grouped under each replicate.
type ConditionalTensor [][][]float64

// Replicates returns the number of conditioning replicates (nf).
func (t ConditionalTensor) Replicates() int { return len(t) }

// ParameterCount returns the number of model parameters.
func (t ConditionalTensor) ParameterCount() int {
	if len(t) == 0 {
		return 0
	}
	return len(t[0])
}

// PawnGroups holds the unconditional and conditional sample groups of a PAWN
// sampling design.
type PawnGroups struct {
	Unconditional []float64
	Conditional   ConditionalTensor
}

// NSets returns the number of samples per group.
func (g PawnGroups) NSets() int { return len(g.Unconditional) }

// ParameterCount returns the number of model parameters.
func (g PawnGroups) ParameterCount() int { return g.Conditional.ParameterCount() }

// Flatten reassembles the groups into the original file order: the
// unconditional block, then for each parameter its nf conditional blocks.
// This is the inverse of the decode-time axis swap.
func (g PawnGroups) Flatten() []float64 {
	nf := g.Conditional.Replicates()
	npara := g.ParameterCount()
	out := make([]float64, 0, len(g.Unconditional)+nf*npara*g.NSets())
	out = append(out, g.Unconditional...)
	for i := 0; i < npara; i++ {
		for r := 0; r < nf; r++ {
			out = append(out, g.Conditional[r][i]...)
		}
	}
	return out
}
