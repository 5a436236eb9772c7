package sensitivity

import "strconv"

// DecodeSobol slices a flat model output vector into the three Sobol sample
// groups. The vector must contain nsets samples for the A design, nsets for
// the B design, and nsets per parameter for the C designs, in that order.
// The returned groups are views into the input vector; no data is copied.
func DecodeSobol(y []float64, nsets int) (SobolGroups, error) {
	if nsets < 1 {
		return SobolGroups{}, &InvalidFieldError{Field: "nsets", Value: strconv.Itoa(nsets), Reason: "must be a positive integer"}
	}
	l := len(y)
	if l < 2*nsets || l%nsets != 0 {
		return SobolGroups{}, &LayoutError{
			Method: "sobol",
			Length: l,
			NSets:  nsets,
			Reason: "length must be (npara+2)*nsets for some npara >= 0",
		}
	}

	npara := l/nsets - 2
	g := SobolGroups{
		ModelA: y[0:nsets],
		ModelB: y[nsets : 2*nsets],
		ModelC: make([][]float64, npara),
	}
	for i := 0; i < npara; i++ {
		start := (2 + i) * nsets
		g.ModelC[i] = y[start : start+nsets]
	}
	return g, nil
}

// DecodePawn slices a flat model output vector into PAWN sample groups. The
// vector stores the unconditional block first, then for each parameter its nf
// conditional blocks of nsets samples. In the returned tensor the replicate
// axis is outermost ([replicate][parameter][sample]): the on-disk
// parameter-major order is transposed so downstream consumption can group all
// parameters under each replicate. Rows remain views into the input vector.
func DecodePawn(y []float64, nsets, nf int) (PawnGroups, error) {
	if nsets < 1 {
		return PawnGroups{}, &InvalidFieldError{Field: "nsets", Value: strconv.Itoa(nsets), Reason: "must be a positive integer"}
	}
	if nf < 1 {
		return PawnGroups{}, &InvalidFieldError{Field: "nf", Value: strconv.Itoa(nf), Reason: "must be a positive integer"}
	}
	l := len(y)
	rest := l - nsets
	if rest < 0 || rest%(nf*nsets) != 0 {
		return PawnGroups{}, &LayoutError{
			Method: "pawn",
			Length: l,
			NSets:  nsets,
			NF:     nf,
			Reason: "length must be nsets + npara*nf*nsets for some npara >= 0",
		}
	}

	npara := rest / (nf * nsets)
	g := PawnGroups{
		Unconditional: y[0:nsets],
		Conditional:   make(ConditionalTensor, nf),
	}
	for r := 0; r < nf; r++ {
		g.Conditional[r] = make([][]float64, npara)
		for i := 0; i < npara; i++ {
			// On disk: block (i*nf + r) after the unconditional prefix.
			start := nsets + (i*nf+r)*nsets
			g.Conditional[r][i] = y[start : start+nsets]
		}
	}
	return g, nil
}
