package sensitivity

import (
	"strconv"
	"strings"
)

// Statistic selects how per-replicate Kolmogorov-Smirnov statistics are
// aggregated into a single PAWN index per parameter.
type Statistic string

const (
	StatMean   Statistic = "mean"
	StatMedian Statistic = "median"
	StatMax    Statistic = "max"
)

// Valid reports whether the statistic is one of the supported aggregations.
func (s Statistic) Valid() bool {
	switch s {
	case StatMean, StatMedian, StatMax:
		return true
	}
	return false
}

// Method is the closed set of supported sensitivity analysis methods.
// Consumers switch exhaustively on the concrete type; the interface cannot
// be implemented outside this package.
type Method interface {
	Name() string
	isMethod()
}

// Sobol selects variance-based first-order and total-order index estimation.
type Sobol struct{}

// Name returns the method tag
func (Sobol) Name() string { return "sobol" }

func (Sobol) isMethod() {}

// Pawn selects distribution-based PAWN index estimation.
// NF is the number of conditioning values per parameter (parameter "n" in
// Pianosi & Wagener, 2015), Stat the replicate aggregation, and Alpha the
// confidence level of the Kolmogorov-Smirnov test.
type Pawn struct {
	NF    int
	Stat  Statistic
	Alpha float64
}

// Name returns the method tag
func (Pawn) Name() string { return "pawn" }

func (Pawn) isMethod() {}

// Validate checks the PAWN parameters for internal consistency.
func (p Pawn) Validate() error {
	if p.NF < 1 {
		return &InvalidFieldError{Field: "nf", Value: strconv.Itoa(p.NF), Reason: "must be a positive integer"}
	}
	if !p.Stat.Valid() {
		return &InvalidFieldError{Field: "stat", Value: string(p.Stat), Reason: "must be one of mean, median, max"}
	}
	if !(p.Alpha > 0 && p.Alpha < 1) {
		return &InvalidFieldError{Field: "alpha", Value: strconv.FormatFloat(p.Alpha, 'g', -1, 64), Reason: "must be in the open interval (0,1)"}
	}
	return nil
}

// ParseMethodSpec decodes the bracketed method string accepted on the command
// line into a Method. Supported encodings:
//
//	sobol            or  [sobol]
//	[pawn,Nf,stat,alpha]  e.g. [pawn,50,mean,0.05]
//
// Parsing is strict: unknown tags yield UnsupportedMethodError and malformed
// fields yield InvalidFieldError naming the offending field.
func ParseMethodSpec(spec string) (Method, error) {
	s := strings.TrimSpace(spec)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")

	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	switch parts[0] {
	case "sobol":
		if len(parts) != 1 {
			return nil, &InvalidFieldError{Field: "method", Value: spec, Reason: "sobol takes no parameters"}
		}
		return Sobol{}, nil

	case "pawn":
		if len(parts) != 4 {
			return nil, &InvalidFieldError{Field: "method", Value: spec, Reason: "pawn requires exactly [pawn,Nf,stat,alpha]"}
		}
		nf, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, &InvalidFieldError{Field: "nf", Value: parts[1], Reason: "not an integer"}
		}
		alpha, err := strconv.ParseFloat(parts[3], 64)
		if err != nil {
			return nil, &InvalidFieldError{Field: "alpha", Value: parts[3], Reason: "not a real number"}
		}
		p := Pawn{NF: nf, Stat: Statistic(parts[2]), Alpha: alpha}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		return p, nil

	default:
		return nil, &UnsupportedMethodError{Tag: parts[0]}
	}
}
