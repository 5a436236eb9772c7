package textio

import (
	"bufio"
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/Mazzol/MVA/internal/errors"
	"github.com/Mazzol/MVA/ports"
)

// FileSource reads a model output file: plain text, one real number per
// line, no header. Parsing is strict; any non-numeric line aborts the read
// with the offending line number. Blank lines are ignored so a trailing
// newline does not change the sample count.
type FileSource struct {
	path string
}

// NewFileSource creates a source for the given path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

var _ ports.SampleSource = (*FileSource)(nil)

// ReadOutputs reads the full output vector into memory.
func (s *FileSource) ReadOutputs(ctx context.Context) ([]float64, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, errors.Wrapf(err, "open model output file %s", s.path)
	}
	defer f.Close()

	var outputs []float64
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return nil, errors.InvalidInput("line " + strconv.Itoa(lineNo) + " of " + s.path + ": not a real number: " + strconv.Quote(line))
		}
		outputs = append(outputs, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "read model output file %s", s.path)
	}
	return outputs, nil
}
