// Package dataset reads a minimal libsvm/XMC-style sparse line format:
//
//	label1,label2,... idx1:val1 idx2:val2 ...
//
// spec.md places dataset parsing out of the algorithmic core's scope;
// this reader exists only so the CLI has something to feed training and
// prediction with, and is deliberately thin.
package dataset

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/parabel-ml/parabel/domain"
	"github.com/parabel-ml/parabel/internal/vectorops"
)

// Read parses every non-blank, non-comment line of r into a
// domain.Example, l2-normalizing its feature vector, and returns the
// examples alongside the widest feature index seen plus one (the
// nFeatures callers should train and predict with).
func Read(r io.Reader) ([]domain.Example, int, error) {
	var examples []domain.Example
	maxIndex := -1

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		ex, hi, err := parseLine(line)
		if err != nil {
			return nil, 0, domain.NewInvalidInputError(fmt.Sprintf("line %d: %v", lineNo, err), err)
		}
		if hi > maxIndex {
			maxIndex = hi
		}
		examples = append(examples, ex)
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, domain.NewPersistenceError("failed to read dataset", err)
	}

	return examples, maxIndex + 1, nil
}

func parseLine(line string) (domain.Example, int, error) {
	fields := strings.Fields(line)
	if len(fields) < 1 {
		return domain.Example{}, -1, fmt.Errorf("empty line")
	}

	labels, err := parseLabels(fields[0])
	if err != nil {
		return domain.Example{}, -1, err
	}

	m := make(map[domain.Index]float32, len(fields)-1)
	maxIndex := -1
	for _, tok := range fields[1:] {
		parts := strings.SplitN(tok, ":", 2)
		if len(parts) != 2 {
			return domain.Example{}, -1, fmt.Errorf("malformed feature token %q", tok)
		}
		idx, err := strconv.ParseUint(parts[0], 10, 32)
		if err != nil {
			return domain.Example{}, -1, fmt.Errorf("bad feature index in %q: %w", tok, err)
		}
		val, err := strconv.ParseFloat(parts[1], 32)
		if err != nil {
			return domain.Example{}, -1, fmt.Errorf("bad feature value in %q: %w", tok, err)
		}
		m[domain.Index(idx)] = float32(val)
		if int(idx) > maxIndex {
			maxIndex = int(idx)
		}
	}

	features := vectorops.L2Normalize(vectorops.FromMap(m))
	return domain.Example{Features: features, Labels: labels}, maxIndex, nil
}

func parseLabels(field string) ([]domain.Label, error) {
	parts := strings.Split(field, ",")
	labels := make([]domain.Label, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("bad label %q: %w", p, err)
		}
		labels = append(labels, domain.Label(v))
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })
	return dedupSorted(labels), nil
}

func dedupSorted(labels []domain.Label) []domain.Label {
	if len(labels) == 0 {
		return labels
	}
	out := labels[:1]
	for _, l := range labels[1:] {
		if l != out[len(out)-1] {
			out = append(out, l)
		}
	}
	return out
}
