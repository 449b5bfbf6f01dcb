package model

import "fmt"

// Flag is the loss state of one gene in one sample.
type Flag int8

const (
	FlagMissing Flag = iota
	FlagRetained
	FlagLost
)

func (f Flag) String() string {
	switch f {
	case FlagRetained:
		return "retained"
	case FlagLost:
		return "lost"
	default:
		return "missing"
	}
}

type Sample struct {
	ID         string `json:"id"`
	CancerType string `json:"cancer_type"`
}

// GeneLossMatrix holds per-sample gene loss flags. It is filled once by a
// loader and must be treated as read-only afterwards; lookups are not
// synchronised.
type GeneLossMatrix struct {
	samples     []Sample
	sampleIdx   map[string]int
	genes       []string
	geneIdx     map[string]int
	flags       [][]Flag
	cancerTypes []string
}

func NewGeneLossMatrix(genes []string) *GeneLossMatrix {
	m := &GeneLossMatrix{
		sampleIdx: make(map[string]int),
		genes:     append([]string(nil), genes...),
		geneIdx:   make(map[string]int, len(genes)),
	}
	for i, g := range genes {
		m.geneIdx[g] = i
	}
	return m
}

// AddSample appends a row. flags must be in the same order as the gene list
// given to NewGeneLossMatrix.
func (m *GeneLossMatrix) AddSample(s Sample, flags []Flag) error {
	if _, dup := m.sampleIdx[s.ID]; dup {
		return fmt.Errorf("%w: %s", ErrDuplicateSample, s.ID)
	}
	if len(flags) != len(m.genes) {
		return fmt.Errorf("%w: sample %s has %d values for %d genes", ErrMatrixShape, s.ID, len(flags), len(m.genes))
	}
	seen := false
	for _, ct := range m.cancerTypes {
		if ct == s.CancerType {
			seen = true
			break
		}
	}
	if !seen {
		m.cancerTypes = append(m.cancerTypes, s.CancerType)
	}
	m.sampleIdx[s.ID] = len(m.samples)
	m.samples = append(m.samples, s)
	m.flags = append(m.flags, append([]Flag(nil), flags...))
	return nil
}

func (m *GeneLossMatrix) Genes() []string {
	return append([]string(nil), m.genes...)
}

func (m *GeneLossMatrix) HasGene(gene string) bool {
	_, ok := m.geneIdx[gene]
	return ok
}

func (m *GeneLossMatrix) Samples() []Sample {
	return append([]Sample(nil), m.samples...)
}

func (m *GeneLossMatrix) Sample(id string) (Sample, bool) {
	i, ok := m.sampleIdx[id]
	if !ok {
		return Sample{}, false
	}
	return m.samples[i], true
}

// CancerTypes returns the cancer types in first-seen order.
func (m *GeneLossMatrix) CancerTypes() []string {
	return append([]string(nil), m.cancerTypes...)
}

func (m *GeneLossMatrix) HasCancerType(ct string) bool {
	for _, c := range m.cancerTypes {
		if c == ct {
			return true
		}
	}
	return false
}

// Flag returns the loss flag for a sample and gene. Unknown samples and
// genes read as missing.
func (m *GeneLossMatrix) Flag(sampleID, gene string) Flag {
	si, ok := m.sampleIdx[sampleID]
	if !ok {
		return FlagMissing
	}
	gi, ok := m.geneIdx[gene]
	if !ok {
		return FlagMissing
	}
	return m.flags[si][gi]
}

// Universe returns the samples whose cancer type is one of types.
func (m *GeneLossMatrix) Universe(types []string) SampleSet {
	want := make(map[string]bool, len(types))
	for _, t := range types {
		want[t] = true
	}
	u := make(SampleSet)
	for _, s := range m.samples {
		if want[s.CancerType] {
			u.Add(s.ID)
		}
	}
	return u
}

// CancerFilter is the cancer type inclusion filter. All takes precedence
// over None, and None over Types.
type CancerFilter struct {
	All   bool     `json:"all"`
	None  bool     `json:"none"`
	Types []string `json:"types,omitempty"`
}

// Resolve turns the filter into the concrete list of cancer types.
func (f CancerFilter) Resolve(m *GeneLossMatrix) ([]string, error) {
	if f.All {
		return m.CancerTypes(), nil
	}
	if f.None {
		return []string{}, nil
	}
	out := make([]string, 0, len(f.Types))
	seen := make(map[string]bool, len(f.Types))
	for _, t := range f.Types {
		if !m.HasCancerType(t) {
			return nil, configErr("cancer_types", t, ErrUnknownCancerType)
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out, nil
}
