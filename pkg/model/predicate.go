package model

import (
	"fmt"
	"strings"
)

// Combinator decides how the losses of several genes combine into one
// deficiency call.
type Combinator int

const (
	// the zero value is invalid, which makes the field required
	CombinatorAll Combinator = iota + 1
	CombinatorAny
)

func (c Combinator) String() string {
	switch c {
	case CombinatorAll:
		return "ALL"
	case CombinatorAny:
		return "ANY"
	default:
		return "UNKNOWN"
	}
}

func (c Combinator) Valid() bool {
	return c == CombinatorAll || c == CombinatorAny
}

// ParseCombinator accepts ALL/ANY in any case, and the long labels used by
// the deficiency form.
func ParseCombinator(s string) (Combinator, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all", "all of the selected genes":
		return CombinatorAll, nil
	case "any", "any of the selected genes":
		return CombinatorAny, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCombinator, s)
	}
}

func (c Combinator) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCombinator, int(c))
	}
	return []byte(c.String()), nil
}

func (c *Combinator) UnmarshalText(b []byte) error {
	v, err := ParseCombinator(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Predicate is a named deficiency rule over a set of genes.
type Predicate struct {
	Name       string     `json:"name"`
	Genes      []string   `json:"genes"`
	Combinator Combinator `json:"combinator"`
}

// Evaluation is the two-way split produced by one predicate.
type Evaluation struct {
	Deficient  SampleSet
	Proficient SampleSet
}

// Clean is the part of the universe with complete data for the predicate.
func (e Evaluation) Clean() SampleSet {
	return e.Deficient.Union(e.Proficient)
}

// Evaluate splits universe into deficient and proficient samples.
//
// Samples with a missing value for any of the predicate's genes are left out
// of both sets. With no genes every sample is proficient.
func Evaluate(m *GeneLossMatrix, p Predicate, universe SampleSet) (Evaluation, error) {
	for _, g := range p.Genes {
		if !m.HasGene(g) {
			return Evaluation{}, configErr("genes", g, ErrUnknownGene)
		}
	}
	if !p.Combinator.Valid() {
		return Evaluation{}, configErr("combinator", p.Combinator.String(), ErrUnknownCombinator)
	}

	ev := Evaluation{Deficient: make(SampleSet), Proficient: make(SampleSet)}
	if len(p.Genes) == 0 {
		ev.Proficient = universe.Clone()
		return ev, nil
	}

	for id := range universe {
		lost, complete := 0, true
		for _, g := range p.Genes {
			switch m.Flag(id, g) {
			case FlagMissing:
				complete = false
			case FlagLost:
				lost++
			}
			if !complete {
				break
			}
		}
		if !complete {
			continue
		}

		var deficient bool
		if p.Combinator == CombinatorAll {
			deficient = lost == len(p.Genes)
		} else {
			deficient = lost > 0
		}
		if deficient {
			ev.Deficient.Add(id)
		} else {
			ev.Proficient.Add(id)
		}
	}
	return ev, nil
}
