package model

import (
	"fmt"
	"strings"
)

// MaxPredicates bounds K. The partition has 2^K cohorts, so the bound keeps
// the cross product at no more than 1024 cells.
const MaxPredicates = 10

// CohortConfig is the validated input of one cohort definition request.
type CohortConfig struct {
	Predicates  []Predicate  `json:"predicates"`
	CancerTypes CancerFilter `json:"cancer_types"`
}

// normalizePredicates returns a copy of the predicates with trimmed names and genes
// de-duplicated in first-seen order, after checking the rules that do not
// depend on the matrix.
func normalizePredicates(preds []Predicate) ([]Predicate, error) {
	if len(preds) == 0 {
		return nil, configErr("predicates", "", ErrNoPredicates)
	}
	if len(preds) > MaxPredicates {
		return nil, configErr("predicates", fmt.Sprint(len(preds)), ErrTooManyPredicates)
	}

	out := make([]Predicate, len(preds))
	names := make(map[string]bool, len(preds))
	for i, p := range preds {
		field := fmt.Sprintf("predicates[%d]", i)
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return nil, configErr(field+".name", "", ErrEmptyName)
		}
		// cohort names are used as URL path segments
		if strings.Contains(name, "/") {
			return nil, configErr(field+".name", name, ErrInvalidName)
		}
		if names[name] {
			return nil, configErr(field+".name", name, ErrDuplicateName)
		}
		names[name] = true
		if !p.Combinator.Valid() {
			return nil, configErr(field+".combinator", p.Combinator.String(), ErrUnknownCombinator)
		}

		genes := make([]string, 0, len(p.Genes))
		seen := make(map[string]bool, len(p.Genes))
		for _, g := range p.Genes {
			g = strings.TrimSpace(g)
			if seen[g] {
				continue
			}
			seen[g] = true
			genes = append(genes, g)
		}
		out[i] = Predicate{Name: name, Genes: genes, Combinator: p.Combinator}
	}
	return out, nil
}

// ValidatePredicates checks the predicate list against the matrix and returns
// the normalised list. No evaluation happens when an error is returned.
func ValidatePredicates(m *GeneLossMatrix, preds []Predicate) ([]Predicate, error) {
	out, err := normalizePredicates(preds)
	if err != nil {
		return nil, err
	}
	for i, p := range out {
		for _, g := range p.Genes {
			if !m.HasGene(g) {
				return nil, configErr(fmt.Sprintf("predicates[%d].genes", i), g, ErrUnknownGene)
			}
		}
	}
	return out, nil
}

// Validate returns the normalised configuration together with the resolved
// cancer type list.
func (c CohortConfig) Validate(m *GeneLossMatrix) (CohortConfig, []string, error) {
	preds, err := ValidatePredicates(m, c.Predicates)
	if err != nil {
		return CohortConfig{}, nil, err
	}
	types, err := c.CancerTypes.Resolve(m)
	if err != nil {
		return CohortConfig{}, nil, err
	}
	return CohortConfig{Predicates: preds, CancerTypes: c.CancerTypes}, types, nil
}

// Run validates cfg, builds the filtered universe and partitions it.
func Run(m *GeneLossMatrix, cfg CohortConfig) (*Partition, error) {
	norm, types, err := cfg.Validate(m)
	if err != nil {
		return nil, err
	}
	p, err := BuildPartition(m, norm.Predicates, m.Universe(types))
	if err != nil {
		return nil, err
	}
	p.CancerTypes = types
	return p, nil
}
