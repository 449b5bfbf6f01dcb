package survival

import (
	"fmt"

	"github.com/yumyai/ddrcohort/pkg/model"
)

// Result is everything the survival views need for one endpoint.
type Result struct {
	Endpoint      Endpoint     `json:"endpoint"`
	Label         string       `json:"label"`
	TimeColumn    string       `json:"time_column"`
	CompetingRisk bool         `json:"competing_risk"`
	Curves        []Curve      `json:"curves,omitempty"`
	LogRank       []Comparison `json:"log_rank,omitempty"`
	Incidence     []Incidence  `json:"incidence,omitempty"`
}

// Analyze looks up each named cohort in the partition and fits the endpoint.
// Competing-risk endpoints give cumulative incidence curves, every other
// endpoint gives Kaplan-Meier curves with pairwise log-rank tests.
func Analyze(t *Table, p *model.Partition, groups []string, e Endpoint) (*Result, error) {
	if len(groups) == 0 {
		return nil, ErrNoGroups
	}
	if !t.HasEndpoint(e) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEndpoint, e)
	}

	obs := make([][]Observation, len(groups))
	for i, name := range groups {
		c, ok := p.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", model.ErrUnknownCohort, name)
		}
		o, err := t.Observations(c.Samples, e)
		if err != nil {
			return nil, err
		}
		obs[i] = o
	}

	res := &Result{
		Endpoint:      e,
		Label:         e.Label(),
		TimeColumn:    e.TimeColumn(),
		CompetingRisk: e.CompetingRisk(),
	}
	if res.CompetingRisk {
		for i, name := range groups {
			res.Incidence = append(res.Incidence, CumulativeIncidence(name, obs[i]))
		}
		return res, nil
	}
	for i, name := range groups {
		res.Curves = append(res.Curves, KaplanMeier(name, obs[i]))
	}
	res.LogRank = Pairwise(groups, obs)
	return res, nil
}
