package request

import (
	"github.com/yumyai/ddrcohort/pkg/model"
)

// CohortRequest defines a new partition.
type CohortRequest struct {
	Predicates  []model.Predicate  `json:"predicates"`
	CancerTypes model.CancerFilter `json:"cancer_types"`
}

func (r CohortRequest) Config() model.CohortConfig {
	return model.CohortConfig{Predicates: r.Predicates, CancerTypes: r.CancerTypes}
}

// SurvivalRequest selects cohorts of the current partition and an endpoint.
type SurvivalRequest struct {
	Groups   []string `json:"groups"`
	Endpoint string   `json:"endpoint"`
}

type FootprintRequest struct {
	Groups            []string `json:"groups"`
	Features          []string `json:"features"`
	SplitByCancerType bool     `json:"split_by_cancer_type"`
}
