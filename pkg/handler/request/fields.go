package request

import (
	"github.com/yumyai/ddrcohort/pkg/survival"
)

// EndpointSet groups endpoints the way the survival views offer them.
type EndpointSet int

const (
	EndpointSetSimple EndpointSet = iota
	EndpointSetAdvanced
	EndpointSetCompetingRisk
	EndpointSetAll
)

func (s EndpointSet) String() string {
	switch s {
	case EndpointSetSimple:
		return "simple"
	case EndpointSetAdvanced:
		return "advanced"
	case EndpointSetCompetingRisk:
		return "competing_risk"
	default:
		return "all"
	}
}

func ParseEndpointSet(field string) EndpointSet {
	switch field {
	case "simple":
		return EndpointSetSimple
	case "advanced":
		return EndpointSetAdvanced
	case "competing_risk", "cr":
		return EndpointSetCompetingRisk
	default:
		return EndpointSetAll // default to every endpoint
	}
}

// Endpoints lists the members of the set, in display order.
func (s EndpointSet) Endpoints() []survival.Endpoint {
	simple := []survival.Endpoint{survival.EndpointOS, survival.EndpointDSS, survival.EndpointDFI, survival.EndpointPFI}
	advanced := []survival.Endpoint{survival.EndpointPFI1, survival.EndpointPFI2, survival.EndpointPFS}
	cr := []survival.Endpoint{survival.EndpointDSSCR, survival.EndpointDFICR, survival.EndpointPFI1CR, survival.EndpointPFI2CR}
	switch s {
	case EndpointSetSimple:
		return simple
	case EndpointSetAdvanced:
		return advanced
	case EndpointSetCompetingRisk:
		return cr
	}
	return append(append(simple, advanced...), cr...)
}
