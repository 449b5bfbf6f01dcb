package request

import (
	"testing"

	"github.com/yumyai/ddrcohort/pkg/survival"
)

func TestParseEndpointSet(t *testing.T) {
	for _, s := range []EndpointSet{EndpointSetSimple, EndpointSetAdvanced, EndpointSetCompetingRisk, EndpointSetAll} {
		if got := ParseEndpointSet(s.String()); got != s {
			t.Errorf("ParseEndpointSet(%q) = %v", s.String(), got)
		}
	}
	if ParseEndpointSet("cr") != EndpointSetCompetingRisk || ParseEndpointSet("bogus") != EndpointSetAll {
		t.Error("aliases and fallback")
	}
}

func TestEndpointSetMembers(t *testing.T) {
	for _, e := range EndpointSetCompetingRisk.Endpoints() {
		if !e.CompetingRisk() {
			t.Errorf("%s in competing-risk set", e)
		}
	}
	if got := len(EndpointSetAll.Endpoints()); got != 11 {
		t.Errorf("all endpoints = %d, want 11", got)
	}
	if EndpointSetSimple.Endpoints()[0] != survival.EndpointOS {
		t.Error("OS should lead the simple set")
	}
}
