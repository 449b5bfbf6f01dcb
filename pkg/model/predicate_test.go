package model

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestEvaluate(t *testing.T) {
	m := scenarioMatrix(t)
	universe := NewSampleSet("S1", "S2", "S3", "S4", "S5", "S6")

	tests := []struct {
		name           string
		pred           Predicate
		wantDeficient  []string
		wantProficient []string
	}{
		{
			name:           "any excludes missing",
			pred:           Predicate{Name: "MMR", Genes: []string{"MLH1", "MSH2", "PMS2"}, Combinator: CombinatorAny},
			wantDeficient:  []string{"S1", "S2"},
			wantProficient: []string{"S4", "S5", "S6"},
		},
		{
			name:           "all requires every gene",
			pred:           Predicate{Name: "Both", Genes: []string{"MLH1", "TP53"}, Combinator: CombinatorAll},
			wantDeficient:  []string{"S2"},
			wantProficient: []string{"S1", "S3", "S4", "S5", "S6"},
		},
		{
			name:           "empty genes",
			pred:           Predicate{Name: "None", Combinator: CombinatorAll},
			wantDeficient:  []string{},
			wantProficient: []string{"S1", "S2", "S3", "S4", "S5", "S6"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := Evaluate(m, tt.pred, universe)
			if err != nil {
				t.Fatalf("Evaluate: %v", err)
			}
			if got := ev.Deficient.Sorted(); !reflect.DeepEqual(got, tt.wantDeficient) {
				t.Errorf("deficient = %v, want %v", got, tt.wantDeficient)
			}
			if got := ev.Proficient.Sorted(); !reflect.DeepEqual(got, tt.wantProficient) {
				t.Errorf("proficient = %v, want %v", got, tt.wantProficient)
			}
		})
	}
}

func TestEvaluate_DoesNotTouchUniverse(t *testing.T) {
	m := scenarioMatrix(t)
	universe := NewSampleSet("S1", "S3")
	ev, err := Evaluate(m, Predicate{Name: "E", Combinator: CombinatorAny}, universe)
	if err != nil {
		t.Fatal(err)
	}
	ev.Proficient.Add("S9")
	if universe.Has("S9") {
		t.Fatalf("proficient set aliases the universe")
	}
}

func TestEvaluate_UnknownGene(t *testing.T) {
	m := scenarioMatrix(t)
	_, err := Evaluate(m, Predicate{Name: "X", Genes: []string{"NOPE"}, Combinator: CombinatorAny}, NewSampleSet("S1"))
	if !errors.Is(err, ErrUnknownGene) {
		t.Fatalf("expected ErrUnknownGene, got %v", err)
	}
}

func TestParseCombinator(t *testing.T) {
	tests := []struct {
		in   string
		want Combinator
		ok   bool
	}{
		{"ALL", CombinatorAll, true},
		{"any", CombinatorAny, true},
		{"Any of the selected genes", CombinatorAny, true},
		{"All of the selected genes", CombinatorAll, true},
		{"most", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, err := ParseCombinator(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseCombinator(%q) err = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCombinator(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPredicateJSON(t *testing.T) {
	var p Predicate
	if err := json.Unmarshal([]byte(`{"name":"HR","genes":["BRCA1","BRCA2"],"combinator":"any"}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Combinator != CombinatorAny || len(p.Genes) != 2 {
		t.Fatalf("unexpected predicate %+v", p)
	}
	b, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"name":"HR","genes":["BRCA1","BRCA2"],"combinator":"ANY"}` {
		t.Fatalf("unexpected json %s", b)
	}

	if err := json.Unmarshal([]byte(`{"name":"HR","combinator":"some"}`), &p); err == nil {
		t.Fatalf("expected an error for an unknown combinator")
	}
}

func TestMatrixAddSample(t *testing.T) {
	m := NewGeneLossMatrix([]string{"ATM"})
	if err := m.AddSample(Sample{ID: "A", CancerType: "OV"}, []Flag{L}); err != nil {
		t.Fatal(err)
	}
	if err := m.AddSample(Sample{ID: "A", CancerType: "OV"}, []Flag{R}); !errors.Is(err, ErrDuplicateSample) {
		t.Fatalf("expected ErrDuplicateSample, got %v", err)
	}
	if err := m.AddSample(Sample{ID: "B", CancerType: "OV"}, []Flag{R, R}); !errors.Is(err, ErrMatrixShape) {
		t.Fatalf("expected ErrMatrixShape, got %v", err)
	}
	if m.Flag("A", "ATM") != FlagLost || m.Flag("Z", "ATM") != FlagMissing || m.Flag("A", "BRCA1") != FlagMissing {
		t.Fatalf("unexpected flag lookups")
	}
}
