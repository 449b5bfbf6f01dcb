package survival

import (
	"errors"
	"math"
	"testing"

	"github.com/yumyai/ddrcohort/pkg/model"
)

func obsOf(pairs ...float64) []Observation {
	var out []Observation
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Observation{Sample: string(rune('A' + i/2)), Time: pairs[i], Event: int(pairs[i+1])})
	}
	return out
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-4 }

func TestEndpointTimeColumn(t *testing.T) {
	cases := map[Endpoint]string{
		EndpointOS:     "OS.time",
		EndpointPFI1:   "PFI.time.1",
		EndpointDSSCR:  "DSS.time.cr",
		EndpointPFI2CR: "PFI.time.2.cr",
	}
	for e, want := range cases {
		if got := e.TimeColumn(); got != want {
			t.Errorf("%s.TimeColumn() = %q, want %q", e, got, want)
		}
		if !IsTimeColumn(want) {
			t.Errorf("IsTimeColumn(%q) = false", want)
		}
	}
	if IsTimeColumn("PFI.1") {
		t.Error("PFI.1 is not a time column")
	}
	if !EndpointDFICR.CompetingRisk() || EndpointPFS.CompetingRisk() {
		t.Error("CompetingRisk misreports the .cr suffix")
	}
}

func TestKaplanMeier(t *testing.T) {
	c := KaplanMeier("g", obsOf(1, 1, 2, 0, 3, 1, 4, 1, 5, 0))
	if c.N != 5 || c.Events != 3 {
		t.Fatalf("N=%d Events=%d", c.N, c.Events)
	}
	want := map[float64]float64{0: 1, 1: 0.8, 2: 0.8, 3: 0.8 * 2 / 3, 4: 0.8 * 2 / 3 / 2, 5: 0.8 * 2 / 3 / 2}
	for tm, s := range want {
		if got := c.At(tm); !near(got, s) {
			t.Errorf("S(%v) = %v, want %v", tm, got, s)
		}
	}
	if c.Median == nil || *c.Median != 4 {
		t.Fatalf("median = %v, want 4", c.Median)
	}
	for _, p := range c.Points {
		if p.Lower > p.Survival || p.Upper < p.Survival {
			t.Errorf("band [%v, %v] does not contain %v at t=%v", p.Lower, p.Upper, p.Survival, p.Time)
		}
		if p.Lower < 0 || p.Upper > 1 {
			t.Errorf("band out of range at t=%v", p.Time)
		}
	}
}

func TestKaplanMeier_NoEvents(t *testing.T) {
	c := KaplanMeier("g", obsOf(1, 0, 2, 0))
	if c.Median != nil {
		t.Fatalf("median should be undefined, got %v", *c.Median)
	}
	if got := c.At(10); got != 1 {
		t.Fatalf("S(10) = %v", got)
	}
}

func TestLogRank(t *testing.T) {
	a := obsOf(1, 1, 2, 1, 3, 1)
	b := obsOf(4, 1, 5, 1, 6, 1)
	r := LogRank(a, b)
	if !near(r.Observed, 3) || !near(r.Expected, 1.15) {
		t.Fatalf("O=%v E=%v", r.Observed, r.Expected)
	}
	if !near(r.Statistic, 3.4225/0.6775) {
		t.Fatalf("statistic = %v", r.Statistic)
	}
	if r.PValue <= 0.01 || r.PValue >= 0.05 {
		t.Fatalf("p = %v, want about 0.025", r.PValue)
	}

	same := LogRank(a, a)
	if same.Statistic != 0 || same.PValue != 1 {
		t.Fatalf("identical groups: %+v", same)
	}

	none := LogRank(obsOf(1, 0), obsOf(2, 0))
	if none.PValue != 1 {
		t.Fatalf("censored only: p = %v", none.PValue)
	}
}

func TestPairwiseSkipsEmpty(t *testing.T) {
	groups := [][]Observation{obsOf(1, 1, 2, 1), nil, obsOf(3, 1, 4, 0)}
	got := Pairwise([]string{"a", "b", "c"}, groups)
	if len(got) != 1 {
		t.Fatalf("got %d comparisons, want 1", len(got))
	}
	if got[0].Group1 != "a" || got[0].Group2 != "c" || got[0].N1 != 2 || got[0].N2 != 2 {
		t.Fatalf("unexpected row %+v", got[0])
	}
}

func TestCumulativeIncidence(t *testing.T) {
	inc := CumulativeIncidence("g", obsOf(1, 1, 2, 2, 3, 1, 4, 0))
	if inc.Events != 2 || inc.Competing != 1 {
		t.Fatalf("events=%d competing=%d", inc.Events, inc.Competing)
	}
	for tm, want := range map[float64]float64{0.5: 0, 1: 0.25, 2: 0.25, 3: 0.5, 4: 0.5} {
		if got := inc.At(tm); !near(got, want) {
			t.Errorf("CIF(%v) = %v, want %v", tm, got, want)
		}
	}
}

func analyzeFixture(t *testing.T) (*Table, *model.Partition) {
	t.Helper()
	m := model.NewGeneLossMatrix([]string{"BRCA1"})
	tbl := NewTable([]Endpoint{EndpointOS, EndpointDSSCR})
	rows := []struct {
		id   string
		flag model.Flag
		os   Record
		cr   Record
	}{
		{"S1", model.FlagLost, Record{10, 1, true}, Record{10, 1, true}},
		{"S2", model.FlagLost, Record{20, 1, true}, Record{20, 2, true}},
		{"S3", model.FlagLost, Record{}, Record{}},
		{"S4", model.FlagRetained, Record{30, 0, true}, Record{30, 0, true}},
		{"S5", model.FlagRetained, Record{40, 1, true}, Record{40, 1, true}},
	}
	for _, r := range rows {
		if err := m.AddSample(model.Sample{ID: r.id, CancerType: "BRCA"}, []model.Flag{r.flag}); err != nil {
			t.Fatal(err)
		}
		if err := tbl.Add(r.id, []Record{r.os, r.cr}); err != nil {
			t.Fatal(err)
		}
	}
	preds := []model.Predicate{{Name: "HR", Genes: []string{"BRCA1"}, Combinator: model.CombinatorAll}}
	p, err := model.BuildPartition(m, preds, m.Universe(m.CancerTypes()))
	if err != nil {
		t.Fatal(err)
	}
	return tbl, p
}

func TestAnalyze(t *testing.T) {
	tbl, p := analyzeFixture(t)

	res, err := Analyze(tbl, p, []string{"dHR", "pHR"}, EndpointOS)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.CompetingRisk || len(res.Curves) != 2 || len(res.LogRank) != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
	// S3 has no OS record and is dropped
	if res.Curves[0].N != 2 || res.Curves[1].N != 2 {
		t.Fatalf("curve sizes %d, %d", res.Curves[0].N, res.Curves[1].N)
	}

	cr, err := Analyze(tbl, p, []string{"dHR"}, EndpointDSSCR)
	if err != nil {
		t.Fatalf("Analyze cr: %v", err)
	}
	if !cr.CompetingRisk || len(cr.Incidence) != 1 || cr.Incidence[0].Competing != 1 {
		t.Fatalf("unexpected competing-risk result %+v", cr)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	tbl, p := analyzeFixture(t)
	if _, err := Analyze(tbl, p, nil, EndpointOS); !errors.Is(err, ErrNoGroups) {
		t.Errorf("no groups: %v", err)
	}
	if _, err := Analyze(tbl, p, []string{"dHR"}, EndpointPFS); !errors.Is(err, ErrUnknownEndpoint) {
		t.Errorf("unknown endpoint: %v", err)
	}
	if _, err := Analyze(tbl, p, []string{"dXX"}, EndpointOS); !errors.Is(err, model.ErrUnknownCohort) {
		t.Errorf("unknown cohort: %v", err)
	}
}
