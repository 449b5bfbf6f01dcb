package survival

import (
	"errors"
	"fmt"
	"sort"

	"github.com/yumyai/ddrcohort/pkg/model"
)

var (
	ErrUnknownEndpoint = errors.New("endpoint is not present in the survival table")
	ErrNoGroups        = errors.New("no cohorts selected")
)

// Record is one sample's (time, event) pair for one endpoint.
type Record struct {
	Time  float64
	Event int
	Valid bool // false when time or event is missing
}

// Observation is a usable record attached to its sample.
type Observation struct {
	Sample string  `json:"sample"`
	Time   float64 `json:"time"`
	Event  int     `json:"event"`
}

// Table holds survival outcomes keyed by sample id. Read-only after loading.
type Table struct {
	endpoints []Endpoint
	idx       map[Endpoint]int
	records   map[string][]Record
}

func NewTable(endpoints []Endpoint) *Table {
	t := &Table{
		endpoints: append([]Endpoint(nil), endpoints...),
		idx:       make(map[Endpoint]int, len(endpoints)),
		records:   make(map[string][]Record),
	}
	for i, e := range endpoints {
		t.idx[e] = i
	}
	return t
}

// Add stores the records of one sample, in endpoint order.
func (t *Table) Add(sample string, recs []Record) error {
	if _, dup := t.records[sample]; dup {
		return fmt.Errorf("%w: %s", model.ErrDuplicateSample, sample)
	}
	if len(recs) != len(t.endpoints) {
		return fmt.Errorf("%w: sample %s has %d records for %d endpoints", model.ErrMatrixShape, sample, len(recs), len(t.endpoints))
	}
	t.records[sample] = append([]Record(nil), recs...)
	return nil
}

func (t *Table) Endpoints() []Endpoint {
	return append([]Endpoint(nil), t.endpoints...)
}

func (t *Table) HasEndpoint(e Endpoint) bool {
	_, ok := t.idx[e]
	return ok
}

func (t *Table) Len() int {
	return len(t.records)
}

// Observations returns the valid records of the given samples, ordered by
// sample id. Samples absent from the table or with a missing time or event
// are dropped.
func (t *Table) Observations(samples model.SampleSet, e Endpoint) ([]Observation, error) {
	ei, ok := t.idx[e]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEndpoint, e)
	}
	var obs []Observation
	for _, id := range samples.Sorted() {
		recs, ok := t.records[id]
		if !ok {
			continue
		}
		r := recs[ei]
		if !r.Valid {
			continue
		}
		obs = append(obs, Observation{Sample: id, Time: r.Time, Event: r.Event})
	}
	return obs, nil
}

// byTime sorts observations by time; ties keep sample order.
func byTime(obs []Observation) []Observation {
	out := append([]Observation(nil), obs...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}
