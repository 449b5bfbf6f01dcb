package model

import (
	"strings"
	"time"
)

// Status is the per-predicate side of a cohort.
type Status byte

const (
	StatusDeficient  Status = 'd'
	StatusProficient Status = 'p'
)

// Cohort is one cell of the deficient/proficient cross product.
type Cohort struct {
	Name    string
	Status  []Status
	Samples SampleSet
}

// Partition is the full set of 2^K cohorts for one predicate configuration.
// It is immutable once built; share it by pointer.
type Partition struct {
	ID          string
	CreatedAt   time.Time
	Predicates  []Predicate
	CancerTypes []string
	Cohorts     []Cohort
}

// CohortName joins d<name>/p<name> for every predicate with '-'.
func CohortName(preds []Predicate, status []Status) string {
	parts := make([]string, len(preds))
	for i, p := range preds {
		parts[i] = string(status[i]) + p.Name
	}
	return strings.Join(parts, "-")
}

// StatusOf returns the statuses of the a-th of 2^k assignments. Bit k-1-j
// of a set means predicate j is proficient.
func StatusOf(a, k int) []Status {
	status := make([]Status, k)
	for j := 0; j < k; j++ {
		status[j] = StatusDeficient
		if (a>>(k-1-j))&1 == 1 {
			status[j] = StatusProficient
		}
	}
	return status
}

// BuildPartition evaluates every predicate against universe and returns the
// 2^K cohorts in a fixed order: predicate order as given, deficient before
// proficient, first predicate varying slowest.
//
// A sample missing data for any predicate's genes is dropped from every
// cohort, not only from the cohorts of that predicate.
//
// Cost is O(K*|U|) for the evaluations plus O(2^K*|U|) for the cross
// product. This is exponential in K and only acceptable because K is capped
// at MaxPredicates.
func BuildPartition(m *GeneLossMatrix, preds []Predicate, universe SampleSet) (*Partition, error) {
	preds, err := ValidatePredicates(m, preds)
	if err != nil {
		return nil, err
	}

	k := len(preds)
	evals := make([]Evaluation, k)
	combined := universe.Clone()
	for i, p := range preds {
		ev, err := Evaluate(m, p, universe)
		if err != nil {
			return nil, err
		}
		evals[i] = ev
		combined = combined.Intersect(ev.Clean())
	}

	n := 1 << k
	cohorts := make([]Cohort, 0, n)
	for a := 0; a < n; a++ {
		status := StatusOf(a, k)
		samples := combined
		for j, st := range status {
			side := evals[j].Deficient
			if st == StatusProficient {
				side = evals[j].Proficient
			}
			samples = samples.Intersect(side)
		}
		cohorts = append(cohorts, Cohort{
			Name:    CohortName(preds, status),
			Status:  status,
			Samples: samples,
		})
	}

	return &Partition{Predicates: preds, Cohorts: cohorts}, nil
}

// Lookup finds a cohort by its composite name.
func (p *Partition) Lookup(name string) (Cohort, bool) {
	for _, c := range p.Cohorts {
		if c.Name == name {
			return c, true
		}
	}
	return Cohort{}, false
}

// Names returns cohort names in partition order.
func (p *Partition) Names() []string {
	names := make([]string, len(p.Cohorts))
	for i, c := range p.Cohorts {
		names[i] = c.Name
	}
	return names
}

// Map returns the name to sample list mapping, with each list sorted.
func (p *Partition) Map() map[string][]string {
	out := make(map[string][]string, len(p.Cohorts))
	for _, c := range p.Cohorts {
		out[c.Name] = c.Samples.Sorted()
	}
	return out
}

// Universe is the union of all cohorts, i.e. the filtered samples with
// complete data for every predicate.
func (p *Partition) Universe() SampleSet {
	u := make(SampleSet)
	for _, c := range p.Cohorts {
		for id := range c.Samples {
			u.Add(id)
		}
	}
	return u
}

// Size is the total number of samples across cohorts.
func (p *Partition) Size() int {
	n := 0
	for _, c := range p.Cohorts {
		n += c.Samples.Len()
	}
	return n
}
