package model

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

var (
	ErrUnknownCohort  = errors.New("cohort is not part of the current partition")
	ErrUnknownFeature = errors.New("footprint feature is not known")
)

// FootprintTable holds numeric DDR footprint scores per sample. Missing
// values are stored as NaN. Read-only after loading.
type FootprintTable struct {
	features     []string
	featureIdx   map[string]int
	samples      []Sample
	sampleIdx    map[string]int
	values       [][]float64
	descriptions map[string]string
}

func NewFootprintTable(features []string) *FootprintTable {
	t := &FootprintTable{
		features:     append([]string(nil), features...),
		featureIdx:   make(map[string]int, len(features)),
		sampleIdx:    make(map[string]int),
		descriptions: make(map[string]string),
	}
	for i, f := range features {
		t.featureIdx[f] = i
	}
	return t
}

func (t *FootprintTable) AddSample(s Sample, values []float64) error {
	if _, dup := t.sampleIdx[s.ID]; dup {
		return fmt.Errorf("%w: %s", ErrDuplicateSample, s.ID)
	}
	if len(values) != len(t.features) {
		return fmt.Errorf("%w: sample %s has %d values for %d features", ErrMatrixShape, s.ID, len(values), len(t.features))
	}
	t.sampleIdx[s.ID] = len(t.samples)
	t.samples = append(t.samples, s)
	t.values = append(t.values, append([]float64(nil), values...))
	return nil
}

func (t *FootprintTable) SetDescription(feature, desc string) {
	t.descriptions[feature] = desc
}

func (t *FootprintTable) Description(feature string) string {
	return t.descriptions[feature]
}

func (t *FootprintTable) Features() []string {
	return append([]string(nil), t.features...)
}

func (t *FootprintTable) HasFeature(f string) bool {
	_, ok := t.featureIdx[f]
	return ok
}

type CancerTypeMean struct {
	CancerType string  `json:"cancer_type"`
	Mean       float64 `json:"mean"`
	N          int     `json:"n"`
}

type CohortMean struct {
	Cohort       string           `json:"cohort"`
	Mean         float64          `json:"mean"`
	N            int              `json:"n"`
	ByCancerType []CancerTypeMean `json:"by_cancer_type,omitempty"`
}

// FootprintMean is the per-cohort mean of one footprint feature.
type FootprintMean struct {
	Feature     string       `json:"feature"`
	Description string       `json:"description,omitempty"`
	Cohorts     []CohortMean `json:"cohorts"`
}

// FootprintMeans averages each feature over the samples of each named
// cohort. Samples with no value are ignored and cohorts left with no values
// are omitted. Means are rounded to one decimal.
func FootprintMeans(t *FootprintTable, p *Partition, cohorts, features []string, splitByCancerType bool) ([]FootprintMean, error) {
	groups := make([]Cohort, len(cohorts))
	for i, name := range cohorts {
		c, ok := p.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCohort, name)
		}
		groups[i] = c
	}
	for _, f := range features {
		if !t.HasFeature(f) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownFeature, f)
		}
	}

	out := make([]FootprintMean, 0, len(features))
	for _, f := range features {
		fi := t.featureIdx[f]
		fm := FootprintMean{Feature: f, Description: t.Description(f)}
		for _, c := range groups {
			var all []float64
			byType := make(map[string][]float64)
			// iterate in table order so sums are reproducible
			for si, s := range t.samples {
				if !c.Samples.Has(s.ID) {
					continue
				}
				v := t.values[si][fi]
				if math.IsNaN(v) {
					continue
				}
				all = append(all, v)
				byType[s.CancerType] = append(byType[s.CancerType], v)
			}
			if len(all) == 0 {
				continue
			}

			cm := CohortMean{Cohort: c.Name, Mean: round1(stat.Mean(all, nil)), N: len(all)}
			if splitByCancerType {
				for ct, vs := range byType {
					cm.ByCancerType = append(cm.ByCancerType, CancerTypeMean{CancerType: ct, Mean: round1(stat.Mean(vs, nil)), N: len(vs)})
				}
				sort.Slice(cm.ByCancerType, func(i, j int) bool {
					return cm.ByCancerType[i].CancerType < cm.ByCancerType[j].CancerType
				})
			}
			fm.Cohorts = append(fm.Cohorts, cm)
		}
		out = append(out, fm)
	}
	return out, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
