package model

import "sort"

type CancerTypeCount struct {
	CancerType string `json:"cancer_type"`
	Name       string `json:"name"`
	Count      int    `json:"count"`
}

// CohortSummary is the size and cancer type make-up of one cohort.
type CohortSummary struct {
	Name        string            `json:"name"`
	Size        int               `json:"size"`
	CancerTypes []CancerTypeCount `json:"cancer_types"`
}

// Summarize counts samples per cohort and per cancer type, in partition
// order. Cancer types are listed by descending count, then by code.
func Summarize(p *Partition, m *GeneLossMatrix) []CohortSummary {
	out := make([]CohortSummary, 0, len(p.Cohorts))
	for _, c := range p.Cohorts {
		counts := make(map[string]int)
		for id := range c.Samples {
			s, ok := m.Sample(id)
			if !ok {
				continue
			}
			counts[s.CancerType]++
		}

		cts := make([]CancerTypeCount, 0, len(counts))
		for ct, n := range counts {
			cts = append(cts, CancerTypeCount{CancerType: ct, Name: CancerTypeName(ct), Count: n})
		}
		sort.Slice(cts, func(i, j int) bool {
			if cts[i].Count != cts[j].Count {
				return cts[i].Count > cts[j].Count
			}
			return cts[i].CancerType < cts[j].CancerType
		})

		out = append(out, CohortSummary{Name: c.Name, Size: c.Samples.Len(), CancerTypes: cts})
	}
	return out
}
