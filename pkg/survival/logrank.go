package survival

import (
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

var chisquared = distuv.ChiSquared{K: 1}

// LogRankResult is a two-group log-rank test.
type LogRankResult struct {
	Statistic float64 `json:"statistic"`
	PValue    float64 `json:"p_value"`
	Observed  float64 `json:"observed_a"`
	Expected  float64 `json:"expected_a"`
}

// LogRank compares two samples of observations. Any positive event code is
// an event. A test with no informative event times has p = 1.
func LogRank(a, b []Observation) LogRankResult {
	pooled := make([]Observation, 0, len(a)+len(b))
	pooled = append(pooled, a...)
	pooled = append(pooled, b...)

	sortedA := byTime(a)
	eventsA := make(map[float64]int)
	for _, o := range sortedA {
		if o.Event > 0 {
			eventsA[o.Time]++
		}
	}

	var obs, exp, variance float64
	for _, s := range steps(pooled) {
		if s.events == 0 {
			continue
		}
		// members of a still at risk at s.time
		first := sort.Search(len(sortedA), func(i int) bool { return sortedA[i].Time >= s.time })
		n1 := float64(len(sortedA) - first)
		n, d := float64(s.atRisk), float64(s.events)
		obs += float64(eventsA[s.time])
		exp += d * n1 / n
		if n > 1 {
			variance += d * (n1 / n) * (1 - n1/n) * (n - d) / (n - 1)
		}
	}

	res := LogRankResult{Observed: obs, Expected: exp, PValue: 1}
	if variance > 0 {
		diff := obs - exp
		res.Statistic = diff * diff / variance
		res.PValue = 1 - chisquared.CDF(res.Statistic)
	}
	return res
}

// Comparison is one row of the pairwise log-rank table.
type Comparison struct {
	Group1 string `json:"group1"`
	Group2 string `json:"group2"`
	N1     int    `json:"n1"`
	N2     int    `json:"n2"`
	LogRankResult
}

// Pairwise runs LogRank for every pair of labelled groups in order, skipping
// pairs where either side has no observations.
func Pairwise(labels []string, groups [][]Observation) []Comparison {
	var out []Comparison
	for i := 0; i < len(groups); i++ {
		for j := i + 1; j < len(groups); j++ {
			if len(groups[i]) == 0 || len(groups[j]) == 0 {
				continue
			}
			out = append(out, Comparison{
				Group1:        labels[i],
				Group2:        labels[j],
				N1:            len(groups[i]),
				N2:            len(groups[j]),
				LogRankResult: LogRank(groups[i], groups[j]),
			})
		}
	}
	return out
}
