package survival

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// confidence level of the Kaplan-Meier bands
const confidence = 0.95

// step aggregates the observations sharing one distinct time.
type step struct {
	time     float64
	atRisk   int
	events   int // any event code > 0
	interest int // event code 1
	censored int
}

func steps(obs []Observation) []step {
	sorted := byTime(obs)
	var out []step
	atRisk := len(sorted)
	for i := 0; i < len(sorted); {
		s := step{time: sorted[i].Time, atRisk: atRisk}
		j := i
		for ; j < len(sorted) && sorted[j].Time == s.time; j++ {
			switch {
			case sorted[j].Event == 1:
				s.events++
				s.interest++
			case sorted[j].Event > 1:
				s.events++
			default:
				s.censored++
			}
		}
		atRisk -= j - i
		i = j
		out = append(out, s)
	}
	return out
}

type Point struct {
	Time     float64 `json:"time"`
	Survival float64 `json:"survival"`
	Lower    float64 `json:"lower"`
	Upper    float64 `json:"upper"`
	AtRisk   int     `json:"at_risk"`
	Events   int     `json:"events"`
	Censored int     `json:"censored"`
}

// Curve is a Kaplan-Meier survival function.
type Curve struct {
	Label  string   `json:"label"`
	N      int      `json:"n"`
	Events int      `json:"events"`
	Median *float64 `json:"median,omitempty"` // nil when survival never drops to 0.5
	Points []Point  `json:"points"`
}

// KaplanMeier estimates the survival function. Any positive event code
// counts as an event. Bands use Greenwood's variance on the log(-log)
// scale, and collapse onto the estimate where it is 0 or 1.
func KaplanMeier(label string, obs []Observation) Curve {
	z := distuv.UnitNormal.Quantile(1 - (1-confidence)/2)

	c := Curve{Label: label, N: len(obs)}
	c.Points = append(c.Points, Point{Time: 0, Survival: 1, Lower: 1, Upper: 1, AtRisk: len(obs)})

	surv, greenwood := 1.0, 0.0
	for _, s := range steps(obs) {
		if s.events > 0 {
			n, d := float64(s.atRisk), float64(s.events)
			surv *= 1 - d/n
			if n > d {
				greenwood += d / (n * (n - d))
			} else {
				greenwood = math.Inf(1)
			}
		}
		c.Events += s.events

		p := Point{Time: s.time, Survival: surv, Lower: surv, Upper: surv, AtRisk: s.atRisk, Events: s.events, Censored: s.censored}
		if surv > 0 && surv < 1 && !math.IsInf(greenwood, 1) {
			logS := math.Log(surv)
			se := math.Sqrt(greenwood / (logS * logS))
			ll := math.Log(-logS)
			p.Lower = math.Exp(-math.Exp(ll + z*se))
			p.Upper = math.Exp(-math.Exp(ll - z*se))
		}
		if s.time == 0 {
			c.Points[0] = p
		} else {
			c.Points = append(c.Points, p)
		}

		if c.Median == nil && surv <= 0.5 {
			t := s.time
			c.Median = &t
		}
	}
	return c
}

// At returns the survival estimate at time t.
func (c Curve) At(t float64) float64 {
	s := 1.0
	for _, p := range c.Points {
		if p.Time > t {
			break
		}
		s = p.Survival
	}
	return s
}
