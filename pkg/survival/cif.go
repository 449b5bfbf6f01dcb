package survival

// IncidencePoint is one step of a cumulative incidence curve.
type IncidencePoint struct {
	Time      float64 `json:"time"`
	Incidence float64 `json:"incidence"`
	AtRisk    int     `json:"at_risk"`
	Events    int     `json:"events"`
	Competing int     `json:"competing"`
}

type Incidence struct {
	Label     string           `json:"label"`
	N         int              `json:"n"`
	Events    int              `json:"events"`
	Competing int              `json:"competing"`
	Points    []IncidencePoint `json:"points"`
}

// CumulativeIncidence is the Aalen-Johansen estimate for event code 1. Code 0
// is censoring and any code >= 2 is a competing event.
func CumulativeIncidence(label string, obs []Observation) Incidence {
	inc := Incidence{Label: label, N: len(obs)}
	inc.Points = append(inc.Points, IncidencePoint{AtRisk: len(obs)})

	surv, cif := 1.0, 0.0
	for _, s := range steps(obs) {
		competing := s.events - s.interest
		if s.events > 0 {
			n := float64(s.atRisk)
			cif += surv * float64(s.interest) / n
			surv *= 1 - float64(s.events)/n
		}
		inc.Events += s.interest
		inc.Competing += competing

		p := IncidencePoint{Time: s.time, Incidence: cif, AtRisk: s.atRisk, Events: s.interest, Competing: competing}
		if s.time == 0 {
			inc.Points[0] = p
		} else {
			inc.Points = append(inc.Points, p)
		}
	}
	return inc
}

// At returns the cumulative incidence at time t.
func (c Incidence) At(t float64) float64 {
	v := 0.0
	for _, p := range c.Points {
		if p.Time > t {
			break
		}
		v = p.Incidence
	}
	return v
}
