// Package survival computes Kaplan-Meier curves, log-rank tests and
// Aalen-Johansen cumulative incidence for named cohorts. It sits behind a
// narrow contract: durations, event codes and labels in; curves and p-values
// out.
package survival

import "strings"

// Endpoint is a survival endpoint code as used for the event column of the
// survival table, e.g. OS or PFI.1.cr.
type Endpoint string

const (
	EndpointOS     Endpoint = "OS"
	EndpointDSS    Endpoint = "DSS"
	EndpointDFI    Endpoint = "DFI"
	EndpointPFI    Endpoint = "PFI"
	EndpointPFI1   Endpoint = "PFI.1"
	EndpointPFI2   Endpoint = "PFI.2"
	EndpointPFS    Endpoint = "PFS"
	EndpointDSSCR  Endpoint = "DSS.cr"
	EndpointDFICR  Endpoint = "DFI.cr"
	EndpointPFI1CR Endpoint = "PFI.1.cr"
	EndpointPFI2CR Endpoint = "PFI.2.cr"
)

var endpointLabel = map[Endpoint]string{
	EndpointOS:     "Overall survival",
	EndpointDSS:    "Disease-specific survival",
	EndpointDFI:    "Disease-free interval",
	EndpointPFI:    "Progression-free interval",
	EndpointPFI1:   "Progression-free interval, new tumor events of unknown type included",
	EndpointPFI2:   "Progression-free interval, new tumor events of unknown type excluded",
	EndpointPFS:    "Progression-free survival",
	EndpointDSSCR:  "Disease-specific survival, competing risk",
	EndpointDFICR:  "Disease-free interval, competing risk",
	EndpointPFI1CR: "Progression-free interval, competing risk, unknown new tumor events included",
	EndpointPFI2CR: "Progression-free interval, competing risk, unknown new tumor events excluded",
}

// Label is a human readable name, falling back to the code.
func (e Endpoint) Label() string {
	if l, ok := endpointLabel[e]; ok {
		return l
	}
	return string(e)
}

// TimeColumn names the duration column paired with the endpoint: ".time" is
// inserted after the first segment, so OS -> OS.time and PFI.1.cr ->
// PFI.time.1.cr.
func (e Endpoint) TimeColumn() string {
	s := string(e)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return s[:i] + ".time" + s[i:]
	}
	return s + ".time"
}

// CompetingRisk reports whether the endpoint codes competing events (event
// value 2) and should be shown as cumulative incidence.
func (e Endpoint) CompetingRisk() bool {
	return strings.HasSuffix(string(e), ".cr")
}

// IsTimeColumn reports whether a column name follows the time column pattern.
func IsTimeColumn(name string) bool {
	parts := strings.Split(name, ".")
	return len(parts) >= 2 && parts[1] == "time"
}
