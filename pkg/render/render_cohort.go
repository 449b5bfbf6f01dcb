// Render HTML summary of the current cohort partition

package render

import (
	"fmt"
	"html/template"
	"io"
	"math"

	"github.com/yumyai/ddrcohort/pkg/model"
)

// shareColor maps a cohort's share of the universe (0..1) onto a white to
// dark blue ramp. Empty cohorts are grey.
func shareColor(share float64) string {
	if share <= 0 || math.IsNaN(share) {
		return "#CCCCCC"
	}
	if share > 1 {
		share = 1
	}
	// #F7FBFF -> #08519C
	sr, sg, sb := 247.0, 251.0, 255.0
	er, eg, eb := 8.0, 81.0, 156.0
	r := int(math.Round(lerp(sr, er, share)))
	g := int(math.Round(lerp(sg, eg, share)))
	b := int(math.Round(lerp(sb, eb, share)))
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

var cohortPageTemplate *template.Template

func init() {
	mainTmpl := `
	<!DOCTYPE html>
	<html>
	<head>
		<link href="static/style.css" rel="stylesheet"></link>
		<title>DDR cohorts</title>
	</head>
	<body>
		<h1>DDR cohorts</h1>
		{{if .Defined}}
			{{template "definition" .}}
			{{template "summary" .}}
		{{else}}
			<p>No cohorts have been defined yet. POST a definition to /api/v1/cohorts.</p>
		{{end}}
	</body>
	</html>`

	definitionTmpl := `{{define "definition"}}
	<h2>Definition</h2>
	<p>Created {{.CreatedAt}}. {{.Total}} samples with complete data.</p>
	<ul>
	{{range .Predicates}}
		<li><b>{{.Name}}</b>: {{.Combinator}} of {{join .Genes}}</li>
	{{end}}
	</ul>
	{{if .CancerTypes}}<p>Cancer types: {{join .CancerTypes}}</p>{{end}}
	{{end}}`

	summaryTmpl := `{{define "summary"}}
	<h2>Cohorts</h2>
	<table border="1">
	<tr>
		<th>Cohort</th>
		<th>Samples</th>
		<th>Cancer types</th>
		<th>Links</th>
	</tr>
	{{range .Rows}}
		<tr>
			<td>{{.Name}}</td>
			<td style="background-color: {{.Color}}">{{.Size}}</td>
			<td>{{range $i, $ct := .CancerTypes}}{{if $i}}, {{end}}<span title="{{$ct.Name}}">{{$ct.CancerType}}</span> ({{$ct.Count}}){{end}}</td>
			<td>[<a href="/api/v1/cohorts/{{.Name}}" target="_blank">samples</a>]</td>
		</tr>
	{{end}}
	</table>
	{{end}}`

	funcMap := template.FuncMap{
		"join": func(s []string) string {
			out := ""
			for i, v := range s {
				if i > 0 {
					out += ", "
				}
				out += v
			}
			return out
		},
	}

	cohortPageTemplate = template.New("cohorts").Funcs(funcMap)
	cohortPageTemplate = template.Must(cohortPageTemplate.Parse(mainTmpl))
	cohortPageTemplate = template.Must(cohortPageTemplate.Parse(definitionTmpl))
	cohortPageTemplate = template.Must(cohortPageTemplate.Parse(summaryTmpl))
}

// CohortRow is one line of the summary table.
type CohortRow struct {
	model.CohortSummary
	Color string
}

// RenderCohortPage writes the summary page. A nil partition renders the
// empty state.
func RenderCohortPage(w io.Writer, p *model.Partition, summaries []model.CohortSummary) error {
	data := struct {
		Defined     bool
		CreatedAt   string
		Total       int
		Predicates  []model.Predicate
		CancerTypes []string
		Rows        []CohortRow
	}{}

	if p != nil {
		data.Defined = true
		data.CreatedAt = p.CreatedAt.Format("2006-01-02 15:04:05 MST")
		data.Total = p.Size()
		data.Predicates = p.Predicates
		data.CancerTypes = p.CancerTypes
		for _, s := range summaries {
			share := math.NaN()
			if data.Total > 0 {
				share = float64(s.Size) / float64(data.Total)
			}
			data.Rows = append(data.Rows, CohortRow{CohortSummary: s, Color: shareColor(share)})
		}
	}

	return cohortPageTemplate.Execute(w, data)
}
