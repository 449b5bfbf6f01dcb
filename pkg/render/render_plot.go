// Render survival curves as PNG

package render

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/yumyai/ddrcohort/pkg/survival"
)

const (
	plotWidth  = 18 * vg.Centimeter
	plotHeight = 13 * vg.Centimeter
)

// RenderSurvivalPlot draws Kaplan-Meier curves, or cumulative incidence
// curves for competing-risk endpoints, and writes a PNG to w.
func RenderSurvivalPlot(w io.Writer, res *survival.Result) error {
	p := plot.New()
	p.Title.Text = res.Label
	p.X.Label.Text = "Days"
	p.Y.Min, p.Y.Max = 0, 1
	p.Legend.Top = true

	if res.CompetingRisk {
		p.Y.Label.Text = "Cumulative incidence"
		for i, c := range res.Incidence {
			xys := make(plotter.XYs, len(c.Points))
			for j, pt := range c.Points {
				xys[j] = plotter.XY{X: pt.Time, Y: pt.Incidence}
			}
			if err := addStep(p, i, fmt.Sprintf("%s (n=%d)", c.Label, c.N), xys); err != nil {
				return err
			}
		}
	} else {
		p.Y.Label.Text = "Survival probability"
		for i, c := range res.Curves {
			xys := make(plotter.XYs, len(c.Points))
			for j, pt := range c.Points {
				xys[j] = plotter.XY{X: pt.Time, Y: pt.Survival}
			}
			if err := addStep(p, i, fmt.Sprintf("%s (n=%d)", c.Label, c.N), xys); err != nil {
				return err
			}
		}
	}

	wt, err := p.WriterTo(plotWidth, plotHeight, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

func addStep(p *plot.Plot, i int, label string, xys plotter.XYs) error {
	l, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	l.StepStyle = plotter.PostStep
	l.Color = plotutil.Color(i)
	l.Width = vg.Points(1.5)
	p.Add(l)
	p.Legend.Add(label, l)
	return nil
}
