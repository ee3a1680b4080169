package report

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/danielpatrickdp/superego-harness/internal/experiment"
)

// #region plot

// WritePlot renders the run trajectory as a two-panel PNG: windowed and
// cumulative error rates on top, the karma curve below.
func WritePlot(w io.Writer, history experiment.History) error {
	if len(history) == 0 {
		return errors.New("plot: empty history")
	}

	top, err := errorRatePanel(history)
	if err != nil {
		return err
	}
	bottom, err := karmaPanel(history)
	if err != nil {
		return err
	}

	img := vgimg.New(7*vg.Inch, 7*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{Rows: 2, Cols: 1, PadY: vg.Millimeter * 3}
	canvases := plot.Align([][]*plot.Plot{{top}, {bottom}}, tiles, dc)
	top.Draw(canvases[0][0])
	bottom.Draw(canvases[1][0])

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("write plot: %w", err)
	}
	return nil
}

func errorRatePanel(history experiment.History) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Error Rate"
	p.X.Label.Text = "Iteration"
	p.Y.Label.Text = "Error rate"
	p.Y.Min, p.Y.Max = 0, 1
	p.Legend.Top = true

	windowed, err := plotter.NewLine(series(history, func(r experiment.TrialRecord) float64 {
		return r.WindowedErrorRate
	}))
	if err != nil {
		return nil, fmt.Errorf("plot windowed error rate: %w", err)
	}
	windowed.Color = color.RGBA{R: 0xd6, G: 0x2f, B: 0x2f, A: 0xff}

	cumulative, err := plotter.NewLine(series(history, func(r experiment.TrialRecord) float64 {
		return r.ErrorRate
	}))
	if err != nil {
		return nil, fmt.Errorf("plot cumulative error rate: %w", err)
	}
	cumulative.Color = color.RGBA{R: 0x45, G: 0x75, B: 0xb4, A: 0xff}
	cumulative.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(windowed, cumulative)
	p.Legend.Add("windowed", windowed)
	p.Legend.Add("cumulative", cumulative)
	return p, nil
}

func karmaPanel(history experiment.History) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Karma"
	p.X.Label.Text = "Iteration"
	p.Y.Label.Text = "Karma"

	line, err := plotter.NewLine(series(history, func(r experiment.TrialRecord) float64 {
		return r.Karma
	}))
	if err != nil {
		return nil, fmt.Errorf("plot karma: %w", err)
	}
	line.Color = color.RGBA{R: 0x2e, G: 0x7d, B: 0x32, A: 0xff}

	p.Add(line)
	return p, nil
}

func series(history experiment.History, value func(experiment.TrialRecord) float64) plotter.XYs {
	xys := make(plotter.XYs, len(history))
	for i, rec := range history {
		xys[i].X = float64(rec.Iteration)
		xys[i].Y = value(rec)
	}
	return xys
}

// #endregion plot
