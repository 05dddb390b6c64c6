package plot

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	gonum "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Default figure size in inches.
const (
	DefaultWidth  = 8
	DefaultHeight = 5
)

// Renderer draws plot descriptions to SVG files.
type Renderer struct {
	// Width and Height are used when a spec does not set its own size.
	Width  vg.Length
	Height vg.Length
}

// NewRenderer returns a Renderer with the default figure size.
func NewRenderer() *Renderer {
	return &Renderer{
		Width:  DefaultWidth * vg.Inch,
		Height: DefaultHeight * vg.Inch,
	}
}

// Plot parses spec and writes the figure to path. alpha is the opacity of
// the white background, from 0 (none) to 1.
func (r *Renderer) Plot(ctx context.Context, spec []byte, path string, alpha float64) error {
	s, err := Parse(spec)
	if err != nil {
		return err
	}
	p, err := build(s)
	if err != nil {
		return err
	}
	p.BackgroundColor = background(alpha)

	if err := ctx.Err(); err != nil {
		return err
	}

	width, height := r.Width, r.Height
	if s.Width > 0 {
		width = vg.Length(s.Width) * vg.Inch
	}
	if s.Height > 0 {
		height = vg.Length(s.Height) * vg.Inch
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create plot directory: %w", err)
	}
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}

func background(alpha float64) color.Color {
	switch {
	case alpha <= 0:
		return color.Transparent
	case alpha >= 1:
		return color.White
	}
	return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: uint8(alpha*0xff + 0.5)}
}

func build(s *Spec) (*gonum.Plot, error) {
	p := gonum.New()
	p.Title.Text = s.Title
	p.X.Label.Text = s.XLabel
	p.Y.Label.Text = s.YLabel
	if s.Grid {
		p.Add(plotter.NewGrid())
	}
	showLegend := s.Legend == nil || *s.Legend

	for i, series := range s.Series {
		c := plotutil.Color(i)
		xys := toXYs(series.XY())

		switch series.kind() {
		case TypeLine:
			line, err := plotter.NewLine(xys)
			if err != nil {
				return nil, fmt.Errorf("%w: series %d: %v", ErrInvalidSpec, i+1, err)
			}
			line.Color = c
			p.Add(line)
			if showLegend && series.Name != "" {
				p.Legend.Add(series.Name, line)
			}
		case TypeScatter:
			scatter, err := plotter.NewScatter(xys)
			if err != nil {
				return nil, fmt.Errorf("%w: series %d: %v", ErrInvalidSpec, i+1, err)
			}
			scatter.GlyphStyle.Color = c
			scatter.GlyphStyle.Shape = plotutil.Shape(i)
			p.Add(scatter)
			if showLegend && series.Name != "" {
				p.Legend.Add(series.Name, scatter)
			}
		case TypeLinePoints:
			line, points, err := plotter.NewLinePoints(xys)
			if err != nil {
				return nil, fmt.Errorf("%w: series %d: %v", ErrInvalidSpec, i+1, err)
			}
			line.Color = c
			points.Color = c
			points.Shape = plotutil.Shape(i)
			p.Add(line, points)
			if showLegend && series.Name != "" {
				p.Legend.Add(series.Name, line, points)
			}
		case TypeBar:
			bars, err := plotter.NewBarChart(plotter.Values(series.Y), vg.Points(20))
			if err != nil {
				return nil, fmt.Errorf("%w: series %d: %v", ErrInvalidSpec, i+1, err)
			}
			bars.Color = c
			bars.LineStyle.Width = 0
			bars.Offset = vg.Points(20) * vg.Length(i)
			p.Add(bars)
			if showLegend && series.Name != "" {
				p.Legend.Add(series.Name, bars)
			}
		}
	}
	return p, nil
}

func toXYs(points [][2]float64) plotter.XYs {
	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X = pt[0]
		xys[i].Y = pt[1]
	}
	return xys
}
