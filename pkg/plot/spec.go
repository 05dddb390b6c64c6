// Package plot renders small yaml plot descriptions to SVG with gonum/plot.
package plot

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrInvalidSpec is returned for plot descriptions that cannot be drawn.
var ErrInvalidSpec = errors.New("invalid plot spec")

// Series types.
const (
	TypeLine       = "line"
	TypeScatter    = "scatter"
	TypeLinePoints = "linepoints"
	TypeBar        = "bar"
)

// Spec describes one figure.
//
//	title: Growth
//	xlabel: year
//	ylabel: users
//	grid: true
//	series:
//	  - name: users
//	    type: line
//	    points: [[2020, 1], [2021, 4]]
//	  - name: target
//	    y: [2, 3]
type Spec struct {
	Title  string   `yaml:"title"`
	XLabel string   `yaml:"xlabel"`
	YLabel string   `yaml:"ylabel"`
	Grid   bool     `yaml:"grid"`
	Legend *bool    `yaml:"legend"`
	Width  float64  `yaml:"width"`
	Height float64  `yaml:"height"`
	Series []Series `yaml:"series"`
}

// Series is one data set. Points takes precedence over Y; Y alone is
// plotted against 0, 1, 2, ...
type Series struct {
	Name   string      `yaml:"name"`
	Type   string      `yaml:"type"`
	Points [][]float64 `yaml:"points"`
	Y      []float64   `yaml:"y"`
}

// Parse decodes and validates a plot description.
func Parse(data []byte) (*Spec, error) {
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSpec, err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// Validate checks that every series can be drawn.
func (s *Spec) Validate() error {
	if len(s.Series) == 0 {
		return fmt.Errorf("%w: no series", ErrInvalidSpec)
	}
	if s.Width < 0 || s.Height < 0 {
		return fmt.Errorf("%w: width and height must not be negative", ErrInvalidSpec)
	}
	for i, series := range s.Series {
		switch series.Type {
		case "", TypeLine, TypeScatter, TypeLinePoints, TypeBar:
		default:
			return fmt.Errorf("%w: series %d: unknown type %q", ErrInvalidSpec, i+1, series.Type)
		}
		if len(series.Points) == 0 && len(series.Y) == 0 {
			return fmt.Errorf("%w: series %d has no data", ErrInvalidSpec, i+1)
		}
		for j, pt := range series.Points {
			if len(pt) != 2 {
				return fmt.Errorf("%w: series %d: point %d must be [x, y]", ErrInvalidSpec, i+1, j+1)
			}
		}
		if series.Type == TypeBar && len(series.Points) > 0 {
			return fmt.Errorf("%w: series %d: bar series take y values only", ErrInvalidSpec, i+1)
		}
	}
	return nil
}

// XY returns the series data as x/y pairs.
func (s Series) XY() [][2]float64 {
	if len(s.Points) > 0 {
		out := make([][2]float64, len(s.Points))
		for i, pt := range s.Points {
			out[i] = [2]float64{pt[0], pt[1]}
		}
		return out
	}
	out := make([][2]float64, len(s.Y))
	for i, y := range s.Y {
		out[i] = [2]float64{float64(i), y}
	}
	return out
}

func (s Series) kind() string {
	if s.Type == "" {
		return TypeLine
	}
	return s.Type
}
