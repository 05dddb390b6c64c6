package slides

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/yuin/goldmark/ast"
)

// Plotter renders a plot description to an SVG file at path.
type Plotter interface {
	Plot(ctx context.Context, spec []byte, path string, alpha float64) error
}

const plotLanguage = "plot"

var plotNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

type plotOptions struct {
	name  string
	alpha float64
	align string
}

func parsePlotOptions(info []byte) (plotOptions, error) {
	opts := plotOptions{align: "center"}
	start := bytes.IndexByte(info, '{')
	if start < 0 {
		return opts, nil
	}
	raw, _, ok := readAttributeBlock(info, start)
	if !ok {
		return opts, fmt.Errorf("unterminated plot options %q", info[start:])
	}
	attrs := parseAttributeList(raw)
	for _, key := range attrs.Attrs.Keys() {
		values := attrs.Attrs.Values(key)
		value := ""
		if len(values) > 0 {
			value = values[0]
		}
		switch key {
		case "name":
			if !plotNamePattern.MatchString(value) {
				return opts, fmt.Errorf("invalid plot name %q", value)
			}
			opts.name = value
		case "alpha":
			alpha, err := strconv.ParseFloat(value, 64)
			if err != nil || alpha < 0 || alpha > 1 {
				return opts, fmt.Errorf("plot alpha must be between 0 and 1, got %q", value)
			}
			opts.alpha = alpha
		case "align":
			switch value {
			case "left", "center", "right":
				opts.align = value
			default:
				return opts, fmt.Errorf("plot align must be left, center or right, got %q", value)
			}
		default:
			return opts, fmt.Errorf("unknown plot option %q", key)
		}
	}
	return opts, nil
}

// renderPlots replaces every plot fence with the image it renders to. A plot
// that fails becomes a system message; only cancellation aborts.
//
// Each plot needs its own file name. Unnamed plots are numbered and skip the
// names given explicitly anywhere in the document; an explicit name used
// twice is an error on the second fence.
func (s *state) renderPlots(ctx context.Context, doc ast.Node) error {
	var fences []*ast.FencedCodeBlock
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if fcb, ok := n.(*ast.FencedCodeBlock); ok && entering && string(fcb.Language(s.source)) == plotLanguage {
			fences = append(fences, fcb)
		}
		return ast.WalkContinue, nil
	})

	reserved := make(map[string]bool)
	for _, fcb := range fences {
		if opts, err := parsePlotOptions(s.plotInfo(fcb)); err == nil && opts.name != "" {
			reserved[opts.name] = true
		}
	}
	used := make(map[string]bool)

	for _, fcb := range fences {
		if err := ctx.Err(); err != nil {
			return err
		}
		info := s.plotInfo(fcb)
		line := 0
		if fcb.Info != nil {
			line = lineAt(s.source, fcb.Info.Segment.Start)
		}
		setLine(fcb, line)
		raw := "```" + string(info)

		opts, err := parsePlotOptions(info)
		if err != nil {
			s.replaceWithError(fcb, ErrInvalidDirective, err.Error(), raw, WarningInvalidDirective)
			continue
		}
		if s.config.Plotter == nil || s.config.AssetDir == "" {
			s.replaceWithError(fcb, ErrInvalidDirective, "plots are not enabled for this conversion", raw, WarningPlotFailed)
			continue
		}

		s.plotSeq++
		name := opts.name
		if name == "" {
			name = fmt.Sprintf("plot-%04d", s.plotSeq)
			for n := 2; reserved[name] || used[name]; n++ {
				name = fmt.Sprintf("plot-%04d-%d", s.plotSeq, n)
			}
		} else if used[name] {
			s.replaceWithError(fcb, ErrInvalidDirective, fmt.Sprintf("plot name %q is already used", name), raw, WarningInvalidDirective)
			continue
		}
		used[name] = true
		file := name + ".svg"

		var spec bytes.Buffer
		lines := fcb.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			spec.Write(seg.Value(s.source))
		}

		if err := s.config.Plotter.Plot(ctx, spec.Bytes(), filepath.Join(s.config.AssetDir, file), opts.alpha); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.replaceWithError(fcb, err, fmt.Sprintf("failed to render plot %s: %v", name, err), raw, WarningPlotFailed)
			continue
		}

		p := NewPlot(path.Join(s.config.AssetURL, file), name, opts.align)
		setLine(p, line)
		fcb.Parent().ReplaceChild(fcb.Parent(), fcb, p)
		s.assets = append(s.assets, file)
	}
	return nil
}

func (s *state) plotInfo(fcb *ast.FencedCodeBlock) []byte {
	if fcb.Info == nil {
		return nil
	}
	return fcb.Info.Segment.Value(s.source)
}
