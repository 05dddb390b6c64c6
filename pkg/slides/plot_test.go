package slides

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type plotCall struct {
	spec        string
	path        string
	alpha float64
}

type fakePlotter struct {
	calls []plotCall
	err   error
}

func (f *fakePlotter) Plot(_ context.Context, spec []byte, path string, alpha float64) error {
	f.calls = append(f.calls, plotCall{spec: string(spec), path: path, alpha: alpha})
	return f.err
}

func TestPlotFence(t *testing.T) {
	dir := t.TempDir()
	plotter := &fakePlotter{}
	res := convert(t, Config{Plotter: plotter, AssetDir: dir},
		"```plot {name=growth align=left alpha=1}\ntitle: Growth\n```\n\n```plot\ntitle: Second\n```\n")

	body := res.Parts.Body
	assert.Contains(t, body, "<div class=\"plot r-stretch align-left\">\n<img src=\"static/img/growth.svg\" alt=\"growth\">\n</div>\n")
	assert.Contains(t, body, `<img src="static/img/plot-0002.svg" alt="plot-0002">`)
	assert.NotContains(t, body, "<pre")
	assert.Equal(t, []string{"growth.svg", "plot-0002.svg"}, res.Assets)
	assert.Empty(t, res.Warnings)

	require.Len(t, plotter.calls, 2)
	assert.Equal(t, "title: Growth\n", plotter.calls[0].spec)
	assert.Equal(t, filepath.Join(dir, "growth.svg"), plotter.calls[0].path)
	assert.Equal(t, 1.0, plotter.calls[0].alpha)
	assert.Equal(t, 0.0, plotter.calls[1].alpha)
}

func TestPlotFenceDuplicateName(t *testing.T) {
	dir := t.TempDir()
	plotter := &fakePlotter{}
	res := convert(t, Config{Plotter: plotter, AssetDir: dir},
		"```plot {name=fig}\ntitle: first\n```\n\n```plot {name=fig}\ntitle: second\n```\n")

	assert.Equal(t, []string{"fig.svg"}, res.Assets)
	require.Len(t, plotter.calls, 1)
	assert.Equal(t, "title: first\n", plotter.calls[0].spec)

	assert.Equal(t, 1, strings.Count(res.Parts.Body, `<img src="static/img/fig.svg"`))
	assert.Contains(t, res.Parts.Body, `plot name &quot;fig&quot; is already used`)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, WarningInvalidDirective, res.Warnings[0].Type)
	assert.Equal(t, 5, res.Warnings[0].Line)
}

func TestPlotFenceNumberingAvoidsExplicitNames(t *testing.T) {
	dir := t.TempDir()
	plotter := &fakePlotter{}
	res := convert(t, Config{Plotter: plotter, AssetDir: dir},
		"```plot\ntitle: a\n```\n\n```plot {name=plot-0001}\ntitle: b\n```\n")

	assert.Equal(t, []string{"plot-0001-2.svg", "plot-0001.svg"}, res.Assets)
	assert.Empty(t, res.Warnings)
	require.Len(t, plotter.calls, 2)
	assert.Equal(t, filepath.Join(dir, "plot-0001-2.svg"), plotter.calls[0].path)
	assert.Equal(t, filepath.Join(dir, "plot-0001.svg"), plotter.calls[1].path)
}

func TestPlotFenceErrors(t *testing.T) {
	tests := []struct {
		name     string
		config   func(dir string) Config
		input    string
		warnType WarningType
	}{
		{
			name:     "no plotter",
			config:   func(string) Config { return Config{} },
			input:    "```plot\ntitle: x\n```\n",
			warnType: WarningPlotFailed,
		},
		{
			name: "plotter fails",
			config: func(dir string) Config {
				return Config{Plotter: &fakePlotter{err: errors.New("bad series")}, AssetDir: dir}
			},
			input:    "```plot\ntitle: x\n```\n",
			warnType: WarningPlotFailed,
		},
		{
			name: "bad alpha",
			config: func(dir string) Config {
				return Config{Plotter: &fakePlotter{}, AssetDir: dir}
			},
			input:    "```plot {alpha=1.5}\ntitle: x\n```\n",
			warnType: WarningInvalidDirective,
		},
		{
			name: "bad name",
			config: func(dir string) Config {
				return Config{Plotter: &fakePlotter{}, AssetDir: dir}
			},
			input:    "```plot {name=../escape}\ntitle: x\n```\n",
			warnType: WarningInvalidDirective,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := convert(t, tt.config(t.TempDir()), tt.input)
			assert.Contains(t, res.Parts.Body, `<div class="system-message">`)
			assert.Contains(t, res.Parts.Body, "```plot")
			assert.Empty(t, res.Assets)
			require.Len(t, res.Warnings, 1)
			assert.Equal(t, tt.warnType, res.Warnings[0].Type)
			assert.Equal(t, 1, res.Warnings[0].Line)
		})
	}
}

func TestParsePlotOptions(t *testing.T) {
	opts, err := parsePlotOptions([]byte("plot"))
	require.NoError(t, err)
	assert.Equal(t, plotOptions{align: "center"}, opts)

	opts, err = parsePlotOptions([]byte(`plot {name=chart align=right alpha=0.25}`))
	require.NoError(t, err)
	assert.Equal(t, plotOptions{name: "chart", alpha: 0.25, align: "right"}, opts)

	_, err = parsePlotOptions([]byte("plot {alpha=-0.1}"))
	assert.Error(t, err)

	_, err = parsePlotOptions([]byte("plot {alpha=half}"))
	assert.Error(t, err)

	_, err = parsePlotOptions([]byte("plot {color=red}"))
	assert.Error(t, err)

	_, err = parsePlotOptions([]byte("plot {name=x"))
	assert.Error(t, err)
}
