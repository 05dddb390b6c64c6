package view

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(format Format) (*Renderer, *bytes.Buffer) {
	var buf bytes.Buffer
	r := NewRenderer(format, true)
	r.SetWriter(&buf)
	return r, &buf
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{format: ""},
		{format: "table"},
		{format: "json"},
		{format: "plain"},
		{format: "yaml", wantErr: true},
		{format: "JSON", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			err := ValidateFormat(tt.format)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "valid: table, json, plain")
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestNewRendererDefaultsToTable(t *testing.T) {
	r := NewRenderer("", true)
	assert.False(t, r.JSON())
	assert.True(t, NewRenderer(FormatJSON, true).JSON())
}

// The config show layout: keys of uneven width, last column unpadded.
func TestRenderTable(t *testing.T) {
	headers := []string{"KEY", "VALUE", "SOURCE"}
	rows := [][]string{
		{"theme", "night", "config"},
		{"transition", "slide", "default"},
		{"reveal_url", "", "MDREVEAL_REVEAL_URL"},
	}

	tests := []struct {
		format   Format
		expected string
	}{
		{
			format: FormatTable,
			expected: "KEY         VALUE  SOURCE\n" +
				"theme       night  config\n" +
				"transition  slide  default\n" +
				"reveal_url         MDREVEAL_REVEAL_URL\n",
		},
		{
			format: FormatPlain,
			expected: "theme\tnight\tconfig\n" +
				"transition\tslide\tdefault\n" +
				"reveal_url\t\tMDREVEAL_REVEAL_URL\n",
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			r, buf := newTestRenderer(tt.format)
			r.RenderTable(headers, rows)
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestRenderTableJSON(t *testing.T) {
	r, buf := newTestRenderer(FormatJSON)
	r.RenderTable([]string{"NAME", "DEFAULT"}, [][]string{{"black", "*"}, {"night"}})

	var result []map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, []map[string]string{
		{"name": "black", "default": "*"},
		{"name": "night"},
	}, result)
}

func TestRenderTableEmpty(t *testing.T) {
	r, buf := newTestRenderer(FormatTable)
	r.RenderTable([]string{"NAME", "DEFAULT"}, nil)
	assert.Equal(t, "NAME  DEFAULT\n", buf.String())

	r, buf = newTestRenderer(FormatJSON)
	r.RenderTable([]string{"NAME", "DEFAULT"}, nil)
	assert.Equal(t, "null\n", buf.String())
}

func TestRenderJSON(t *testing.T) {
	r, buf := newTestRenderer(FormatJSON)
	err := r.RenderJSON(struct {
		Output string   `json:"output"`
		Slides int      `json:"slides"`
		Files  []string `json:"files"`
	}{Output: "talk", Slides: 2, Files: []string{"index.html"}})
	require.NoError(t, err)

	expected := "{\n  \"output\": \"talk\",\n  \"slides\": 2,\n  \"files\": [\n    \"index.html\"\n  ]\n}\n"
	assert.Equal(t, expected, buf.String())
}

func TestRenderKeyValue(t *testing.T) {
	r, buf := newTestRenderer(FormatTable)
	r.RenderKeyValue("path", "/home/me/.config/mdreveal/config.yml")
	assert.Equal(t, "path: /home/me/.config/mdreveal/config.yml\n", buf.String())

	r, buf = newTestRenderer(FormatJSON)
	r.RenderKeyValue("path", `C:\"deck"`)
	var result map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, `C:\"deck"`, result["path"])
	assert.Contains(t, buf.String(), `{"path": `)
}

func TestMessages(t *testing.T) {
	tests := []struct {
		name     string
		format   Format
		verbose  bool
		emit     func(r *Renderer)
		expected string
	}{
		{
			name:     "success",
			format:   FormatTable,
			emit:     func(r *Renderer) { r.Success("Built 3 slides into talk (12 kB)") },
			expected: "✓ Built 3 slides into talk (12 kB)\n",
		},
		{
			name:     "error",
			format:   FormatTable,
			emit:     func(r *Renderer) { r.Error("failed to read input") },
			expected: "✗ failed to read input\n",
		},
		{
			name:     "warning",
			format:   FormatTable,
			emit:     func(r *Renderer) { r.Warn("talk.md:7: unknown column side") },
			expected: "! talk.md:7: unknown column side\n",
		},
		{
			name:   "warning in json",
			format: FormatJSON,
			emit:   func(r *Renderer) { r.Warn("talk.md:7: unknown column side") },
		},
		{
			name:   "info without verbose",
			format: FormatTable,
			emit:   func(r *Renderer) { r.Info("wrote %s", "index.html") },
		},
		{
			name:     "info with verbose",
			format:   FormatTable,
			verbose:  true,
			emit:     func(r *Renderer) { r.Info("wrote %s", "index.html") },
			expected: "wrote index.html\n",
		},
		{
			name:    "info in json",
			format:  FormatJSON,
			verbose: true,
			emit:    func(r *Renderer) { r.Info("wrote %s", "index.html") },
		},
		{
			name:     "text",
			format:   FormatPlain,
			emit:     func(r *Renderer) { r.RenderText("# Deck") },
			expected: "# Deck\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, buf := newTestRenderer(tt.format)
			r.SetVerbose(tt.verbose)
			tt.emit(r)
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{input: "short", maxLen: 10, want: "short"},
		{input: "exact", maxLen: 5, want: "exact"},
		{input: "attribute marker has no target", maxLen: 16, want: "attribute mar..."},
		{input: "abcdef", maxLen: 3, want: "abc"},
		{input: "", maxLen: 4, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.input, tt.maxLen))
		})
	}
}
