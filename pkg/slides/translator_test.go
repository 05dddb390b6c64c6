package slides

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = func() time.Time {
	return time.Date(2024, time.April, 15, 10, 30, 0, 0, time.UTC)
}

func convert(t *testing.T, config Config, src string) *Result {
	t.Helper()
	if config.Now == nil {
		config.Now = fixedNow
	}
	res, err := New(config).Convert(context.Background(), []byte(src))
	require.NoError(t, err)
	return res
}

func TestSlideStructure(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		title    string
		slides   int
		expected string
	}{
		{
			name:   "one section with two subsections",
			input:  "# Deck\n\n## Part\n\n### A\n\ntext a\n\n### B\n\ntext b\n",
			title:  "Deck",
			slides: 2,
			expected: "<section id=\"part\">\n<section>\n<h2>Part</h2>\n" +
				"<h2 id=\"a\">A</h2>\n<p>text a</p>\n</section>\n" +
				"<section id=\"b\">\n<h2>B</h2>\n<p>text b</p>\n</section>\n" +
				"</section>\n",
		},
		{
			name:   "two leaf sections",
			input:  "# One\n\nfirst\n\n# Two\n\nsecond\n",
			slides: 2,
			expected: "<section id=\"one\">\n<section>\n<h2>One</h2>\n<p>first</p>\n</section>\n</section>\n" +
				"<section id=\"two\">\n<section>\n<h2>Two</h2>\n<p>second</p>\n</section>\n</section>\n",
		},
		{
			name:   "parent content gets its own slide",
			input:  "# Deck\n\n## Part\n\nintro\n\n### A\n\na\n",
			title:  "Deck",
			slides: 2,
			expected: "<section id=\"part\">\n<section>\n<h2>Part</h2>\n<p>intro</p>\n</section>\n" +
				"<section id=\"a\">\n<h2>A</h2>\n<p>a</p>\n</section>\n" +
				"</section>\n",
		},
		{
			name:   "decorated first child is not merged",
			input:  "# Deck\n\n## Part\n\n### A {.dark}\n\na\n",
			title:  "Deck",
			slides: 2,
			expected: "<section id=\"part\">\n<section>\n<h2>Part</h2>\n</section>\n" +
				"<section id=\"a\" class=\"dark\">\n<h2>A</h2>\n<p>a</p>\n</section>\n" +
				"</section>\n",
		},
		{
			name:     "content without headings",
			input:    "just text\n",
			expected: "<p>just text</p>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := convert(t, Config{}, tt.input)
			assert.Equal(t, tt.expected, res.Parts.Body)
			assert.Equal(t, tt.title, res.Parts.Title)
			assert.Equal(t, tt.slides, res.Slides)
		})
	}
}

func TestSlideTagsBalance(t *testing.T) {
	inputs := []string{
		"# A\n\n## B\n\n### C\n\n#### D\n\ntext\n\n## E\n\n# F\n",
		"# A\n\n# B\n\n## C\n\n## D\n\n# E\n\n## F\n",
		"intro\n\n## A\n\n# B\n\n### C\n",
		"# Only\n\n## A\n\n## B\n\n## C\n",
	}

	for _, input := range inputs {
		res := convert(t, Config{}, input)
		body := res.Parts.Body
		assert.Equal(t, strings.Count(body, "<section"), strings.Count(body, "</section>"), input)
	}
}

func TestSlideChrome(t *testing.T) {
	res := convert(t, Config{Header: true, Footer: true}, "# One\n\nx\n\n# Two\n\ny\n")

	body := res.Parts.Body
	assert.Contains(t, body, "<section id=\"one\">\n<header class=\"section-header\"></header>\n<section>\n<header class=\"section-header\"></header>\n<h2>One</h2>")
	assert.Equal(t, 4, strings.Count(body, `<header class="section-header"></header>`))
	assert.Equal(t, 4, strings.Count(body, `<footer class="section-footer"></footer>`))
	assert.True(t, strings.HasSuffix(body, "<footer class=\"section-footer\"></footer>\n</section>\n"))
}

func TestExitSectionAtTopLevel(t *testing.T) {
	tr := newTranslator(&state{}, 0)
	err := tr.exitSection(NewSection(1))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnbalancedSectionNesting)
}

func TestSectionAttributes(t *testing.T) {
	res := convert(t, Config{}, "# One {#intro .center data-transition=zoom}\n\nx\n\n# Two\n\ny\n")

	assert.Contains(t, res.Parts.Body, `<section id="intro" class="center" data-transition="zoom">`)
	assert.Contains(t, res.Parts.Body, `<section class="center" data-transition="zoom">`)
}

func TestBlockRendering(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
	}{
		{
			name:     "ordered list start",
			input:    "3. three\n4. four\n",
			contains: "<ol start=\"3\">\n<li>three</li>\n<li>four</li>\n</ol>\n",
		},
		{
			name:     "loose list item",
			input:    "- one\n\n- two\n",
			contains: "<li>\n<p>one</p>\n</li>\n",
		},
		{
			name:     "blockquote",
			input:    "> quoted\n",
			contains: "<blockquote>\n<p>quoted</p>\n</blockquote>\n",
		},
		{
			name:     "thematic break",
			input:    "a\n\n***\n\nb\n",
			contains: "<hr>\n",
		},
		{
			name:     "heading inside a container",
			input:    "::: div\n#### Deep\n:::\n",
			contains: "<h4 id=\"deep\">Deep</h4>\n",
		},
		{
			name:     "small span",
			input:    "[tiny]{.small} text\n",
			contains: "<p><span class=\"small\">tiny</span> text</p>\n",
		},
		{
			name:     "vertical space",
			input:    "[3]{.vspace}\n",
			contains: "<p><br><br><br></p>\n",
		},
		{
			name:     "plain link is untouched",
			input:    "[site](https://example.com)\n",
			contains: "<p><a href=\"https://example.com\">site</a></p>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := convert(t, Config{}, tt.input)
			assert.Contains(t, res.Parts.Body, tt.contains)
		})
	}
}

func TestVSpaceWithoutCount(t *testing.T) {
	res := convert(t, Config{}, "[lots]{.vspace}\n")

	assert.NotContains(t, res.Parts.Body, "<br>")
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, WarningUnknownRole, res.Warnings[0].Type)
}

func TestJoinClasses(t *testing.T) {
	assert.Equal(t, "a b c", joinClasses([]string{"a", "b", "", "a", "c"}))
	assert.Equal(t, "", joinClasses(nil))
}
