// Package slides converts Markdown documents into reveal.js slide markup.
//
// A document is parsed with goldmark, reshaped into nested sections and
// rendered with a slide translator: each top-level section becomes a
// horizontal slide group and each of its subsections a vertical slide.
package slides

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "pygments"

// DefaultAssetURL is where the deck serves generated images from.
const DefaultAssetURL = "static/img"

// Config configures a Converter.
type Config struct {
	// HighlightStyle names the chroma style for code blocks.
	HighlightStyle string
	// LineNumbers turns on line numbers for every code block. A single
	// block can ask for them with the linenos fence attribute.
	LineNumbers bool

	// Header and Footer add empty header/footer elements to every slide.
	Header bool
	Footer bool

	// Plotter renders plot fences. Plots are reported as errors when it is nil.
	Plotter Plotter
	// AssetDir is the directory plot images are written to.
	AssetDir string
	// AssetURL is the path the body uses to reference AssetDir.
	AssetURL string

	// Now returns the time used to expand the date field.
	Now func() time.Time
}

// Converter turns Markdown sources into slides. It holds no per-document
// state and may be used from several goroutines.
type Converter struct {
	config Config
}

// New returns a Converter for config, filling in defaults.
func New(config Config) *Converter {
	if config.HighlightStyle == "" {
		config.HighlightStyle = DefaultHighlightStyle
	}
	if config.AssetURL == "" {
		config.AssetURL = DefaultAssetURL
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	return &Converter{config: config}
}

// state is the mutable data of a single conversion.
type state struct {
	config Config
	source []byte

	docinfo  []DocinfoField
	warnings []Warning
	assets   []string
	plotSeq  int
}

func (s *state) addWarning(t WarningType, nodeType string, line int, msg string) {
	s.warnings = append(s.warnings, Warning{
		Type:     t,
		NodeType: nodeType,
		Line:     line,
		Message:  msg,
	})
}

// Convert renders source to slide markup and extracts the title slide data.
func (c *Converter) Convert(ctx context.Context, source []byte) (*Result, error) {
	if !utf8.Valid(source) {
		return nil, fmt.Errorf("%w: source is not valid UTF-8", ErrInvalidInput)
	}

	s := &state{config: c.config, source: source}
	t := newTranslator(s, len(source)*2)
	md := c.newMarkdown(t)

	pc := parser.NewContext()
	doc := md.Parser().Parse(text.NewReader(source), parser.WithContext(pc))
	items, err := meta.TryGetItems(pc)
	if err != nil {
		return nil, fmt.Errorf("%w: front matter: %v", ErrInvalidInput, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.insertDocinfo(doc, items)
	s.warnings = append(s.warnings, Sectionize(doc, source)...)
	s.captionTables(doc)
	s.groupColumns(doc)
	if err := s.renderPlots(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to render plots: %w", err)
	}
	s.warnings = append(s.warnings, ResolveMarkers(doc)...)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := md.Renderer().Render(t.out, source, doc); err != nil {
		return nil, fmt.Errorf("failed to render slides: %w", err)
	}

	metadata, err := ExtractMetadata(t.meta.String(), c.config.Now())
	if err != nil {
		return nil, err
	}

	parts := Parts{
		Body:     t.out.String(),
		Title:    t.title,
		Subtitle: s.field("subtitle"),
		Meta:     t.meta.String(),
		HeadMeta: t.headMeta.String(),
	}
	if parts.Title == "" {
		parts.Title = s.field("title")
	}
	metadata.Title = parts.Title
	metadata.Subtitle = parts.Subtitle
	metadata.HasSubtitle = parts.Subtitle != ""

	return &Result{
		Parts:    parts,
		Metadata: metadata,
		Assets:   s.assets,
		Slides:   t.slides,
		Warnings: s.warnings,
	}, nil
}

// newMarkdown builds a goldmark instance bound to one translator.
func (c *Converter) newMarkdown(t *translator) goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			meta.Meta,
			highlighting.NewHighlighting(
				highlighting.WithStyle(c.config.HighlightStyle),
				highlighting.WithGuessLanguage(false),
				highlighting.WithFormatOptions(
					html.WithClasses(true),
					html.WithLineNumbers(c.config.LineNumbers),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAttribute(),
			parser.WithAutoHeadingID(),
			parser.WithBlockParsers(
				util.Prioritized(NewDirectiveParser(), 50),
				util.Prioritized(NewMarkerParser(), 60),
			),
			parser.WithInlineParsers(
				util.Prioritized(NewSpanParser(), 99),
			),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(),
			renderer.WithNodeRenderers(util.Prioritized(t, 100)),
		),
	)
}
