package deck

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/open-cli-collective/mdreveal/pkg/slides"
)

//go:embed static/mdreveal.css
var baseCSS []byte

// IndexFile is the name of the generated page.
const IndexFile = "index.html"

// Summary describes a written deck.
type Summary struct {
	Slides   int              `json:"slides"`
	Files    []string         `json:"files"`
	Bytes    int64            `json:"bytes"`
	Warnings []slides.Warning `json:"warnings,omitempty"`
}

// Build writes the presentation for result into the workspace. Plot images
// are expected in the workspace already; Build adds index.html and the
// style sheets.
func Build(ctx context.Context, opts Options, result *slides.Result, ws *Workspace) (*Summary, error) {
	opts.applyDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if result == nil {
		return nil, fmt.Errorf("failed to build deck: no conversion result")
	}

	var stylesheets []string
	highlightCSS := "highlight-" + opts.HighlightStyle + ".css"
	if err := ws.WriteFile(filepath.Join(CSSDir, highlightCSS), func(w io.Writer) error {
		return WriteHighlightCSS(w, opts.HighlightStyle)
	}); err != nil {
		return nil, err
	}
	stylesheets = append(stylesheets, CSSDir+"/"+highlightCSS)

	if err := ws.WriteFile(filepath.Join(CSSDir, "mdreveal.css"), func(w io.Writer) error {
		_, err := w.Write(baseCSS)
		return err
	}); err != nil {
		return nil, err
	}
	stylesheets = append(stylesheets, CSSDir+"/mdreveal.css")

	if opts.Stylesheet != "" {
		name, err := ws.CopyFile(opts.Stylesheet, CSSDir)
		if err != nil {
			return nil, fmt.Errorf("failed to copy stylesheet: %w", err)
		}
		stylesheets = append(stylesheets, CSSDir+"/"+name)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, err := renderPage(opts, result, stylesheets)
	if err != nil {
		return nil, err
	}
	if err := ws.WriteFile(IndexFile, func(w io.Writer) error {
		_, err := w.Write(page)
		return err
	}); err != nil {
		return nil, err
	}

	files, size, err := ws.Contents()
	if err != nil {
		return nil, err
	}
	return &Summary{
		Slides:   result.Slides,
		Files:    files,
		Bytes:    size,
		Warnings: result.Warnings,
	}, nil
}

func renderPage(opts Options, result *slides.Result, stylesheets []string) ([]byte, error) {
	data := newTitleData(result.Metadata)
	if result.Metadata == nil {
		data.Title = template.HTML(result.Parts.Title)
		data.Subtitle = template.HTML(result.Parts.Subtitle)
		data.HasSubtitle = result.Parts.Subtitle != ""
	}

	var titleSlide template.HTML
	if data.Title != "" || data.HasAuthor {
		src := opts.TitleSlideTemplate
		if src == "" {
			src = DefaultTitleSlideTemplate
		}
		var err error
		if titleSlide, err = executeFragment("title slide", src, data); err != nil {
			return nil, err
		}
	}

	var footer template.HTML
	if opts.Footer {
		src := opts.FooterTemplate
		if src == "" {
			src = DefaultFooterTemplate
		}
		var err error
		if footer, err = executeFragment("footer", src, data); err != nil {
			return nil, err
		}
	}

	slideNumber := template.JS("false")
	if opts.SlideNumbers {
		slideNumber = `"c/t"`
	}

	titleText := plainText(string(data.Title))
	if titleText == "" {
		titleText = "Slides"
	}

	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, pageData{
		TitleText:   titleText,
		Generator:   opts.Generator,
		HeadMeta:    template.HTML(result.Parts.HeadMeta),
		RevealURL:   strings.TrimSuffix(opts.RevealURL, "/"),
		Theme:       opts.Theme,
		Stylesheets: stylesheets,
		TitleSlide:  titleSlide,
		Body:        template.HTML(result.Parts.Body),
		Footer:      footer,
		Controls:    template.JS(strconv.FormatBool(opts.Controls)),
		Progress:    template.JS(strconv.FormatBool(opts.Progress)),
		SlideNumber: slideNumber,
		Transition:  opts.Transition,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render page: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteHighlightCSS writes the chroma style sheet for style.
func WriteHighlightCSS(w io.Writer, style string) error {
	s, ok := styles.Registry[style]
	if !ok {
		return fmt.Errorf("unknown highlight style %q", style)
	}
	formatter := html.New(html.WithClasses(true))
	if err := formatter.WriteCSS(w, s); err != nil {
		return fmt.Errorf("failed to write highlight css: %w", err)
	}
	return nil
}

func plainText(fragment string) string {
	if fragment == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	return strings.TrimSpace(doc.Text())
}
