package deck

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/open-cli-collective/mdreveal/pkg/slides"
)

// DefaultTitleSlideTemplate renders the first slide from the metadata.
const DefaultTitleSlideTemplate = `<section class="titleslide">
<h1>{{.Title}}</h1>
{{if .HasSubtitle}}<h3>{{.Subtitle}}</h3>
{{end}}<br>
{{range .Authors}}<p>{{if .Contact}}<a href="mailto:{{.Contact}}">{{.Name}}</a>{{else}}{{.Name}}{{end}}</p>
{{end}}<p>{{.Date}}</p>
</section>`

// DefaultFooterTemplate renders the page footer shown under every slide.
const DefaultFooterTemplate = `<div class="deck-footer">{{.Title}}{{if .HasSubtitle}} - {{.Subtitle}}{{end}}{{if .HasAuthor}} | {{.AuthorNames}}{{end}}</div>`

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
{{if .Generator}}<meta name="generator" content="{{.Generator}}">
{{end}}<title>{{.TitleText}}</title>
{{.HeadMeta}}<link rel="stylesheet" href="{{.RevealURL}}/dist/reset.css">
<link rel="stylesheet" href="{{.RevealURL}}/dist/reveal.css">
<link rel="stylesheet" href="{{.RevealURL}}/dist/theme/{{.Theme}}.css" id="theme">
{{range .Stylesheets}}<link rel="stylesheet" href="{{.}}">
{{end}}</head>
<body>
<div class="reveal">
<div class="slides">
{{.TitleSlide}}
{{.Body}}</div>
{{.Footer}}
</div>
<script src="{{.RevealURL}}/dist/reveal.js"></script>
<script src="{{.RevealURL}}/plugin/zoom/zoom.js"></script>
<script src="{{.RevealURL}}/plugin/notes/notes.js"></script>
<script src="{{.RevealURL}}/plugin/search/search.js"></script>
<script>
Reveal.initialize({
  controls: {{.Controls}},
  progress: {{.Progress}},
  slideNumber: {{.SlideNumber}},
  transition: {{.Transition}},
  history: true,
  hash: true,
  plugins: [RevealZoom, RevealNotes, RevealSearch]
});
</script>
</body>
</html>
`))

// titleData is what the title slide and footer templates see.
type titleData struct {
	Title       template.HTML
	Subtitle    template.HTML
	Authors     []slides.Author
	AuthorNames string
	Date        string
	HasAuthor   bool
	HasSubtitle bool
}

type pageData struct {
	TitleText   string
	Generator   string
	HeadMeta    template.HTML
	RevealURL   string
	Theme       string
	Stylesheets []string
	TitleSlide  template.HTML
	Body        template.HTML
	Footer      template.HTML

	// Reveal settings, already encoded as JavaScript values.
	Controls    template.JS
	Progress    template.JS
	SlideNumber template.JS
	Transition  string
}

func newTitleData(md *slides.Metadata) titleData {
	if md == nil {
		return titleData{}
	}
	names := make([]string, len(md.Authors))
	for i, a := range md.Authors {
		names[i] = a.Name
	}
	return titleData{
		Title:       template.HTML(md.Title),
		Subtitle:    template.HTML(md.Subtitle),
		Authors:     md.Authors,
		AuthorNames: strings.Join(names, ", "),
		Date:        md.Date,
		HasAuthor:   md.HasAuthor,
		HasSubtitle: md.HasSubtitle,
	}
}

func executeFragment(name, src string, data titleData) (template.HTML, error) {
	tmpl, err := template.New(name).Parse(src)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s template: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s template: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}
