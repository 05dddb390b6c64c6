// Package md converts HTML presentations back into Markdown slide source.
package md

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	"gopkg.in/yaml.v3"
)

// FrontMatter holds the fields recovered from a title slide.
type FrontMatter struct {
	Title    string `yaml:"title,omitempty"`
	Subtitle string `yaml:"subtitle,omitempty"`
	Author   string `yaml:"author,omitempty"`
	Email    string `yaml:"email,omitempty"`
	Date     string `yaml:"date,omitempty"`
}

func (f FrontMatter) empty() bool {
	return f == FrontMatter{}
}

// ImportResult is the Markdown produced from an HTML page.
type ImportResult struct {
	Markdown    string
	FrontMatter FrontMatter
	// Slides counts the sections turned into slides.
	Slides int
}

// removed are generated decorations that have no Markdown source.
const removed = "script, style, aside.notes, header.section-header, footer.section-footer, " +
	"div.deck-footer, div.system-message, .slide-number, .controls, .progress"

// FromHTML converts an HTML page into slide Markdown. Reveal.js decks are
// recognised by their section tree: every top-level section becomes a "#"
// slide and nested sections after the first become "##" slides. Pages
// without sections are converted as they are.
func FromHTML(html string) (*ImportResult, error) {
	if strings.TrimSpace(html) == "" {
		return &ImportResult{}, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}
	doc.Find(removed).Remove()

	root := doc.Find(".reveal .slides").First()
	if root.Length() == 0 {
		root = doc.Find("body").First()
	}

	result := &ImportResult{}
	if title := root.Find("section.titleslide").First(); title.Length() > 0 {
		result.FrontMatter = readTitleSlide(title)
		title.Remove()
	}

	root.ChildrenFiltered("section").Each(func(_ int, top *goquery.Selection) {
		nested := top.ChildrenFiltered("section")
		if nested.Length() == 0 {
			retitle(top, 1, result.Slides+1)
			result.Slides++
			return
		}
		nested.Each(func(i int, s *goquery.Selection) {
			level := 2
			if i == 0 {
				level = 1
			}
			retitle(s, level, result.Slides+1)
			result.Slides++
		})
	})

	body, err := root.Html()
	if err != nil {
		return nil, fmt.Errorf("failed to read slides: %w", err)
	}
	markdown, err := htmltomarkdown.ConvertString(body)
	if err != nil {
		return nil, fmt.Errorf("failed to convert html: %w", err)
	}
	markdown = strings.TrimSpace(markdown)

	if !result.FrontMatter.empty() {
		header, err := yaml.Marshal(result.FrontMatter)
		if err != nil {
			return nil, fmt.Errorf("failed to write front matter: %w", err)
		}
		markdown = "---\n" + string(header) + "---\n\n" + markdown
	}
	result.Markdown = markdown + "\n"
	return result, nil
}

// retitle makes the first heading of a slide an h<level> and demotes the
// other large headings so they stay inside the slide. Slides without a
// heading get one from their id, or a numbered placeholder.
func retitle(slide *goquery.Selection, level, number int) {
	tag := fmt.Sprintf("h%d", level)
	heading := slide.ChildrenFiltered("h1, h2, h3, h4, h5, h6").First()

	slide.Find("h1, h2").NotSelection(heading).Each(func(_ int, h *goquery.Selection) {
		inner, _ := h.Html()
		h.ReplaceWithHtml("<h3>" + inner + "</h3>")
	})

	if heading.Length() == 0 {
		text := slide.AttrOr("id", "")
		if text == "" {
			text = fmt.Sprintf("Slide %d", number)
		}
		slide.PrependHtml("<" + tag + ">" + escapeText(text) + "</" + tag + ">")
		return
	}

	inner, _ := heading.Html()
	heading.ReplaceWithHtml("<" + tag + ">" + inner + "</" + tag + ">")
}

func readTitleSlide(s *goquery.Selection) FrontMatter {
	fm := FrontMatter{
		Title:    strings.TrimSpace(s.Find("h1").First().Text()),
		Subtitle: strings.TrimSpace(s.Find("h3").First().Text()),
	}

	var authors, emails []string
	s.ChildrenFiltered("p").Each(func(_ int, p *goquery.Selection) {
		link := p.Find(`a[href^="mailto:"]`).First()
		switch {
		case link.Length() > 0:
			authors = append(authors, strings.TrimSpace(link.Text()))
			emails = append(emails, strings.TrimPrefix(link.AttrOr("href", ""), "mailto:"))
		case p.Next().Length() == 0:
			// the last paragraph holds the date
			fm.Date = strings.TrimSpace(p.Text())
		default:
			authors = append(authors, strings.TrimSpace(p.Text()))
		}
	})
	fm.Author = strings.Join(authors, ", ")
	if len(emails) == len(authors) {
		fm.Email = strings.Join(emails, ", ")
	}
	return fm
}

func escapeText(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}
