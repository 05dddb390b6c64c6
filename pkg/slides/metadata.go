package slides

import (
	"strings"
	"time"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/lestrrat-go/strftime"
)

// DefaultDateFormat is used when the date field is empty or absent.
const DefaultDateFormat = "%B, %Y"

// Author is one presenter on the title slide.
type Author struct {
	Name    string `json:"name"`
	Contact string `json:"contact,omitempty"`
}

// Metadata is the data shown on the title slide.
type Metadata struct {
	// Fields maps each field name to its text content.
	Fields map[string]string `json:"fields"`

	Title    string   `json:"title,omitempty"`
	Subtitle string   `json:"subtitle,omitempty"`
	Authors  []Author `json:"authors,omitempty"`
	Date     string   `json:"date"`

	HasAuthor   bool `json:"hasAuthor"`
	HasSubtitle bool `json:"hasSubtitle"`
}

// ExtractMetadata parses a metadata blob of "field = value" lines. Values
// are inline HTML fragments and are reduced to their text.
//
// The author and email fields hold comma separated lists and are paired up
// by position; extra entries on the longer side are dropped. The date field
// is a strftime pattern expanded against now, falling back to the literal
// value when the pattern does not expand.
func ExtractMetadata(blob string, now time.Time) (*Metadata, error) {
	md := &Metadata{Fields: make(map[string]string)}

	for i, line := range strings.Split(blob, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" || strings.IndexFunc(key, unicode.IsSpace) >= 0 {
			return nil, &MetadataFieldError{Line: i + 1, Text: line}
		}
		text, err := flattenHTML(value)
		if err != nil {
			return nil, &MetadataFieldError{Line: i + 1, Text: line}
		}
		md.Fields[key] = text
	}

	md.Authors = pairAuthors(md.Fields["author"], md.Fields["email"])
	md.HasAuthor = len(md.Authors) > 0
	md.Date = expandDate(md.Fields["date"], now)
	md.Fields["date"] = md.Date
	return md, nil
}

func flattenHTML(fragment string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(doc.Text()), nil
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func pairAuthors(authors, emails string) []Author {
	names := splitList(authors)
	if len(names) == 0 {
		return nil
	}
	contacts := splitList(emails)
	if contacts == nil {
		out := make([]Author, len(names))
		for i, name := range names {
			out[i] = Author{Name: name}
		}
		return out
	}

	n := min(len(names), len(contacts))
	out := make([]Author, n)
	for i := 0; i < n; i++ {
		out[i] = Author{Name: names[i], Contact: contacts[i]}
	}
	return out
}

func expandDate(pattern string, now time.Time) string {
	if strings.TrimSpace(pattern) == "" {
		pattern = DefaultDateFormat
	}
	out, err := strftime.Format(pattern, now)
	if err != nil {
		return pattern
	}
	return out
}
