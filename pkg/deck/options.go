// Package deck assembles converted slides into a reveal.js presentation
// directory: index.html plus static/css and static/img.
package deck

import (
	"fmt"
	"sort"

	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultRevealURL is the reveal.js distribution the page loads.
const DefaultRevealURL = "https://cdn.jsdelivr.net/npm/reveal.js@5"

const (
	DefaultTheme          = "simple"
	DefaultTransition     = "slide"
	DefaultHighlightStyle = "pygments"
)

// Themes are the themes shipped with reveal.js.
var Themes = []string{
	"beige", "black", "black-contrast", "blood", "dracula", "league", "moon",
	"night", "serif", "simple", "sky", "solarized", "white", "white-contrast",
}

// Transitions are the slide transitions reveal.js knows.
var Transitions = []string{"none", "fade", "slide", "convex", "concave", "zoom"}

// Options controls how a deck looks.
type Options struct {
	Theme          string
	Transition     string
	HighlightStyle string
	RevealURL      string
	// Stylesheet is a local CSS file copied next to the deck.
	Stylesheet string

	SlideNumbers bool
	Controls     bool
	Progress     bool
	// Footer adds a page footer built from FooterTemplate.
	Footer bool

	// TitleSlideTemplate and FooterTemplate override the built-in
	// html/template sources.
	TitleSlideTemplate string
	FooterTemplate     string

	// Generator is written to the generator meta tag.
	Generator string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Theme:          DefaultTheme,
		Transition:     DefaultTransition,
		HighlightStyle: DefaultHighlightStyle,
		RevealURL:      DefaultRevealURL,
		Controls:       true,
		Progress:       true,
	}
}

func (o *Options) applyDefaults() {
	if o.Theme == "" {
		o.Theme = DefaultTheme
	}
	if o.Transition == "" {
		o.Transition = DefaultTransition
	}
	if o.HighlightStyle == "" {
		o.HighlightStyle = DefaultHighlightStyle
	}
	if o.RevealURL == "" {
		o.RevealURL = DefaultRevealURL
	}
}

// Validate checks the named theme, transition and highlight style.
func (o Options) Validate() error {
	if err := ValidateTheme(o.Theme); err != nil {
		return err
	}
	if err := ValidateTransition(o.Transition); err != nil {
		return err
	}
	return ValidateHighlightStyle(o.HighlightStyle)
}

// ValidateTheme reports an error for unknown reveal.js themes. Empty means default.
func ValidateTheme(name string) error {
	if name == "" || contains(Themes, name) {
		return nil
	}
	return fmt.Errorf("unknown theme %q (available: %v)", name, Themes)
}

// ValidateTransition reports an error for unknown transitions. Empty means default.
func ValidateTransition(name string) error {
	if name == "" || contains(Transitions, name) {
		return nil
	}
	return fmt.Errorf("unknown transition %q (available: %v)", name, Transitions)
}

// ValidateHighlightStyle reports an error for styles chroma does not have.
func ValidateHighlightStyle(name string) error {
	if name == "" {
		return nil
	}
	if _, ok := styles.Registry[name]; !ok {
		return fmt.Errorf("unknown highlight style %q (see: mdreveal list styles)", name)
	}
	return nil
}

// HighlightStyles returns the chroma style names, sorted.
func HighlightStyles() []string {
	names := styles.Names()
	sort.Strings(names)
	return names
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
