// Package build provides the build command, which converts a Markdown file
// into a reveal.js deck directory.
package build

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mdreveal/internal/config"
	"github.com/open-cli-collective/mdreveal/internal/version"
	"github.com/open-cli-collective/mdreveal/internal/view"
	"github.com/open-cli-collective/mdreveal/pkg/deck"
	"github.com/open-cli-collective/mdreveal/pkg/plot"
	"github.com/open-cli-collective/mdreveal/pkg/slides"
)

type buildOptions struct {
	input          string
	outputDir      string
	theme          string
	transition     string
	stylesheet     string
	highlightStyle string
	slideNumbers   *bool
	noControls     bool
	noProgress     bool
	header         *bool
	footer         *bool
	verbose        bool

	configPath string
	output     string
	noColor    bool
	writer     io.Writer

	plotter slides.Plotter
	now     func() time.Time
}

// NewCmdBuild creates the build command.
func NewCmdBuild() *cobra.Command {
	opts := &buildOptions{}
	var slideNumbers, header, footer bool

	cmd := &cobra.Command{
		Use:   "build <input.md>",
		Short: "Convert a Markdown file into a reveal.js deck",
		Long: `Convert a Markdown file into a reveal.js presentation.

Top-level headings (#) become horizontal slides and second-level headings
(##) become vertical slides below them. A lone top-level heading is the
deck title and is shown on the title slide together with the front matter
fields (subtitle, author, email, date).

The deck is written to a directory containing index.html and static/.
An existing output directory is replaced only after the new deck was
written completely.`,
		Example: `  # Build talk.md into ./talk
  mdreveal build talk.md

  # Choose the output directory and theme
  mdreveal build talk.md -d public/talk -t night

  # Slide numbers and a custom stylesheet
  mdreveal build talk.md --slide-numbers -s talk.css`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.input = args[0]
			configPath, _ := cmd.Flags().GetString("config")
			opts.configPath = config.ResolvePath(configPath)
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.writer = cmd.OutOrStdout()
			if cmd.Flags().Changed("slide-numbers") {
				opts.slideNumbers = &slideNumbers
			}
			if cmd.Flags().Changed("header") {
				opts.header = &header
			}
			if cmd.Flags().Changed("footer") {
				opts.footer = &footer
			}
			opts.plotter = plot.NewRenderer()
			return runBuild(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "d", "", "Output directory (default: input name without extension)")
	cmd.Flags().StringVarP(&opts.theme, "theme", "t", "", "reveal.js theme (see: mdreveal list themes)")
	cmd.Flags().StringVar(&opts.transition, "transition", "", "Slide transition (see: mdreveal list transitions)")
	cmd.Flags().StringVarP(&opts.stylesheet, "stylesheet", "s", "", "Extra CSS file copied into the deck")
	cmd.Flags().StringVarP(&opts.highlightStyle, "highlight-style", "p", "", "Code highlighting style (see: mdreveal list styles)")
	cmd.Flags().BoolVar(&slideNumbers, "slide-numbers", false, "Show slide numbers")
	cmd.Flags().BoolVar(&opts.noControls, "no-controls", false, "Hide the navigation arrows")
	cmd.Flags().BoolVar(&opts.noProgress, "no-progress", false, "Hide the progress bar")
	cmd.Flags().BoolVar(&header, "header", false, "Add a header element to every slide")
	cmd.Flags().BoolVar(&footer, "footer", false, "Add a footer to every slide")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Print every file written")

	return cmd
}

// apply overrides configuration values with the flags that were given.
func (o *buildOptions) apply(cfg *config.Config) {
	if o.theme != "" {
		cfg.Theme = o.theme
	}
	if o.transition != "" {
		cfg.Transition = o.transition
	}
	if o.stylesheet != "" {
		cfg.Stylesheet = o.stylesheet
	}
	if o.highlightStyle != "" {
		cfg.HighlightStyle = o.highlightStyle
	}
	if o.slideNumbers != nil {
		cfg.SlideNumbers = *o.slideNumbers
	}
	if o.noControls {
		off := false
		cfg.Controls = &off
	}
	if o.noProgress {
		off := false
		cfg.Progress = &off
	}
	if o.header != nil {
		cfg.Header = *o.header
	}
	if o.footer != nil {
		cfg.Footer = *o.footer
	}
}

// destination returns the output directory: the flag, or the input path
// without its extension.
func (o *buildOptions) destination() string {
	if o.outputDir != "" {
		return o.outputDir
	}
	dest := strings.TrimSuffix(o.input, filepath.Ext(o.input))
	if dest == o.input {
		dest += "-slides"
	}
	return dest
}

type buildResult struct {
	Input  string `json:"input"`
	Output string `json:"output"`
	*deck.Summary
}

func runBuild(ctx context.Context, opts *buildOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	if opts.writer != nil {
		renderer.SetWriter(opts.writer)
	}
	renderer.SetVerbose(opts.verbose)

	cfg, err := config.LoadWithEnv(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	opts.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	source, err := os.ReadFile(opts.input)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	dest := opts.destination()
	ws, err := deck.NewWorkspace(dest)
	if err != nil {
		return err
	}
	defer ws.Close()
	renderer.Info("Building in %s", ws.Root)

	converter := slides.New(slides.Config{
		HighlightStyle: cfg.HighlightStyle,
		Header:         cfg.Header,
		Footer:         cfg.Footer,
		Plotter:        opts.plotter,
		AssetDir:       ws.ImagePath(),
		AssetURL:       deck.ImgDir,
		Now:            opts.now,
	})
	result, err := converter.Convert(ctx, source)
	if err != nil {
		return fmt.Errorf("failed to convert %s: %w", opts.input, err)
	}
	renderer.Info("Converted %d slides", result.Slides)

	deckOpts := cfg.DeckOptions()
	deckOpts.Generator = version.Generator()
	summary, err := deck.Build(ctx, deckOpts, result, ws)
	if err != nil {
		return fmt.Errorf("failed to build deck: %w", err)
	}

	if err := ws.Publish(); err != nil {
		return err
	}

	if renderer.JSON() {
		return renderer.RenderJSON(buildResult{Input: opts.input, Output: dest, Summary: summary})
	}

	for _, w := range summary.Warnings {
		renderer.Warn(formatWarning(opts.input, w))
	}
	for _, f := range summary.Files {
		renderer.Info("  %s", filepath.Join(dest, filepath.FromSlash(f)))
	}
	renderer.Success(fmt.Sprintf("Built %d %s into %s (%s)",
		summary.Slides, plural(summary.Slides, "slide", "slides"), dest, humanize.Bytes(uint64(summary.Bytes))))
	return nil
}

func formatWarning(input string, w slides.Warning) string {
	msg := view.Truncate(w.Message, 160)
	if w.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", input, w.Line, msg)
	}
	return fmt.Sprintf("%s: %s", input, msg)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
