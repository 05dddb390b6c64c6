// Package init provides the init command for mdreveal.
package init

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mdreveal/internal/config"
	"github.com/open-cli-collective/mdreveal/internal/view"
	"github.com/open-cli-collective/mdreveal/pkg/deck"
)

type initOptions struct {
	configPath string
	force      bool
	noPrompt   bool
	noColor    bool
	writer     io.Writer

	// form is replaced in tests.
	form func(cfg *config.Config) error
}

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	opts := &initOptions{form: runForm}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an mdreveal configuration file",
		Long: `Create the mdreveal configuration file.

This command asks for the deck defaults used by 'mdreveal build': theme,
transition, code highlighting style, slide numbers and footer. The
configuration is saved to ~/.config/mdreveal/config.yml unless --config
names another file. Every value can still be overridden per build with flags.`,
		Example: `  # Interactive setup
  mdreveal init

  # Write the defaults without asking
  mdreveal init --no-prompt --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			opts.configPath = config.ResolvePath(configPath)
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.writer = cmd.OutOrStdout()
			return runInit(opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Overwrite an existing configuration file")
	cmd.Flags().BoolVar(&opts.noPrompt, "no-prompt", false, "Write the default configuration without asking")

	return cmd
}

func runInit(opts *initOptions) error {
	renderer := view.NewRenderer(view.FormatTable, opts.noColor)
	if opts.writer != nil {
		renderer.SetWriter(opts.writer)
	}

	if _, err := os.Stat(opts.configPath); err == nil && !opts.force {
		if opts.noPrompt {
			return fmt.Errorf("configuration already exists at %s (use --force to overwrite)", opts.configPath)
		}
		var overwrite bool
		err := huh.NewConfirm().
			Title("Configuration already exists").
			Description(fmt.Sprintf("Overwrite %s?", opts.configPath)).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			renderer.RenderText("Initialization cancelled.")
			return nil
		}
	}

	cfg := defaultConfig()
	if !opts.noPrompt {
		if err := opts.form(cfg); err != nil {
			return err
		}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Save(opts.configPath); err != nil {
		return err
	}

	renderer.Success("Configuration saved to " + opts.configPath)
	renderer.RenderText("\nYou're all set! Try running:")
	renderer.RenderText("  mdreveal build slides.md -d slides")
	return nil
}

func defaultConfig() *config.Config {
	controls, progress := true, true
	return &config.Config{
		Theme:          deck.DefaultTheme,
		Transition:     deck.DefaultTransition,
		HighlightStyle: deck.DefaultHighlightStyle,
		Controls:       &controls,
		Progress:       &progress,
	}
}

func runForm(cfg *config.Config) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Theme").
				Description("reveal.js theme for new decks").
				Options(huh.NewOptions(deck.Themes...)...).
				Value(&cfg.Theme),

			huh.NewSelect[string]().
				Title("Transition").
				Options(huh.NewOptions(deck.Transitions...)...).
				Value(&cfg.Transition),

			huh.NewInput().
				Title("Code highlighting style").
				Description("Any chroma style, see: mdreveal list styles").
				Placeholder(deck.DefaultHighlightStyle).
				Value(&cfg.HighlightStyle).
				Validate(deck.ValidateHighlightStyle),

			huh.NewInput().
				Title("Stylesheet (optional)").
				Description("Extra CSS file copied into every deck").
				Value(&cfg.Stylesheet).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					if _, err := os.Stat(s); err != nil {
						return fmt.Errorf("stylesheet not found: %s", s)
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Show slide numbers?").
				Value(&cfg.SlideNumbers),

			huh.NewConfirm().
				Title("Show navigation controls?").
				Value(cfg.Controls),

			huh.NewConfirm().
				Title("Show a footer with title and authors?").
				Value(&cfg.Footer),
		),
	)

	return form.Run()
}
