package configcmd

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mdreveal/internal/config"
	"github.com/open-cli-collective/mdreveal/internal/view"
	"github.com/open-cli-collective/mdreveal/pkg/deck"
)

type field struct {
	key string
	env string
	def string
	get func(*config.Config) string
}

var fields = []field{
	{"theme", "MDREVEAL_THEME", deck.DefaultTheme, func(c *config.Config) string { return c.Theme }},
	{"transition", "MDREVEAL_TRANSITION", deck.DefaultTransition, func(c *config.Config) string { return c.Transition }},
	{"highlight_style", "MDREVEAL_HIGHLIGHT_STYLE", deck.DefaultHighlightStyle, func(c *config.Config) string { return c.HighlightStyle }},
	{"reveal_url", "MDREVEAL_REVEAL_URL", deck.DefaultRevealURL, func(c *config.Config) string { return c.RevealURL }},
	{"stylesheet", "MDREVEAL_STYLESHEET", "-", func(c *config.Config) string { return c.Stylesheet }},
	{"slide_numbers", "MDREVEAL_SLIDE_NUMBERS", "false", func(c *config.Config) string { return flag(c.SlideNumbers) }},
	{"controls", "MDREVEAL_CONTROLS", "true", func(c *config.Config) string { return optionalFlag(c.Controls) }},
	{"progress", "MDREVEAL_PROGRESS", "true", func(c *config.Config) string { return optionalFlag(c.Progress) }},
	{"header", "MDREVEAL_HEADER", "false", func(c *config.Config) string { return flag(c.Header) }},
	{"footer", "MDREVEAL_FOOTER", "false", func(c *config.Config) string { return flag(c.Footer) }},
	{"title_slide_template", "", "(built-in)", func(c *config.Config) string { return custom(c.TitleSlideTemplate) }},
	{"footer_template", "", "(built-in)", func(c *config.Config) string { return custom(c.FooterTemplate) }},
}

func flag(b bool) string {
	if !b {
		return ""
	}
	return "true"
}

func optionalFlag(b *bool) string {
	if b == nil {
		return ""
	}
	return strconv.FormatBool(*b)
}

func custom(tmpl string) string {
	if tmpl == "" {
		return ""
	}
	return "(custom)"
}

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long: `Display the effective mdreveal configuration and where each value comes
from: the config file, an environment variable, or the built-in default.`,
		Example: `  # Show current config
  mdreveal config show

  # As JSON
  mdreveal config show -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShow(newCommonOptions(cmd))
		},
	}

	return cmd
}

func runShow(opts commonOptions) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}

	fileCfg, fileErr := config.Load(opts.configPath)
	if fileErr != nil {
		if _, statErr := os.Stat(opts.configPath); statErr == nil {
			return fileErr
		}
		fileCfg = &config.Config{}
	}
	cfg, err := config.LoadWithEnv(opts.configPath)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(fields))
	for _, f := range fields {
		value, source := f.get(cfg), "config"
		switch {
		case f.env != "" && os.Getenv(f.env) != "" && value != f.get(fileCfg):
			source = f.env
		case value == "":
			value, source = f.def, "default"
		}
		rows = append(rows, []string{f.key, value, source})
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	renderer.SetWriter(opts.out())
	renderer.RenderTable([]string{"KEY", "VALUE", "SOURCE"}, rows)

	if !renderer.JSON() {
		renderer.RenderText("")
		if fileErr != nil {
			renderer.RenderText("Config file: " + opts.configPath + " (not found)")
		} else {
			renderer.RenderText("Config file: " + opts.configPath)
		}
	}

	return nil
}
