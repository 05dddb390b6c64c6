// Package list provides the list command, which prints the names accepted by
// the build flags.
package list

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mdreveal/internal/view"
	"github.com/open-cli-collective/mdreveal/pkg/deck"
)

type listOptions struct {
	output  string
	noColor bool
	writer  io.Writer
}

var catalogs = map[string]struct {
	names func() []string
	def   string
}{
	"themes":      {func() []string { return deck.Themes }, deck.DefaultTheme},
	"transitions": {func() []string { return deck.Transitions }, deck.DefaultTransition},
	"styles":      {deck.HighlightStyles, deck.DefaultHighlightStyle},
}

// NewCmdList creates the list command.
func NewCmdList() *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:       "list {themes|transitions|styles}",
		Aliases:   []string{"ls"},
		Short:     "List themes, transitions or highlight styles",
		ValidArgs: []string{"themes", "transitions", "styles"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		Example: `  # Available reveal.js themes
  mdreveal list themes

  # Code highlighting styles, one per line
  mdreveal list styles -o plain`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.writer = cmd.OutOrStdout()
			return runList(args[0], opts)
		},
	}

	return cmd
}

func runList(kind string, opts *listOptions) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}
	catalog, ok := catalogs[kind]
	if !ok {
		return fmt.Errorf("unknown list %q (valid: themes, transitions, styles)", kind)
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	if opts.writer != nil {
		renderer.SetWriter(opts.writer)
	}

	var rows [][]string
	for _, name := range catalog.names() {
		def := ""
		if name == catalog.def {
			def = "yes"
		}
		rows = append(rows, []string{name, def})
	}

	renderer.RenderTable([]string{"NAME", "DEFAULT"}, rows)
	return nil
}
