// Package importcmd provides the import command, which turns an HTML page or
// an existing reveal.js deck into Markdown slide source.
package importcmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mdreveal/internal/fetch"
	"github.com/open-cli-collective/mdreveal/internal/view"
	"github.com/open-cli-collective/mdreveal/pkg/md"
)

type importOptions struct {
	source  string
	file    string
	force   bool
	noColor bool
	writer  io.Writer
	client  *fetch.Client
}

// NewCmdImport creates the import command.
func NewCmdImport() *cobra.Command {
	opts := &importOptions{}

	cmd := &cobra.Command{
		Use:   "import <file.html|URL>",
		Short: "Convert an HTML page or reveal.js deck to Markdown",
		Long: `Convert an HTML page into Markdown that 'mdreveal build' accepts.

Reveal.js decks keep their structure: top-level sections become '#'
slides, nested sections become '##' slides, and the title slide becomes
front matter. Speaker notes and scripts are dropped.`,
		Example: `  # Print Markdown for a local deck
  mdreveal import talk/index.html

  # Fetch a published deck and save it
  mdreveal import https://example.com/talk/ -f talk.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.source = args[0]
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.writer = cmd.OutOrStdout()
			opts.client = fetch.NewClient()
			return runImport(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Write the Markdown to this file instead of stdout")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Overwrite an existing file")

	return cmd
}

func runImport(ctx context.Context, opts *importOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.client == nil {
		opts.client = fetch.NewClient()
	}
	out := opts.writer
	if out == nil {
		out = os.Stdout
	}

	if opts.file != "" && !opts.force {
		if _, err := os.Stat(opts.file); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", opts.file)
		}
	}

	data, err := opts.client.Read(ctx, opts.source)
	if err != nil {
		return err
	}

	result, err := md.FromHTML(string(data))
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", opts.source, err)
	}

	if opts.file == "" {
		_, err := io.WriteString(out, result.Markdown)
		return err
	}

	if err := os.WriteFile(opts.file, []byte(result.Markdown), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.file, err)
	}
	renderer := view.NewRenderer(view.FormatTable, opts.noColor)
	renderer.SetWriter(out)
	renderer.Success(fmt.Sprintf("Imported %d slides into %s", result.Slides, opts.file))
	return nil
}
