// Package root provides the root command for the mdreveal CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mdreveal/internal/cmd/build"
	"github.com/open-cli-collective/mdreveal/internal/cmd/completion"
	"github.com/open-cli-collective/mdreveal/internal/cmd/configcmd"
	"github.com/open-cli-collective/mdreveal/internal/cmd/importcmd"
	initcmd "github.com/open-cli-collective/mdreveal/internal/cmd/init"
	"github.com/open-cli-collective/mdreveal/internal/cmd/list"
	"github.com/open-cli-collective/mdreveal/internal/version"
)

// NewCmdRoot creates the root command for mdreveal.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mdreveal",
		Short: "Turn Markdown into reveal.js slide decks",
		Long: `mdreveal converts Markdown documents into reveal.js presentations.

Headings become slides, fenced directives add notes, columns, topics
and plots, and front matter fills the title slide.

Get started by running: mdreveal build talk.md`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/mdreveal/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "table", "output format: table, json, plain")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	cmd.SetVersionTemplate("mdreveal version {{.Version}} (commit: " + version.Commit + ", built: " + version.Date + ")\n")

	// Subcommands
	cmd.AddCommand(build.NewCmdBuild())
	cmd.AddCommand(importcmd.NewCmdImport())
	cmd.AddCommand(list.NewCmdList())
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}
