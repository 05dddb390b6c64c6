// Package configcmd provides config management commands.
package configcmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mdreveal/internal/config"
	"github.com/open-cli-collective/mdreveal/internal/view"
)

// NewCmdConfig creates the config command.
func NewCmdConfig() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage mdreveal configuration",
		Long:  `Commands for viewing, locating, and clearing mdreveal configuration.`,
	}

	cmd.AddCommand(NewCmdShow())
	cmd.AddCommand(NewCmdPath())
	cmd.AddCommand(NewCmdClear())

	return cmd
}

// commonOptions are read from the global flags.
type commonOptions struct {
	configPath string
	output     string
	noColor    bool
	writer     io.Writer
}

func newCommonOptions(cmd *cobra.Command) commonOptions {
	configPath, _ := cmd.Flags().GetString("config")
	output, _ := cmd.Flags().GetString("output")
	noColor, _ := cmd.Flags().GetBool("no-color")
	return commonOptions{
		configPath: config.ResolvePath(configPath),
		output:     output,
		noColor:    noColor,
		writer:     cmd.OutOrStdout(),
	}
}

func (o commonOptions) out() io.Writer {
	if o.writer == nil {
		return os.Stdout
	}
	return o.writer
}

// NewCmdPath creates the config path command.
func NewCmdPath() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file location",
		Example: `  # Edit the config file
  $EDITOR "$(mdreveal config path)"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPath(newCommonOptions(cmd))
		},
	}
}

func runPath(opts commonOptions) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}
	if view.Format(opts.output) == view.FormatJSON {
		renderer := view.NewRenderer(view.FormatJSON, opts.noColor)
		renderer.SetWriter(opts.out())
		renderer.RenderKeyValue("path", opts.configPath)
		return nil
	}
	_, err := io.WriteString(opts.out(), opts.configPath+"\n")
	return err
}
