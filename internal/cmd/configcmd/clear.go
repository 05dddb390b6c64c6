package configcmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mdreveal/internal/view"
)

// NewCmdClear creates the config clear command.
func NewCmdClear() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove stored configuration",
		Long:  `Delete the mdreveal configuration file. Environment variables will still be used if set.`,
		Example: `  # Clear config
  mdreveal config clear`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runClear(newCommonOptions(cmd))
		},
	}

	return cmd
}

func runClear(opts commonOptions) error {
	err := os.Remove(opts.configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove config file: %w", err)
	}

	renderer := view.NewRenderer(view.FormatTable, opts.noColor)
	renderer.SetWriter(opts.out())

	if os.IsNotExist(err) {
		renderer.Success("No config file to remove")
	} else {
		renderer.Success("Configuration cleared from " + opts.configPath)
	}

	var activeVars []string
	for _, f := range fields {
		if f.env != "" && os.Getenv(f.env) != "" {
			activeVars = append(activeVars, f.env)
		}
	}
	if len(activeVars) > 0 {
		renderer.Warn("Environment variables will still be used: " + strings.Join(activeVars, ", "))
	}

	return nil
}
