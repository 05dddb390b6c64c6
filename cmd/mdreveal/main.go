package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/open-cli-collective/mdreveal/internal/cmd/root"
	"github.com/open-cli-collective/mdreveal/internal/view"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := root.NewCmdRoot()
	if err := cmd.ExecuteContext(ctx); err != nil {
		renderer := view.NewRenderer(view.FormatTable, false)
		renderer.SetWriter(os.Stderr)
		renderer.Error(err.Error())
		stop()
		os.Exit(1)
	}
}
