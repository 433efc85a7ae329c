// iconcache pre-calculates an initial cache for /proc/icon_exists in SS13:
// it indexes the icon states of every .dmi file under a directory and writes
// them out as one JSON document.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/iconcache/cmd/iconcache/commands"
	"git.home.luguber.info/inful/iconcache/internal/errors"
	"git.home.luguber.info/inful/iconcache/internal/version"
)

func main() {
	var cli commands.CLI
	kong.Parse(&cli,
		kong.Name("iconcache"),
		kong.Description("Pre-calculate an initial icon state cache for /proc/icon_exists in SS13."),
		kong.Vars{"version": version.String()},
		kong.UsageOnError(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.Run(ctx)
	stop()

	errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
