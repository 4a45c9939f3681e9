// Command synctools bundles sync_to, sync_from and sync_diff as subcommands
// together with config and version.
package main

import (
	"os"

	"github.com/sdejongh/synctools/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version, cli.Commit, cli.BuildDate = version, commit, date

	app := cli.NewApp()
	os.Exit(app.Execute(app.NewRootCommand(), os.Args[1:]))
}
