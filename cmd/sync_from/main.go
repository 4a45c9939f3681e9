// Command sync_from pulls <parent>/<name> into the current directory.
package main

import (
	"os"

	"github.com/sdejongh/synctools/internal/cli"
)

func main() {
	app := cli.NewApp()
	cmd := app.NewStandaloneCommand(app.NewFromCommand("sync_from"))
	os.Exit(app.Execute(cmd, os.Args[1:]))
}
