// Command sync_diff compares the current directory with <parent>/<name>.
package main

import (
	"os"

	"github.com/sdejongh/synctools/internal/cli"
)

func main() {
	app := cli.NewApp()
	cmd := app.NewStandaloneCommand(app.NewDiffCommand("sync_diff"))
	os.Exit(app.Execute(cmd, os.Args[1:]))
}
