// Command sync_to pushes the current directory to <parent>/<name>.
package main

import (
	"os"

	"github.com/sdejongh/synctools/internal/cli"
)

func main() {
	app := cli.NewApp()
	cmd := app.NewStandaloneCommand(app.NewToCommand("sync_to"))
	os.Exit(app.Execute(cmd, os.Args[1:]))
}
