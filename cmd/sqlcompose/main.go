// Command sqlcompose renders and checks SQL statement definitions.
package main

import (
	"os"

	"github.com/roach88/sqlcomposer/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(cli.GetExitCode(err))
	}
}
