// Command server runs the orusweb backend-for-frontend.
package main

import (
	"fmt"
	"os"

	"orusweb/internal/config"

	cli "github.com/urfave/cli/v2"
)

func main() {
	config.LoadEnv()

	app := &cli.App{
		Name:  "orusweb",
		Usage: "Browser-facing gateway for the orus wallet and shop",
		Commands: []*cli.Command{
			serveCmd,
			quoteCmd,
		},
		DefaultCommand: serveCmd.Name,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "orusweb: %v\n", err)
		os.Exit(1)
	}
}
