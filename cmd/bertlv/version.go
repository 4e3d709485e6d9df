package main

import (
	"encoding/json"

	"github.com/emvtools/bertlv/core/version"
	"github.com/urfave/cli/v2"
)

func init() {
	defineCommand(&cli.Command{
		Name:  "version",
		Usage: "Show version information",
		Action: func(c *cli.Context) error {
			return json.NewEncoder(stdout).Encode(version.V)
		},
	})
}
