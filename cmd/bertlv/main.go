// Command bertlv decodes, queries, and encodes BER-TLV streams.
package main

import (
	"io"
	"os"
	"sort"

	"github.com/emvtools/bertlv/core/logging"
	"github.com/emvtools/bertlv/core/version"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var logger = logging.New("bertlv")

var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
)

var app = &cli.App{
	Name:    "bertlv",
	Version: version.V.String(),
	Usage:   "Decode, query, and encode BER-TLV.",
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "log",
			Usage:   "log level `assignment` such as ber=D, or a level for every package",
			EnvVars: []string{"BERTLV_CLI_LOG"},
		},
	},
	Before: func(c *cli.Context) error {
		return logging.ApplyAssignments(c.StringSlice("log")...)
	},
	After: func(c *cli.Context) error {
		logging.Sync()
		return nil
	},
	ExitErrHandler: func(c *cli.Context, e error) {},
}

func defineCommand(command *cli.Command) {
	app.Commands = append(app.Commands, command)
}

func main() {
	sort.Sort(cli.CommandsByName(app.Commands))
	e := app.Run(os.Args)
	if e != nil {
		logger.Fatal("command error", zap.Error(e))
	}
}
