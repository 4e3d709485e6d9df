package main

import (
	"fmt"
	"io"

	"github.com/emvtools/bertlv/ber"
	"github.com/emvtools/bertlv/berprint"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
)

type queryOptions struct {
	Tag   string
	All   bool
	ASCII bool
	TLV   bool
}

// run prints the query result from f.
// It returns false if the identifier is absent.
func (opts queryOptions) run(w io.Writer, f *ber.Frame, id ber.Identifier) (found bool, e error) {
	switch {
	case opts.TLV:
		sub, ok := f.Tag(id)
		if !ok {
			return false, nil
		}
		return true, berprint.New(w, nil).Print(sub)
	case opts.All:
		list := f.AllContents(id)
		for _, content := range list {
			if e := opts.printContent(w, content); e != nil {
				return true, e
			}
		}
		return len(list) > 0, nil
	default:
		content, ok := f.Content(id)
		if !ok {
			return false, nil
		}
		return true, opts.printContent(w, content)
	}
}

func (opts queryOptions) printContent(w io.Writer, content []byte) (e error) {
	if opts.ASCII {
		_, e = fmt.Fprintln(w, ber.ASCII(content))
		return e
	}
	_, e = fmt.Fprintf(w, "%X\n", content)
	return e
}

func init() {
	var opts queryOptions
	defineCommand(&cli.Command{
		Name:      "query",
		Usage:     "Print content of a tag",
		ArgsUsage: "[HEX | @FILE | -]...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "tag",
				Aliases:     []string{"t"},
				Usage:       "hexadecimal `identifier`",
				Required:    true,
				Destination: &opts.Tag,
			},
			&cli.BoolFlag{
				Name:        "all",
				Usage:       "print every occurrence",
				Destination: &opts.All,
			},
			&cli.BoolFlag{
				Name:        "ascii",
				Usage:       "print content as ASCII",
				Destination: &opts.ASCII,
			},
			&cli.BoolFlag{
				Name:        "tlv",
				Usage:       "print the first occurrence as a tree",
				Destination: &opts.TLV,
			},
		},
		Action: func(c *cli.Context) error {
			id, e := ber.ParseIdentifier(opts.Tag)
			if e != nil {
				return e
			}

			inputs, e := readInputs(c.Args().Slice())
			for _, in := range inputs {
				f, err := ber.Decode(in.Wire)
				if err != nil {
					e = multierr.Append(e, fmt.Errorf("input %s: %w", in.Name, err))
					continue
				}
				found, err := opts.run(stdout, f, id)
				if err != nil {
					return multierr.Append(e, err)
				}
				if !found {
					e = multierr.Append(e, fmt.Errorf("input %s: tag %s not found", in.Name, id))
				}
			}
			return e
		},
	})
}
