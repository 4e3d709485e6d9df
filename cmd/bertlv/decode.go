package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/emvtools/bertlv/ber"
	"github.com/emvtools/bertlv/berprint"
	"github.com/emvtools/bertlv/bufferview"
	"github.com/fxamacker/cbor/v2"
	"github.com/urfave/cli/v2"
	"github.com/zyedidia/generic/multimap"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type hexBytes []byte

func (b hexBytes) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("%X", []byte(b))), nil
}

// nodeRecord is the JSON and CBOR representation of a TLV.
type nodeRecord struct {
	Tag         string       `json:"tag" cbor:"tag"`
	Constructed bool         `json:"constructed" cbor:"constructed"`
	Offset      int          `json:"offset" cbor:"offset"`
	Length      int          `json:"length" cbor:"length"`
	Value       hexBytes     `json:"value,omitempty" cbor:"value,omitempty"`
	Children    []nodeRecord `json:"children,omitempty" cbor:"children,omitempty"`
}

func makeNodeRecords(nodes []ber.Node) (list []nodeRecord) {
	list = []nodeRecord{}
	for _, nd := range nodes {
		rec := nodeRecord{
			Tag:         nd.Identifier().String(),
			Constructed: nd.Constructed(),
			Offset:      nd.IdentifierPosition(),
			Length:      nd.ContentLength(),
		}
		if nd.Constructed() {
			rec.Children = makeNodeRecords(nd.Children())
		} else {
			rec.Value = nd.Content()
		}
		list = append(list, rec)
	}
	return list
}

var cborEncMode = func() cbor.EncMode {
	em, e := cbor.CoreDetEncOptions().EncMode()
	if e != nil {
		panic(e)
	}
	return em
}()

// printIndex lists each identifier once, in order of first appearance, with the positions of all its occurrences.
func printIndex(w io.Writer, f *ber.Frame) error {
	index := multimap.NewMapSlice[string, int]()
	order := []string{}
	f.Walk(func(nd ber.Node, depth int) bool {
		tag := nd.Identifier().String()
		if !index.Has(tag) {
			order = append(order, tag)
		}
		index.Put(tag, nd.IdentifierPosition())
		return true
	})

	for _, tag := range order {
		positions := index.Get(tag)
		if _, e := fmt.Fprintf(w, "%s %d %v\n", tag, len(positions), positions); e != nil {
			return e
		}
	}
	return nil
}

type presentFunc func(w io.Writer, f *ber.Frame) error

type presentOptions struct {
	Format    string
	Spaces    bool
	DictFiles []string
}

func (opts presentOptions) presenter() (presentFunc, error) {
	switch opts.Format {
	case "tree":
		return func(w io.Writer, f *ber.Frame) error {
			return berprint.New(w, nil).Print(f)
		}, nil
	case "emv":
		dict, e := berprint.LoadDictionary(opts.DictFiles...)
		if e != nil {
			return nil, e
		}
		formatter := berprint.EMVFormatter{Dictionary: dict, WithSpaces: opts.Spaces}
		return func(w io.Writer, f *ber.Frame) error {
			return berprint.New(w, formatter).Print(f)
		}, nil
	case "json":
		return func(w io.Writer, f *ber.Frame) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(makeNodeRecords(f.Nodes()))
		}, nil
	case "cbor":
		return func(w io.Writer, f *ber.Frame) error {
			return cborEncMode.NewEncoder(w).Encode(makeNodeRecords(f.Nodes()))
		}, nil
	case "index":
		return printIndex, nil
	case "hex":
		return func(w io.Writer, f *ber.Frame) error {
			_, e := fmt.Fprintf(w, "%X\n", f.Bytes())
			return e
		}, nil
	}
	return nil, fmt.Errorf("unknown format %q", opts.Format)
}

type decodeWindow struct {
	Offset int
	Length int
}

// decode parses a window of in.Wire; negative Length extends to the end.
func (win decodeWindow) decode(in input) (*ber.Frame, error) {
	length := win.Length
	if length < 0 {
		length = len(in.Wire) - win.Offset
	}
	return ber.DecodeView(bufferview.New(in.Wire), win.Offset, length)
}

func init() {
	var opts presentOptions
	var win decodeWindow
	var partial bool

	defineCommand(&cli.Command{
		Name:      "decode",
		Usage:     "Decode BER-TLV and print the tree",
		ArgsUsage: "[HEX | @FILE | -]...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Aliases:     []string{"f"},
				Usage:       "output `format`: tree, emv, json, cbor, index, hex",
				Value:       "tree",
				Destination: &opts.Format,
			},
			&cli.BoolFlag{
				Name:        "spaces",
				Usage:       "print EMV content as spaced octets, 16 per line",
				Destination: &opts.Spaces,
			},
			&cli.StringSliceFlag{
				Name:    "dict",
				Usage:   "EMV dictionary override `file`",
				EnvVars: []string{berprint.EnvTags},
			},
			&cli.IntFlag{
				Name:        "offset",
				Usage:       "decode window start `octet`",
				Destination: &win.Offset,
			},
			&cli.IntFlag{
				Name:        "length",
				Usage:       "decode window `length`, negative for the rest of input",
				Value:       -1,
				Destination: &win.Length,
			},
			&cli.BoolFlag{
				Name:        "partial",
				Usage:       "print TLVs decoded before an error",
				Destination: &partial,
			},
		},
		Action: func(c *cli.Context) error {
			opts.DictFiles = c.StringSlice("dict")
			present, e := opts.presenter()
			if e != nil {
				return e
			}

			inputs, e := readInputs(c.Args().Slice())
			for _, in := range inputs {
				f, err := win.decode(in)
				if de := (*ber.DecodeError)(nil); errors.As(err, &de) {
					logger.Error("decode error",
						zap.String("input", in.Name),
						zap.Int("undecoded", len(de.Undecoded)),
						zap.Error(de.Err),
					)
					if partial {
						f = de.Partial
					}
				}
				if f != nil {
					if err := present(stdout, f); err != nil {
						return multierr.Append(e, err)
					}
				}
				if err != nil {
					e = multierr.Append(e, fmt.Errorf("input %s: %w", in.Name, err))
				}
			}
			return e
		},
	})
}
