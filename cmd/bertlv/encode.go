package main

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/emvtools/bertlv/ber"
	"github.com/emvtools/bertlv/core/yamlflag"
	"github.com/kballard/go-shellquote"
	"github.com/urfave/cli/v2"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed encode.schema.json
var encodeSchema string

// tlvDoc is a TLV in an encode document.
// At most one of Hex, ASCII, Children may be set.
type tlvDoc struct {
	Tag      string   `yaml:"tag"`
	Hex      string   `yaml:"hex"`
	ASCII    *string  `yaml:"ascii"`
	Children []tlvDoc `yaml:"children"`
}

func buildDoc(list []tlvDoc) (*ber.Builder, error) {
	b := ber.NewBuilder()
	for i, d := range list {
		id, e := ber.ParseIdentifier(d.Tag)
		if e != nil {
			return nil, fmt.Errorf("tlv %d tag %q: %w", i, d.Tag, e)
		}

		switch {
		case d.Children != nil:
			nested, e := buildDoc(d.Children)
			if e != nil {
				return nil, fmt.Errorf("tlv %d [%s]: %w", i, id, e)
			}
			b.AddBuilder(id, nested)
		case d.ASCII != nil:
			b.AddASCII(id, *d.ASCII)
		default:
			b.AddHex(id, d.Hex)
		}
	}
	return b, b.Err()
}

type schemaError struct {
	*gojsonschema.Result
}

func (e schemaError) Error() string {
	var b strings.Builder
	fmt.Fprintln(&b, "document failed schema validation:")
	for _, desc := range e.Result.Errors() {
		fmt.Fprintln(&b, "-", desc)
	}
	return b.String()
}

func checkSchema(doc *yaml.Node) error {
	var value any
	if e := doc.Decode(&value); e != nil {
		return e
	}

	schema, e := gojsonschema.NewSchema(gojsonschema.NewStringLoader(encodeSchema))
	if e != nil {
		return e
	}
	result, e := schema.Validate(gojsonschema.NewGoLoader(value))
	if e != nil {
		return e
	}
	if !result.Valid() {
		return schemaError{result}
	}
	return nil
}

func encodeDoc(doc *yaml.Node, skipSchema bool) ([]byte, error) {
	if !skipSchema {
		if e := checkSchema(doc); e != nil {
			return nil, e
		}
	}

	var list []tlvDoc
	if e := doc.Decode(&list); e != nil {
		return nil, e
	}
	b, e := buildDoc(list)
	if e != nil {
		return nil, e
	}
	return b.Bytes()
}

func init() {
	var doc yaml.Node
	var skipSchema, binary, cmdout bool
	defineCommand(&cli.Command{
		Name:  "encode",
		Usage: "Encode BER-TLV from a YAML or JSON document",
		Description: "The document is a list of TLVs. Each TLV has a 'tag' and one of:\n" +
			"'hex' for hexadecimal content, 'ascii' for text content, 'children' for nested TLVs.",
		Flags: []cli.Flag{
			&cli.GenericFlag{
				Name:     "doc",
				Usage:    "TLV `document` in YAML, or @file, or @- for stdin",
				Value:    yamlflag.New(&doc),
				Required: true,
			},
			&cli.BoolFlag{
				Name:        "skip-schema",
				Usage:       "do not check JSON schema",
				Destination: &skipSchema,
			},
			&cli.BoolFlag{
				Name:        "binary",
				Usage:       "write octets instead of hexadecimal",
				Destination: &binary,
			},
			&cli.BoolFlag{
				Name:        "cmdout",
				Usage:       "print decode command line instead of the encoding",
				Destination: &cmdout,
			},
		},
		Action: func(c *cli.Context) error {
			wire, e := encodeDoc(&doc, skipSchema)
			if e != nil {
				return e
			}

			switch {
			case cmdout:
				_, e = fmt.Fprintln(stdout, shellquote.Join(c.App.Name, "decode", "--format", "emv", fmt.Sprintf("%X", wire)))
			case binary:
				_, e = stdout.Write(wire)
			default:
				_, e = fmt.Fprintf(stdout, "%X\n", wire)
			}
			return e
		},
	})
}
