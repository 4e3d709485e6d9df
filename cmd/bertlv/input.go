package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/multierr"
)

type input struct {
	Name string
	Wire []byte
}

// parseHex decodes hexadecimal text.
// Whitespace and a leading "0x" are ignored.
func parseHex(s string) ([]byte, error) {
	s = strings.Join(strings.Fields(s), "")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	return hex.DecodeString(s)
}

// readInput recognizes hexadecimal text, "@file" with binary content, or "-" for hexadecimal text on stdin.
func readInput(arg string) (in input, e error) {
	in.Name = arg
	switch {
	case arg == "-":
		in.Name = "stdin"
		text, e := io.ReadAll(stdin)
		if e != nil {
			return in, e
		}
		in.Wire, e = parseHex(string(text))
		return in, e
	case strings.HasPrefix(arg, "@"):
		in.Wire, e = os.ReadFile(arg[1:])
		return in, e
	default:
		in.Wire, e = parseHex(arg)
		return in, e
	}
}

// readInputs reads every argument, or stdin if there are none.
// Unreadable arguments are skipped and their errors are combined.
func readInputs(args []string) (list []input, e error) {
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		in, err := readInput(arg)
		if err != nil {
			e = multierr.Append(e, fmt.Errorf("input %s: %w", in.Name, err))
			continue
		}
		list = append(list, in)
	}
	return list, e
}
