// Package yamlflag provides a command line flag that accepts a YAML document.
package yamlflag

import (
	"encoding/json"
	"flag"
	"io"
	"os"
	"path/filepath"
	"reflect"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// New creates a flag.Value that recognizes a YAML document.
//
// The YAML document can be specified directly on the command line:
//
//	--flag="key: value"
//
// Or it can be read from a file, when the flag value starts with '@':
//
//	--flag=@file.yaml
//	--flag=@-
//
// "@-" reads standard input.
// Files with .json or .jsonc extension may contain comments and trailing commas.
//
// value must be a pointer, such as *yaml.Node or a pointer to a struct.
// Panics if value is not a pointer.
func New(value any) flag.Getter {
	if val := reflect.ValueOf(value); val.Kind() != reflect.Ptr {
		panic(val.Kind())
	}
	return &yamlFlagValue{value}
}

// Stdin is read by "@-".
var Stdin io.Reader = os.Stdin

type yamlFlagValue struct {
	Value any
}

func (v *yamlFlagValue) Get() any {
	return v.Value
}

func (v *yamlFlagValue) Set(s string) error {
	if len(s) == 0 || s[0] != '@' {
		return yaml.Unmarshal([]byte(s), v.Value)
	}

	filename := s[1:]
	var doc []byte
	var e error
	if filename == "-" {
		doc, e = io.ReadAll(Stdin)
	} else {
		doc, e = os.ReadFile(filename)
	}
	if e != nil {
		return e
	}

	switch filepath.Ext(filename) {
	case ".json", ".jsonc":
		doc = jsonc.ToJSON(doc)
	}
	return yaml.Unmarshal(doc, v.Value)
}

func (v *yamlFlagValue) String() string {
	if v == nil || v.Value == nil {
		return ""
	}
	if node, ok := v.Value.(*yaml.Node); ok && node.Kind == 0 {
		return ""
	}
	j, _ := json.Marshal(v.Value)
	return string(j)
}
