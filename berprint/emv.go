package berprint

import (
	"bufio"
	_ "embed"
	"fmt"
	"os"

	"github.com/emvtools/bertlv/ber"
	"github.com/peterbourgon/mergemap"
	"github.com/zyedidia/generic"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// EnvTags is the environment variable that names a YAML file overriding the embedded EMV dictionary.
const EnvTags = "BERTLV_EMV_TAGS"

// OctetsPerLine is the number of content octets per line in spaced output.
const OctetsPerLine = 16

//go:embed emv-tags.yaml
var embeddedTags []byte

// Dictionary maps uppercase hexadecimal identifiers to tag names.
type Dictionary map[string]string

// Name returns the name of an identifier.
func (dict Dictionary) Name(id ber.Identifier) (name string, ok bool) {
	name, ok = dict[id.String()]
	return
}

// ParseDictionary merges YAML documents into a Dictionary.
// Each document is a mapping from hexadecimal identifier to name; later documents take precedence.
// A null name removes an identifier defined by an earlier document.
func ParseDictionary(docs ...[]byte) (Dictionary, error) {
	merged := map[string]any{}
	for i, doc := range docs {
		var m map[string]any
		if e := yaml.Unmarshal(doc, &m); e != nil {
			return nil, fmt.Errorf("dictionary document %d: %w", i, e)
		}

		normalized := map[string]any{}
		for tag, name := range m {
			id, e := ber.ParseIdentifier(tag)
			if e != nil {
				return nil, fmt.Errorf("dictionary document %d key %q: %w", i, tag, e)
			}
			normalized[id.String()] = name
		}
		merged = mergemap.Merge(merged, normalized)
	}

	dict := Dictionary{}
	for tag, name := range merged {
		if name != nil {
			dict[tag] = fmt.Sprint(name)
		}
	}
	return dict, nil
}

// LoadDictionary returns the embedded EMV dictionary overridden by the files in filenames.
// If filenames is empty and EnvTags is set, the file it names is used.
func LoadDictionary(filenames ...string) (Dictionary, error) {
	if len(filenames) == 0 {
		if filename, ok := os.LookupEnv(EnvTags); ok && filename != "" {
			filenames = []string{filename}
		}
	}

	docs := [][]byte{embeddedTags}
	for _, filename := range filenames {
		doc, e := os.ReadFile(filename)
		if e != nil {
			return nil, e
		}
		logger.Debug("dictionary override", zap.String("filename", filename), zap.Int("size", len(doc)))
		docs = append(docs, doc)
	}
	return ParseDictionary(docs...)
}

// EMVFormatter prints the EMV tag name after the identifier and content on continuation lines.
type EMVFormatter struct {
	Dictionary Dictionary

	// WithSpaces selects spaced octets with OctetsPerLine octets per line.
	WithSpaces bool
}

var _ Formatter = EMVFormatter{}

// Format implements Formatter interface.
func (f EMVFormatter) Format(w *bufio.Writer, nd ber.Node, prefix string, last bool) {
	writeTagLine(w, nd, prefix, last)
	if name, ok := f.Dictionary.Name(nd.Identifier()); ok {
		w.WriteByte(' ')
		w.WriteString(name)
	}
	w.WriteByte('\n')

	content := nd.Content()
	if len(content) == 0 {
		return
	}
	if !f.WithSpaces {
		f.writeContentLine(w, nd, prefix, last, content, writeHex)
		return
	}
	for i := 0; i < len(content); i += OctetsPerLine {
		chunk := content[i : i+generic.Min(OctetsPerLine, len(content)-i)]
		f.writeContentLine(w, nd, prefix, last, chunk, writeHexSpaced)
	}
}

func (EMVFormatter) writeContentLine(w *bufio.Writer, nd ber.Node, prefix string, last bool,
	chunk []byte, write func(w *bufio.Writer, b []byte)) {
	w.WriteByte(' ')
	w.WriteString(prefix)
	w.WriteString(NextPrefix(last))
	if nd.Constructed() {
		w.WriteString(LightVertical)
	}
	w.WriteByte(' ')
	write(w, chunk)
	w.WriteByte('\n')
}
