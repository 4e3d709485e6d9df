// Package berprint prints parsed BER-TLV frames as a tree.
package berprint

import (
	"bufio"
	"io"
	"strings"

	"github.com/emvtools/bertlv/ber"
	"github.com/emvtools/bertlv/core/logging"
)

var logger = logging.New("berprint")

// Tree glyphs.
const (
	NodePrefix     = "├─"
	LeafPrefix     = "└─"
	NodeNextPrefix = "│  "
	LeafNextPrefix = "   "
	LightVertical  = "│"
)

// BranchPrefix returns the glyph before a TLV line.
func BranchPrefix(last bool) string {
	if last {
		return LeafPrefix
	}
	return NodePrefix
}

// NextPrefix returns the indentation added for children and content lines of a TLV.
func NextPrefix(last bool) string {
	if last {
		return LeafNextPrefix
	}
	return NodeNextPrefix
}

// Formatter renders the lines of one TLV, excluding its children.
// prefix is the indentation of the enclosing levels.
// last reports whether nd is the last of its siblings.
// Write errors are reported when the Printer flushes w.
type Formatter interface {
	Format(w *bufio.Writer, nd ber.Node, prefix string, last bool)
}

// Printer writes frames as a tree, one TLV per line.
type Printer struct {
	w   io.Writer
	fmt Formatter
}

// New creates a Printer.
// If f is nil, DefaultFormatter is used.
func New(w io.Writer, f Formatter) *Printer {
	if f == nil {
		f = DefaultFormatter{}
	}
	return &Printer{w: w, fmt: f}
}

// Print writes the tree of frame.
func (p *Printer) Print(frame *ber.Frame) error {
	w := bufio.NewWriter(p.w)
	p.printLevel(w, frame.Nodes(), "")
	return w.Flush()
}

func (p *Printer) printLevel(w *bufio.Writer, nodes []ber.Node, prefix string) {
	for i, nd := range nodes {
		last := i == len(nodes)-1
		p.fmt.Format(w, nd, prefix, last)
		if children := nd.Children(); len(children) > 0 {
			p.printLevel(w, children, prefix+NextPrefix(last))
		}
	}
}

// Sprint returns the tree of frame as a string.
func Sprint(frame *ber.Frame, f Formatter) string {
	var b strings.Builder
	New(&b, f).Print(frame)
	return b.String()
}

func writeTagLine(w *bufio.Writer, nd ber.Node, prefix string, last bool) {
	w.WriteByte(' ')
	w.WriteString(prefix)
	w.WriteString(BranchPrefix(last))
	w.WriteByte('[')
	w.WriteString(nd.Identifier().String())
	w.WriteByte(']')
}

// DefaultFormatter prints "[TAG] CONTENT" for primitive TLVs and "[TAG]" for constructed TLVs.
type DefaultFormatter struct{}

var _ Formatter = DefaultFormatter{}

// Format implements Formatter interface.
func (DefaultFormatter) Format(w *bufio.Writer, nd ber.Node, prefix string, last bool) {
	writeTagLine(w, nd, prefix, last)
	if !nd.Constructed() && nd.ContentLength() > 0 {
		w.WriteByte(' ')
		writeHex(w, nd.Content())
	}
	w.WriteByte('\n')
}

const hexDigits = "0123456789ABCDEF"

func writeHex(w *bufio.Writer, b []byte) {
	for _, c := range b {
		w.WriteByte(hexDigits[c>>4])
		w.WriteByte(hexDigits[c&0x0F])
	}
}

// writeHexSpaced writes octets separated by spaces, with an extra space after every 8 octets.
func writeHexSpaced(w *bufio.Writer, b []byte) {
	for i, c := range b {
		if i > 0 {
			w.WriteByte(' ')
			if i%8 == 0 {
				w.WriteByte(' ')
			}
		}
		w.WriteByte(hexDigits[c>>4])
		w.WriteByte(hexDigits[c&0x0F])
	}
}
