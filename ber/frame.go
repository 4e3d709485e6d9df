package ber

import (
	"strings"
	"unicode/utf8"

	"github.com/emvtools/bertlv/bufferview"
)

// Frame is a parsed sequence of TLVs over [Offset(), Limit()) of a View.
//
// A Frame references the view without copying; the view's storage must not be modified
// or released while the Frame is in use.
// Queries search in pre-order: a TLV whose identifier matches is returned without searching
// its children, otherwise a constructed TLV is searched before its next sibling.
type Frame struct {
	view   bufferview.View
	offset int
	limit  int
	nodes  []node
}

func newFrame(view bufferview.View, offset, limit int, nodes []node) *Frame {
	return &Frame{
		view:   view,
		offset: offset,
		limit:  limit,
		nodes:  nodes,
	}
}

// View returns the underlying view.
func (f *Frame) View() bufferview.View {
	return f.view
}

// Offset returns the absolute index of the first octet.
func (f *Frame) Offset() int {
	return f.offset
}

// Limit returns the absolute index after the last octet.
func (f *Frame) Limit() int {
	return f.limit
}

// Len returns Limit()-Offset().
func (f *Frame) Len() int {
	return f.limit - f.offset
}

// Bytes returns a copy of the octets in [Offset(), Limit()).
func (f *Frame) Bytes() []byte {
	wire := make([]byte, f.Len())
	f.view.GetBytes(f.offset, wire)
	return wire
}

// Nodes returns top-level TLVs.
func (f *Frame) Nodes() []Node {
	return wrapNodes(f.view, f.nodes)
}

// Walk visits every TLV in pre-order.
// If visit returns false, children of that TLV are skipped.
func (f *Frame) Walk(visit func(nd Node, depth int) bool) {
	f.walk(f.nodes, 0, visit)
}

func (f *Frame) walk(nodes []node, depth int, visit func(nd Node, depth int) bool) {
	for i := range nodes {
		n := &nodes[i]
		if visit(Node{view: f.view, n: n}, depth) && len(n.children) > 0 {
			f.walk(n.children, depth+1, visit)
		}
	}
}

func (f *Frame) find(nodes []node, id Identifier) *node {
	for i := range nodes {
		n := &nodes[i]
		if n.match(f.view, id) {
			return n
		}
		if n.constructed {
			if found := f.find(n.children, id); found != nil {
				return found
			}
		}
	}
	return nil
}

func (f *Frame) findAll(nodes []node, id Identifier, found []*node) []*node {
	for i := range nodes {
		n := &nodes[i]
		if n.match(f.view, id) {
			found = append(found, n)
		} else if n.constructed {
			found = f.findAll(n.children, id, found)
		}
	}
	return found
}

// Content returns a copy of the content of the first TLV with identifier id.
func (f *Frame) Content(id Identifier) (content []byte, ok bool) {
	if len(id) == 0 {
		return nil, false
	}
	n := f.find(f.nodes, id)
	if n == nil {
		return nil, false
	}
	return n.copyContent(f.view), true
}

// AllContents returns copies of the content of every TLV with identifier id, in document order.
// Children of a matching TLV are not searched.
func (f *Frame) AllContents(id Identifier) (list [][]byte) {
	if len(id) == 0 {
		return nil
	}
	for _, n := range f.findAll(f.nodes, id, nil) {
		list = append(list, n.copyContent(f.view))
	}
	return list
}

// ContentASCII returns the content of the first TLV with identifier id as an ASCII string.
// Octets outside the ASCII range are replaced with utf8.RuneError.
func (f *Frame) ContentASCII(id Identifier) (s string, ok bool) {
	content, ok := f.Content(id)
	if !ok {
		return "", false
	}
	return ASCII(content), true
}

// ASCII converts content to a string.
// Octets outside the ASCII range are replaced with utf8.RuneError.
func ASCII(content []byte) string {
	var b strings.Builder
	b.Grow(len(content))
	for _, c := range content {
		if c < utf8.RuneSelf {
			b.WriteByte(c)
		} else {
			b.WriteRune(utf8.RuneError)
		}
	}
	return b.String()
}

// ContentHex returns the content of the first TLV with identifier id as uppercase hexadecimal.
func (f *Frame) ContentHex(id Identifier) (s string, ok bool) {
	content, ok := f.Content(id)
	if !ok {
		return "", false
	}
	return upperHex(content), true
}

// Tag returns a sub-frame spanning the first TLV with identifier id.
// The sub-frame shares the view.
func (f *Frame) Tag(id Identifier) (sub *Frame, ok bool) {
	if len(id) == 0 {
		return nil, false
	}
	n := f.find(f.nodes, id)
	if n == nil {
		return nil, false
	}
	return newFrame(f.view, n.idPos, n.end(), []node{*n}), true
}

// Identifiers returns an iterator over top-level identifiers.
func (f *Frame) Identifiers() *IdentifierIterator {
	return &IdentifierIterator{f: f}
}

// IdentifierIterator iterates over top-level identifiers of a Frame.
// It is forward-only; call Frame.Identifiers again to restart.
type IdentifierIterator struct {
	f   *Frame
	i   int
	cur Identifier
}

// Next advances to the next identifier.
// Returns false when there are no more identifiers.
func (it *IdentifierIterator) Next() bool {
	if it.i >= len(it.f.nodes) {
		it.cur = nil
		return false
	}
	it.cur = Node{view: it.f.view, n: &it.f.nodes[it.i]}.Identifier()
	it.i++
	return true
}

// Identifier returns the current identifier.
func (it *IdentifierIterator) Identifier() Identifier {
	return it.cur
}
