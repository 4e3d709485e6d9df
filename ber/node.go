package ber

import (
	"github.com/emvtools/bertlv/bufferview"
)

// node records positions of one TLV within a view.
type node struct {
	idPos       int
	idLen       int
	constructed bool
	contentPos  int
	contentLen  int
	children    []node
}

func (n *node) end() int {
	return n.contentPos + n.contentLen
}

func (n *node) match(v bufferview.View, id Identifier) bool {
	if n.idLen != len(id) {
		return false
	}
	for i, b := range id {
		if v.GetByte(n.idPos+i) != b {
			return false
		}
	}
	return true
}

func (n *node) copyContent(v bufferview.View) []byte {
	content := make([]byte, n.contentLen)
	v.GetBytes(n.contentPos, content)
	return content
}

// Node is a read-only handle to a parsed TLV.
// Accessors read from the view of the frame that produced it.
type Node struct {
	view bufferview.View
	n    *node
}

func wrapNodes(v bufferview.View, nodes []node) (list []Node) {
	list = make([]Node, len(nodes))
	for i := range nodes {
		list[i] = Node{view: v, n: &nodes[i]}
	}
	return list
}

// Identifier returns a copy of the identifier octets.
func (nd Node) Identifier() Identifier {
	id := make(Identifier, nd.n.idLen)
	nd.view.GetBytes(nd.n.idPos, id)
	return id
}

// Content returns a copy of the content octets.
func (nd Node) Content() []byte {
	return nd.n.copyContent(nd.view)
}

// Constructed reports whether the content is a sequence of nested TLVs.
func (nd Node) Constructed() bool {
	return nd.n.constructed
}

// Children returns nested TLVs in document order.
// It returns nil for a primitive TLV.
func (nd Node) Children() []Node {
	if len(nd.n.children) == 0 {
		return nil
	}
	return wrapNodes(nd.view, nd.n.children)
}

// IdentifierPosition returns the absolute index of the first identifier octet.
func (nd Node) IdentifierPosition() int {
	return nd.n.idPos
}

// IdentifierLength returns the identifier length in octets.
func (nd Node) IdentifierLength() int {
	return nd.n.idLen
}

// ContentPosition returns the absolute index of the first content octet.
func (nd Node) ContentPosition() int {
	return nd.n.contentPos
}

// ContentLength returns the content length in octets.
func (nd Node) ContentLength() int {
	return nd.n.contentLen
}

// Len returns the encoded size including identifier and length octets.
func (nd Node) Len() int {
	return nd.n.end() - nd.n.idPos
}
