package ber

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/emvtools/bertlv/bufferview"
)

type entry struct {
	id         Identifier
	contentLen int
	content    []byte
	nested     *Builder
}

func (en entry) size() int {
	return len(en.id) + LengthOctets(en.contentLen) + en.contentLen
}

// Builder assembles a sequence of TLVs.
// Zero value is an empty builder.
//
// Adders return the builder for chaining.
// The first error is accumulated in the Builder; later adds are ignored and every
// encode call returns that error.
type Builder struct {
	entries []entry
	length  int
	err     error
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) append(id Identifier, en entry) *Builder {
	if b.err != nil {
		return b
	}
	if e := id.validate(); e != nil {
		b.err = e
		return b
	}
	if uint64(en.contentLen) > MaxContentLength {
		b.err = ErrContentTooLong
		return b
	}
	en.id = append(Identifier(nil), id...)
	b.entries = append(b.entries, en)
	b.length += en.size()
	return b
}

// Add appends a TLV with primitive or pre-encoded content.
// content is retained and must not be modified before encoding.
func (b *Builder) Add(id Identifier, content []byte) *Builder {
	return b.append(id, entry{contentLen: len(content), content: content})
}

// AddBuilder appends a TLV whose content is the encoding of nested.
// nested must not be modified afterwards.
func (b *Builder) AddBuilder(id Identifier, nested *Builder) *Builder {
	switch {
	case b.err != nil:
		return b
	case nested == nil:
		b.err = ErrNilBuilder
		return b
	case nested.err != nil:
		b.err = nested.err
		return b
	}
	return b.append(id, entry{contentLen: nested.length, nested: nested})
}

// AddFrame appends copies of every top-level TLV in f.
func (b *Builder) AddFrame(f *Frame) *Builder {
	for _, nd := range f.Nodes() {
		b.Add(nd.Identifier(), nd.Content())
	}
	return b
}

// AddASCII appends a TLV whose content is s in ASCII.
// Characters outside the ASCII range are encoded as '?'.
func (b *Builder) AddASCII(id Identifier, s string) *Builder {
	content := make([]byte, 0, len(s))
	for _, r := range s {
		if r < 0x80 {
			content = append(content, byte(r))
		} else {
			content = append(content, '?')
		}
	}
	return b.Add(id, content)
}

// AddHex appends a TLV whose content is given in hexadecimal.
func (b *Builder) AddHex(id Identifier, s string) *Builder {
	if b.err != nil {
		return b
	}
	content, e := hex.DecodeString(s)
	if e != nil {
		b.err = fmt.Errorf("hexadecimal content <%s>: %w", s, e)
		return b
	}
	return b.Add(id, content)
}

// Err returns the accumulated error.
func (b *Builder) Err() error {
	return b.err
}

// Len returns the encoded length.
func (b *Builder) Len() int {
	return b.length
}

// verify checks that every nested builder still has the length recorded when it was added.
func (b *Builder) verify() error {
	if b.err != nil {
		return b.err
	}
	for _, en := range b.entries {
		if en.nested == nil {
			continue
		}
		if en.nested.length != en.contentLen {
			return ErrBuilderModified
		}
		if e := en.nested.verify(); e != nil {
			return e
		}
	}
	return nil
}

// EncodeTo writes the encoding to view starting at offset.
// It fails before writing anything if the view cannot hold Len() octets at offset.
// Returns the number of octets written.
func (b *Builder) EncodeTo(view bufferview.View, offset int) (int, error) {
	if e := b.verify(); e != nil {
		return 0, e
	}
	if offset < 0 {
		return 0, &bufferview.BoundsError{Op: bufferview.OpLimit, Index: offset, Capacity: view.Capacity()}
	}
	if _, e := view.CheckLimit(offset + b.length); e != nil {
		return 0, e
	}
	return b.encodeTo(view, offset) - offset, nil
}

func (b *Builder) encodeTo(view bufferview.View, index int) int {
	for _, en := range b.entries {
		index += view.PutBytes(index, en.id)
		index = putLength(view, index, en.contentLen)
		if en.nested != nil {
			index = en.nested.encodeTo(view, index)
		} else {
			index += view.PutBytes(index, en.content)
		}
	}
	return index
}

// Bytes returns the encoding in a new slice.
func (b *Builder) Bytes() ([]byte, error) {
	wire := make([]byte, b.length)
	if _, e := b.EncodeTo(bufferview.NewHeap(wire), 0); e != nil {
		return nil, e
	}
	return wire, nil
}

// WriteTo implements io.WriterTo.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	wire, e := b.Bytes()
	if e != nil {
		return 0, e
	}
	n, e := w.Write(wire)
	return int64(n), e
}

var _ io.WriterTo = (*Builder)(nil)
