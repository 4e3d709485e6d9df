package ber

import (
	"github.com/emvtools/bertlv/bufferview"
	"go.uber.org/zap"
)

// Decode parses wire as a sequence of TLVs.
// wire is wrapped with bufferview.New and is not copied.
func Decode(wire []byte) (*Frame, error) {
	return DecodeView(bufferview.New(wire), 0, len(wire))
}

// DecodeView parses [offset, offset+length) of view as a sequence of TLVs.
//
// An invalid window fails with *bufferview.BoundsError.
// A parse failure returns *DecodeError, which carries the partially parsed frame and
// the undecoded trailing octets.
func DecodeView(view bufferview.View, offset, length int) (*Frame, error) {
	if offset < 0 || length < 0 {
		return nil, &bufferview.BoundsError{Op: bufferview.OpLimit, Index: offset + length, Capacity: view.Capacity()}
	}
	limit, e := view.CheckLimit(offset + length)
	if e != nil {
		return nil, e
	}

	p := parser{view: view}
	var root []node
	if e := p.parseLevel(&root, offset, limit); e != nil {
		undecodedLength := length
		if len(root) > 0 {
			undecodedLength = limit - root[len(root)-1].end()
		}
		undecoded := make([]byte, undecodedLength)
		view.GetBytes(limit-undecodedLength, undecoded)

		logger.Debug("decode error",
			zap.Int("offset", offset),
			zap.Int("limit", limit),
			zap.Int("parsed", len(root)),
			zap.Int("undecoded", undecodedLength),
			zap.Error(e),
		)
		return nil, &DecodeError{
			Err:       e,
			Partial:   newFrame(view, offset, limit, root),
			Undecoded: undecoded,
		}
	}
	return newFrame(view, offset, limit, root), nil
}

type parser struct {
	view bufferview.View
}

// parseLevel parses siblings in [pos, limit) and appends them to level.
func (p parser) parseLevel(level *[]node, pos, limit int) (e error) {
	for pos < limit {
		if pos, e = p.parseNode(level, pos, limit); e != nil {
			return e
		}
	}
	return nil
}

func (p parser) readByte(index int) (byte, error) {
	if _, e := p.view.CheckIndex(index); e != nil {
		return 0, e
	}
	return p.view.GetByte(index), nil
}

// parseNode parses one TLV at idPos and returns the position after it.
// The node is appended before its children are parsed, so a failure inside a constructed TLV
// leaves it in level with incomplete children.
func (p parser) parseNode(level *[]node, idPos, limit int) (next int, e error) {
	index := idPos
	first, e := p.readByte(index)
	if e != nil {
		return 0, e
	}
	index++
	if first&maskTagNumber == maskTagNumber {
		for {
			b, e := p.readByte(index)
			if e != nil {
				return 0, e
			}
			index++
			if b&maskMoreOctets == 0 {
				break
			}
		}
	}
	n := node{
		idPos:       idPos,
		idLen:       index - idPos,
		constructed: first&maskConstructed != 0,
	}

	lb, e := p.readByte(index)
	if e != nil {
		return 0, e
	}
	index++
	var length uint32
	switch {
	case lb == lengthIndefinite:
		return 0, ErrIndefiniteLength
	case lb&maskLongForm != 0:
		count := int(lb &^ maskLongForm)
		if count > maxLengthOctets {
			return 0, ErrLengthOctets
		}
		for i := 0; i < count; i++ {
			b, e := p.readByte(index)
			if e != nil {
				return 0, e
			}
			index++
			length = length<<8 | uint32(b)
		}
	default:
		length = uint32(lb)
	}

	n.contentPos = index
	if index > limit || uint64(length) > uint64(limit-index) {
		return 0, &ContentBoundError{Bound: index + int(length), Limit: limit}
	}
	n.contentLen = int(length)

	*level = append(*level, n)
	if n.constructed {
		last := &(*level)[len(*level)-1]
		if e := p.parseLevel(&last.children, last.contentPos, last.end()); e != nil {
			return 0, e
		}
	}
	return n.end(), nil
}
