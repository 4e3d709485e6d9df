package ber

import (
	"encoding/hex"
	"math"
	"strings"
	"unsafe"

	"github.com/emvtools/bertlv/bufferview"
	"golang.org/x/exp/constraints"
)

const (
	maskConstructed  = 0x20
	maskTagNumber    = 0x1F
	maskMoreOctets   = 0x80
	maskLongForm     = 0x80
	lengthIndefinite = 0x80
	maxLengthOctets  = 4
)

// Limits.
const (
	// MaxIdentifierLength is the maximum identifier length in octets.
	MaxIdentifierLength = 8

	// MaxContentLength is the maximum content length expressible in length octets.
	MaxContentLength = math.MaxUint32
)

// Identifier is a tag identifier, 1 to 8 octets in wire order.
type Identifier []byte

// IdentifierFromUint32 converts a packed 32-bit tag to its minimal 1-4 octet form.
func IdentifierFromUint32(v uint32) Identifier {
	switch {
	case v <= 0xFF:
		return packIdentifier(uint64(v), 1)
	case v <= 0xFFFF:
		return packIdentifier(uint64(v), 2)
	case v <= 0xFFFFFF:
		return packIdentifier(uint64(v), 3)
	default:
		return packIdentifier(uint64(v), 4)
	}
}

// IdentifierFromUint64 converts a packed 64-bit tag to its minimal 1-8 octet form.
func IdentifierFromUint64(v uint64) Identifier {
	n := 1
	for n < MaxIdentifierLength && v>>(8*n) != 0 {
		n++
	}
	return packIdentifier(v, n)
}

func packIdentifier(v uint64, n int) Identifier {
	id := make(Identifier, n)
	for i := n - 1; i >= 0; i-- {
		id[i] = byte(v)
		v >>= 8
	}
	return id
}

// Tag converts a packed tag of any integer type.
// The value is reinterpreted as an unsigned integer of the same width, so that
// Tag(int8(-97)) equals Tag(uint8(0x9F)) and Tag(int32(-0x202020FC)) equals Tag(uint32(0xDFDFDF04)).
func Tag[T constraints.Integer](v T) Identifier {
	switch unsafe.Sizeof(v) {
	case 1:
		return IdentifierFromUint32(uint32(uint8(v)))
	case 2:
		return IdentifierFromUint32(uint32(uint16(v)))
	case 4:
		return IdentifierFromUint32(uint32(v))
	}
	return IdentifierFromUint64(uint64(v))
}

// ParseIdentifier parses a hexadecimal identifier such as "9F26" or "0x9f26".
func ParseIdentifier(s string) (Identifier, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	b, e := hex.DecodeString(s)
	if e != nil {
		return nil, e
	}
	id := Identifier(b)
	if e := id.validate(); e != nil {
		return nil, e
	}
	return id, nil
}

// Uint32 returns the packed 32-bit form.
// Only the last 4 octets are represented.
func (id Identifier) Uint32() uint32 {
	return uint32(id.Uint64())
}

// Uint64 returns the packed 64-bit form.
func (id Identifier) Uint64() (v uint64) {
	for _, b := range id {
		v = v<<8 | uint64(b)
	}
	return v
}

// Constructed reports whether the identifier has the constructed bit.
func (id Identifier) Constructed() bool {
	return len(id) > 0 && id[0]&maskConstructed != 0
}

// Valid determines whether the identifier can be encoded.
func (id Identifier) Valid() bool {
	return id.validate() == nil
}

func (id Identifier) validate() error {
	if len(id) == 0 || len(id) > MaxIdentifierLength ||
		(len(id) > 1 && id[0]&maskTagNumber != maskTagNumber) {
		return &IdentifierError{Identifier: id}
	}
	return nil
}

// Equal determines whether two identifiers are the same.
func (id Identifier) Equal(other Identifier) bool {
	return string(id) == string(other)
}

func (id Identifier) String() string {
	return upperHex(id)
}

func upperHex(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}

// LengthOctets returns the number of length octets in the minimal encoding of content length n.
func LengthOctets(n int) int {
	switch {
	case n < 0x80:
		return 1
	case n < 0x100:
		return 2
	case n < 0x10000:
		return 3
	case n < 0x1000000:
		return 4
	default:
		return 5
	}
}

// AppendLength appends the minimal length octets of content length n.
func AppendLength(b []byte, n int) []byte {
	size := LengthOctets(n)
	if size == 1 {
		return append(b, byte(n))
	}
	b = append(b, byte(maskLongForm|(size-1)))
	for i := size - 2; i >= 0; i-- {
		b = append(b, byte(n>>(8*i)))
	}
	return b
}

// putLength writes the minimal length octets of n at index and returns the index after them.
func putLength(v bufferview.View, index, n int) int {
	switch size := LengthOctets(n); size {
	case 1:
		v.PutByte(index, byte(n))
	case 5:
		v.PutByte(index, maskLongForm|4)
		v.PutUint32(index+1, uint32(n))
	default:
		v.PutByte(index, byte(maskLongForm|(size-1)))
		for i := 1; i < size; i++ {
			v.PutByte(index+i, byte(n>>(8*(size-1-i))))
		}
	}
	return index + LengthOctets(n)
}
