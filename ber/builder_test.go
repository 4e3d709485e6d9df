package ber_test

import (
	"bytes"
	"testing"

	"github.com/emvtools/bertlv/ber"
	"github.com/emvtools/bertlv/ber/bertestvector"
	"github.com/emvtools/bertlv/bufferview"
	"github.com/emvtools/bertlv/core/testenv"
)

func TestBuilderPrimitive(t *testing.T) {
	assert, require := makeAR(t)

	b := ber.NewBuilder().
		Add(ber.Tag(0x5E), []byte{0x01}).
		Add(ber.Tag(0x5F2D), []byte{0x02}).
		Add(ber.Tag(0x5FDF03), []byte{0x03}).
		Add(ber.Tag(uint32(0xDFDFDF04)), []byte{0x04}).
		Add(ber.Tag(0x5F2D), []byte{0x05})
	require.NoError(b.Err())
	wire, e := b.Bytes()
	require.NoError(e)
	assert.Equal(bytesFromHex("5E0101 5F2D0102 5FDF030103 DFDFDF040104 5F2D0105"), wire)
	assert.Equal(len(wire), b.Len())

	b.Add(ber.Tag(0xDFDFDFDF06), []byte{0x06}).
		Add(ber.Tag(0xDFDFDFDFDF07), []byte{0x07}).
		Add(ber.Tag(0xDFDFDFDFDFDF08), []byte{0x08}).
		Add(ber.Tag(uint64(0xDFDFDFDFDFDFDF09)), []byte{0x09})
	wire, e = b.Bytes()
	require.NoError(e)
	assert.Equal(bytesFromHex("5E0101 5F2D0102 5FDF030103 DFDFDF040104 5F2D0105"+
		"DFDFDFDF060106 DFDFDFDFDF070107 DFDFDFDFDFDF080108 DFDFDFDFDFDFDF090109"), wire)
}

func TestBuilderNested(t *testing.T) {
	assert, require := makeAR(t)

	inner := ber.NewBuilder().AddHex(ber.Tag(0x01), "FF")
	b := ber.NewBuilder().
		AddBuilder(ber.Tag(0x7E), inner).
		AddBuilder(ber.Tag(0x7F2D), inner).
		AddBuilder(ber.Tag(0x7FDF03), inner).
		AddBuilder(ber.Tag(uint32(0x7FDFDF04)), inner).
		AddBuilder(ber.Tag(0x7F2D), inner)
	wire, e := b.Bytes()
	require.NoError(e)
	assert.Equal(bytesFromHex("7E030101FF 7F2D030101FF 7FDF03030101FF 7FDFDF04030101FF 7F2D030101FF"), wire)
}

func TestBuilderASCII(t *testing.T) {
	assert, require := makeAR(t)

	b := ber.NewBuilder().
		AddASCII(ber.Tag(0x5E), "en").
		AddASCII(ber.Tag(0x5F2D), "en").
		AddASCII(ber.Tag(0x5FDF03), "en").
		AddASCII(ber.Tag(uint32(0x5FDFDF04)), "en").
		AddASCII(ber.Tag(0x5F2D), "en")
	wire, e := b.Bytes()
	require.NoError(e)
	assert.Equal(bytesFromHex("5E02656E 5F2D02656E 5FDF0302656E 5FDFDF0402656E 5F2D02656E"), wire)

	wire, e = ber.NewBuilder().AddASCII(ber.Tag(0x50), "né").Bytes()
	require.NoError(e)
	assert.Equal([]byte("\x50\x02n?"), wire)
}

func TestBuilderLengthOctets(t *testing.T) {
	for _, tt := range []struct {
		n    int
		size int
	}{
		{127, 1},
		{128, 2},
		{255, 2},
		{256, 3},
		{65535, 3},
		{65536, 4},
		{16777215, 4},
		{16777216, 5},
	} {
		assert, require := makeAR(t)

		b := ber.NewBuilder().Add(ber.Tag(0x5A), make([]byte, tt.n))
		assert.Equal(1+tt.size+tt.n, b.Len())
		wire, e := b.Bytes()
		require.NoError(e)
		require.Len(wire, b.Len())
		assert.Equal(ber.AppendLength([]byte{0x5A}, tt.n), wire[:1+tt.size], tt.n)

		f, e := ber.Decode(wire)
		require.NoError(e)
		assert.Equal(tt.n, f.Nodes()[0].ContentLength())
	}
}

func TestBuilderRoundTrip(t *testing.T) {
	assert, require := makeAR(t)

	random := make([]byte, 300)
	testenv.RandBytes(random)

	prop := ber.NewBuilder().
		AddHex(ber.Tag(0x88), "02").
		AddASCII(ber.Tag(0x5F2D), "en")
	fci := ber.NewBuilder().
		AddASCII(ber.Tag(0x84), "1PAY.SYS.DDF01").
		AddBuilder(ber.Tag(0xA5), prop)
	b := ber.NewBuilder().
		AddBuilder(ber.Tag(0x6F), fci).
		AddHex(ber.Tag(0x9F36), "0060").
		Add(ber.Tag(0xDF8101), random).
		AddBuilder(ber.Tag(0x20), ber.NewBuilder())

	wire, e := b.Bytes()
	require.NoError(e)

	f, e := ber.Decode(wire)
	require.NoError(e)
	for _, tt := range []struct {
		id          ber.Identifier
		content     []byte
		constructed bool
	}{
		{ber.Tag(0x88), []byte{0x02}, false},
		{ber.Tag(0x5F2D), []byte("en"), false},
		{ber.Tag(0x84), []byte("1PAY.SYS.DDF01"), false},
		{ber.Tag(0x9F36), []byte{0x00, 0x60}, false},
		{ber.Tag(0xDF8101), random, false},
		{ber.Tag(0x20), []byte{}, true},
		{ber.Tag(0xA5), bytesFromHex("8801025F2D02656E"), true},
	} {
		sub, ok := f.Tag(tt.id)
		if assert.True(ok, tt.id) {
			nd := sub.Nodes()[0]
			assert.Equal(tt.content, nd.Content(), tt.id)
			assert.Equal(tt.constructed, nd.Constructed(), tt.id)
		}
	}

	fciWire := bytesFromHex(bertestvector.FCI)
	assert.Equal(fciWire, wire[:len(fciWire)])
}

func TestBuilderAddFrame(t *testing.T) {
	assert, require := makeAR(t)

	wire := bytesFromHex(bertestvector.Response)
	f, e := ber.Decode(wire)
	require.NoError(e)

	b := ber.NewBuilder().AddFrame(f)
	orig := append([]byte(nil), wire...)
	wire[4] = 0xFF
	full, e := b.Bytes()
	require.NoError(e)
	assert.Equal(orig, full)

	sub, ok := f.Tag(ber.Tag(0xA5))
	require.True(ok)
	encoded, e := ber.NewBuilder().AddFrame(sub).Add(ber.Tag(0x9F27), []byte{0x80}).Bytes()
	require.NoError(e)
	assert.Equal(bytesFromHex("A508 880102 5F2D02656E 9F270180"), encoded)
}

func TestBuilderEncodeTo(t *testing.T) {
	for _, vm := range viewMakers {
		t.Run(vm.name, func(t *testing.T) {
			assert, require := makeAR(t)

			b := ber.NewBuilder().AddHex(ber.Tag(0x9F26), "C2C12B098F3DA6E3")
			require.Equal(11, b.Len())

			buf := make([]byte, 20)
			view := vm.make(buf)
			n, e := b.EncodeTo(view, 10)
			assert.ErrorIs(e, bufferview.ErrOutOfBounds)
			assert.EqualError(e, "limit is beyond capacity (l=21; c=20)")
			assert.Equal(0, n)
			assert.Equal(make([]byte, 20), buf)

			_, e = b.EncodeTo(view, -1)
			assert.ErrorIs(e, bufferview.ErrOutOfBounds)

			n, e = b.EncodeTo(view, 9)
			require.NoError(e)
			assert.Equal(11, n)
			assert.Equal(bytesFromHex(bertestvector.ApplicationCryptogram), buf[9:])
			assert.Equal(make([]byte, 9), buf[:9])

			f, e := ber.DecodeView(view, 9, n)
			require.NoError(e)
			h, _ := f.ContentHex(ber.Tag(0x9F26))
			assert.Equal("C2C12B098F3DA6E3", h)
		})
	}
}

func TestBuilderWriteTo(t *testing.T) {
	assert, require := makeAR(t)

	var w bytes.Buffer
	n, e := ber.NewBuilder().AddHex(ber.Tag(0x9F36), "0060").WriteTo(&w)
	require.NoError(e)
	assert.EqualValues(5, n)
	assert.Equal(bytesFromHex("9F36020060"), w.Bytes())

	var empty ber.Builder
	n, e = empty.WriteTo(&w)
	assert.NoError(e)
	assert.EqualValues(0, n)
}

func TestBuilderError(t *testing.T) {
	assert, _ := makeAR(t)

	for _, tt := range []struct {
		name  string
		build func(b *ber.Builder)
		is    error
	}{
		{"empty-identifier", func(b *ber.Builder) { b.Add(nil, []byte{0x01}) }, ber.ErrIdentifier},
		{"leading-octet", func(b *ber.Builder) { b.Add(bytesFromHex("EFDFDF04"), []byte{0x01}) }, ber.ErrIdentifier},
		{"long-identifier", func(b *ber.Builder) { b.Add(bytesFromHex("DFDFDFDFDFDFDFDF09"), nil) }, ber.ErrIdentifier},
		{"nested-identifier", func(b *ber.Builder) { b.AddBuilder(bytesFromHex("0101"), ber.NewBuilder()) }, ber.ErrIdentifier},
		{"nil-nested", func(b *ber.Builder) { b.AddBuilder(ber.Tag(0x70), nil) }, ber.ErrNilBuilder},
		{"nested-error", func(b *ber.Builder) {
			b.AddBuilder(ber.Tag(0x70), ber.NewBuilder().Add(ber.Identifier{}, nil))
		}, ber.ErrIdentifier},
		{"modified", func(b *ber.Builder) {
			nested := ber.NewBuilder().AddHex(ber.Tag(0x5A), "01")
			b.AddBuilder(ber.Tag(0x70), nested)
			nested.AddHex(ber.Tag(0x5A), "02")
		}, ber.ErrBuilderModified},
		{"self", func(b *ber.Builder) {
			b.AddHex(ber.Tag(0x5A), "01")
			b.AddBuilder(ber.Tag(0x70), b)
		}, ber.ErrBuilderModified},
		{"cycle", func(b *ber.Builder) {
			other := ber.NewBuilder()
			b.AddBuilder(ber.Tag(0x70), other)
			other.AddBuilder(ber.Tag(0x71), b)
		}, ber.ErrBuilderModified},
	} {
		b := ber.NewBuilder()
		tt.build(b)

		_, e := b.Bytes()
		assert.ErrorIs(e, tt.is, tt.name)
		_, e = b.EncodeTo(bufferview.NewHeap(make([]byte, 1024)), 0)
		assert.ErrorIs(e, tt.is, tt.name)
		_, e = b.WriteTo(&bytes.Buffer{})
		assert.ErrorIs(e, tt.is, tt.name)
	}

	b := ber.NewBuilder().AddHex(ber.Tag(0x5A), "ABC")
	assert.Error(b.Err())
	assert.Equal(0, b.Len())
	b.Add(ber.Tag(0x5A), []byte{0x01})
	assert.Equal(0, b.Len())
	_, e := b.Bytes()
	assert.Error(e)

	b = ber.NewBuilder().AddHex(ber.Tag(0x5A), "zz")
	assert.Error(b.Err())
}
