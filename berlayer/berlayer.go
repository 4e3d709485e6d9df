// Package berlayer provides a GoPacket layer for BER-TLV application payloads.
package berlayer

import (
	"errors"

	"github.com/emvtools/bertlv/ber"
	"github.com/emvtools/bertlv/bufferview"
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

// LayerTypeBER identifies BER-TLV layer.
var LayerTypeBER = gopacket.RegisterLayerType(1640, gopacket.LayerTypeMetadata{
	Name:    "BER-TLV",
	Decoder: gopacket.DecodeFunc(decodeBER),
})

// RegisterUDPPort decodes UDP payloads on a port as BER-TLV.
func RegisterUDPPort(port layers.UDPPort) {
	layers.RegisterUDPPortLayerType(port, LayerTypeBER)
}

// BER is the layer for a sequence of BER-TLVs.
type BER struct {
	Frame *ber.Frame
	wire  []byte
}

var _ interface {
	gopacket.ApplicationLayer
	gopacket.DecodingLayer
	gopacket.SerializableLayer
} = &BER{}

// LayerType returns LayerTypeBER.
func (BER) LayerType() gopacket.LayerType {
	return LayerTypeBER
}

// LayerContents returns TLV bytes.
func (l *BER) LayerContents() []byte {
	return l.wire
}

// LayerPayload returns nil.
func (l *BER) LayerPayload() []byte {
	return nil
}

// Payload implements gopacket.ApplicationLayer interface.
func (l *BER) Payload() []byte {
	return l.wire
}

// DecodeFromBytes decodes a sequence of TLVs.
// Input must consist of complete TLVs; the Frame references wire without copying.
func (l *BER) DecodeFromBytes(wire []byte, df gopacket.DecodeFeedback) error {
	f, e := ber.Decode(wire)
	if e != nil {
		l.Frame, l.wire = nil, nil
		return e
	}

	l.Frame, l.wire = f, wire
	return nil
}

// CanDecode implements gopacket.DecodingLayer interface.
func (BER) CanDecode() gopacket.LayerClass {
	return LayerTypeBER
}

// NextLayerType implements gopacket.DecodingLayer interface.
func (BER) NextLayerType() gopacket.LayerType {
	return gopacket.LayerTypeZero
}

// SerializeTo implements gopacket.SerializableLayer interface.
func (l *BER) SerializeTo(b gopacket.SerializeBuffer, opts gopacket.SerializeOptions) error {
	if l.Frame == nil {
		return errors.New("no Frame")
	}
	return encodeBuilder(b, ber.NewBuilder().AddFrame(l.Frame))
}

func decodeBER(wire []byte, p gopacket.PacketBuilder) error {
	l := &BER{}
	if e := l.DecodeFromBytes(wire, p); e != nil {
		return e
	}
	p.AddLayer(l)
	p.SetApplicationLayer(l)
	return nil
}

func encodeBuilder(b gopacket.SerializeBuffer, builder *ber.Builder) error {
	if e := builder.Err(); e != nil {
		return e
	}

	room, e := b.PrependBytes(builder.Len())
	if e != nil {
		return e
	}
	_, e = builder.EncodeTo(bufferview.New(room), 0)
	return e
}

// SerializeFrom creates a gopacket.SerializableLayer from a Builder.
func SerializeFrom(builder *ber.Builder) gopacket.SerializableLayer {
	return serializableBuilder{builder}
}

type serializableBuilder struct {
	*ber.Builder
}

func (sb serializableBuilder) SerializeTo(b gopacket.SerializeBuffer, opts gopacket.SerializeOptions) error {
	return encodeBuilder(b, sb.Builder)
}

func (serializableBuilder) LayerType() gopacket.LayerType {
	return LayerTypeBER
}
