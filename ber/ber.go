// Package ber implements BER-TLV (Basic Encoding Rules, Tag-Length-Value) encoding.
//
// Decode parses a byte range into a tree of nodes that reference the underlying
// bufferview.View by position; no content is copied until a query asks for it.
// Builder assembles TLVs with minimal length octets and serializes them to a View
// or an io.Writer.
//
// Only the definite length form is supported, with at most 4 subsequent length octets.
package ber

import (
	"github.com/emvtools/bertlv/core/logging"
)

var logger = logging.New("ber")
