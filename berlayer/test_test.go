package berlayer_test

import (
	"github.com/emvtools/bertlv/core/testenv"
)

var (
	makeAR       = testenv.MakeAR
	bytesFromHex = testenv.BytesFromHex
)
