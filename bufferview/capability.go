package bufferview

import (
	"os"
	"strings"

	"go.uber.org/zap"
)

// EnvNoDirect is the environment variable that disables the direct backend.
// "true", "yes", "1" disable it; "false", "no", "0" keep it; anything else selects the default.
const EnvNoDirect = "BERTLV_NODIRECT"

var hasDirect = probeDirect()

func probeDirect() bool {
	noDirect := parseToggle(os.Getenv(EnvNoDirect), false)
	logger.Debug("direct backend toggle", zap.String("env", EnvNoDirect), zap.Bool("disabled", noDirect))
	if noDirect {
		return false
	}

	ok := directSupported && directRoundTrip()
	logger.Debug("direct backend probe", zap.Bool("supported", directSupported), zap.Bool("available", ok))
	return ok
}

// parseToggle interprets a boolean configuration value.
func parseToggle(value string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "yes", "1":
		return true
	case "false", "no", "0":
		return false
	}
	return def
}

// directRoundTrip exercises pointer arithmetic on scratch memory.
func directRoundTrip() (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	var scratch [8]byte
	v := NewDirect(scratch[:])
	v.PutUint32(2, 0xA1B2C3D4)
	v.PutByte(7, 0x5A)
	return scratch == [8]byte{0x00, 0x00, 0xA1, 0xB2, 0xC3, 0xD4, 0x00, 0x5A} &&
		v.GetByte(3) == 0xB2 && v.Capacity() == len(scratch)
}
