package testenv

import "encoding/json"

// FromJSON unmarshals command output or other JSON text into ptr.
// Error causes panic.
func FromJSON[T ~string | ~[]byte](j T, ptr any) {
	if e := json.Unmarshal([]byte(j), ptr); e != nil {
		panic(e)
	}
}
