package bufferview

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds matches every *BoundsError with errors.Is.
var ErrOutOfBounds = errors.New("out of bounds")

// Bounds check operations.
const (
	OpIndex = "index"
	OpLimit = "limit"
)

// BoundsError indicates an index or limit outside a view's capacity.
type BoundsError struct {
	Op       string
	Index    int
	Capacity int
}

func (e *BoundsError) Error() string {
	if e.Op == OpIndex {
		return fmt.Sprintf("index is beyond bound (i=%d; b=%d)", e.Index, e.Capacity-1)
	}
	return fmt.Sprintf("limit is beyond capacity (l=%d; c=%d)", e.Index, e.Capacity)
}

// Is allows BoundsError to match ErrOutOfBounds with errors.Is.
func (e *BoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}
