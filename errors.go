package brick

import (
	"errors"
	"fmt"
)

// ErrNotFound reports an index path or section with no bound brick.
var ErrNotFound = errors.New("brick: not found")

// ErrInvalidIndexPath reports a malformed index path: negative coordinates,
// or section 0 with a non-zero item. It matches ErrNotFound under errors.Is.
var ErrInvalidIndexPath = fmt.Errorf("%w: invalid index path", ErrNotFound)
