package arena

import "errors"

// ErrOutOfMemory indicates the system refused to map a block or large object.
// The allocator panics with an error wrapping it; there is no retry.
var ErrOutOfMemory = errors.New("arena: out of memory")
