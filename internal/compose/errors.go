package compose

import "errors"

// ErrInvariant reports an internal consistency failure. A run returning it
// yields no graph.
var ErrInvariant = errors.New("composition invariant violated")
