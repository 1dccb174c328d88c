package board

import "errors"

// ErrIllegalMove indicates a caller-supplied move that is not a member of the legal move set
// for the position. Internal search never produces such a move; the error is only meaningful
// at a caller boundary (spec section 7).
var ErrIllegalMove = errors.New("illegal move")
