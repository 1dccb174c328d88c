package engine

import "errors"

// ErrNoLegalMove is returned by PickMove when the side to move has no legal move. The caller
// distinguishes checkmate from stalemate by checking whether the side to move is in check
// (spec section 7).
var ErrNoLegalMove = errors.New("no legal move")

// ErrSearchActive is returned when a caller starts a new pick while one is already running.
var ErrSearchActive = errors.New("search already active")
