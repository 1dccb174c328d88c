package board

// ApplyMove returns the position resulting from playing m against p. p itself is left
// untouched (spec section 4.2 Move application; section 3 Lifecycle -- search clones rather
// than doing incremental do/undo).
//
// ApplyMove does not validate that m is legal, or even pseudo-legal -- callers are expected to
// only ever apply moves returned by LegalMoves.
func (p *Position) ApplyMove(m Move) *Position {
	next := p.Clone()
	mover := p.sideToMove
	opponent := mover.Opponent()

	next.enPassant = NoSquare

	switch m.Type {
	case Jump:
		next.remove(m.From)
		next.place(m.To, mover, Pawn)
		next.enPassant = jumpMidpoint(m.From, m.To)

	case EnPassant:
		captured := enPassantCaptureSquare(m.To, mover)
		next.remove(captured)
		next.remove(m.From)
		next.place(m.To, mover, Pawn)

	case KingSideCastle, QueenSideCastle:
		rank := m.From.Rank()
		next.remove(m.From)
		next.place(m.To, mover, King)

		rookFrom, rookTo := NewSquare(FileH, rank), NewSquare(FileF, rank)
		if m.Type == QueenSideCastle {
			rookFrom, rookTo = NewSquare(FileA, rank), NewSquare(FileD, rank)
		}
		next.remove(rookFrom)
		next.place(rookTo, mover, Rook)

	case Promotion, CapturePromotion:
		next.remove(m.From)
		next.place(m.To, mover, m.Promotion)

	default: // Normal, Push, Capture
		next.remove(m.From)
		next.place(m.To, mover, m.Piece)
	}

	next.castling = updateCastlingRights(p.castling, m, mover)

	if m.Piece == Pawn || m.IsCapture() {
		next.halfmoveClock = 0
	} else {
		next.halfmoveClock = p.halfmoveClock + 1
	}
	if mover == Black {
		next.fullmoveNumber = p.fullmoveNumber + 1
	}

	next.sideToMove = opponent
	return next
}

// NullMove returns a position identical to p except that the side to move is flipped and any
// en-passant target is cleared (passing the turn forfeits an in-progress en-passant
// opportunity). Used by null-move pruning and by mobility-based evaluation, which both need to
// ask "what could the other side do from here" without an actual move having been played.
func (p *Position) NullMove() *Position {
	next := p.Clone()
	next.enPassant = NoSquare
	next.sideToMove = p.sideToMove.Opponent()
	return next
}

// jumpMidpoint returns the square a pawn passes over on a two-square push -- the en-passant
// target square a capturing pawn would land on.
func jumpMidpoint(from, to Square) Square {
	midRank := (int(from.Rank()) + int(to.Rank())) / 2
	return NewSquare(from.File(), Rank(midRank))
}

// updateCastlingRights clears rights touched by m: the mover's rights if its king moved, and
// either side's rook-side right if the corresponding original rook square is vacated or
// captured into (spec 4.2: castling rights update).
func updateCastlingRights(c Castling, m Move, mover Color) Castling {
	if m.Piece == King {
		switch mover {
		case White:
			c &^= WhiteKingSideCastle | WhiteQueenSideCastle
		case Black:
			c &^= BlackKingSideCastle | BlackQueenSideCastle
		}
	}

	clear := func(sq Square, right Castling) {
		if m.From == sq || m.To == sq {
			c &^= right
		}
	}
	clear(NewSquare(FileA, 7), WhiteQueenSideCastle)
	clear(NewSquare(FileH, 7), WhiteKingSideCastle)
	clear(NewSquare(FileA, 0), BlackQueenSideCastle)
	clear(NewSquare(FileH, 0), BlackKingSideCastle)
	return c
}
