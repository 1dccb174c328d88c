package board

// Status classifies a position's terminal state (spec section 4.7: Checkmate, stalemate,
// fifty-move rule, insufficient material). Threefold repetition is path-dependent and is
// therefore tracked by the search driver, not here.
type Status int

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
	FiftyMoveDraw
	InsufficientMaterialDraw
)

func (s Status) IsTerminal() bool {
	return s != Ongoing
}

func (s Status) IsDraw() bool {
	return s == Stalemate || s == FiftyMoveDraw || s == InsufficientMaterialDraw
}

func (s Status) String() string {
	switch s {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case FiftyMoveDraw:
		return "fifty-move rule"
	case InsufficientMaterialDraw:
		return "insufficient material"
	default:
		return "ongoing"
	}
}

// Status computes the position's terminal status, recomputing legal moves if needed.
func (p *Position) Status() Status {
	return p.StatusWithMoves(p.LegalMoves())
}

// StatusWithMoves is Status but reuses an already-computed legal move list, so that callers on
// the search hot path (which need the move list anyway) don't pay for it twice.
func (p *Position) StatusWithMoves(legal []Move) Status {
	if len(legal) == 0 {
		if p.IsChecked(p.sideToMove) {
			return Checkmate
		}
		return Stalemate
	}
	if p.halfmoveClock >= 100 {
		return FiftyMoveDraw
	}
	if p.hasInsufficientMaterial() {
		return InsufficientMaterialDraw
	}
	return Ongoing
}

// HasInsufficientMaterial reports whether neither side has mating material. Exported so search
// can check it ahead of legal-move generation (spec section 4.6: checked before the terminal
// test, which needs the move list anyway).
func (p *Position) HasInsufficientMaterial() bool {
	return p.hasInsufficientMaterial()
}

// HasNonPawnMaterial reports whether color has any piece other than pawns and king -- the
// null-move pruning precondition that the side to move isn't reduced to a king-and-pawns
// endgame, where zugzwang makes the null-move assumption unsound (spec section 4.6).
func (p *Position) HasNonPawnMaterial(c Color) bool {
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		color, piece, ok := p.Square(sq)
		if !ok || color != c {
			continue
		}
		if piece != Pawn && piece != King {
			return true
		}
	}
	return false
}

// minorPiece is a bishop or knight still on the board, tracked by owner and square so
// hasInsufficientMaterial can tell same-side pairs from one-minor-per-side pairs.
type minorPiece struct {
	color Color
	piece Piece
	sq    Square
}

// hasInsufficientMaterial reports whether neither side has mating material: K vs K, K+minor vs
// K, one minor per side, same-side K+N+N vs K, or same-side K+B+B vs K with same-colored bishops
// (spec 4.7 Insufficient material).
func (p *Position) hasInsufficientMaterial() bool {
	var minors []minorPiece
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		color, piece, ok := p.Square(sq)
		if !ok || piece == King {
			continue
		}
		if piece != Bishop && piece != Knight {
			return false // a pawn, rook, or queen always suffices to mate
		}
		minors = append(minors, minorPiece{color, piece, sq})
	}

	switch len(minors) {
	case 0, 1:
		return true // bare king, or a lone minor, cannot force mate
	case 2:
		a, b := minors[0], minors[1]
		switch {
		case a.piece == Bishop && b.piece == Bishop:
			// Whether the pair can force mate depends only on the two bishops' square colors,
			// not on which side owns which (spec 4.7): same color, neither side can ever mate.
			return squareColor(a.sq) == squareColor(b.sq)
		case a.piece == Knight && b.piece == Knight:
			return true // same-side K+N+N vs K, or one knight per side, cannot force mate
		case a.color == b.color:
			return false // same side: a knight and a bishop together can force mate
		default:
			return true // one minor per side: neither alone can force mate
		}
	default:
		return false
	}
}

// squareColor returns 0 for a light square, 1 for a dark square.
func squareColor(sq Square) int {
	return (int(sq.File()) + int(sq.Rank())) % 2
}
