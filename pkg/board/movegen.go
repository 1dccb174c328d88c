package board

// PseudoLegalMoves generates every pseudo-legal move for the side to move: moves that follow
// each piece's movement rules but may leave the mover's own king in check (spec Move
// generator).
func (p *Position) PseudoLegalMoves() []Move {
	side := p.SideToMove()
	var moves []Move

	for sq := ZeroSquare; sq < NumSquares; sq++ {
		c, piece, ok := p.Square(sq)
		if !ok || c != side {
			continue
		}
		switch piece {
		case Pawn:
			moves = genPawnMoves(p, sq, side, moves)
		case Knight:
			moves = genStepMoves(p, sq, side, knightOffsets[:], moves)
		case Bishop:
			moves = genSlideMoves(p, sq, side, bishopDirections[:], moves)
		case Rook:
			moves = genSlideMoves(p, sq, side, rookDirections[:], moves)
		case Queen:
			moves = genSlideMoves(p, sq, side, queenDirections[:], moves)
		case King:
			moves = genStepMoves(p, sq, side, queenDirections[:], moves)
			moves = genCastleMoves(p, side, moves)
		}
	}
	return moves
}

func genStepMoves(p *Position, from Square, side Color, offsets []direction, moves []Move) []Move {
	_, piece, _ := p.Square(from)
	for _, d := range offsets {
		to, ok := from.Offset(d.df, d.dr)
		if !ok {
			continue
		}
		if c, target, ok := p.Square(to); ok {
			if c == side {
				continue
			}
			moves = append(moves, Move{Type: Capture, From: from, To: to, Piece: piece, Capture: target})
			continue
		}
		moves = append(moves, Move{Type: Normal, From: from, To: to, Piece: piece})
	}
	return moves
}

func genSlideMoves(p *Position, from Square, side Color, dirs []direction, moves []Move) []Move {
	_, piece, _ := p.Square(from)
	for _, d := range dirs {
		cur := from
		for {
			to, ok := cur.Offset(d.df, d.dr)
			if !ok {
				break
			}
			cur = to

			if c, target, ok := p.Square(to); ok {
				if c != side {
					moves = append(moves, Move{Type: Capture, From: from, To: to, Piece: piece, Capture: target})
				}
				break
			}
			moves = append(moves, Move{Type: Normal, From: from, To: to, Piece: piece})
		}
	}
	return moves
}

func genPawnMoves(p *Position, from Square, side Color, moves []Move) []Move {
	forward := -1
	startRank := Rank(6)
	promoRank := Rank(0)
	if side == Black {
		forward = 1
		startRank = Rank(1)
		promoRank = Rank(7)
	}

	// Single push.
	if to, ok := from.Offset(0, forward); ok && p.IsEmpty(to) {
		moves = append(moves, pawnMove(from, to, side, Push, promoRank, NoPiece))

		// Double push, only from the starting rank and only if both squares are empty.
		if from.Rank() == startRank {
			if to2, ok := to.Offset(0, forward); ok && p.IsEmpty(to2) {
				moves = append(moves, Move{Type: Jump, From: from, To: to2, Piece: Pawn})
			}
		}
	}

	// Captures, including en passant.
	ep, hasEP := p.EnPassant()
	for _, df := range [2]int{-1, 1} {
		to, ok := from.Offset(df, forward)
		if !ok {
			continue
		}
		if c, target, ok := p.Square(to); ok {
			if c == side {
				continue
			}
			moves = append(moves, pawnMove(from, to, side, Capture, promoRank, target))
			continue
		}
		if hasEP && to == ep {
			moves = append(moves, Move{Type: EnPassant, From: from, To: to, Piece: Pawn, Capture: Pawn})
		}
	}
	return moves
}

func pawnMove(from, to Square, side Color, plainType MoveType, promoRank Rank, captured Piece) Move {
	t := plainType
	promo := NoPiece
	if to.Rank() == promoRank {
		promo = Queen
		if plainType == Capture {
			t = CapturePromotion
		} else {
			t = Promotion
		}
	} else if plainType == Capture {
		t = Capture
	}
	return Move{Type: t, From: from, To: to, Piece: Pawn, Promotion: promo, Capture: captured}
}

// genCastleMoves generates castling moves, if legal to generate (spec Castling): the king is
// on its original square with the right present, the squares between king and rook are empty,
// the rook is on its original square, and none of the king's origin/pass-through/destination
// squares is attacked.
func genCastleMoves(p *Position, side Color, moves []Move) []Move {
	rank := Rank(7)
	kingSide, queenSide := WhiteKingSideCastle, WhiteQueenSideCastle
	if side == Black {
		rank = Rank(0)
		kingSide, queenSide = BlackKingSideCastle, BlackQueenSideCastle
	}
	king := NewSquare(FileE, rank)
	if p.KingSquare(side) != king {
		return moves
	}
	opp := side.Opponent()

	if p.castling.IsAllowed(kingSide) {
		f, g, h := NewSquare(FileF, rank), NewSquare(FileG, rank), NewSquare(FileH, rank)
		if c, piece, ok := p.Square(h); ok && c == side && piece == Rook &&
			p.IsEmpty(f) && p.IsEmpty(g) &&
			!p.IsAttacked(king, opp) && !p.IsAttacked(f, opp) && !p.IsAttacked(g, opp) {
			moves = append(moves, Move{Type: KingSideCastle, From: king, To: g, Piece: King})
		}
	}
	if p.castling.IsAllowed(queenSide) {
		d, c2, b, a := NewSquare(FileD, rank), NewSquare(FileC, rank), NewSquare(FileB, rank), NewSquare(FileA, rank)
		if c, piece, ok := p.Square(a); ok && c == side && piece == Rook &&
			p.IsEmpty(d) && p.IsEmpty(c2) && p.IsEmpty(b) &&
			!p.IsAttacked(king, opp) && !p.IsAttacked(d, opp) && !p.IsAttacked(c2, opp) {
			moves = append(moves, Move{Type: QueenSideCastle, From: king, To: c2, Piece: King})
		}
	}
	return moves
}

// LegalMoves returns every legal move for the side to move: a move is legal iff, after it is
// played, the mover's king is not attacked (spec Move generator).
//
// Checkers and pins are used to prune the pseudo-legal candidate set (fewer do/undo checks);
// every surviving candidate is still passed through the do/undo gate as the final correctness
// check, matching the spec exactly.
func (p *Position) LegalMoves() []Move {
	side := p.SideToMove()
	checkers := findCheckers(p, side)
	pins := findPins(p, side)

	candidates := p.PseudoLegalMoves()

	out := make([]Move, 0, len(candidates))
	for _, m := range candidates {
		if !survivesCheckAndPinFilter(m, checkers, pins) {
			continue
		}
		if legalityCheck(p, m) {
			out = append(out, m)
		}
	}
	return out
}

func survivesCheckAndPinFilter(m Move, checkers []checker, pins []pin) bool {
	if m.Piece != King {
		switch len(checkers) {
		case 0:
			// no check: pinned pieces may only move along their pin axis
			for _, pn := range pins {
				if pn.pinned == m.From {
					return onAxis(m.From, m.To, pn.direction)
				}
			}
		case 1:
			chk := checkers[0]
			if m.Type == EnPassant {
				return true // may capture a checking pawn; the do/undo gate decides
			}
			if m.To == chk.square {
				return true // captures the checker
			}
			if chk.slider {
				for _, b := range chk.between {
					if m.To == b {
						return true // interposes
					}
				}
			}
			return false
		default:
			return false // 2+ checkers: only king moves are legal
		}
	}
	return true
}

// onAxis returns true iff the line from-to is parallel to (or anti-parallel to) d, i.e. the
// move stays on the same ray through the king.
func onAxis(from, to Square, d direction) bool {
	df := int(to.File()) - int(from.File())
	dr := int(to.Rank()) - int(from.Rank())
	return df*d.dr == dr*d.df
}

// legalityCheck is the do/undo legality gate (spec "do/undo legality"): mutate the board in
// place, ask whether the mover's king is attacked, then restore. No allocation.
func legalityCheck(p *Position, m Move) bool {
	side := p.SideToMove()

	savedFrom := p.squares[m.From]
	savedTo := p.squares[m.To]

	var epSquare Square
	var savedEP occupant
	isEP := m.Type == EnPassant
	if isEP {
		epSquare = enPassantCaptureSquare(m.To, side)
		savedEP = p.squares[epSquare]
		p.squares[epSquare] = occupant{piece: NoPiece}
	}

	p.squares[m.To] = p.squares[m.From]
	p.squares[m.From] = occupant{piece: NoPiece}

	kingSq := p.KingSquare(side)
	if m.Piece == King {
		kingSq = m.To
	}
	attacked := p.IsAttacked(kingSq, side.Opponent())

	p.squares[m.From] = savedFrom
	p.squares[m.To] = savedTo
	if isEP {
		p.squares[epSquare] = savedEP
	}
	return !attacked
}

// enPassantCaptureSquare returns the square of the pawn captured by an en-passant move landing
// on target, given the capturing side.
func enPassantCaptureSquare(target Square, moverSide Color) Square {
	rank := int(target.Rank()) + 1
	if moverSide == Black {
		rank = int(target.Rank()) - 1
	}
	return NewSquare(target.File(), Rank(rank))
}
