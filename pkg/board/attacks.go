package board

// direction is a (file, rank) step.
type direction struct{ df, dr int }

var (
	rookDirections = [4]direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

	bishopDirections = [4]direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

	queenDirections = [8]direction{
		{1, 0}, {-1, 0}, {0, 1}, {0, -1},
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	}

	knightOffsets = [8]direction{
		{1, 2}, {2, 1}, {2, -1}, {1, -2},
		{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
	}
)

// IsAttacked returns true iff sq is attacked by byColor. Uses the inverse-attack trick: shoot
// each attacker type's move pattern outward from the target square and see if it reaches a
// matching attacker (spec Move generator / Attack query).
func (p *Position) IsAttacked(sq Square, byColor Color) bool {
	for _, d := range knightOffsets {
		if t, ok := sq.Offset(d.df, d.dr); ok {
			if c, piece, ok := p.Square(t); ok && c == byColor && piece == Knight {
				return true
			}
		}
	}

	for _, d := range rookDirections {
		if hitsSlider(p, sq, d, byColor, Rook, Queen) {
			return true
		}
	}
	for _, d := range bishopDirections {
		if hitsSlider(p, sq, d, byColor, Bishop, Queen) {
			return true
		}
	}

	for df := -1; df <= 1; df++ {
		for dr := -1; dr <= 1; dr++ {
			if df == 0 && dr == 0 {
				continue
			}
			if t, ok := sq.Offset(df, dr); ok {
				if c, piece, ok := p.Square(t); ok && c == byColor && piece == King {
					return true
				}
			}
		}
	}

	// Pawn attacks: a byColor pawn attacks sq if sq lies one of its two forward-diagonal
	// squares. Equivalently, shoot the mover's *backward* diagonal from sq.
	pawnDRank := -1
	if byColor == White {
		pawnDRank = 1
	}
	for _, df := range [2]int{-1, 1} {
		if t, ok := sq.Offset(df, pawnDRank); ok {
			if c, piece, ok := p.Square(t); ok && c == byColor && piece == Pawn {
				return true
			}
		}
	}
	return false
}

// hitsSlider walks from sq in direction d until it hits a piece; returns true iff that piece
// belongs to byColor and is one of the given kinds.
func hitsSlider(p *Position, sq Square, d direction, byColor Color, kinds ...Piece) bool {
	cur := sq
	for {
		t, ok := cur.Offset(d.df, d.dr)
		if !ok {
			return false
		}
		cur = t
		if c, piece, ok := p.Square(cur); ok {
			if c != byColor {
				return false
			}
			for _, k := range kinds {
				if piece == k {
					return true
				}
			}
			return false
		}
	}
}

// IsChecked returns true iff c's king is currently attacked.
func (p *Position) IsChecked(c Color) bool {
	return p.IsAttacked(p.KingSquare(c), c.Opponent())
}

// checker describes a piece giving check.
type checker struct {
	square  Square
	slider  bool
	between []Square // squares strictly between the checker and the king, if slider
}

// findCheckers returns every opposing piece currently giving check to side's king.
func findCheckers(p *Position, side Color) []checker {
	king := p.KingSquare(side)
	opp := side.Opponent()

	var out []checker

	for _, d := range knightOffsets {
		if t, ok := king.Offset(d.df, d.dr); ok {
			if c, piece, ok := p.Square(t); ok && c == opp && piece == Knight {
				out = append(out, checker{square: t})
			}
		}
	}

	pawnDRank := 1
	if side == White {
		pawnDRank = -1
	}
	for _, df := range [2]int{-1, 1} {
		if t, ok := king.Offset(df, pawnDRank); ok {
			if c, piece, ok := p.Square(t); ok && c == opp && piece == Pawn {
				out = append(out, checker{square: t})
			}
		}
	}

	for _, d := range queenDirections {
		kinds := [2]Piece{Rook, Queen}
		if d.df != 0 && d.dr != 0 {
			kinds = [2]Piece{Bishop, Queen}
		}

		var between []Square
		cur := king
		for {
			t, ok := cur.Offset(d.df, d.dr)
			if !ok {
				break
			}
			cur = t
			if c, piece, ok := p.Square(cur); ok {
				if c == opp && (piece == kinds[0] || piece == kinds[1]) {
					out = append(out, checker{square: cur, slider: true, between: between})
				}
				break
			}
			between = append(between, cur)
		}
	}

	return out
}

// pin describes a friendly piece pinned to its king along an axis.
type pin struct {
	pinned    Square
	direction direction // axis, pointing from king through the pinned piece
}

// findPins walks each of the 8 rays outward from side's king; a ray containing exactly one
// friendly piece followed by an enemy slider of matching kind pins that friendly piece along
// the ray's axis (spec Check and pin detection).
func findPins(p *Position, side Color) []pin {
	king := p.KingSquare(side)
	opp := side.Opponent()

	var out []pin

	for _, d := range queenDirections {
		kinds := [2]Piece{Rook, Queen}
		if d.df != 0 && d.dr != 0 {
			kinds = [2]Piece{Bishop, Queen}
		}

		var candidate Square
		haveCandidate := false

		cur := king
		for {
			t, ok := cur.Offset(d.df, d.dr)
			if !ok {
				break
			}
			cur = t

			c, piece, ok := p.Square(cur)
			if !ok {
				continue
			}
			if c == side {
				if haveCandidate {
					break // two friendly pieces on the ray: no pin
				}
				candidate = cur
				haveCandidate = true
				continue
			}
			// enemy piece
			if haveCandidate && (piece == kinds[0] || piece == kinds[1]) {
				out = append(out, pin{pinned: candidate, direction: d})
			}
			break
		}
	}

	return out
}
