package board_test

import (
	"testing"

	"github.com/greywing/caissa/pkg/board"
	"github.com/stretchr/testify/assert"
)

func TestLegalMovesInitialPosition(t *testing.T) {
	pos := board.NewInitialPosition()
	moves := pos.LegalMoves()
	assert.Len(t, moves, 20)
}

func TestLegalMovesSoundness(t *testing.T) {
	// Every returned move, once applied, must leave the mover's own king un-attacked.
	pos := mustDecode(t, "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3")
	for _, m := range pos.LegalMoves() {
		next := pos.ApplyMove(m)
		assert.False(t, next.IsChecked(pos.SideToMove()), "move %v leaves mover in check", m)
	}
}

func TestLegalMovesIncludePawnAdvances(t *testing.T) {
	pos := mustDecode(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	moves := pos.LegalMoves()

	e7, e5 := mustSquare(t, "e7"), mustSquare(t, "e5")
	d7, d5 := mustSquare(t, "d7"), mustSquare(t, "d5")
	findMove(t, moves, e7, e5)
	findMove(t, moves, d7, d5)

	e3 := mustSquare(t, "e3")
	assert.False(t, pos.IsAttacked(e3, board.White))
}

func TestCastlingBothSides(t *testing.T) {
	pos := mustDecode(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	moves := pos.LegalMoves()

	e1, g1, c1 := mustSquare(t, "e1"), mustSquare(t, "g1"), mustSquare(t, "c1")
	king := findMove(t, moves, e1, g1)
	assert.Equal(t, board.KingSideCastle, king.Type)
	queen := findMove(t, moves, e1, c1)
	assert.Equal(t, board.QueenSideCastle, queen.Type)
}

func TestCastlingBlockedByAttackedSquare(t *testing.T) {
	// Black rook on e-file covers e1: white may not castle through or out of check.
	pos := mustDecode(t, "k3r3/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	for _, m := range pos.LegalMoves() {
		assert.False(t, m.IsCastle(), "castling must not be generated while in check")
	}
}

func TestEnPassantCapture(t *testing.T) {
	pos := board.NewInitialPosition()
	seq := []string{"e2e4", "a7a6", "e4e5", "d7d5"}
	for _, s := range seq {
		m, err := board.ParseMove(s)
		if err != nil {
			t.Fatal(err)
		}
		moves := pos.LegalMoves()
		full := findMove(t, moves, m.From, m.To)
		pos = pos.ApplyMove(full)
	}

	e5, d6 := mustSquare(t, "e5"), mustSquare(t, "d6")
	ep := findMove(t, pos.LegalMoves(), e5, d6)
	assert.Equal(t, board.EnPassant, ep.Type)

	next := pos.ApplyMove(ep)
	d5 := mustSquare(t, "d5")
	assert.True(t, next.IsEmpty(d5), "captured pawn must be removed")
}

func TestPinnedPieceRestrictedToAxis(t *testing.T) {
	// White rook on e2 pinned to e1 king by the black rook on e8: it may only move along the
	// e-file, not sideways.
	pos := mustDecode(t, "4r1k1/8/8/8/8/8/4R3/4K3 w - - 0 1")
	e2 := mustSquare(t, "e2")

	for _, m := range pos.LegalMoves() {
		if m.From != e2 {
			continue
		}
		assert.Equal(t, e2.File(), m.To.File(), "pinned rook must stay on the e-file")
	}
}

func TestTwoCheckersOnlyKingMoves(t *testing.T) {
	// Constructed double-check: king on e1 attacked by both a rook on e8 and a knight on f3.
	pos := mustDecode(t, "k3r3/8/8/8/8/5n2/8/4K3 w - - 0 1")
	require := pos.LegalMoves()
	for _, m := range require {
		assert.Equal(t, board.King, m.Piece)
	}
}
