package board_test

import (
	"testing"

	"github.com/greywing/caissa/pkg/board"
	"github.com/greywing/caissa/pkg/board/fen"
	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, s string) *board.Position {
	t.Helper()
	pos, err := fen.Decode(s)
	require.NoError(t, err)
	return pos
}

func mustSquare(t *testing.T, s string) board.Square {
	t.Helper()
	sq, err := board.ParseSquareStr(s)
	require.NoError(t, err)
	return sq
}

func findMove(t *testing.T, moves []board.Move, from, to board.Square) board.Move {
	t.Helper()
	for _, m := range moves {
		if m.From == from && m.To == to {
			return m
		}
	}
	t.Fatalf("move %v%v not found among %v legal moves", from, to, len(moves))
	return board.Move{}
}
