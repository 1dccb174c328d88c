package board_test

import (
	"testing"

	"github.com/greywing/caissa/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInitialPosition(t *testing.T) {
	pos := board.NewInitialPosition()

	assert.Equal(t, board.White, pos.SideToMove())
	assert.Equal(t, board.FullCastingRights, pos.Castling())
	assert.Equal(t, 0, pos.HalfmoveClock())
	assert.Equal(t, 1, pos.FullmoveNumber())

	_, ok := pos.EnPassant()
	assert.False(t, ok)

	e1, _ := board.ParseSquareStr("e1")
	e8, _ := board.ParseSquareStr("e8")
	assert.Equal(t, e1, pos.KingSquare(board.White))
	assert.Equal(t, e8, pos.KingSquare(board.Black))

	color, piece, ok := pos.Square(e1)
	assert.True(t, ok)
	assert.Equal(t, board.White, color)
	assert.Equal(t, board.King, piece)
}

func TestNewPositionRejectsMissingKing(t *testing.T) {
	e1, _ := board.ParseSquareStr("e1")
	_, err := board.NewPosition([]board.Placement{
		{Square: e1, Color: board.White, Piece: board.King},
	}, board.Castling(0), board.NoSquare, board.White, 0, 1)
	assert.Error(t, err)
}

func TestNewPositionRejectsAdjacentKings(t *testing.T) {
	e1, _ := board.ParseSquareStr("e1")
	e2, _ := board.ParseSquareStr("e2")
	_, err := board.NewPosition([]board.Placement{
		{Square: e1, Color: board.White, Piece: board.King},
		{Square: e2, Color: board.Black, Piece: board.King},
	}, board.Castling(0), board.NoSquare, board.White, 0, 1)
	assert.Error(t, err)
}

func TestNewPositionRejectsDuplicatePlacement(t *testing.T) {
	a1, _ := board.ParseSquareStr("a1")
	_, err := board.NewPosition([]board.Placement{
		{Square: a1, Color: board.White, Piece: board.Rook},
		{Square: a1, Color: board.White, Piece: board.Queen},
	}, board.Castling(0), board.NoSquare, board.White, 0, 1)
	assert.Error(t, err)
}

func TestClone(t *testing.T) {
	pos := board.NewInitialPosition()
	clone := pos.Clone()

	moves := pos.LegalMoves()
	require.NotEmpty(t, moves)

	next := clone.ApplyMove(moves[0])
	assert.Equal(t, board.White, pos.SideToMove(), "original position must be unaffected")
	assert.Equal(t, board.Black, next.SideToMove())
}
