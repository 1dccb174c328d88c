package fen_test

import (
	"testing"

	"github.com/greywing/caissa/pkg/board"
	"github.com/greywing/caissa/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEncodeRoundTrip(t *testing.T) {
	tests := []string{
		fen.Initial,
		"4k3/2pppp2/8/4P1K1/4PP2/3P4/8/8 w - - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/5P2/PPPPP1PP/RNBQKBNR w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
	}

	for _, tt := range tests {
		pos, err := fen.Decode(tt)
		require.NoError(t, err, tt)
		assert.Equal(t, tt, fen.Encode(pos))
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	tests := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPX/RNBQKBNR w KQkq - 0 1",
		"8/8/8/8/8/8/8/8 w - - 0 1",
	}
	for _, tt := range tests {
		_, err := fen.Decode(tt)
		assert.ErrorIs(t, err, fen.ErrInvalidFEN, tt)
	}
}

func TestDecodeInitialPosition(t *testing.T) {
	pos, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	assert.Equal(t, board.White, pos.SideToMove())
	assert.Equal(t, board.FullCastingRights, pos.Castling())
	_, ok := pos.EnPassant()
	assert.False(t, ok)
}
