package board_test

import (
	"testing"

	"github.com/greywing/caissa/pkg/board"
	"github.com/stretchr/testify/assert"
)

func TestFiftyMoveDraw(t *testing.T) {
	pos := mustDecode(t, "4k3/8/8/8/8/8/8/4K3 w - - 100 50")
	assert.Equal(t, board.FiftyMoveDraw, pos.Status())
}

func TestInsufficientMaterialKingsOnly(t *testing.T) {
	pos := mustDecode(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	assert.Equal(t, board.InsufficientMaterialDraw, pos.Status())
}

func TestInsufficientMaterialKingAndMinor(t *testing.T) {
	pos := mustDecode(t, "4k3/8/8/8/8/8/4N3/4K3 w - - 0 1")
	assert.Equal(t, board.InsufficientMaterialDraw, pos.Status())

	pos2 := mustDecode(t, "4k3/8/8/8/8/8/4B3/4K3 w - - 0 1")
	assert.Equal(t, board.InsufficientMaterialDraw, pos2.Status())
}

func TestInsufficientMaterialSameColorBishops(t *testing.T) {
	pos := mustDecode(t, "4k1b1/8/8/8/8/8/4B3/4K3 w - - 0 1")
	assert.Equal(t, board.InsufficientMaterialDraw, pos.Status())
}

func TestInsufficientMaterialSameSideTwoKnights(t *testing.T) {
	pos := mustDecode(t, "4k3/8/8/8/8/8/8/4K1NN w - - 0 1")
	assert.Equal(t, board.InsufficientMaterialDraw, pos.Status())
}

func TestSufficientMaterialOppositeColorBishops(t *testing.T) {
	pos := mustDecode(t, "4kb2/8/8/8/8/8/4B3/4K3 w - - 0 1")
	assert.Equal(t, board.Ongoing, pos.Status())
}

func TestSufficientMaterialWithPawn(t *testing.T) {
	pos := mustDecode(t, "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1")
	assert.Equal(t, board.Ongoing, pos.Status())
}
