package eval_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/greywing/caissa/pkg/board"
	"github.com/greywing/caissa/pkg/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeWeights writes a minimal, well-shaped weight file: a single hidden unit driven purely
// by its bias (input-independent), so the expected output is easy to check by hand regardless
// of the position's features -- this isolates the model_pov sign-flip behavior under test.
func writeWeights(t *testing.T, scale float64, pov string) string {
	t.Helper()

	row := make([]float64, 385)
	payload := map[string]any{
		"layers": [2]map[string]any{
			{"W": [][]float64{row}, "b": []float64{1}},
			{"W": [][]float64{{2}}, "b": []float64{0}},
		},
		"scale_cp":  scale,
		"model_pov": pov,
	}

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "weights.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoadNeuralWhitePOV(t *testing.T) {
	path := writeWeights(t, 1, "white")
	ev := eval.LoadNeural(context.Background(), path, eval.Classical{})

	_, ok := ev.(*eval.Neural)
	require.True(t, ok, "expected a Neural evaluator, fallback was used")

	pos := board.NewInitialPosition() // white to move
	assert.Equal(t, eval.Centipawns(2), ev.Evaluate(pos))
}

func TestLoadNeuralSideToMovePOVFlipsForBlack(t *testing.T) {
	path := writeWeights(t, 1, "sidemove")
	ev := eval.LoadNeural(context.Background(), path, eval.Classical{})

	pos := board.NewInitialPosition().NullMove() // black to move, same board
	assert.Equal(t, eval.Centipawns(-2), ev.Evaluate(pos))
}

func TestLoadNeuralFallsBackOnMissingFile(t *testing.T) {
	ev := eval.LoadNeural(context.Background(), filepath.Join(t.TempDir(), "missing.json"), eval.Classical{})
	_, ok := ev.(eval.Classical)
	assert.True(t, ok, "expected fallback to Classical evaluator")
}

func TestLoadNeuralFallsBackOnMalformedShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"layers":[{"W":[[1,2,3]],"b":[0]},{"W":[[1]],"b":[0]}]}`), 0o644))

	ev := eval.LoadNeural(context.Background(), path, eval.Classical{})
	_, ok := ev.(eval.Classical)
	assert.True(t, ok)
}
