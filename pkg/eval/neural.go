package eval

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/greywing/caissa/pkg/board"
	"github.com/seekerror/logw"
)

// numFeatures is the input dimension: 6 piece-kind channels x 64 squares, plus one side-to-move
// feature (spec section 4.5 Neural, section 6 Neural weight file).
const numFeatures = 6*64 + 1

// ErrWeightLoadFailed indicates the neural weight file could not be read or does not have the
// expected shape (spec section 7).
var ErrWeightLoadFailed = errors.New("failed to load neural weights")

// layer is one fully-connected layer: output = W*input + b.
type layer struct {
	W [][]float64 `json:"W"`
	B []float64   `json:"b"`
}

// weights is the on-disk representation of a Neural evaluator's parameters (spec section 6
// Neural weight file): L0 is the 385->H hidden layer, L1 is the H->1 output layer.
type weights struct {
	Layers   [2]layer `json:"layers"`
	ScaleCP  float64  `json:"scale_cp"`
	ModelPOV string   `json:"model_pov"` // "sidemove" or "white"
}

// Neural is a single-hidden-layer feed-forward evaluator: h = ReLU(W0*x + b0), y = W1*h + b1,
// score = y * scale (spec section 4.5).
type Neural struct {
	w weights
}

// LoadNeural loads a Neural evaluator from a JSON weight file. If the file cannot be read or
// does not have the expected shape, it logs a warning and transparently returns fallback
// instead (spec section 4.5: "If the weights fail to load, transparently fall back to the
// classical evaluator"; section 7 WeightLoadFailed).
func LoadNeural(ctx context.Context, path string, fallback Evaluator) Evaluator {
	n, err := loadNeural(path)
	if err != nil {
		logw.Warningf(ctx, "Falling back to classical evaluator: %v", err)
		return fallback
	}
	return n
}

func loadNeural(path string) (*Neural, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWeightLoadFailed, err)
	}

	var w weights
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: invalid weight file: %v", ErrWeightLoadFailed, err)
	}
	if err := w.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWeightLoadFailed, err)
	}
	if w.ScaleCP == 0 {
		w.ScaleCP = 1000
	}
	if w.ModelPOV == "" {
		w.ModelPOV = "white"
	}
	return &Neural{w: w}, nil
}

func (w weights) validate() error {
	l0, l1 := w.Layers[0], w.Layers[1]
	if len(l0.W) == 0 {
		return errors.New("empty hidden layer")
	}
	for i, row := range l0.W {
		if len(row) != numFeatures {
			return fmt.Errorf("L0.W row %v has %v columns, want %v", i, len(row), numFeatures)
		}
	}
	if len(l0.B) != len(l0.W) {
		return fmt.Errorf("L0.b has %v entries, want %v", len(l0.B), len(l0.W))
	}
	if len(l1.W) != 1 {
		return fmt.Errorf("L1.W has %v rows, want 1", len(l1.W))
	}
	if len(l1.W[0]) != len(l0.W) {
		return fmt.Errorf("L1.W has %v columns, want %v", len(l1.W[0]), len(l0.W))
	}
	if len(l1.B) != 1 {
		return fmt.Errorf("L1.b has %v entries, want 1", len(l1.B))
	}
	return nil
}

func (n *Neural) Evaluate(pos *board.Position) Centipawns {
	x := features(pos)

	l0 := n.w.Layers[0]
	h := make([]float64, len(l0.W))
	for i, row := range l0.W {
		sum := l0.B[i]
		for j, v := range row {
			sum += v * x[j]
		}
		h[i] = math.Max(0, sum) // ReLU
	}

	l1 := n.w.Layers[1]
	y := l1.B[0]
	for i, v := range l1.W[0] {
		y += v * h[i]
	}

	score := Centipawns(y * n.w.ScaleCP)
	if n.w.ModelPOV == "sidemove" && pos.SideToMove() == board.Black {
		score = -score
	}
	return score
}

// features builds the 385-dimensional input vector: for each of the 6 piece kinds, +1 at a
// white-occupied square, -1 at a black-occupied square of that kind, 0 elsewhere; the final
// feature is +1 if White is to move, -1 otherwise (spec section 4.5).
func features(pos *board.Position) [numFeatures]float64 {
	var x [numFeatures]float64

	for sq := board.ZeroSquare; sq < board.NumSquares; sq++ {
		color, piece, ok := pos.Square(sq)
		if !ok {
			continue
		}
		channel := int(piece) - int(board.Pawn)
		idx := channel*64 + int(sq)
		if color == board.White {
			x[idx] = 1
		} else {
			x[idx] = -1
		}
	}

	if pos.SideToMove() == board.White {
		x[numFeatures-1] = 1
	} else {
		x[numFeatures-1] = -1
	}
	return x
}
