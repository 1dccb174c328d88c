package engine

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/greywing/caissa/pkg/board"
	"github.com/greywing/caissa/pkg/eval"
)

// Sample is one root-driver iteration reported to a collaborator (spec section 4.8 "sample
// hooks", section 6 Sample emission). Score is side-to-move POV, matching what a training
// collaborator would log for a position it is about to move from.
type Sample struct {
	FEN       string          `json:"fen"`
	ScoreCP   eval.Centipawns `json:"score_cp"`
	Depth     int             `json:"depth"`
	From      board.Square    `json:"from"`
	To        board.Square    `json:"to"`
	KeyHex    string          `json:"key_hex"`
	Timestamp time.Time       `json:"timestamp"`
}

// SampleSink receives samples emitted by the root driver. The core engine never persists
// anything itself (spec section 4.8); an external collaborator (e.g. a batch-labeling pipeline)
// owns that decision by supplying a sink.
type SampleSink interface {
	Emit(Sample) error
}

// BadgerSampleSink is a minimal reference SampleSink, storing each sample under its timestamp
// so a local caller can later scan them in emission order. This is not the batch-labeling
// collaborator itself (out of scope per spec section 1) -- only enough of a concrete sink to
// exercise the emission contract end to end.
type BadgerSampleSink struct {
	db *badger.DB
}

// NewBadgerSampleSink opens (creating if absent) a badger-backed sample sink rooted at dir.
func NewBadgerSampleSink(dir string) (*BadgerSampleSink, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open sample sink: %w", err)
	}
	return &BadgerSampleSink{db: db}, nil
}

// Close releases the underlying database handle.
func (s *BadgerSampleSink) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Emit appends sample under a timestamp-ordered key.
func (s *BadgerSampleSink) Emit(sample Sample) error {
	data, err := json.Marshal(sample)
	if err != nil {
		return fmt.Errorf("encode sample: %w", err)
	}

	key := []byte(fmt.Sprintf("%020d-%v", sample.Timestamp.UnixNano(), sample.KeyHex))
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// minLoggedDepth is the minimum finished depth at which a sample is emitted (spec section 6:
// "emitted only when depth >= configured minimum and score is finite").
const minLoggedDepth = 4
