package engine

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/greywing/caissa/pkg/board"
	"github.com/greywing/caissa/pkg/eval"
)

// maxHintEntries bounds the cache size; once exceeded, the oldest entries by timestamp are
// purged first (spec section 6 Hint cache: "size-capped with LRU-by-timestamp purge at ~5000
// entries").
const maxHintEntries = 5000

// HintRecord is one hint cache entry: the root driver's conclusion about a position the last
// time it was searched (spec section 6).
type HintRecord struct {
	Move      board.Move      `json:"move"`
	Score     eval.Centipawns `json:"score"`
	Depth     int             `json:"depth"`
	Tag       string          `json:"tag"`
	Timestamp time.Time       `json:"timestamp"`
}

// HintCache is a bounded, position-keyed store of prior search conclusions, advisory only: a
// miss or a shallow hit changes nothing about correctness, only move-ordering quality (spec
// section 6). Backed by badger following the embedded-KV idiom in hailam-chessplay's
// internal/storage package.
type HintCache struct {
	db *badger.DB
}

// OpenHintCache opens (creating if absent) a badger-backed hint cache rooted at dir.
func OpenHintCache(dir string) (*HintCache, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open hint cache: %w", err)
	}
	return &HintCache{db: db}, nil
}

// Close releases the underlying database handle.
func (h *HintCache) Close() error {
	if h == nil || h.db == nil {
		return nil
	}
	return h.db.Close()
}

// Lookup returns the cached record for key, if present.
func (h *HintCache) Lookup(key board.ZobristHash) (HintRecord, bool) {
	if h == nil {
		return HintRecord{}, false
	}

	var rec HintRecord
	found := false
	err := h.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(hintKey(key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil || !found {
		return HintRecord{}, false
	}
	return rec, true
}

// Store records rec under key, stamping the current time for LRU purge ordering, then purges
// the oldest entries if the cache has grown past maxHintEntries.
func (h *HintCache) Store(key board.ZobristHash, rec HintRecord) error {
	if h == nil {
		return nil
	}
	rec.Timestamp = time.Now()

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode hint record: %w", err)
	}

	if err := h.db.Update(func(txn *badger.Txn) error {
		return txn.Set(hintKey(key), data)
	}); err != nil {
		return fmt.Errorf("store hint record: %w", err)
	}
	return h.evictOldest()
}

// evictOldest removes the oldest-timestamped entries once the cache exceeds maxHintEntries.
// Badger has no native LRU policy (unlike an in-process map), so the index is rebuilt from a
// full key scan -- acceptable here because the cache is capped in the low thousands.
func (h *HintCache) evictOldest() error {
	type aged struct {
		key       []byte
		timestamp time.Time
	}
	var all []aged

	err := h.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			key := append([]byte{}, item.Key()...)
			var rec HintRecord
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				continue
			}
			all = append(all, aged{key: key, timestamp: rec.Timestamp})
		}
		return nil
	})
	if err != nil {
		return err
	}
	if len(all) <= maxHintEntries {
		return nil
	}

	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			if all[j].timestamp.Before(all[i].timestamp) {
				all[i], all[j] = all[j], all[i]
			}
		}
	}

	toDrop := all[:len(all)-maxHintEntries]
	return h.db.Update(func(txn *badger.Txn) error {
		for _, a := range toDrop {
			if err := txn.Delete(a.key); err != nil {
				return err
			}
		}
		return nil
	})
}

func hintKey(key board.ZobristHash) []byte {
	return []byte(fmt.Sprintf("%016x", uint64(key)))
}
