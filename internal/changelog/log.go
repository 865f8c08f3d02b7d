package changelog

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/rzbill/eventreg/internal/registry"
	"github.com/rzbill/eventreg/internal/storage/kv"
)

// Entry is a change together with its position in the log.
type Entry struct {
	Seq uint64 `json:"seq"`
	registry.Change
}

// Log is the append-only change history of one namespace. It keeps no state
// in memory: the last sequence is re-read from the store on every append, so
// appends must be serialized by the caller (the registry lock does this).
type Log struct {
	store     kv.Store
	namespace string
}

var _ registry.Recorder = (*Log)(nil)

// Open binds a Log to a store and namespace.
func Open(store kv.Store, namespace string) *Log {
	return &Log{store: store, namespace: namespace}
}

// LastSeq returns the last assigned sequence, 0 when the log is empty.
func (l *Log) LastSeq() (uint64, error) {
	b, ok, err := l.store.Get(KeyMeta(l.namespace))
	if err != nil {
		return 0, err
	}
	if !ok || len(b) < 8 {
		return 0, nil
	}
	return binary.BigEndian.Uint64(b[:8]), nil
}

// Record stages the next entry and the updated meta key into w.
func (l *Log) Record(w kv.Writer, c registry.Change) error {
	last, err := l.LastSeq()
	if err != nil {
		return fmt.Errorf("changelog meta: %w", err)
	}
	seq := last + 1
	payload, err := json.Marshal(c)
	if err != nil {
		return err
	}
	header := binary.BigEndian.AppendUint64(nil, uint64(c.AtMs))
	if err := w.Set(KeyEntry(l.namespace, seq), encodeRecord(header, payload)); err != nil {
		return err
	}
	var meta [8]byte
	binary.BigEndian.PutUint64(meta[:], seq)
	return w.Set(KeyMeta(l.namespace), meta[:])
}

// ReadOptions selects a window of the log. Start is inclusive in both
// directions; zero means the oldest entry (or the newest when Reverse).
type ReadOptions struct {
	Start   uint64
	Limit   int
	Reverse bool
}

// Read returns up to Limit entries and the sequence to resume from, or 0 when
// nothing remains. Entries failing their checksum are skipped.
func (l *Log) Read(opts ReadOptions) ([]Entry, uint64, error) {
	prefix := KeyEntriesPrefix(l.namespace)
	scan := kv.ScanOptions{LowerBound: prefix, UpperBound: kv.PrefixEnd(prefix), Reverse: opts.Reverse}
	if opts.Start > 0 {
		if opts.Reverse {
			if opts.Start < ^uint64(0) {
				scan.UpperBound = KeyEntry(l.namespace, opts.Start+1)
			}
		} else {
			scan.LowerBound = KeyEntry(l.namespace, opts.Start)
		}
	}

	items := make([]Entry, 0, max(1, opts.Limit))
	var next uint64
	var decodeErr error
	err := l.store.Scan(scan, func(k, v []byte) bool {
		seq := binary.BigEndian.Uint64(k[len(k)-8:])
		if opts.Limit > 0 && len(items) == opts.Limit {
			next = seq
			return false
		}
		dec, ok := decodeRecord(v)
		if !ok {
			return true
		}
		var c registry.Change
		if err := json.Unmarshal(dec.payload, &c); err != nil {
			decodeErr = fmt.Errorf("changelog entry %d: %w", seq, err)
			return false
		}
		items = append(items, Entry{Seq: seq, Change: c})
		return true
	})
	if err != nil {
		return nil, 0, err
	}
	if decodeErr != nil {
		return nil, 0, decodeErr
	}
	return items, next, nil
}
