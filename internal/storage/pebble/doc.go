// Package pebblestore provides a thin wrapper around Pebble with fsync policy,
// atomic batched writes, bounded scans, and minimal metrics hooks. *DB
// implements kv.Store.
//
// Usage:
//
//	db, err := pebblestore.Open(pebblestore.Options{
//	    DataDir: "./data",
//	    Fsync:   pebblestore.FsyncModeInterval,
//	})
//	if err != nil { /* handle */ }
//	defer db.Close()
//
//	// Atomic multi-key update
//	_ = db.Write(ctx, func(w kv.Writer) error {
//	    if err := w.Set([]byte("k"), []byte("v")); err != nil {
//	        return err
//	    }
//	    return w.Remove([]byte("old"))
//	})
//
//	// Point ops
//	_ = db.Set([]byte("k2"), []byte("v2"))
//	v, ok, _ := db.Get([]byte("k2"))
package pebblestore
