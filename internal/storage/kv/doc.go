// Package kv defines the key-value contract the registry persists through and
// an in-memory implementation of it.
//
// The Pebble-backed implementation lives in internal/storage/pebble. Both
// satisfy Store, so components take a kv.Store and tests can swap in
// kv.NewMemory() without touching disk.
//
//	st := kv.NewMemory()
//	_ = st.Write(ctx, func(w kv.Writer) error {
//	    if err := w.Set([]byte("a"), []byte("1")); err != nil {
//	        return err
//	    }
//	    return w.Set([]byte("b"), []byte("2"))
//	})
//	_ = st.Scan(kv.ScanOptions{LowerBound: []byte("a")}, func(k, v []byte) bool {
//	    return true
//	})
package kv
