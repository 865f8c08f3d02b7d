// Package changelog keeps an append-only history of registry mutations per
// namespace.
//
// A *Log implements registry.Recorder: the registry hands it the kv.Writer of
// the batch that persists the new state, so an entry exists if and only if
// its mutation was committed. No-op updates and deletes of absent IDs record
// nothing.
//
// Keys are lexicographically ordered for range scans:
//   - ns/{ns}/changes/m             (last seq)
//   - ns/{ns}/changes/e/{seq_be8}   (entries)
//
// Records are stored as: varint headerLen | header | payload | crc32c(header|payload),
// where header is the change time in ms and payload the JSON change.
//
//	cl := changelog.Open(store, "default")
//	reg := registry.New(store, "default", registry.WithRecorder(cl))
//	_, _ = reg.Create(ctx, "launch", "kickoff", 1, 2)
//	entries, next, _ := cl.Read(changelog.ReadOptions{Limit: 100})
package changelog
