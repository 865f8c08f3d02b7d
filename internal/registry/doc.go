// Package registry implements the event registry: an auto-incrementing
// counter and an ID -> Event map persisted as two entries in a kv.Store.
//
// Every operation loads what it needs from the store (absent entries read as
// counter 0 and an empty map), mutates a private copy and writes it back
// before returning. A mutex per Registry spans that whole cycle; callers that
// share a namespace must share the *Registry.
//
// Counting and positional access are deliberately literal:
//
//   - Count is the number of events ever created, not the number alive.
//   - ByIndex(k) is Read(k+1) guarded by k < Count. After a delete the
//     position of that ID stays empty; nothing is re-indexed.
//
// Usage:
//
//	reg := registry.New(store, "default")
//	id, _ := reg.Create(ctx, "Event1", "Description1", 123456, 789012)
//	ev, ok, _ := reg.Read(ctx, id)
//	_ = reg.Update(ctx, id, "UpdatedEvent", "UpdatedDesc", 654321, 210987, registry.StatusCompleted)
//	_ = reg.Delete(ctx, id)
package registry
