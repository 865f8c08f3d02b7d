// Package runtime wires storage, config and per-namespace registries into a
// single-node eventreg instance. It exposes Open/Close, basic health checks,
// and accessors used by higher-level services.
//
// Example:
//
//	cfg := config.Default()
//	rt, _ := runtime.Open(runtime.Options{DataDir: "./data", Fsync: pebblestore.FsyncModeAlways, Config: cfg})
//	defer rt.Close()
//	_ = rt.CheckHealth(context.Background())
//	id, _ := rt.Registry("default").Create(context.Background(), "Launch", "Product launch", 1700000000, 1700003600)
//	_ = id
package runtime
