// Package config provides loading and environment overlay for the eventreg
// server configuration. Default() is the baseline; Load reads JSON or YAML
// files over it and FromEnv overlays EVREG_* variables.
//
// Example:
//
//	cfg, err := config.Load("/etc/eventreg.yaml")
//	if err != nil { /* handle */ }
//	if err := config.FromEnv(&cfg); err != nil { /* handle */ }
//	if err := cfg.Validate(); err != nil { /* handle */ }
//	rt, _ := runtime.Open(runtime.Options{DataDir: config.DefaultDataDir(), Fsync: pebblestore.FsyncModeAlways, Config: cfg})
//	defer rt.Close()
package config
