package serverrun

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	cfgpkg "github.com/rzbill/eventreg/internal/config"
	"github.com/rzbill/eventreg/internal/runtime"
	grpcserver "github.com/rzbill/eventreg/internal/server/grpc"
	httpserver "github.com/rzbill/eventreg/internal/server/http"
	eventsvc "github.com/rzbill/eventreg/internal/services/events"
	pebblestore "github.com/rzbill/eventreg/internal/storage/pebble"
	logpkg "github.com/rzbill/eventreg/pkg/log"
)

// Environment fallbacks for log settings left empty in Options.
const (
	LogLevelEnv  = "EVREG_LOG_LEVEL"
	LogFormatEnv = "EVREG_LOG_FORMAT"
)

func getenvDefault(key, def string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return def
}

// small wrapper to allow testing
var getenv = os.Getenv

type Options struct {
	DataDir       string
	GRPCAddr      string
	HTTPAddr      string
	Fsync         pebblestore.FsyncMode
	FsyncInterval time.Duration
	Config        cfgpkg.Config
	LogLevel      string
	LogFormat     string
}

// LoadConfig layers an optional JSON/YAML file and EVREG_* variables over
// the defaults and validates the result.
func LoadConfig(path string) (cfgpkg.Config, error) {
	cfg := cfgpkg.Default()
	if path != "" {
		loaded, err := cfgpkg.Load(path)
		if err != nil {
			return cfgpkg.Config{}, err
		}
		cfg = loaded
	}
	if err := cfgpkg.FromEnv(&cfg); err != nil {
		return cfgpkg.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return cfgpkg.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func buildLogger(opts Options) (logpkg.Logger, *logpkg.Config) {
	cfg := &logpkg.Config{
		Level:  opts.LogLevel,
		Format: opts.LogFormat,
	}
	if cfg.Level == "" {
		cfg.Level = getenvDefault(LogLevelEnv, "info")
	}
	if cfg.Format == "" {
		cfg.Format = getenvDefault(LogFormatEnv, "text")
	}
	logger, err := logpkg.ApplyConfig(cfg)
	if err != nil {
		lvl := logpkg.InfoLevel
		if l, e := logpkg.ParseLevel(cfg.Level); e == nil {
			lvl = l
		}
		logger = logpkg.NewLogger(logpkg.WithLevel(lvl), logpkg.WithFormatter(&logpkg.TextFormatter{}))
		logger.Warn("invalid log config, using text output", logpkg.Err(err))
	}
	return logger, cfg
}

// Run starts gRPC and HTTP servers and blocks until ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	sctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	if opts.DataDir == "" {
		opts.DataDir = cfgpkg.DefaultDataDir()
	}

	procLogger, logCfg := buildLogger(opts)
	// Pebble reports through the standard library logger.
	logpkg.RedirectStdLog(procLogger.WithComponent("pebble"))

	storeDir := filepath.Join(opts.DataDir, "store")
	rt, err := runtime.Open(runtime.Options{DataDir: storeDir, Fsync: opts.Fsync, FsyncInterval: opts.FsyncInterval, Config: opts.Config})
	if err != nil {
		return fmt.Errorf("open runtime: %w", err)
	}
	defer rt.Close()

	procLogger.Info("starting eventreg server",
		logpkg.Str("data_dir", opts.DataDir),
		logpkg.Str("grpc", opts.GRPCAddr),
		logpkg.Str("http", opts.HTTPAddr),
		logpkg.Str("level", logCfg.Level),
		logpkg.Str("format", logCfg.Format),
		logpkg.Bool("record_changes", opts.Config.RecordChanges),
	)

	svc := eventsvc.NewWithLogger(rt, procLogger.With(logpkg.Component("events")))
	gsrv := grpcserver.NewWithService(rt, svc, procLogger)
	hsrv := httpserver.NewWithService(rt, svc, procLogger)

	var (
		wg       sync.WaitGroup
		errMu    sync.Mutex
		firstErr error
	)
	fail := func(name string, err error) {
		procLogger.Error(name+" server error", logpkg.Err(err))
		errMu.Lock()
		if firstErr == nil {
			firstErr = fmt.Errorf("%s: %w", name, err)
		}
		errMu.Unlock()
		stop()
	}

	if opts.GRPCAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := gsrv.ListenAndServe(sctx, opts.GRPCAddr); err != nil && sctx.Err() == nil {
				fail("grpc", err)
			}
		}()
	}
	if opts.HTTPAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := hsrv.ListenAndServe(sctx, opts.HTTPAddr); err != nil && sctx.Err() == nil {
				fail("http", err)
			}
		}()
	}

	<-sctx.Done()
	// Stop servers before the deferred runtime close.
	gsrv.Close()
	hsrv.Close()
	wg.Wait()
	procLogger.Info("eventreg server stopped")
	return firstErr
}
