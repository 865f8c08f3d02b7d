package log

import (
	"fmt"
	"strings"
)

// Config declares a logger. Outputs accepts "console", "file" and "null";
// "file" requires File.
type Config struct {
	Level      string   `json:"level" yaml:"level"`
	Format     string   `json:"format" yaml:"format"`
	Outputs    []string `json:"outputs" yaml:"outputs"`
	File       string   `json:"file" yaml:"file"`
	ShowCaller bool     `json:"show_caller" yaml:"show_caller"`
}

// ApplyConfig builds a Logger from cfg. A nil cfg yields text at info level
// on stderr.
func ApplyConfig(cfg *Config) (Logger, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var formatter Formatter
	switch strings.ToLower(cfg.Format) {
	case "", "text":
		formatter = &TextFormatter{ShowCaller: cfg.ShowCaller}
	case "json":
		formatter = &JSONFormatter{ShowCaller: cfg.ShowCaller}
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	opts := []LoggerOption{WithLevel(level), WithFormatter(formatter)}
	outputs := cfg.Outputs
	if len(outputs) == 0 {
		outputs = []string{"console"}
	}
	for _, name := range outputs {
		switch strings.ToLower(name) {
		case "console", "stderr":
			opts = append(opts, WithOutput(NewConsoleOutput()))
		case "file":
			if cfg.File == "" {
				return nil, fmt.Errorf("file output requires a path")
			}
			fo, err := NewFileOutput(cfg.File)
			if err != nil {
				return nil, err
			}
			opts = append(opts, WithOutput(fo))
		case "null", "none":
			opts = append(opts, WithOutput(NullOutput{}))
		default:
			return nil, fmt.Errorf("unknown log output %q", name)
		}
	}
	return NewLogger(opts...), nil
}
