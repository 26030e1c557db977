// internal/logging/logging.go
package logging

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Formats accepted by Options.Format.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Options selects verbosity and encoding.
type Options struct {
	Verbose bool   // debug level
	Quiet   bool   // warn level; ignored when Verbose is set
	Format  string // console | json
}

// New builds a zap logger from the production config writing to w.
func New(w io.Writer, o Options) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	switch {
	case o.Verbose:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case o.Quiet:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}

	encCfg := cfg.EncoderConfig
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	switch o.Format {
	case "", FormatConsole:
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	case FormatJSON:
		enc = zapcore.NewJSONEncoder(encCfg)
	default:
		return nil, fmt.Errorf("invalid log format %q", o.Format)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(w), cfg.Level)
	return zap.New(core), nil
}
