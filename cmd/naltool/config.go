package main

import (
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nareix/h264bits/format"
)

const envPrefix = "NALTOOL"

// Config is read from NALTOOL_* variables first; command line flags
// override it.
type Config struct {
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
	MaxNALUSize    int    `envconfig:"MAX_NALU_SIZE" default:"64000"`
	ReadBufferSize int    `envconfig:"READ_BUFFER_SIZE" default:"65536"`
	LengthSize     int    `envconfig:"LENGTH_SIZE" default:"4"`
	Trace          bool   `envconfig:"TRACE"`
}

func loadConfig() (cfg Config, err error) {
	if err = envconfig.Process(envPrefix, &cfg); err != nil {
		err = errors.Wrap(err, "load config")
	}
	return
}

func (c *Config) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.IntVar(&c.MaxNALUSize, "max-nalu-size", c.MaxNALUSize, "largest NAL unit accepted, in bytes")
	fs.IntVar(&c.ReadBufferSize, "read-buffer-size", c.ReadBufferSize, "input buffer size, in bytes")
	fs.IntVar(&c.LengthSize, "length-size", c.LengthSize, "AVCC length prefix size: 1, 2 or 4")
	fs.BoolVar(&c.Trace, "trace", c.Trace, "print every decoded syntax element")
}

func (c *Config) Validate() error {
	if c.MaxNALUSize <= 0 {
		return errors.Errorf("max nalu size %d must be positive", c.MaxNALUSize)
	}
	if c.ReadBufferSize <= 0 {
		return errors.Errorf("read buffer size %d must be positive", c.ReadBufferSize)
	}
	switch c.LengthSize {
	case 1, 2, 4:
	default:
		return errors.Errorf("length size %d must be 1, 2 or 4", c.LengthSize)
	}
	return nil
}

func (c *Config) Opener() *format.Opener {
	o := format.NewOpener()
	o.MaxNALUSize = c.MaxNALUSize
	o.BufferSize = c.ReadBufferSize
	o.LengthSize = c.LengthSize
	return o
}

func newLogger(level string) (*zap.SugaredLogger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, errors.Wrapf(err, "log level %q", level)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.Encoding = "console"
	zc.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	l, err := zc.Build()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}
