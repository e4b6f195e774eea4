package main

import (
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/iov-one/quorum/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// config holds the process settings read from the environment. Command
// line flags take precedence.
type config struct {
	Home     string `env:"QUORUM_HOME"`
	Bind     string `env:"QUORUM_BIND"`
	LogLevel string `env:"QUORUM_LOG_LEVEL" envDefault:"info"`
	Debug    bool   `env:"QUORUM_DEBUG"`
}

func loadConfig() (config, error) {
	var c config
	if err := env.Parse(&c); err != nil {
		return c, errors.Wrapf(errors.ErrInput, "parse env: %s", err)
	}
	if c.Home == "" {
		c.Home = filepath.Join(os.ExpandEnv("$HOME"), ".quorum")
	}
	return c, nil
}

// newLogger returns a logger writing to stdout at the configured level.
func (c config) newLogger() (log.Logger, error) {
	allow, err := log.AllowLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "log level: %s", err)
	}
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout))
	return log.NewFilter(logger, allow).With("module", "quorum"), nil
}
