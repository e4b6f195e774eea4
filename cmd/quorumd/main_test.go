package main

import (
	"os"
	"testing"

	"github.com/iov-one/quorum/cmd/quorumd/app"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/quorumtest/assert"
)

func setEnv(t *testing.T, vars map[string]string) func() {
	t.Helper()
	for k, v := range vars {
		assert.Nil(t, os.Setenv(k, v))
	}
	return func() {
		for k := range vars {
			os.Unsetenv(k)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	defer setEnv(t, map[string]string{
		"QUORUM_HOME":  "/tmp/quorum-home",
		"QUORUM_BIND":  "tcp://0.0.0.0:26658",
		"QUORUM_DEBUG": "true",
	})()

	c, err := loadConfig()
	assert.Nil(t, err)
	assert.Equal(t, "/tmp/quorum-home", c.Home)
	assert.Equal(t, "tcp://0.0.0.0:26658", c.Bind)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, true, c.Debug)

	_, err = c.newLogger()
	assert.Nil(t, err)
}

func TestLoadConfigErrors(t *testing.T) {
	defer setEnv(t, map[string]string{"QUORUM_DEBUG": "maybe"})()
	_, err := loadConfig()
	assert.IsErr(t, errors.ErrInput, err)

	c := config{LogLevel: "loud"}
	_, err = c.newLogger()
	assert.IsErr(t, errors.ErrInput, err)
}

func TestKeyAddress(t *testing.T) {
	addr, seed, err := app.GenerateKey()
	assert.Nil(t, err)

	got, err := keyAddress(seed)
	assert.Nil(t, err)
	assert.Equal(t, addr, got)

	_, err = keyAddress("zz")
	assert.IsErr(t, errors.ErrInput, err)
}

func TestRunRejectsUnknownCommands(t *testing.T) {
	assert.IsErr(t, errors.ErrInput, run(nil))
	assert.IsErr(t, errors.ErrInput, run([]string{"deploy"}))
}

func TestRunVersion(t *testing.T) {
	assert.Nil(t, run([]string{"version"}))
}
