package server

import (
	"flag"

	"github.com/iov-one/quorum/errors"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagBind  = "bind"
	flagDebug = "debug"

	// DefaultBind is the address the ABCI server listens on unless told
	// otherwise.
	DefaultBind = "tcp://localhost:26658"
)

// Options are passed to the application generator.
type Options struct {
	// Home is the directory the application keeps its data in. Empty
	// means an in memory database.
	Home   string
	Logger log.Logger
	// Debug returns stack traces with the errors.
	Debug bool
	// Bind is the address of the ABCI server.
	Bind string
}

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags
type AppGenerator func(*Options) (abci.Application, error)

func parseFlags(opts *Options, args []string) error {
	startFlags := flag.NewFlagSet("start", flag.ContinueOnError)
	startFlags.StringVar(&opts.Bind, flagBind, opts.Bind, "address server listens on")
	startFlags.BoolVar(&opts.Debug, flagDebug, opts.Debug, "call stack returned on error")
	if err := startFlags.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if opts.Bind == "" {
		opts.Bind = DefaultBind
	}
	return nil
}

// StartCmd initializes the application and serves it over ABCI until
// the process is signaled. Flags override the values already set in
// opts.
func StartCmd(gen AppGenerator, opts Options, args []string) error {
	if err := parseFlags(&opts, args); err != nil {
		return err
	}
	if opts.Logger == nil {
		opts.Logger = log.NewNopLogger()
	}

	app, err := gen(&opts)
	if err != nil {
		return err
	}

	opts.Logger.Info("Starting ABCI app", "bind", opts.Bind)
	svr, err := server.NewServer(opts.Bind, "socket", app)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot create listener: %s", err)
	}
	svr.SetLogger(opts.Logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrapf(errors.ErrState, "cannot start server: %s", err)
	}

	cmn.TrapSignal(opts.Logger, func() {
		if err := svr.Stop(); err != nil {
			opts.Logger.Error("Cannot stop server", "err", err)
		}
	})

	// Run forever.
	select {}
}
