package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/cmd/quorumd/app"
	"github.com/iov-one/quorum/commands/server"
	"github.com/iov-one/quorum/crypto"
	"github.com/iov-one/quorum/errors"
	"github.com/tendermint/tendermint/libs/log"
)

var home = flag.String("home", "", "directory to store files under (default $QUORUM_HOME or $HOME/.quorum)")

type command struct {
	help string
	run  func(c config, logger log.Logger, args []string) error
}

var commands = map[string]command{
	"init": {
		help: "Initialize app options in genesis file",
		run: func(c config, logger log.Logger, args []string) error {
			return server.InitCmd(app.GenInitOptions, logger, c.Home, args)
		},
	},
	"start": {
		help: "Run the abci server",
		run: func(c config, logger log.Logger, args []string) error {
			opts := server.Options{Home: c.Home, Logger: logger, Debug: c.Debug, Bind: c.Bind}
			return server.StartCmd(app.GenerateApp, opts, args)
		},
	},
	"validate": {
		help: "Check the app options of genesis files",
		run: func(_ config, _ log.Logger, args []string) error {
			if err := server.ValidateGenesis(app.Initializers(app.Ledger()), args); err != nil {
				return err
			}
			fmt.Println("genesis valid")
			return nil
		},
	},
	"keys": {
		help: "Derive the address of a key from its hex seed",
		run: func(_ config, _ log.Logger, args []string) error {
			return keysCmd(args)
		},
	},
	"version": {
		help: "Print the app version",
		run: func(config, log.Logger, []string) error {
			fmt.Println(quorum.Version())
			return nil
		},
	},
}

func usage() {
	fmt.Fprintln(os.Stderr, "quorumd: multi-party wallet ABCI application")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintf(os.Stderr, "  %-9s %s\n", "help", "Print this message")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %-9s %s\n", name, commands[name].help)
	}
	fmt.Fprintln(os.Stderr)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if err := run(flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n\n", err)
		usage()
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return errors.Wrap(errors.ErrInput, "missing command")
	}
	if args[0] == "help" {
		usage()
		return nil
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return errors.Wrapf(errors.ErrInput, "unknown command %q", args[0])
	}

	conf, err := loadConfig()
	if err != nil {
		return err
	}
	if *home != "" {
		conf.Home = *home
	}
	logger, err := conf.newLogger()
	if err != nil {
		return err
	}
	return cmd.run(conf, logger, args[1:])
}

// keysCmd prints the address of the key derived from a hex seed, or
// creates a new seed when none is given.
func keysCmd(args []string) error {
	if len(args) == 0 {
		addr, seed, err := app.GenerateKey()
		if err != nil {
			return err
		}
		fmt.Println("seed:   ", seed)
		fmt.Println("address:", addr)
		return nil
	}
	addr, err := keyAddress(args[0])
	if err != nil {
		return err
	}
	fmt.Println("address:", addr)
	return nil
}

func keyAddress(hexSeed string) (quorum.Address, error) {
	seed, err := hex.DecodeString(hexSeed)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "seed is not hex: %s", err)
	}
	key, err := crypto.DerivePrivKeyEd25519(seed, app.KeyPath)
	if err != nil {
		return nil, err
	}
	return key.PublicKey().Address(), nil
}
