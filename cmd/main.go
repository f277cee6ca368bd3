package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pterm/pterm"

	"github.com/luca-patrignani/hashchain/config"
	"github.com/luca-patrignani/hashchain/ledger"
)

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "demo":
		err = runDemo(os.Args[2:], os.Stdout)
	case "serve":
		err = runServe(os.Args[2:])
	default:
		printUsage(os.Stderr)
		os.Exit(1)
	}

	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "usage: %s <command> [flags]\n", os.Args[0])
	fmt.Fprintln(w, "  demo [-config FILE] [-v] [VALUE...]  build a chain from VALUEs, print it and verify it")
	fmt.Fprintln(w, "  serve [-config FILE]                 serve the chain over HTTP")
}

// loadConfig reads the configuration and builds the logger it describes.
// verbose forces debug logging.
func loadConfig(path string, verbose bool) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return nil, nil, err
	}
	if verbose {
		level = slog.LevelDebug
	}
	return cfg, newLogger(level), nil
}

// newChain creates the genesis block described by cfg.
func newChain(cfg *config.Config, logger *slog.Logger) (*ledger.Blockchain, error) {
	digest, err := cfg.Digest()
	if err != nil {
		return nil, err
	}
	return ledger.NewBlockchain(cfg.Ledger.Genesis, ledger.WithDigest(digest), ledger.WithLogger(logger)), nil
}

// runDemo appends each value to a fresh chain, prints the chain and verifies
// it. A failed verification is returned as the error.
func runDemo(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	configPath := fs.String("config", "config.yaml", "Path to configuration file")
	verbose := fs.Bool("v", false, "Log every block visited by the verification")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, logger, err := loadConfig(*configPath, *verbose)
	if err != nil {
		return err
	}
	chain, err := newChain(cfg, logger)
	if err != nil {
		return err
	}

	values := fs.Args()
	if len(values) == 0 {
		values = []string{"123"}
	}
	for _, v := range values {
		chain.Append(v)
	}

	table, err := chainTable(chain.Blocks())
	if err != nil {
		return err
	}
	fmt.Fprintln(out, table)

	err = chain.Verify()
	fmt.Fprintln(out, verifyPanel(chain.Len(), err))
	return err
}
