package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/vyparse/asdl"
	"github.com/dhamidi/vyparse/config"

	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("vyparse.vyp")

// app holds the global flags and the configuration they resolve to.
type app struct {
	configPath string
	verbose    int
	logFile    string

	cfg *config.Config
}

func main() {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "vyp",
		Short: "Parse and check ASDL schema files",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "configuration file (default: vyparse.toml or vyparse.yaml in the current directory or a parent)")
	rootCmd.PersistentFlags().CountVarP(&a.verbose, "verbose", "v", "increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().StringVar(&a.logFile, "log-file", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(newParseCmd(a))
	rootCmd.AddCommand(newCheckCmd(a))
	rootCmd.AddCommand(newGrammarCmd())
	rootCmd.AddCommand(newLSPCmd(a))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("verbose") {
		cfg.Log.Verbosity = a.verbose
	}
	if cmd.Flags().Changed("log-file") {
		cfg.Log.File = a.logFile
	}
	commonlog.Configure(cfg.Log.Verbosity, cfg.LogFile())

	a.cfg = cfg
	return nil
}

func (a *app) loadConfig() (*config.Config, error) {
	path := a.configPath
	if path == "" {
		found, err := config.Discover(".")
		switch {
		case errors.Is(err, config.ErrNotFound):
			return config.Default(), nil
		case err != nil:
			return nil, fmt.Errorf("discover config: %w", err)
		}
		path = found
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log.Debugf("loaded configuration from %s", path)
	return cfg, nil
}

func (a *app) parseOptions() []asdl.Option {
	opts := []asdl.Option{asdl.WithMaxInputBytes(a.cfg.Parse.MaxInputBytes)}
	if a.cfg.Parse.Trace {
		opts = append(opts, asdl.WithTrace())
	}
	return opts
}
