package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/LeJamon/goPreauthLedger/internal/config"
	"github.com/LeJamon/goPreauthLedger/internal/di"
)

var (
	// Global flags
	configFile string
	debug      bool
	quiet      bool

	// Loaded by the root PersistentPreRunE
	cfg    *config.Config
	logger = logrus.New()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "preauthd",
	Short: "preauthd - issuer preauthorization ledger",
	Long: `preauthd maintains a ledger of accounts, trust lines and issuer
preauthorizations. Issuers can record an authorization decision for an
account before that account opens a trust line; the trust line inherits
the decision when it is created.`,
	Version:      "0.1.0-dev",
	SilenceUsage: true,
}

// noConfig marks commands that run without loading a configuration.
var noConfig = map[string]string{"config": "none"}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentPreRunE = loadConfig

	rootCmd.PersistentFlags().StringVar(&configFile, "conf", "", "configuration file path")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "log errors only")
}

// loadConfig reads the configuration and sets up logging.
func loadConfig(cmd *cobra.Command, _ []string) error {
	if cmd.Annotations["config"] == noConfig["config"] {
		return nil
	}

	loaded, err := config.LoadConfig(configFile)
	if err != nil {
		return err
	}
	cfg = loaded

	if err := setupLogger(logger, cfg.Log, cmd.ErrOrStderr()); err != nil {
		return err
	}
	logger.WithField("config", cfg.GetConfigPath()).Debug("configuration loaded")
	return nil
}

// setupLogger applies the [log] section and the verbosity flags to l.
func setupLogger(l *logrus.Logger, lc config.LogConfig, out io.Writer) error {
	level, err := logrus.ParseLevel(lc.Level)
	if err != nil {
		return err
	}
	switch {
	case debug:
		level = logrus.DebugLevel
	case quiet:
		level = logrus.ErrorLevel
	}
	l.SetLevel(level)
	l.SetOutput(out)

	if lc.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return nil
}

// withProvider builds the service container for one command run and
// closes it afterwards.
func withProvider(ctx context.Context, fn func(p *di.Provider) error) (err error) {
	container := di.New()
	p := di.NewProvider(container, cfg, logger)
	p.RegisterAll(ctx)

	defer func() {
		if cerr := container.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(p)
}
