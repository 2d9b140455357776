// Package commands implements the fsops command line.
package commands

import (
	"fmt"

	"fsops/internal/config"
	"fsops/internal/logging"
	"fsops/internal/metrics"
	"fsops/pkg/fileops"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// app carries the state shared by every subcommand. It is filled in by the root
// command's PersistentPreRunE once flags have been parsed.
type app struct {
	fs afero.Fs

	// Global flags.
	cfgFile string
	debug   bool

	cfg      *config.Config
	logger   *logging.AppLogger
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	manager  *fileops.Manager
}

// Execute builds the command tree over the OS filesystem and runs it.
// This is called by main.main().
func Execute() error {
	return NewRootCmd(afero.NewOsFs()).Execute()
}

// NewRootCmd returns the fsops command tree operating on fsys.
func NewRootCmd(fsys afero.Fs) *cobra.Command {
	a := &app{fs: fsys}

	rootCmd := &cobra.Command{
		Use:   "fsops",
		Short: "fsops - conflict-aware file moves and copies",
		Long: `fsops moves, copies and renames files while deciding what to do when the
destination already exists: fail, skip, overwrite, rename to "name (N).ext", or keep
whichever file is larger or newer.

It also provides advisory lock markers, atomic-ish name swaps and an MCP tool server
exposing the same operations.

Use "fsops [command] --help" for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/fsops/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(
		newTransferCmd(a, fileops.OpMove),
		newTransferCmd(a, fileops.OpCopy),
		newSwapCmd(a),
		newLockCmd(a),
		newUnlockCmd(a),
		newLockedCmd(a),
		newNextNameCmd(a),
		newFirstCmd(a),
		newDuCmd(a),
		newMCPCmd(a),
		newVersionCmd(),
	)
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	return rootCmd
}

// setup loads configuration and builds the logger, metrics and file manager.
func (a *app) setup(cmd *cobra.Command) error {
	var (
		cfg *config.Config
		err error
	)
	if a.cfgFile != "" {
		cfg, err = config.LoadFrom(a.cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a.cfg = cfg

	a.logger = logging.NewAppLogger()
	a.logger.SetOutput(cmd.ErrOrStderr())
	if err := a.logger.SetLevel(cfg.LogLevel); err != nil {
		return err
	}
	if a.debug {
		_ = a.logger.SetLevel("debug")
	}

	a.registry = prometheus.NewRegistry()
	a.metrics = metrics.NewMetrics(a.registry)
	a.manager = a.newManager()

	a.logger.Debug("Configuration loaded",
		"default_policy", cfg.DefaultPolicy,
		"create_parents", cfg.CreateParents,
		"metrics", cfg.Metrics.Enabled)
	return nil
}

// newManager builds a Manager from the loaded config; extra options are applied last.
func (a *app) newManager(extra ...fileops.Option) *fileops.Manager {
	opts := append(a.cfg.ManagerOptions(),
		fileops.WithLogger(a.logger.Logger()),
		fileops.WithObserver(a.metrics),
	)
	return fileops.New(a.fs, append(opts, extra...)...)
}

func (a *app) printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
