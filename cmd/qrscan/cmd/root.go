// Package cmd implements the qrscan command tree.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ericlevine/qrdecode/internal/config"
)

// BuildInfo identifies the binary in `qrscan version`.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", b.Version, b.Commit, b.Date)
}

// app carries the state shared by every subcommand of one invocation.
type app struct {
	loader  *config.Loader
	cfgFile string
	cfg     *config.Config
	build   BuildInfo
}

// Execute runs the root command against os.Args.
func Execute(build BuildInfo) error {
	root := NewRootCommand(build)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// NewRootCommand builds a fresh qrscan command tree with its own
// configuration loader.
func NewRootCommand(build BuildInfo) *cobra.Command {
	a := &app{loader: config.NewLoader(), build: build}

	root := &cobra.Command{
		Use:   "qrscan",
		Short: "Decode QR codes in image files",
		Long: `qrscan locates and decodes every QR code in the given images.

Configuration is read from qrscan.yaml in the current directory,
$HOME/.config/qrscan or /etc/qrscan, then from QRSCAN_* environment
variables, then from flags.`,
		Version:       build.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loader.Load(a.cfgFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			setupLogging(cmd, cfg)
			if used := a.loader.ConfigFileUsed(); used != "" {
				slog.Debug("loaded configuration", "file", used)
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default searches ./qrscan.yaml, $HOME/.config/qrscan, /etc/qrscan)")
	flags.BoolP("verbose", "v", false, "verbose output (same as --log-level debug)")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	a.bind("verbose", flags.Lookup("verbose"))
	a.bind("log_level", flags.Lookup("log-level"))

	root.AddCommand(newDecodeCommand(a), newVersionCommand(a))
	return root
}

func setupLogging(cmd *cobra.Command, cfg *config.Config) {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func newVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "qrscan %s\n", a.build)
		},
	}
}
