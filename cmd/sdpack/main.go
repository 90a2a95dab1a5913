package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/tes4tools/sdpack/internal/config"
	"github.com/tes4tools/sdpack/internal/sdp"
)

var (
	cfg     *config.Config
	cfgFile string

	dbPath     string
	charset    string
	extensions []string
	logLevel   string
	logFormat  string
	noProgress bool
)

var rootCmd = &cobra.Command{
	Use:   "sdpack",
	Short: "Oblivion shader package (.sdp) pack and unpack tool",
	Long: `sdpack reads and writes the shader package files Oblivion loads from
Data/Shaders. A package bundles compiled .vso/.pso shader binaries into a
single archive.

The tool packs a directory of loose shader object files into a package,
unpacks a package back into loose files, lists package contents, and can
index package metadata into a queryable SQLite catalog.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		if cmd.Flags().Changed("database") {
			cfg.Database = dbPath
		}
		if cmd.Flags().Changed("charset") {
			cfg.Charset = charset
		}
		if cmd.Flags().Changed("extensions") {
			cfg.Extensions = extensions
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if cmd.Flags().Changed("log-format") {
			cfg.LogFormat = logFormat
		}

		var level slog.Level
		switch cfg.LogLevel {
		case "debug":
			level = slog.LevelDebug
		case "info":
			level = slog.LevelInfo
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		default:
			level = slog.LevelInfo
		}

		var handler slog.Handler
		if cfg.LogFormat == "json" {
			handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})
		} else {
			handler = tint.NewHandler(os.Stderr, &tint.Options{
				Level: level,
			})
		}

		logger := slog.New(handler)
		slog.SetDefault(logger)

		slog.Debug("Configuration",
			"database", cfg.Database,
			"charset", cfg.Charset,
			"extensions", cfg.Extensions,
			"log_level", cfg.LogLevel,
			"log_format", cfg.LogFormat)

		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is sdpack.yaml in pwd or home)")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "database", "d", "", "catalog database file path")
	rootCmd.PersistentFlags().StringVar(&charset, "charset", "", "single-byte charset for entry names")
	rootCmd.PersistentFlags().StringSliceVar(&extensions, "extensions", []string{}, "comma-separated loose shader extensions to pack")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (text, json)")
	rootCmd.PersistentFlags().BoolVar(&noProgress, "no-progress", false, "disable progress bar")
}

// codecOptions resolves the configured name charset into codec options.
func codecOptions() ([]sdp.Option, error) {
	if cfg.Charset == "" {
		return nil, nil
	}
	cm, err := sdp.LookupCharset(cfg.Charset)
	if err != nil {
		return nil, err
	}
	return []sdp.Option{sdp.WithCharset(cm)}, nil
}
