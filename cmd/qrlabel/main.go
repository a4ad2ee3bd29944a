package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/AndreasL7/qrlabel/internal/config"
	"github.com/AndreasL7/qrlabel/internal/fonts"
	"github.com/AndreasL7/qrlabel/internal/label"
	"github.com/AndreasL7/qrlabel/internal/logging"
	"github.com/AndreasL7/qrlabel/internal/pages"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const defaultConfigPath = "conf/config.yaml"

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "qrlabel",
		Short: "Labeled QR-code batch generator",
		Long:  "qrlabel renders labeled QR-code images from a list of locations and packs them into a printable document.",

		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "path to config file (default: conf/config.yaml if present)")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().Bool("dev-mode", false, "enable development mode (text logs)")

	root.AddCommand(
		newGenerateCmd(),
		newCompileCmd(),
		newRunCmd(),
		newVersionCmd(),
	)

	return root
}

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render one labeled QR PNG per configured location",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			return generate(cfg, logger)
		},
	}
	cmd.Flags().String("output-dir", "", "directory receiving the PNGs (overrides settings.output_dir)")
	return cmd
}

func newCompileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Pack the generated PNGs into a landscape PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			return compile(cfg, logger)
		},
	}
	cmd.Flags().String("out", "", "document output path (overrides document.output_path)")
	return cmd
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate all labels, then compile the document",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			if err := generate(cfg, logger); err != nil {
				return err
			}
			return compile(cfg, logger)
		},
	}
	cmd.Flags().String("output-dir", "", "directory receiving the PNGs (overrides settings.output_dir)")
	cmd.Flags().String("out", "", "document output path (overrides document.output_path)")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("qrlabel %s\n", version)
			fmt.Printf("  commit: %s\n", commit)
			fmt.Printf("  built:  %s\n", date)
		},
	}
}

// setup loads configuration, applies flag overrides, and builds the logger
// shared by both components.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		if _, err := os.Stat(defaultConfigPath); err == nil {
			configPath = defaultConfigPath
		}
	}

	cfg, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	// Flag overrides that don't map directly to koanf paths.
	if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
		level, _ := cmd.Flags().GetString("log-level")
		cfg.Logging.Level = level
	}
	if f := cmd.Flags().Lookup("output-dir"); f != nil && f.Changed {
		dir, _ := cmd.Flags().GetString("output-dir")
		cfg.Settings.OutputDir = dir
	}
	if f := cmd.Flags().Lookup("out"); f != nil && f.Changed {
		out, _ := cmd.Flags().GetString("out")
		cfg.Document.OutputPath = out
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	devMode, _ := cmd.Flags().GetBool("dev-mode")
	logger := logging.New(logging.Config{
		Level:   parseLogLevel(cfg.Logging.Level),
		DevMode: devMode || cfg.Logging.Format == "text",
	})

	logger.Info("qrlabel_starting",
		"version", version,
		"go_version", runtime.Version(),
		"os", runtime.GOOS,
		"arch", runtime.GOARCH,
		"locations", len(cfg.Locations),
		"output_dir", cfg.Settings.OutputDir,
		"component", "main",
	)

	return cfg, logger, nil
}

func generate(cfg *config.Config, logger *slog.Logger) error {
	face := fonts.Resolve(fonts.DiskLoader{}, runtime.GOOS, float64(cfg.Settings.FontSize))

	gen := &label.Generator{
		Face:    face,
		BoxSize: cfg.Settings.BoxSize,
		Padding: cfg.Settings.Padding,
		Logger:  logger,
	}
	if err := gen.GenerateAll(cfg.Locations, cfg.Settings.OutputDir); err != nil {
		return fmt.Errorf("generate labels: %w", err)
	}
	return nil
}

func compile(cfg *config.Config, logger *slog.Logger) error {
	c := &pages.Compiler{Logger: logger}
	if err := c.Compile(cfg.Settings.OutputDir, cfg.Document.OutputPath); err != nil {
		return fmt.Errorf("compile document: %w", err)
	}
	return nil
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
