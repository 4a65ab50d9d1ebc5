package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/edaexport/internal/config"
	"github.com/KaramelBytes/edaexport/internal/report"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "edaexport",
	Short: "edaexport: render EDA metrics and analysis logs as DOCX/PDF reports",
	Long: `edaexport turns a dataset metrics record and the accumulated output of an
exploratory analysis session into a styled multi-page report: cover page,
executive summary with a quality grade, and either the detailed analyses or a
data-quality diagnostic.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if debug {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.edaexport/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c
}

// effectiveConfig returns the loaded config, loading it on demand when
// Execute was bypassed (tests drive rootCmd directly).
func effectiveConfig() *cfgpkg.Global {
	if cfg == nil {
		loadConfig()
	}
	if cfg == nil {
		cfg = &cfgpkg.Global{OutputDir: ".", DefaultFormat: "all", PageNumbers: true}
	}
	return cfg
}

func branding(c *cfgpkg.Global) report.Branding {
	return report.Branding{
		Title:     c.Title,
		Subtitle:  c.Subtitle,
		Product:   c.Product,
		Version:   c.Version,
		Copyright: c.Copyright,
	}
}
