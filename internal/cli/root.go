// Package cli implements the talk command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/opencode-ai/talk/internal/clipboard"
	"github.com/opencode-ai/talk/internal/config"
	"github.com/opencode-ai/talk/internal/db"
	"github.com/opencode-ai/talk/internal/library"
	"github.com/opencode-ai/talk/internal/logging"
)

var (
	// Version is set at build time.
	Version = "dev"

	cfgFile        string
	dbPath         string
	jsonOutput     bool
	jsonlOutput    bool
	logLevel       string
	nonInteractive bool
	noColor        bool
	noProgress     bool

	appConfig *config.Config
	logger    = zerolog.Nop()
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "talk",
	Short: "Reusable text templates with {{placeholders}}",
	Long: `talk stores reusable text templates containing {{name}} placeholders
and generates finished text by filling in values.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initRuntime()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ~/.config/talk/config.yaml)")
	flags.StringVar(&dbPath, "db", "", "database path (overrides config)")
	flags.BoolVar(&jsonOutput, "json", false, "output JSON")
	flags.BoolVar(&jsonlOutput, "jsonl", false, "output JSON lines")
	flags.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.BoolVar(&nonInteractive, "non-interactive", false, "never prompt; use flags and defaults")
	flags.BoolVar(&noColor, "no-color", false, "disable colored output")
	flags.BoolVar(&noProgress, "no-progress", false, "disable progress output")
}

// Execute runs the root command.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		notifyError(err)
		return 1
	}
	return 0
}

func initRuntime() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	appConfig = cfg

	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		noColor = true
	}
	if noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	built, closer, err := logging.New(logging.Config{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		File:    cfg.Logging.File,
		NoColor: noColor,
	}, os.Stderr)
	if err != nil {
		return err
	}
	logger = built
	logCloser = closer
	return nil
}

// GetConfig returns the loaded configuration.
func GetConfig() *config.Config {
	if appConfig == nil {
		return config.DefaultConfig()
	}
	return appConfig
}

func openDatabase() (*db.DB, error) {
	cfg := GetConfig()

	dbCfg := db.DefaultConfig(cfg.Database.Path)
	dbCfg.BusyTimeout = time.Duration(cfg.Database.BusyTimeoutMs) * time.Millisecond
	dbCfg.Logger = logging.Component(logger, "db")

	database, err := db.Open(dbCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	applied, err := database.MigrateUp(context.Background())
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	if applied > 0 {
		logger.Info().Str("path", database.Path()).Int("migrations", applied).Msg("database migrated")
	}
	return database, nil
}

// openLibrary opens the database and builds the template service. The
// starter templates are stored on first use unless disabled in config.
func openLibrary(ctx context.Context) (*library.Service, func(), error) {
	database, err := openDatabase()
	if err != nil {
		return nil, nil, err
	}

	cfg := GetConfig()
	service := library.NewService(
		db.NewTemplateRepository(database),
		library.WithEventRepository(db.NewEventRepository(database)),
		library.WithClipboard(clipboard.NewCommand(cfg.Clipboard.Command)),
		library.WithLogger(logging.Component(logger, "library")),
	)

	if cfg.Database.SeedWhenEmpty {
		if _, err := service.Seed(ctx); err != nil {
			logger.Warn().Err(err).Msg("failed to seed starter templates")
		}
	}

	return service, func() { database.Close() }, nil
}
