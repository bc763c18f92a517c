package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"iconview/internal/catalog"
	"iconview/internal/category"
	"iconview/internal/config"
	"iconview/internal/logging"
	"iconview/internal/models"
	"iconview/internal/query"
	"iconview/internal/theme"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	themeFlag          string
	sizeFlag           int
	searchPathsFlag    []string
	categoriesFileFlag string
	logLevelFlag       string
	debugMode          bool
)

var rootCmd = &cobra.Command{
	Use:   "iconview",
	Short: "Browse and query the installed icon theme",
	Long: `iconview indexes every icon name of the current freedesktop icon theme,
resolves symlinked icons to the icons they alias and lets you search and
filter the catalog by name, tags, categories, symlink and symbolic state.

Run without a subcommand to start the interactive browser.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE:          runTUI,
}

func init() {
	rootCmd.SetVersionTemplate("iconview {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&themeFlag, "theme", "", "Icon theme to open (default: detected)")
	rootCmd.PersistentFlags().IntVar(&sizeFlag, "size", 0, "Icon size in pixels used for lookups")
	rootCmd.PersistentFlags().StringSliceVar(&searchPathsFlag, "search-path", nil, "Icon theme base directory (repeatable)")
	rootCmd.PersistentFlags().StringVar(&categoriesFileFlag, "categories-file", "", "YAML file with category definitions")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVarP(&debugMode, "debug", "d", false, "Enable debug logging")
}

// session is everything a command needs to build and query a catalog
type session struct {
	cfg      *config.Config
	defs     []category.Definition
	theme    *theme.Theme
	builder  *catalog.Builder
	closeLog func() error
}

// newSession loads configuration, installs logging and opens the icon
// theme. console receives human readable log output (nil for the TUI).
func newSession(cmd *cobra.Command, console io.Writer) (*session, error) {
	// .env in the working directory is optional
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	applyFlags(cmd, cfg)

	closeLog, err := logging.Setup(logging.Options{
		File:    cfg.LogFile,
		Level:   cfg.LogLevel,
		Debug:   debugMode,
		Console: console,
	})
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg, closeLog: closeLog}
	if err := s.open(); err != nil {
		_ = closeLog()
		return nil, err
	}
	return s, nil
}

// open loads category definitions and the icon theme
func (s *session) open() error {
	defs, err := category.NewStore(s.cfg.CategoriesPath()).Load()
	if err != nil {
		return err
	}
	s.defs = defs

	th, err := theme.Open(theme.Options{
		Name:        s.cfg.Theme,
		SearchPaths: s.cfg.SearchPaths,
	})
	if err != nil {
		return err
	}
	s.theme = th
	s.builder = catalog.NewBuilder(th, s.cfg.Workers)

	log.Info().
		Str("theme", th.Name()).
		Strs("chain", th.Chain()).
		Int("categories", len(defs)).
		Msg("session opened")
	return nil
}

// Close releases the log file
func (s *session) Close() {
	if s.closeLog != nil {
		_ = s.closeLog()
	}
}

// themeName returns the name of the opened theme
func (s *session) themeName() string {
	if s.theme == nil {
		return ""
	}
	return s.theme.Name()
}

// options returns the configured initial filter state
func (s *session) options() query.Options {
	return optionsFromConfig(s.cfg, s.defs)
}

// optionsFromConfig maps configuration onto engine options
func optionsFromConfig(cfg *config.Config, defs []category.Definition) query.Options {
	opts := query.DefaultOptions(defs)
	opts.SearchTags = cfg.SearchTags
	opts.Symlink = cfg.SymlinkFilter
	opts.Symbolic = cfg.SymbolicFilter
	opts.ShowDangling = cfg.ShowDangling
	if len(cfg.Categories) > 0 {
		opts.Categories = cfg.Categories
	}
	return opts
}

// resolveAliases drains a resolver run, applying every batch in order
func resolveAliases(ctx context.Context, engine *query.Engine, batchSize int) (catalog.AliasBatch, error) {
	var last catalog.AliasBatch
	for batch := range catalog.NewResolver(batchSize).Start(ctx, engine.Catalog()) {
		engine.ApplyAliases(batch)
		last = batch
	}
	if err := ctx.Err(); err != nil {
		return last, fmt.Errorf("resolve aliases: %w", err)
	}
	return last, nil
}

// applyFlags overrides configuration with explicitly set flags
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("theme") {
		cfg.Theme = themeFlag
	}
	if flags.Changed("size") && sizeFlag > 0 {
		cfg.IconSize = sizeFlag
	}
	if flags.Changed("search-path") {
		cfg.SearchPaths = searchPathsFlag
	}
	if flags.Changed("categories-file") {
		cfg.CategoriesFile = categoriesFileFlag
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevelFlag
	}
}

// parseFilterFlag parses a filter mode flag value
func parseFilterFlag(name, value string) (models.FilterMode, error) {
	mode, err := models.ParseFilterMode(value)
	if err != nil {
		return mode, fmt.Errorf("--%s: %w", name, err)
	}
	return mode, nil
}

// stderr is where non-TUI commands mirror their log output
func stderr() io.Writer {
	if debugMode {
		return os.Stderr
	}
	return nil
}
