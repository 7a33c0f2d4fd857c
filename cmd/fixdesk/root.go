package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fixdesk/internal/catalog"
	"fixdesk/internal/config"
	"fixdesk/internal/debug"
	"fixdesk/internal/ui"
	"fixdesk/internal/ui/theme"
)

type rootOptions struct {
	dbPath string
	theme  string
	debug  bool
	memory bool
	seed   string
}

type programRunner interface {
	Run() (tea.Model, error)
}

type programFactory func(*ui.App) programRunner

func defaultProgramFactory(app *ui.App) programRunner {
	return tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
}

func newRootCmd(factory programFactory) *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "fixdesk",
		Short: "Repair-service catalog admin",
		Long: `Edit devices, brands, warranties and the services that price them.

If no command is specified, the catalog editor opens.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setup(cmd, opts)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			debug.Close()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), opts, factory)
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	persistent := cmd.PersistentFlags()
	persistent.StringVar(&opts.dbPath, "db-path", "", "Path to the catalog database (default ~/.fixdesk/catalog.db)")
	persistent.StringVar(&opts.theme, "theme", "", "Color theme ("+strings.Join(theme.Available(), ", ")+")")
	persistent.BoolVar(&opts.debug, "debug", false, "Write a debug log to ~/.fixdesk/debug.log")

	cmd.Flags().BoolVar(&opts.memory, "memory", false, "Use a throwaway in-memory catalog")
	cmd.Flags().StringVar(&opts.seed, "seed", "", "YAML catalog to load before opening")

	cmd.AddCommand(newSeedCmd(), newVersionCmd())
	return cmd
}

// setup loads config, applies explicitly set flags over it, and starts
// logging.
func setup(cmd *cobra.Command, opts *rootOptions) error {
	if err := config.Initialize(); err != nil {
		return fmt.Errorf("initialize config: %w", err)
	}

	overrides := map[string]any{}
	flags := cmd.Flags()
	if flags.Changed("db-path") {
		overrides[config.KeyDatabasePath] = strings.TrimSpace(opts.dbPath)
	}
	if flags.Changed("theme") {
		overrides[config.KeyTheme] = strings.TrimSpace(opts.theme)
	}
	if flags.Changed("debug") {
		overrides[config.KeyDebug] = opts.debug
	}
	if flags.Changed("seed") {
		overrides[config.KeySeedPath] = strings.TrimSpace(opts.seed)
	}
	if err := config.ApplyOverrides(overrides); err != nil {
		return fmt.Errorf("apply flags: %w", err)
	}

	if err := debug.Init(config.GetBool(config.KeyDebug)); err != nil {
		return fmt.Errorf("initialize debug log: %w", err)
	}
	if name := config.GetString(config.KeyTheme); name != "" && !theme.SetTheme(name) {
		debug.Warn("unknown theme", zap.String("theme", name))
	}
	return nil
}

// openStore opens the configured SQLite catalog, or a memory store.
func openStore(ctx context.Context, memory bool) (catalog.Store, string, error) {
	if memory {
		return catalog.NewMemoryStore(), "in-memory", nil
	}
	path := config.GetString(config.KeyDatabasePath)
	if path == "" {
		var err error
		if path, err = config.DefaultDatabasePath(); err != nil {
			return nil, "", err
		}
	}
	//nolint:gosec // G301: the catalog lives in the user's config directory
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, "", fmt.Errorf("create database directory: %w", err)
	}
	store, err := catalog.OpenSQLite(ctx, path)
	if err != nil {
		return nil, "", err
	}
	return store, store.Path(), nil
}

func seedFromFile(ctx context.Context, store catalog.Store, path string) (catalog.SeedReport, error) {
	//nolint:gosec // G304: the seed path is supplied by the user
	f, err := os.Open(path)
	if err != nil {
		return catalog.SeedReport{}, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return catalog.Seed(ctx, store, f)
}

func runTUI(ctx context.Context, opts *rootOptions, factory programFactory) error {
	if ctx == nil {
		ctx = context.Background()
	}
	store, label, err := openStore(ctx, opts.memory)
	if err != nil {
		return err
	}
	defer store.Close()

	if path := config.GetString(config.KeySeedPath); path != "" {
		report, err := seedFromFile(ctx, store, path)
		if err != nil {
			return err
		}
		debug.Info("seeded catalog", zap.String("path", path), zap.Stringer("report", report))
	}

	app, err := ui.NewApp(ui.Config{
		Store:      store,
		StoreLabel: label,
		Version:    Version,
		Picker: ui.PickerConfig{
			Width:      config.GetInt(config.KeyPickerWidth),
			MaxVisible: config.GetInt(config.KeyPickerMaxVisible),
		},
	})
	if err != nil {
		return fmt.Errorf("initialize UI: %w", err)
	}
	return runProgram(app, factory)
}

func runProgram(app *ui.App, factory programFactory) error {
	if factory == nil {
		return fmt.Errorf("program factory is nil")
	}
	prog := factory(app)
	if prog == nil {
		return fmt.Errorf("program is nil")
	}
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("run UI: %w", err)
	}
	return nil
}
