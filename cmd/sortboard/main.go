package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/evanschultz/sortboard/internal/adapters/server"
	"github.com/evanschultz/sortboard/internal/adapters/server/common"
	"github.com/evanschultz/sortboard/internal/adapters/storage/sqlite"
	"github.com/evanschultz/sortboard/internal/app"
	"github.com/evanschultz/sortboard/internal/config"
	"github.com/evanschultz/sortboard/internal/platform"
	"github.com/evanschultz/sortboard/internal/tui"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// version stores a package-level helper value.
var version = "dev"

// program represents program data used by this package.
type program interface {
	Run() (tea.Model, error)
}

// programFactory stores a package-level helper value.
var programFactory = func(m tea.Model) program {
	return tea.NewProgram(m)
}

// main handles main.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// run builds the command tree and executes it through fang.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetIn(os.Stdin)
	return fang.Execute(ctx, root, fang.WithVersion(version))
}

// rootOptions holds persistent flag values shared by every command.
type rootOptions struct {
	configPath string
	dbPath     string
	appName    string
	devMode    bool
}

// newRootCmd constructs the sortboard command tree.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	defaultDevMode := version == "dev"
	if envDev, ok := parseBoolEnv("SORTBOARD_DEV_MODE"); ok {
		defaultDevMode = envDev
	}
	defaultApp := platform.DefaultAppName
	if envApp := strings.TrimSpace(os.Getenv("SORTBOARD_APP_NAME")); envApp != "" {
		defaultApp = envApp
	}

	root := &cobra.Command{
		Use:          "sortboard",
		Short:        "Drag cards between columns in the terminal",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Open the board
  sortboard

  # Serve REST and MCP on localhost
  sortboard serve --http 127.0.0.1:5437

  # Show the latest journaled gestures
  sortboard events --limit 20
`),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config TOML")
	root.PersistentFlags().StringVar(&opts.dbPath, "db", "", "path to sqlite journal database")
	root.PersistentFlags().StringVar(&opts.appName, "app", defaultApp, "application name for config/data path resolution")
	root.PersistentFlags().BoolVar(&opts.devMode, "dev", defaultDevMode, "use dev mode paths (<app>-dev)")

	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newPathsCmd(opts))
	root.AddCommand(newBoardCmd(opts))
	root.AddCommand(newEventsCmd(opts))
	root.AddCommand(newPaletteCmd())
	root.AddCommand(newInitCmd(opts))
	return root
}

// newServeCmd constructs the serve command.
func newServeCmd(opts *rootOptions) *cobra.Command {
	var (
		httpBind    string
		apiEndpoint string
		mcpEndpoint string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the board over REST and MCP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := openRuntime(cmd, opts, "serve", true)
			if err != nil {
				return err
			}
			defer rt.Close()

			cfg := server.Config{
				HTTPBind:      firstNonEmpty(httpBind, rt.cfg.Server.HTTPBind),
				APIEndpoint:   firstNonEmpty(apiEndpoint, rt.cfg.Server.APIEndpoint),
				MCPEndpoint:   firstNonEmpty(mcpEndpoint, rt.cfg.Server.MCPEndpoint),
				ServerName:    "sortboard",
				ServerVersion: version,
				OnListen: func(addr string) {
					rt.logger.Info("serve listening", "addr", addr)
				},
			}
			adapter := common.NewAppServiceAdapter(rt.svc)
			deps := server.Dependencies{Board: adapter}
			if rt.repo != nil {
				deps.Journal = adapter
			}
			rt.logger.Info("serve starting", "http_bind", cfg.HTTPBind, "api_endpoint", cfg.APIEndpoint, "mcp_endpoint", cfg.MCPEndpoint, "journal", rt.repo != nil)
			if err := server.Run(cmd.Context(), cfg, deps); err != nil {
				rt.logger.Error("serve failed", "err", err)
				return fmt.Errorf("run server: %w", err)
			}
			rt.logger.Info("serve stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&httpBind, "http", "", "HTTP bind address (default from config)")
	cmd.Flags().StringVar(&apiEndpoint, "api-endpoint", "", "REST API base path")
	cmd.Flags().StringVar(&mcpEndpoint, "mcp-endpoint", "", "MCP streamable HTTP endpoint")
	return cmd
}

// newPathsCmd constructs the paths command.
func newPathsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print resolved config, data, and log paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			paths, err := resolvePaths(opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "app: %s\n", opts.appName)
			_, _ = fmt.Fprintf(out, "dev_mode: %t\n", opts.devMode)
			_, _ = fmt.Fprintf(out, "config: %s\n", paths.ConfigPath)
			_, _ = fmt.Fprintf(out, "data_dir: %s\n", paths.DataDir)
			_, _ = fmt.Fprintf(out, "db: %s\n", paths.DBPath)
			_, _ = fmt.Fprintf(out, "log_dir: %s\n", paths.LogDir)
			return nil
		},
	}
}

// newBoardCmd constructs the board command.
func newBoardCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Print the starting board as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := openRuntime(cmd, opts, "board", false)
			if err != nil {
				return err
			}
			defer rt.Close()

			encoded, err := json.MarshalIndent(rt.svc.ExportSnapshot(cmd.Context()), "", "  ")
			if err != nil {
				return fmt.Errorf("encode board json: %w", err)
			}
			encoded = append(encoded, '\n')
			if _, err := cmd.OutOrStdout().Write(encoded); err != nil {
				return fmt.Errorf("write board json: %w", err)
			}
			return nil
		},
	}
}

// newEventsCmd constructs the events command.
func newEventsCmd(opts *rootOptions) *cobra.Command {
	var (
		limit     int
		sessionID string
		asJSON    bool
	)
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List journaled drag events, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must be >= 0")
			}
			rt, err := openRuntime(cmd, opts, "events", true)
			if err != nil {
				return err
			}
			defer rt.Close()

			events, err := common.NewAppServiceAdapter(rt.svc).ListDragEvents(cmd.Context(), common.ListDragEventsRequest{
				SessionID: sessionID,
				Limit:     limit,
			})
			if err != nil {
				return fmt.Errorf("list drag events: %w", err)
			}
			if asJSON {
				encoded, err := json.MarshalIndent(events, "", "  ")
				if err != nil {
					return fmt.Errorf("encode events json: %w", err)
				}
				_, err = cmd.OutOrStdout().Write(append(encoded, '\n'))
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), renderEventsTable(events))
			return err
		},
	}
	cmd.Flags().IntVar(&limit, "limit", app.DefaultEventLimit, "maximum events to list")
	cmd.Flags().StringVar(&sessionID, "session", "", "only list events of one drag session")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print events as JSON")
	return cmd
}

// newPaletteCmd constructs the palette command.
func newPaletteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "palette",
		Short: "Show the style-tag tokens items can use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), renderPalette(tui.StyleTagPalette()))
			return err
		},
	}
}

// newInitCmd constructs the init command.
func newInitCmd(opts *rootOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			paths, err := resolvePaths(opts)
			if err != nil {
				return err
			}
			configPath := resolveConfigPath(opts, paths)
			dbPath := firstNonEmpty(strings.TrimSpace(opts.dbPath), paths.DBPath)
			if err := config.WriteFile(configPath, config.Default(dbPath), force); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", configPath)
			return err
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

// runTUI runs the terminal board until the user quits.
func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	rt, err := openRuntime(cmd, opts, "tui", true)
	if err != nil {
		return err
	}
	defer rt.Close()

	ui := rt.cfg.UI
	m := tui.NewModel(
		rt.svc,
		tui.WithDisplayConfig(tui.DisplayConfig{
			ShowItemIDs:   ui.ShowItemIDs,
			ShowStyleTags: ui.ShowStyleTags,
			ColumnWidth:   ui.ColumnWidth,
			Mouse:         ui.Mouse,
		}),
		tui.WithKeyConfig(tui.KeyConfig{
			PickUp:  ui.Keys.PickUp,
			Journal: ui.Keys.Journal,
			CopyID:  ui.Keys.CopyID,
			Reset:   ui.Keys.Reset,
		}),
		tui.WithJournalLimit(ui.JournalLimit),
	)
	rt.logger.Info("starting tui program loop")
	if _, err := programFactory(m).Run(); err != nil {
		rt.logger.Error("tui program terminated with error", "err", err)
		return fmt.Errorf("run tui program: %w", err)
	}
	rt.logger.Info("command flow complete", "command", "tui")
	return nil
}

// runtimeEnv bundles the resolved config, logger, journal, and service of one command.
type runtimeEnv struct {
	cfg    config.Config
	logger *runtimeLogger
	repo   *sqlite.Repository
	svc    *app.Service
	stderr io.Writer
}

// Close releases the journal and log sinks.
func (rt *runtimeEnv) Close() {
	if rt.repo != nil {
		if err := rt.repo.Close(); err != nil {
			rt.logger.Warn("sqlite close failed", "db_path", rt.cfg.Database.Path, "err", err)
		}
	}
	if err := rt.logger.Close(); err != nil && rt.logger.shouldLogToSink(rt.logger.consoleSink) {
		_, _ = fmt.Fprintf(rt.stderr, "warning: close runtime log sink: %v\n", err)
	}
}

// openRuntime resolves paths and config, configures logging, and builds the
// service. The journal is opened only when wantJournal is set and enabled in config.
func openRuntime(cmd *cobra.Command, opts *rootOptions, command string, wantJournal bool) (*runtimeEnv, error) {
	paths, err := resolvePaths(opts)
	if err != nil {
		return nil, err
	}

	configPath := resolveConfigPath(opts, paths)
	dbPath := strings.TrimSpace(opts.dbPath)
	dbOverridden := dbPath != ""
	if !dbOverridden {
		if envPath := strings.TrimSpace(os.Getenv("SORTBOARD_DB_PATH")); envPath != "" {
			dbPath = envPath
			dbOverridden = true
		} else {
			dbPath = paths.DBPath
		}
	}

	cfg, err := config.Load(configPath, config.Default(dbPath))
	if err != nil {
		return nil, fmt.Errorf("load config %q: %w", configPath, err)
	}
	if dbOverridden {
		cfg.Database.Path = dbPath
	}
	if strings.TrimSpace(cfg.Logging.DevFile.Dir) == "" {
		cfg.Logging.DevFile.Dir = paths.LogDir
	}

	stderr := cmd.ErrOrStderr()
	logger, err := newRuntimeLogger(stderr, opts.appName, opts.devMode, cfg.Logging, time.Now)
	if err != nil {
		return nil, fmt.Errorf("configure runtime logger: %w", err)
	}
	rt := &runtimeEnv{cfg: cfg, logger: logger, stderr: stderr}
	if command == "tui" {
		// Keep TUI rendering clean: runtime logs stay in the dev-file sink while the board is active.
		logger.SetConsoleEnabled(false)
	}

	logger.Info("startup configuration resolved", "app", opts.appName, "dev_mode", opts.devMode, "command", command)
	logger.Debug("runtime paths resolved", "config_path", configPath, "data_dir", paths.DataDir, "db_path", cfg.Database.Path)
	if devPath := logger.DevLogPath(); devPath != "" {
		logger.Info("dev file logging enabled", "path", devPath)
	}

	seed, err := cfg.Board.Seed()
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("build seed board: %w", err)
	}

	var journal app.Journal
	if wantJournal && (cfg.Board.Journal || command == "events") {
		logger.Info("opening sqlite journal", "db_path", cfg.Database.Path)
		repo, err := sqlite.Open(cfg.Database.Path)
		if err != nil {
			logger.Error("sqlite open failed", "db_path", cfg.Database.Path, "err", err)
			rt.Close()
			return nil, fmt.Errorf("open sqlite journal: %w", err)
		}
		rt.repo = repo
		journal = repo
	}

	rt.svc = app.NewService(journal, uuid.NewString, nil, app.ServiceConfig{
		Seed:   seed,
		Logger: logger,
	})
	logger.Debug("application service initialized", "containers", len(seed.Containers), "items", seed.ItemCount(), "journal", journal != nil)
	return rt, nil
}

// resolvePaths resolves per-user paths from the persistent flags.
func resolvePaths(opts *rootOptions) (platform.Paths, error) {
	paths, err := platform.DefaultPathsWithOptions(platform.Options{
		AppName: opts.appName,
		DevMode: opts.devMode,
	})
	if err != nil {
		return platform.Paths{}, fmt.Errorf("resolve paths: %w", err)
	}
	return paths, nil
}

// resolveConfigPath picks the --config flag, then SORTBOARD_CONFIG, then the per-user default.
func resolveConfigPath(opts *rootOptions, paths platform.Paths) string {
	return firstNonEmpty(strings.TrimSpace(opts.configPath), strings.TrimSpace(os.Getenv("SORTBOARD_CONFIG")), paths.ConfigPath)
}

// firstNonEmpty returns the first argument that is not blank.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// parseBoolEnv parses input into a normalized form.
func parseBoolEnv(name string) (bool, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
