package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tally/internal/config"
	"github.com/sandeepkv93/tally/internal/console"
	"github.com/sandeepkv93/tally/internal/logging"
	"github.com/sandeepkv93/tally/internal/session"
	"github.com/sandeepkv93/tally/internal/storage"
	"github.com/sandeepkv93/tally/internal/update"
	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

type rootOptions struct {
	configPath string
	dataFile   string
	backend    string
	sqlitePath string
	ui         string
	logLevel   string
	logFormat  string
	logFile    string
}

func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "tally",
		Short: "Tally - a chat-style personal task tracker",
		Long: `Tally keeps a list of todos, deadlines and events that you manage with
short typed commands such as "todo read book" or "mark 2".

Run without arguments to start a session. Tasks are saved after every change.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default .tally.yaml in . or $HOME)")
	flags.StringVar(&opts.dataFile, "file", "", "task file for the file backend")
	flags.StringVar(&opts.backend, "backend", "", "storage backend: file or sqlite")
	flags.StringVar(&opts.sqlitePath, "sqlite-path", "", "database path for the sqlite backend")
	flags.StringVar(&opts.ui, "ui", "", "front end: console or tui")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVar(&opts.logFormat, "log-format", "", "log format: text or json")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to this file")

	root.AddCommand(newConfigCommand(opts), newVersionCommand())
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tally %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
		},
	}
}

func newConfigCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			out, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func resolveConfig(cmd *cobra.Command, opts *rootOptions) (config.RuntimeConfig, error) {
	cfg, err := config.Load(opts.configPath, config.DefaultRuntimeConfig())
	if err != nil {
		return config.RuntimeConfig{}, err
	}
	cfg = config.RuntimeConfigFromEnv(cfg)

	flags := cmd.Flags()
	if flags.Changed("file") {
		cfg.DataFile = opts.dataFile
	}
	if flags.Changed("backend") {
		cfg.Backend = opts.backend
	}
	if flags.Changed("sqlite-path") {
		cfg.SQLitePath = opts.sqlitePath
	}
	if flags.Changed("ui") {
		cfg.UI = opts.ui
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = opts.logFormat
	}
	if flags.Changed("log-file") {
		cfg.LogFile = opts.logFile
	}
	cfg = cfg.Normalized()
	if err := cfg.Validate(); err != nil {
		return config.RuntimeConfig{}, err
	}
	return cfg, nil
}

func run(ctx context.Context, cfg config.RuntimeConfig, in io.Reader, out io.Writer) error {
	logOut, closeLog, err := openLogOutput(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()
	logger, err := logging.New(logOut, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	sess := session.New(store, logger)
	if _, err := sess.Load(ctx); err != nil {
		return fmt.Errorf("loading tasks: %w", err)
	}
	logger.Info("session started", "backend", cfg.Backend, "ui", cfg.UI)

	if cfg.UI == config.UITUI {
		program := tea.NewProgram(
			update.NewModel(ctx, sess),
			tea.WithContext(ctx),
			tea.WithInput(in),
			tea.WithOutput(out),
			tea.WithAltScreen(),
		)
		_, err := program.Run()
		return err
	}
	return console.New(sess, in, out).Run(ctx)
}

func openStore(cfg config.RuntimeConfig) (storage.Store, error) {
	if cfg.Backend == config.BackendSQLite {
		return storage.OpenSQLite(cfg.SQLitePath)
	}
	return storage.NewFileStore(cfg.DataFile), nil
}

func openLogOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return io.Discard, func() {}, nil
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}
