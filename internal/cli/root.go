package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"cardlist/internal/config"
	"cardlist/internal/format"
	"cardlist/internal/logging"
	"cardlist/internal/model"
	"cardlist/internal/store"
	"cardlist/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	ConfigPath string
	Dir        string
	Backend    string
	Codec      string
	Compress   bool
	LogLevel   string
	LogFile    string
	PrettyJSON bool
	Format     string

	cfg      config.Config
	logger   *slog.Logger
	closeLog func() error
	backend  *checkedStorage
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&App{})
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "cardlist",
		Short:        "A persistent, editable list of cards (TUI + CLI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  cardlist

  # Scriptable commands
  cardlist list
  cardlist add "Buy milk"
  cardlist edit 0 "Buy oat milk"
  cardlist delete 0

  # Direct lookup (shortcut for: cardlist show <index>)
  cardlist 2
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// The TUI owns the terminal; only scriptable commands log to stderr.
		interactive := cmd == cmd.Root()
		return app.setup(cmd, interactive)
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&app.ConfigPath, "config", "", "Path to config.toml (default: $XDG_CONFIG_HOME/cardlist/config.toml; env CARDLIST_CONFIG)")
	pf.StringVar(&app.Dir, "dir", "", "Data directory (default: ~/.cardlist; env CARDLIST_DIR)")
	pf.StringVar(&app.Backend, "backend", "", "Storage backend (file|sqlite|memory)")
	pf.StringVar(&app.Codec, "codec", "", "File backend encoding (cbor|json)")
	pf.BoolVar(&app.Compress, "compress", false, "Compress the file backend blob with zstd")
	pf.StringVar(&app.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")
	pf.StringVar(&app.LogFile, "log-file", "", "Append logs to this file")
	pf.BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	pf.StringVar(&app.Format, "format", envOr("CARDLIST_FORMAT", "json"), "Output format (json|edn|text)")

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newDeleteCmd(app))
	cmd.AddCommand(newConfigCmd(app))

	withTeardown(app, cmd)
	return cmd
}

// withTeardown closes storage and the log file after every RunE, including failed ones.
// Cobra skips PersistentPostRunE when RunE returns an error.
func withTeardown(app *App, cmd *cobra.Command) {
	for _, sub := range cmd.Commands() {
		withTeardown(app, sub)
	}
	run := cmd.RunE
	if run == nil {
		return
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			if cerr := app.teardown(); cerr != nil && err == nil {
				err = writeErr(cmd, cerr)
			}
		}()
		return run(cmd, args)
	}
}

// setup resolves configuration (defaults < file < env < flags), then opens the
// logger and the storage backend.
func (app *App) setup(cmd *cobra.Command, interactive bool) error {
	path := app.ConfigPath
	if path == "" {
		path = envOr("CARDLIST_CONFIG", "")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return writeErr(cmd, err)
	}

	flags := cmd.Flags()
	if flags.Changed("dir") {
		cfg.Dir = app.Dir
	}
	if flags.Changed("backend") {
		cfg.Backend = app.Backend
	}
	if flags.Changed("codec") {
		cfg.Codec = app.Codec
	}
	if flags.Changed("compress") {
		cfg.Compress = app.Compress
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = app.LogLevel
	}
	if flags.Changed("log-file") {
		cfg.LogFile = app.LogFile
	}
	if strings.TrimSpace(cfg.Dir) == "" {
		d, err := config.DefaultDataDir()
		if err != nil {
			return writeErr(cmd, err)
		}
		cfg.Dir = d
	}
	if err := cfg.Validate(); err != nil {
		return writeErr(cmd, err)
	}
	// Reject a bad --format before any command mutates the list.
	if !interactive {
		if err := format.Validate(app.Format); err != nil {
			return writeErr(cmd, err)
		}
	}
	app.cfg = cfg

	logOpts := logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile}
	if !interactive {
		logOpts.Fallback = cmd.ErrOrStderr()
	}
	logger, closeLog, err := logging.New(logOpts)
	if err != nil {
		return writeErr(cmd, err)
	}
	app.logger = logger
	app.closeLog = closeLog

	b, err := store.Open(store.Options{
		Backend:  cfg.Backend,
		Dir:      cfg.Dir,
		Codec:    cfg.Codec,
		Compress: cfg.Compress,
		Logger:   logger,
	})
	if err != nil {
		_ = app.teardown()
		return writeErr(cmd, err)
	}
	app.backend = &checkedStorage{Backend: b, logger: logger}
	logger.Debug("storage opened", "backend", cfg.Backend, "location", b.Location())
	return nil
}

func (app *App) teardown() error {
	var firstErr error
	if app.backend != nil {
		if err := app.backend.Close(); err != nil {
			firstErr = err
		}
		app.backend = nil
	}
	if app.closeLog != nil {
		if err := app.closeLog(); err != nil && firstErr == nil {
			firstErr = err
		}
		app.closeLog = nil
	}
	return firstErr
}

func runTUI(app *App) error {
	list := model.NewCardList(app.backend, app.logger)
	return tui.Run(list, tui.Options{Theme: app.cfg.TUI.Theme, Logger: app.logger})
}

// openList loads the card list for a scriptable command.
func openList(app *App) *model.CardList {
	return model.NewCardList(app.backend, app.logger)
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
