package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/LISSConsulting/LISSTech.Debugshell/internal/config"
	"github.com/LISSConsulting/LISSTech.Debugshell/internal/keys"
	"github.com/LISSConsulting/LISSTech.Debugshell/internal/layout"
	"github.com/LISSConsulting/LISSTech.Debugshell/internal/media"
	"github.com/LISSConsulting/LISSTech.Debugshell/internal/source"
	"github.com/LISSConsulting/LISSTech.Debugshell/internal/store"
	"github.com/LISSConsulting/LISSTech.Debugshell/internal/tui"
)

// loadConfig resolves the configuration for a shell over dir. An explicit
// path wins; otherwise dbgsh.toml is looked up from dir (or the working
// directory) and the defaults are used when there is none.
func loadConfig(path, dir string) (*config.Config, error) {
	base := dir
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		base = wd
	}

	if path == "" {
		candidate := filepath.Join(base, config.FileName)
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		}
	}

	var cfg *config.Config
	var err error
	switch {
	case path != "":
		cfg, err = config.Load(path)
	case dir != "":
		err = config.ErrNotFound
	default:
		cfg, err = config.Load("")
	}
	if errors.Is(err, config.ErrNotFound) {
		defaults := config.Defaults()
		defaults.Project.Root = config.ResolveRoot(base, "")
		defaults.Project.Name = config.DetectProjectName(defaults.Project.Root)
		defaults.Journal.Dir = filepath.Join(defaults.Project.Root, defaults.Journal.Dir)
		cfg, err = &defaults, nil
	}
	if err != nil {
		return nil, err
	}

	if cfg.Project.Name == "" {
		cfg.Project.Name = filepath.Base(cfg.Project.Root)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// newLogger returns the diagnostic logger. Logs go to a file because the
// terminal belongs to the UI; with no file configured they are discarded.
func newLogger(cfg config.LogConfig, override string) (*slog.Logger, io.Closer, error) {
	path := cfg.File
	if override != "" {
		path = override
	}
	if path == "" {
		return slog.New(slog.DiscardHandler), io.NopCloser(nil), nil
	}
	f, err := tea.LogToFile(path, "dbgsh")
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: cfg.SlogLevel()})
	return slog.New(h), f, nil
}

// openJournal starts this session's journal when enabled, pruning old ones
// first. It returns nil when journaling is off.
func openJournal(cfg config.JournalConfig, logger *slog.Logger) (*store.Journal, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	if err := store.EnforceRetention(cfg.Dir, cfg.Keep); err != nil {
		logger.Warn("journal retention failed", "dir", cfg.Dir, "error", err)
	}
	j, err := store.NewJournal(cfg.Dir)
	if err != nil {
		return nil, err
	}
	logger.Info("journal opened", "path", j.Path())
	return j, nil
}

// shell is everything a session needs, built from configuration.
type shell struct {
	coordinator *tui.Coordinator
	options     tui.Options
	store       *store.Store
	journal     *store.Journal
	mouse       bool
}

// buildShell wires the process-wide registry and monitor, the store and the
// Coordinator for one session.
func buildShell(cfg *config.Config, logger *slog.Logger, noMouse bool) (*shell, error) {
	splits, err := cfg.Layout.Splits()
	if err != nil {
		return nil, err
	}

	journal, err := openJournal(cfg.Journal, logger)
	if err != nil {
		return nil, err
	}
	storeOpts := []store.Option{store.WithLogger(logger)}
	if journal != nil {
		storeOpts = append(storeOpts, store.WithJournal(journal))
	}
	st := store.New(storeOpts...)

	files, err := source.List(cfg.Project.Root, cfg.Project.Extensions)
	if err != nil {
		if journal != nil {
			_ = journal.Close()
		}
		return nil, err
	}
	st.Dispatch(store.SetSources(files))
	logger.Info("sources discovered", "root", cfg.Project.Root, "count", len(files))

	// Window size messages keep the width current from here on.
	mon := media.NewMonitor(media.Query{MinWidth: cfg.Layout.BreakpointPx}, terminalColumns()*cfg.Layout.CellWidthPx)
	c := tui.NewCoordinator(tui.Deps{
		Registry: keys.NewRegistry(),
		Monitor:  mon,
		Store:    st,
		Keys:     keys.NewTable(cfg.Shortcuts),
		Layout:   layout.NewState(layout.OrientationFor(mon.Matches())),
		Logger:   logger,
	})

	return &shell{
		coordinator: c,
		options: tui.Options{
			ProjectName: cfg.Project.Name,
			Root:        cfg.Project.Root,
			AccentColor: cfg.TUI.AccentColor,
			Splits:      splits,
			Scale:       cfg.Layout.Scale(),
			ResizeStep:  cfg.Layout.ResizeStep,
		},
		store:   st,
		journal: journal,
		mouse:   cfg.TUI.Mouse && !noMouse,
	}, nil
}

// programOptions are the bubbletea options for an interactive session.
func (s *shell) programOptions() []tea.ProgramOption {
	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithReportFocus()}
	if s.mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	return opts
}

// close flushes the journal.
func (s *shell) close() error {
	if s.journal == nil {
		return nil
	}
	return s.journal.Close()
}

// isTerminal reports whether the shell can take over stdin and stdout.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// terminalColumns is the width of the controlling terminal in cells, 0 when
// stdout is not a terminal.
var terminalColumns = func() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return w
}

// watchSources keeps the store's source list in step with the project root
// until the returned stop function is called. Watch failures only disable
// the refresh.
// runWatcher feeds watcher updates into st until ctx is done. Any other
// reason for the watcher to stop is logged.
func runWatcher(ctx context.Context, w *source.Watcher, root string, st *store.Store, logger *slog.Logger) {
	err := w.Run(ctx, func(files []source.File) {
		if slices.Equal(files, st.State().Sources) {
			return
		}
		logger.Info("sources changed", "count", len(files))
		st.Dispatch(store.SetSources(files))
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn("source watcher stopped", "root", root, "error", err)
	}
}

func watchSources(cfg *config.Config, st *store.Store, logger *slog.Logger) (stop func()) {
	if !cfg.Project.Watch {
		return func() {}
	}
	w, err := source.NewWatcher(cfg.Project.Root, cfg.Project.Extensions, logger)
	if err != nil {
		logger.Warn("source watcher disabled", "root", cfg.Project.Root, "error", err)
		return func() {}
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		runWatcher(ctx, w, cfg.Project.Root, st, logger)
	}()
	return func() {
		cancel()
		<-done
		_ = w.Close()
	}
}

// executeShell loads config, builds the shell and runs it until the user
// quits.
func executeShell(flags shellFlags) error {
	if !isTerminal() {
		return errors.New("dbgsh needs an interactive terminal")
	}

	cfg, err := loadConfig(flags.ConfigPath, flags.Dir)
	if err != nil {
		return err
	}

	logger, logCloser, err := newLogger(cfg.Log, flags.LogFile)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	sh, err := buildShell(cfg, logger, flags.NoMouse)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := sh.close(); closeErr != nil {
			logger.Warn("journal close failed", "error", closeErr)
		}
	}()

	stopWatch := watchSources(cfg, sh.store, logger)
	defer stopWatch()

	if err := tui.Run(sh.coordinator, sh.options, sh.programOptions()...); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
