package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/syllabus/internal/catalog"
	"github.com/mmcdole/syllabus/internal/config"
	"github.com/mmcdole/syllabus/internal/domain"
	"github.com/mmcdole/syllabus/internal/enrollment"
	"github.com/mmcdole/syllabus/internal/log"
	"github.com/mmcdole/syllabus/internal/notify"
	"github.com/mmcdole/syllabus/internal/prefs"
	"github.com/mmcdole/syllabus/internal/scheduler"
	"github.com/mmcdole/syllabus/internal/store"
	"github.com/mmcdole/syllabus/internal/tui"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

// timerBuffer sizes the fired-token channel between timers and the event loop.
const timerBuffer = 64

func main() {
	var (
		showVersion bool
		configFile  string
	)
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&configFile, "config", "", "path to config file")
	flag.Parse()

	if showVersion {
		fmt.Printf("syllabus %s\n", Version)
		return
	}

	if err := run(configFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configFile string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, logCloser, err := log.SetupLogger(cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	} else {
		defer logCloser.Close()
	}
	slog.SetDefault(logger)

	logger.Info("starting syllabus", "version", Version)

	dbPath, err := config.ExpandPath(cfg.Store.Path)
	if err != nil {
		return err
	}
	snapshots, err := store.Open(dbPath, logger)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer snapshots.Close()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return printSummary(os.Stdout, snapshots.Load())
	}

	loop := scheduler.NewLoop(timerBuffer)
	defer loop.Close()

	signals := notify.NewBroadcaster()
	inbox := notify.NewInbox(snapshots, logger)
	defer inbox.Listen(signals)()

	toasts := tui.NewToasts(cfg.UI.ToastLimit)
	engine := enrollment.NewEngine(enrollment.Deps{
		Store:     snapshots,
		Scheduler: loop,
		Rand:      newRand(cfg.Enrollment.Seed),
		Sink:      notify.Multi{toasts, notify.LogSink{Logger: logger}},
		Signals:   signals,
		Logger:    logger,
	}, cfg.EngineConfig())
	defer engine.Close()

	uiPrefs := prefs.Load(cfg.UI.PrefsFile, logger)

	model := tui.NewModel(tui.Options{
		Engine:  engine,
		Catalog: catalog.Default(),
		Timers:  loop,
		Inbox:   inbox,
		Toasts:  toasts,
		Tab:     tui.TabFromPref(uiPrefs.Tab),
		Logger:  logger,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithReportFocus(),
	)

	logger.Info("starting TUI")

	final, err := p.Run()
	if err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	if m, ok := final.(tui.Model); ok {
		uiPrefs.Tab = m.Tab.PrefName()
		if err := prefs.Save(cfg.UI.PrefsFile, uiPrefs); err != nil {
			logger.Warn("failed to save prefs", "error", err)
		}
	}

	logger.Info("shutting down", "pending", engine.PendingCount())
	return nil
}

// newRand seeds the simulator's source; seed 0 means the clock.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// printSummary writes the persisted collections as plain text, for when
// stdout is not a terminal.
func printSummary(w io.Writer, snap domain.Snapshot) error {
	fmt.Fprintf(w, "Enrolled (%d)\n", len(snap.Enrolled))
	for _, c := range snap.Enrolled {
		fmt.Fprintf(w, "  %-40s %3d%%  %s  %s\n", c.Title, c.Progress, c.ProgressLabel(), c.LastLesson)
	}
	fmt.Fprintf(w, "Wishlist (%d)\n", len(snap.Wishlist))
	for _, c := range snap.Wishlist {
		fmt.Fprintf(w, "  %-40s $%.2f\n", c.Title, c.Price)
	}
	return nil
}
