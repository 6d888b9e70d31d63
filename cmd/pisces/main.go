// Package main provides the entry point for Pisces.
//
// Usage:
//
//	pisces [browser]     animate a page in Chrome, playing SCRIPT_PATH if set
//	pisces tui [file]    animate a list in the terminal, one item per line
//	pisces easings       list easing names
//	pisces presets       list presets
//	pisces version       print the version
//
// Everything else is configured from the environment, see internal/config.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/Rorqualx/pisces/internal/browser"
	"github.com/Rorqualx/pisces/internal/config"
	"github.com/Rorqualx/pisces/internal/easing"
	"github.com/Rorqualx/pisces/internal/frame"
	"github.com/Rorqualx/pisces/internal/metrics"
	"github.com/Rorqualx/pisces/internal/presets"
	"github.com/Rorqualx/pisces/internal/script"
	"github.com/Rorqualx/pisces/internal/scroll"
	"github.com/Rorqualx/pisces/internal/tui"
	"github.com/Rorqualx/pisces/pkg/version"
)

const shutdownTimeout = 10 * time.Second

func main() {
	mode := "browser"
	args := os.Args[1:]
	if len(args) > 0 {
		mode, args = args[0], args[1:]
	}

	// Load configuration
	cfg := config.Load()

	switch mode {
	case "version", "--version", "-v":
		fmt.Println(version.String())
		return
	case "easings":
		for _, name := range easing.Names() {
			fmt.Println(name)
		}
		return
	case "presets":
		setupLogging(cfg.LogLevel, os.Stderr)
		cfg.Validate()
		if err := listPresets(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to load presets")
		}
		return
	case "tui":
		logFile, err := openLogFile()
		if err != nil {
			fmt.Fprintf(os.Stderr, "pisces: %v\n", err)
			os.Exit(1)
		}
		defer logFile.Close()
		setupLogging(cfg.LogLevel, logFile)
		cfg.Validate()
		if err := runTUI(cfg, args); err != nil {
			fmt.Fprintf(os.Stderr, "pisces: %v\n", err)
			os.Exit(1)
		}
		return
	case "browser":
	default:
		fmt.Fprintf(os.Stderr, "pisces: unknown command %q\n", mode)
		os.Exit(2)
	}

	// Setup logging first so validation warnings are visible
	setupLogging(cfg.LogLevel, os.Stdout)
	cfg.Validate()
	printBanner()

	if err := runBrowser(cfg); err != nil {
		log.Fatal().Err(err).Msg("Pisces failed")
	}
	log.Info().Msg("Shutdown complete")
}

// runBrowser opens the configured page and animates its scrolling box until
// the script finishes (headless) or a signal arrives.
func runBrowser(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mgr, err := presets.NewManager(cfg.PresetsPath, cfg.PresetsHotReload)
	if err != nil {
		return fmt.Errorf("load presets: %w", err)
	}
	defer mgr.Close()

	// Parse the script before launching Chrome so mistakes fail fast.
	var s *script.Script
	if cfg.ScriptPath != "" {
		if s, err = script.Load(cfg.ScriptPath); err != nil {
			return err
		}
	}

	log.Info().Bool("headless", cfg.Headless).Msg("Launching browser...")
	host, err := browser.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer host.Close()

	box, err := host.ScrollingBox(ctx, cfg.ScrollingBox)
	if err != nil {
		return err
	}

	loop := frame.NewLoop(cfg.FrameInterval)
	ctrl := scroll.New(box, loop,
		scroll.WithDuration(cfg.ScrollDuration),
		scroll.WithEasing(cfg.Easing()),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return loop.Run(gctx)
	})

	if cfg.MetricsEnabled {
		startMetrics(gctx, g, cfg.MetricsPort)
	}

	if s != nil {
		g.Go(func() error {
			if err := script.NewRunner(ctrl, mgr).Run(gctx, s); err != nil {
				return err
			}
			if cfg.Headless {
				// Nothing left to watch.
				stop()
			}
			return nil
		})
	}

	log.Info().
		Str("scrolling_box", cfg.ScrollingBox).
		Dur("duration", cfg.ScrollDuration).
		Str("easing", cfg.ScrollEasing).
		Bool("script", s != nil).
		Msg("Pisces is ready")

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// startMetrics serves /metrics until ctx is done.
func startMetrics(ctx context.Context, g *errgroup.Group, port int) {
	metrics.SetBuildInfo(version.Full(), version.GoVersion())
	go metrics.StartRuntimeCollector(10*time.Second, ctx.Done())

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	g.Go(func() error {
		log.Info().Int("port", port).Msg("Prometheus metrics server started")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Metrics server shutdown error")
		}
		return nil
	})
}

// runTUI runs the terminal front end over the lines of path, or a numbered
// list when no path is given.
func runTUI(cfg *config.Config, args []string) error {
	var items []string
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read items: %w", err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			if line = strings.TrimRight(line, "\r"); strings.TrimSpace(line) != "" {
				items = append(items, line)
			}
		}
	}

	mgr, err := presets.NewManager(cfg.PresetsPath, cfg.PresetsHotReload)
	if err != nil {
		return fmt.Errorf("load presets: %w", err)
	}
	defer mgr.Close()

	model := tui.NewModel(tui.Options{
		Items:         items,
		FrameInterval: cfg.FrameInterval,
		Duration:      cfg.ScrollDuration,
		Easing:        cfg.ScrollEasing,
		Presets:       mgr,
		PresetNames:   mgr.Get().Names(),
	})

	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

func listPresets(cfg *config.Config) error {
	mgr, err := presets.NewManager(cfg.PresetsPath, false)
	if err != nil {
		return err
	}
	defer mgr.Close()

	set := mgr.Get()
	for _, name := range set.Names() {
		p, _ := set.Lookup(name)
		fmt.Printf("%-12s %-8s %s\n", name, p.Duration, p.Easing)
	}
	return nil
}

// openLogFile opens the log file used while the terminal UI owns the screen.
func openLogFile() (*os.File, error) {
	path := filepath.Join(os.TempDir(), "pisces.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// setupLogging configures zerolog based on the log level.
func setupLogging(level string, out *os.File) {
	// Use console writer for prettier output
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    out != os.Stdout && out != os.Stderr,
		TimeFormat: time.RFC3339,
	})

	switch strings.ToLower(level) {
	case "trace":
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// printBanner prints the startup banner.
func printBanner() {
	banner := `
 ____  _
|  _ \(_)___  ___ ___  ___
| |_) | / __|/ __/ _ \/ __|
|  __/| \__ \ (_|  __/\__ \
|_|   |_|___/\___\___||___/
`
	fmt.Println(banner)
	log.Info().
		Str("version", version.Full()).
		Str("go_version", version.GoVersion()).
		Msg("Starting Pisces")
}
