package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/config"
	"github.com/mmcdole/marquee/internal/log"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/mmcdole/marquee/internal/tmdb"
	"github.com/mmcdole/marquee/internal/tui"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

func main() {
	var showVersion, logout, clearHistory bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&logout, "logout", false, "forget the stored TMDB token")
	flag.BoolVar(&clearHistory, "clear-history", false, "forget recent search queries")
	flag.Parse()

	if showVersion {
		fmt.Printf("marquee %s\n", Version)
		return
	}

	if logout {
		if err := config.ClearCredentials(config.DefaultConfigPath()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("✓ Token removed")
		return
	}

	if clearHistory {
		if err := runClearHistory(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("✓ Search history cleared")
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting marquee", "version", Version)

	if !cfg.IsConfigured() {
		if err := runSetupFlow(cfg, logger); err != nil {
			return err
		}
	}

	client := newClient(cfg, logger)
	logger.Info("using TMDB", "language", client.Language())

	db, err := store.Open(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer db.Close()

	model := tui.NewModel(tui.Services{
		Listing: client,
		Details: service.NewDetailsService(client, logger),
		MyList:  service.NewMyListService(db, logger),
		History: service.NewHistoryService(db, logger),
		Opener:  adapter.NewOpener(cfg.UI.Browser, cfg.UI.BrowserArgs, logger),
		Logger:  logger,
	}, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

func runClearHistory() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	db, err := store.Open(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer db.Close()
	return db.ClearHistory()
}

func newClient(cfg *config.Config, logger *slog.Logger) *tmdb.Client {
	return tmdb.NewClient(tmdb.Options{
		BaseURL:      cfg.TMDB.BaseURL,
		Token:        cfg.TMDB.Token,
		Language:     cfg.TMDB.Language,
		IncludeAdult: cfg.TMDB.IncludeAdult,
		Timeout:      cfg.TMDB.Timeout,
		Logger:       logger,
	})
}

// runSetupFlow asks for a token until TMDB accepts one, then saves it
func runSetupFlow(cfg *config.Config, logger *slog.Logger) error {
	fmt.Println()
	fmt.Println("Welcome to Marquee!")

	for {
		token, err := tmdb.PromptToken(os.Stdout)
		if err != nil {
			return err
		}

		cfg.TMDB.Token = token
		fmt.Println()
		if err := validateWithSpinner(newClient(cfg, logger)); err != nil {
			fmt.Printf("✗ Token check failed: %v\n", err)
			fmt.Println("Please try again.")
			continue
		}
		break
	}

	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	return nil
}

// validateWithSpinner checks the token while animating a spinner
func validateWithSpinner(client *tmdb.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	resultCh := make(chan error, 1)
	go func() {
		resultCh <- client.ValidateToken(ctx)
	}()

	frame := 0
	fmt.Printf("\r%s Checking token...", styles.SpinnerFrames[frame])

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case err := <-resultCh:
			fmt.Print(clearSpinnerLine)
			if err != nil {
				return err
			}
			fmt.Println("✓ Token accepted")
			return nil

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Checking token...", styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])

		case <-ctx.Done():
			fmt.Print(clearSpinnerLine)
			return fmt.Errorf("token check timed out")
		}
	}
}
