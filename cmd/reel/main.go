package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/mmcdole/reel/internal/catalog/tmdb"
	"github.com/mmcdole/reel/internal/config"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/log"
	"github.com/mmcdole/reel/internal/movies"
	"github.com/mmcdole/reel/internal/storage"
	"github.com/mmcdole/reel/internal/trending"
	"github.com/mmcdole/reel/internal/tui"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

func main() {
	var showVersion, reset bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&reset, "reset", false, "forget the stored TMDB token")
	flag.Parse()

	if showVersion {
		fmt.Printf("reel %s\n", Version)
		return
	}

	if reset {
		if err := config.ClearToken(config.DefaultConfigPath()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("✓ Token cleared.")
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

	logger.Info("starting reel", "version", Version)

	if !cfg.IsConfigured() {
		if err := runSetupFlow(cfg, logger); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := storage.Open(ctx, &cfg.Trending, logger)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to open trending store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("closing trending store", "error", err)
		}
	}()

	client := tmdb.NewClient(tmdb.Config{
		Token:   cfg.TMDB.Token,
		BaseURL: cfg.TMDB.BaseURL,
	}, logger)

	moviesSvc := movies.NewService(client, logger)
	trendingSvc := trending.NewService(store, cfg.TMDB.ImageBaseURL, logger)

	model := tui.NewModel(moviesSvc, trendingSvc, logger)

	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runSetupFlow asks for a TMDB token until one is accepted, then saves it.
func runSetupFlow(cfg *config.Config, logger *slog.Logger) error {
	fmt.Println()
	fmt.Println("Welcome to reel!")
	fmt.Println()
	fmt.Println("reel needs a TMDB API read access token.")
	fmt.Println("Create one at https://www.themoviedb.org/settings/api")
	fmt.Println()

	for {
		token, err := readToken()
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if token == "" {
			fmt.Println("Token cannot be empty. Please try again.")
			continue
		}

		client := tmdb.NewClient(tmdb.Config{Token: token, BaseURL: cfg.TMDB.BaseURL}, logger)
		if err := verifyTokenWithSpinner(client); err != nil {
			fmt.Printf("✗ %v\n", err)
			if errors.Is(err, domain.ErrAuthFailed) {
				fmt.Println("Please check the token and try again.")
				fmt.Println()
				continue
			}
			return err
		}

		cfg.TMDB.Token = token
		break
	}

	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	return nil
}

// readToken reads the token without echo when stdin is a terminal.
func readToken() (string, error) {
	fmt.Print("TMDB token: ")

	fd := int(syscall.Stdin)
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// verifyTokenWithSpinner runs one discover request with a visual spinner
func verifyTokenWithSpinner(client *tmdb.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	resultCh := make(chan error, 1)
	go func() {
		_, err := client.Discover(ctx)
		resultCh <- err
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
