package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/elsanchez/niche-finder/internal/config"
	"github.com/elsanchez/niche-finder/internal/domain"
	"github.com/elsanchez/niche-finder/internal/generator"
	"github.com/elsanchez/niche-finder/internal/keypool"
	"github.com/elsanchez/niche-finder/internal/provider"
	"github.com/elsanchez/niche-finder/internal/repository/sqlite"
	"github.com/elsanchez/niche-finder/internal/tui/finder"
)

const version = "0.1.0"

func main() {
	cfg := config.Load()

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		slog.Error("failed to create data directory", "dir", cfg.DataDir, "error", err)
		os.Exit(1)
	}

	// El log va a archivo: la terminal es de la TUI
	closeLog := setupLogging(cfg)
	defer closeLog()

	slog.Info("niche-finder starting", "version", version, "data_dir", cfg.DataDir)

	db, err := sqlite.NewDatabase(cfg.DataDir)
	if err != nil {
		slog.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database initialized")

	persister := keypool.NewRepoPersister(db.CredentialRepo)

	pools := map[domain.Provider]*keypool.Store{}
	for _, p := range []domain.Provider{domain.ProviderGemini, domain.ProviderOpenAI} {
		pool := keypool.NewStore(p, persister)

		ctx := context.Background()
		keys, err := db.CredentialRepo.GetKeys(ctx, p)
		if err != nil {
			slog.Error("failed to load credentials", "provider", p, "error", err)
			os.Exit(1)
		}
		statuses, err := db.CredentialRepo.GetStatuses(ctx, p)
		if err != nil {
			slog.Error("failed to load credential statuses", "provider", p, "error", err)
			os.Exit(1)
		}

		pool.Load(keys, statuses)
		slog.Info("credential pool loaded", "provider", p, "keys", pool.Len())
		pools[p] = pool
	}

	clients := map[domain.Provider]provider.Client{
		domain.ProviderGemini: provider.NewGeminiClient(cfg.Gemini.Endpoint, cfg.DefaultModel),
		domain.ProviderOpenAI: provider.NewOpenAIClient(cfg.OpenAI.Endpoint, cfg.DefaultModel),
	}

	svc := generator.NewService(cfg.DefaultModel, pools, clients)

	model := finder.NewModel(svc, db.LibraryRepo, db.ChatRepo, db.SettingsRepo, cfg.Models)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("tui exited with error", "error", err)
		os.Exit(1)
	}
}

// setupLogging routes slog to a file inside the data directory
func setupLogging(cfg config.Config) func() {
	logPath := filepath.Join(cfg.DataDir, "niche-finder.log")

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		// Sin archivo de log, silenciar todo para no pisar la TUI
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
		return func() {}
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})))
	return func() { f.Close() }
}
