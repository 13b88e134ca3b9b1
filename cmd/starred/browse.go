package main

import (
	"fmt"
	"net/http"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/blockedby/starred-jobs/internal/apiclient"
	"github.com/blockedby/starred-jobs/internal/browser"
	"github.com/blockedby/starred-jobs/internal/catalog"
	"github.com/blockedby/starred-jobs/internal/config"
	"github.com/blockedby/starred-jobs/internal/debounce"
	"github.com/blockedby/starred-jobs/internal/logger"
	"github.com/blockedby/starred-jobs/internal/tui"
)

const memoryCacheSize = 512

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Open the terminal job browser",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		userID, _ := cmd.Flags().GetInt("user")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.ApplyBrowseFile(configPath); err != nil {
			return err
		}
		if userID > 0 {
			cfg.DefaultUserID = userID
		}

		// the terminal belongs to the UI, so logs go to the file only
		if err := logger.Init(cfg.LogLevel, cfg.LogFile, false); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		log := logger.Get()

		ctx := cmd.Context()
		httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

		cache, closeCache := newCatalogCache(cmd, cfg)
		defer closeCache()

		jobs := catalog.NewClient(cfg.CatalogBaseURL,
			catalog.WithHTTPClient(httpClient),
			catalog.WithRateLimiter(catalog.NewRateLimiter(cfg.CatalogRPS, cfg.CatalogBurst)),
			catalog.WithCache(cache),
		)
		backend := apiclient.New(cfg.BackendURL, httpClient)

		coord := browser.New(ctx, browser.Deps{
			Catalog:   jobs,
			Favorites: backend,
			Users:     backend,
		}, cfg.DefaultUserID)

		deb := debounce.New(cfg.SearchDebounce)
		defer deb.Stop()

		model := tui.NewModel(coord, deb)
		p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
		model.SetProgram(p)

		log.Info().
			Str("catalog", cfg.CatalogBaseURL).
			Str("backend", cfg.BackendURL).
			Int("user_id", cfg.DefaultUserID).
			Msg("starting browser")

		if _, err := p.Run(); err != nil {
			return fmt.Errorf("run browser: %w", err)
		}
		return nil
	},
}

// newCatalogCache picks redis when CACHE_REDIS_URL is set and reachable,
// falling back to the in-process LRU.
func newCatalogCache(cmd *cobra.Command, cfg *config.Config) (catalog.Cache, func()) {
	if cfg.CacheRedisURL == "" {
		return catalog.NewMemoryCache(memoryCacheSize), func() {}
	}

	client, err := catalog.NewRedisClient(cmd.Context(), cfg.CacheRedisURL)
	if err != nil {
		logger.Get().Warn().Err(err).Msg("redis cache unavailable, using memory cache")
		return catalog.NewMemoryCache(memoryCacheSize), func() {}
	}
	return catalog.NewRedisCache(client), func() { _ = client.Close() }
}

func init() {
	browseCmd.Flags().String("config", config.DefaultBrowseFilePath(), "TOML settings file")
	browseCmd.Flags().Int("user", 0, "start as this user (overrides DEFAULT_USER_ID)")
}
