package main

import (
	"log/slog"

	"github.com/mmcdole/tunedl/internal/backend"
	"github.com/mmcdole/tunedl/internal/config"
	"github.com/mmcdole/tunedl/internal/domain"
	"github.com/mmcdole/tunedl/internal/opener"
	"github.com/mmcdole/tunedl/internal/service"
	"github.com/mmcdole/tunedl/internal/store"
	"github.com/mmcdole/tunedl/internal/tui"
)

// app holds everything wired from one configuration
type app struct {
	cfg    *config.Config
	logger *slog.Logger

	store  *store.PreferenceStore
	client *backend.Client

	download     *service.DownloadService
	organize     *service.OrganizeService
	preferences  *service.PreferenceService
	history      *service.HistoryService
	connectivity *service.ConnectivityService
	opener       *opener.Opener
}

func newApp(cfg *config.Config, logger *slog.Logger) (*app, error) {
	st, err := store.NewPreferenceStore(cfg.StoreDir())
	if err != nil {
		// Another tunedl holds the lock; keep going without persistence
		logger.Warn("preference store unavailable, using memory only", "dir", cfg.StoreDir(), "error", err)
		st, err = store.NewPreferenceStore("")
		if err != nil {
			return nil, err
		}
	}

	client := backend.NewClient(cfg.Server.URL, cfg.Server.Timeout, logger)
	history := service.NewHistoryService(st, cfg.UI.HistorySize)

	return &app{
		cfg:          cfg,
		logger:       logger,
		store:        st,
		client:       client,
		download:     service.NewDownloadService(client, history, logger),
		organize:     service.NewOrganizeService(client, logger),
		preferences:  service.NewPreferenceService(st, logger),
		history:      history,
		connectivity: service.NewConnectivityService(client, logger),
		opener:       opener.New(cfg.UI.OpenCommand, logger),
	}, nil
}

// model builds the TUI model
func (a *app) model() tui.Model {
	return tui.NewModel(
		tui.Services{
			Download:     a.download,
			Organize:     a.organize,
			Preferences:  a.preferences,
			History:      a.history,
			Connectivity: a.connectivity,
			Opener:       a.opener,
		},
		tui.Options{
			DownloadDir:     a.cfg.Downloads.Dir,
			RequestTimeout:  a.cfg.Server.Timeout,
			OfflineInterval: a.cfg.Server.OfflineInterval,
			DefaultTheme:    domain.ParseTheme(a.cfg.UI.Theme),
		},
		a.logger,
	)
}

func (a *app) Close() error {
	return a.store.Close()
}
