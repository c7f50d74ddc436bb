package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"opsCommandCenter/internal/api"
	"opsCommandCenter/internal/assistant"
	"opsCommandCenter/internal/auth"
	"opsCommandCenter/internal/config"
	"opsCommandCenter/internal/db"
	"opsCommandCenter/internal/telemetry"
	"opsCommandCenter/repository"
)

// NewServeCommand runs the dashboard server.
func NewServeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadWithDefaults(opts.ConfigFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			telemetry.SetupLogger(cfg.Logging.Format, cfg.Logging.Level)
			slog.Info("configuration loaded", "config", cfg.String())

			d, err := db.Open(cfg.Database.Path)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer func() {
				if err := d.Close(); err != nil {
					slog.Error("close db", "err", err)
				}
			}()

			store := db.NewStore(d)
			h := &api.Handlers{
				Cfg:           cfg,
				Authenticator: auth.NewAuthenticator(repository.NewAccountRepository(store)),
				Events:        repository.NewEventRepository(store),
				Assets:        repository.NewAssetRepository(store),
				Requests:      repository.NewRequestRepository(store),
				Assistant:     assistant.NewClient(cfg.Assistant.APIKey, cfg.Assistant.Model, cfg.Assistant.BaseURL),
			}

			shutdown, err := api.Start(cfg, h)
			if err != nil {
				return fmt.Errorf("start server: %w", err)
			}
			slog.Info("dashboard listening", "addr", cfg.Server.Address)

			sigc := make(chan os.Signal, 1)
			signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
			<-sigc

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(ctx); err != nil {
				slog.Error("shutdown", "err", err)
			}
			return nil
		},
	}
}
