package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"opsCommandCenter/internal/config"
	"opsCommandCenter/internal/db"
	"opsCommandCenter/internal/seed"
	"opsCommandCenter/internal/telemetry"
)

// NewSeedCommand prepares a working demo in one shot: default demo accounts
// in users.txt (if none exist) plus every seed file loaded into the store.
func NewSeedCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Write default demo accounts and load all seed files into the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadWithDefaults(opts.ConfigFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			telemetry.SetupLogger(cfg.Logging.Format, cfg.Logging.Level)

			if err := seed.EnsureDefaultAccounts(cfg.Seed.Dir); err != nil {
				return fmt.Errorf("write default accounts: %w", err)
			}

			d, err := db.Open(cfg.Database.Path)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer d.Close()

			if err := seed.NewLoader(db.NewStore(d)).LoadAll(cmd.Context(), cfg.Seed.Dir); err != nil {
				return fmt.Errorf("load seed files: %w", err)
			}
			slog.Info("seed complete", "dir", cfg.Seed.Dir, "db", cfg.Database.Path)
			return nil
		},
	}
}
