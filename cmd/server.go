package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/colegio/internal/config"
	"github.com/example/colegio/internal/db"
	"github.com/example/colegio/internal/logging"
	"github.com/example/colegio/internal/migrate"
	"github.com/example/colegio/internal/retention"
	"github.com/example/colegio/internal/store"
	"github.com/example/colegio/internal/web"
)

func newServerCmd() *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Run the colegio API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			log, err := logging.New(cfg.Env, cfg.LogLevel)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			d, err := db.Open(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer d.Close()

			if err := d.Ping(ctx); err != nil {
				return fmt.Errorf("db ping: %w", err)
			}

			if migrateUp {
				if err := migrate.Up(ctx, d); err != nil {
					return err
				}
			}

			reservas := store.NewReservas(d)

			sweeper := &retention.Sweeper{
				Reservas: reservas,
				Days:     cfg.RetentionDays,
				Interval: cfg.SweepInterval(),
				Log:      log,
			}
			go func() { _ = sweeper.Run(ctx) }()

			ws := &web.Server{
				Reservas:    reservas,
				Alumnos:     store.NewAlumnos(d),
				Comunicados: store.NewComunicados(d),
				Creds:       store.NewCredentials(d),
				BaseURL:     cfg.BaseURL,
				PageSize:    cfg.PageSize,
				Origins:     splitOrigins(cfg.CORSOrigins),
				Log:         log,
			}

			log.Info("listening", zap.String("port", cfg.AppPort))
			return web.Run(ctx, ":"+cfg.AppPort, ws.Router())
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", true, "run database migrations on startup")
	cmd.Flags().Lookup("migrate").NoOptDefVal = "true"
	return cmd
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
