// Package cli defines the placepulse command tree and its wiring.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/placepulse/placepulse/internal/adapter/driven/graphql"
	"github.com/placepulse/placepulse/internal/adapter/driven/sqlite"
	"github.com/placepulse/placepulse/internal/application"
	"github.com/placepulse/placepulse/internal/config"
)

var rootCmd = &cobra.Command{
	Use:           "placepulse",
	Short:         "Check in to places, earn rewards",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command tree. Errors are printed once, here.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// app bundles everything a command needs: config, storage, the authenticated
// transport and the credential lifecycle, bootstrapped and ready.
type app struct {
	cfg    *config.Config
	db     *sqlite.DB
	store  *sqlite.SessionRepo
	client *graphql.Client
	auth   *application.AuthService
}

// newApp loads config, opens the session database, runs migrations and
// assembles the transport pipeline. Callers must Close.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	key, err := cfg.EncryptionKey()
	if err != nil {
		return nil, err
	}

	db, err := sqlite.NewDB(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if err := sqlite.RunMigrations(db.Writer); err != nil {
		_ = db.Close()
		return nil, err
	}

	store := sqlite.NewSessionRepo(db, key)
	client := graphql.NewClient(
		cfg.GraphQLEndpoint,
		store,
		graphql.WithRefreshTimeout(cfg.RefreshTimeout),
	)
	auth := application.NewAuthService(client, store, slog.Default())
	auth.Bootstrap(ctx)

	return &app{cfg: cfg, db: db, store: store, client: client, auth: auth}, nil
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		slog.Warn("closing database failed", "error", err)
	}
}
