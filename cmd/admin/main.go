// Command admin bootstraps and maintains the Rogainizer database.
//
// Usage:
//
//	admin initdb
//	admin adduser --name "Ann Lee" --email ann@example.com
//	MYSQL_DSN="user:pass@tcp(host:3306)/rogainizer" admin migrate
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/padraicbc/rogainizer/config"
	bundb "github.com/padraicbc/rogainizer/db"
	applog "github.com/padraicbc/rogainizer/logger"
	"github.com/padraicbc/rogainizer/service"
	"github.com/padraicbc/rogainizer/store"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "admin",
		Short:         "Rogainizer database administration",
		SilenceUsage: true,
	}
	root.AddCommand(initDBCmd())
	root.AddCommand(addUserCmd())
	root.AddCommand(migrateCmd())
	return root
}

// env is what every subcommand needs once configuration has loaded.
type env struct {
	cfg *config.Config
	log *zap.Logger
	db  *bun.DB
}

func run(fn func(ctx context.Context, e *env) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := applog.New(cfg.Debug)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pg, err := bundb.Setup(ctx, cfg)
	if err != nil {
		return err
	}
	defer pg.Close()

	return fn(ctx, &env{cfg: cfg, log: log, db: pg})
}

func initDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "initdb",
		Short: "Create the tables for the configured EVENT_SCHEMA",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, e *env) error {
				if err := bundb.CreateTables(ctx, e.db, e.cfg.EventSchema, e.log); err != nil {
					return err
				}
				e.log.Info("tables ready", zap.String("event_schema", e.cfg.EventSchema))
				return nil
			})
		},
	}
}

func addUserCmd() *cobra.Command {
	var name, email string
	cmd := &cobra.Command{
		Use:   "adduser",
		Short: "Add a user to the directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" || email == "" {
				return errors.New("both --name and --email are required")
			}
			return run(func(ctx context.Context, e *env) error {
				users := service.NewUserDirectory(store.New(e.db), e.log)
				u, err := users.Create(ctx, name, email)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "user %q saved with id %d\n", u.Email, u.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name (required)")
	cmd.Flags().StringVar(&email, "email", "", "email address (required)")
	return cmd
}

func migrateCmd() *cobra.Command {
	var dsn string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Copy events, teams and users from the legacy MySQL database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, e *env) error {
				if dsn == "" {
					dsn = e.cfg.MySQLDSN
				}
				if dsn == "" {
					return errors.New("MYSQL_DSN or --dsn is required, e.g. user:pass@tcp(host:3306)/rogainizer")
				}
				return migrate(ctx, e, dsn)
			})
		},
	}
	cmd.Flags().StringVar(&dsn, "dsn", "", "legacy MySQL DSN (defaults to MYSQL_DSN)")
	return cmd
}
