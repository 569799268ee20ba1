package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	databaseURL string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	// A missing .env is normal outside development
	_ = godotenv.Load()

	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "vanarsena-ctl",
		Short:         "Maintenance commands for the VanarSena site database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.databaseURL, "database-url", "d", os.Getenv("DATABASE_URL"), "PostgreSQL URL (default $DATABASE_URL)")

	cmd.AddCommand(newMigrateCmd(opts))
	cmd.AddCommand(newSeedCmd(opts))
	cmd.AddCommand(newCreateAdminCmd(opts))
	return cmd
}

// open connects and pings the database named by opts
func (o *rootOptions) open(ctx context.Context) (*sql.DB, error) {
	if o.databaseURL == "" {
		return nil, errors.New("database URL required (use --database-url or DATABASE_URL env)")
	}
	conn, err := sql.Open("postgres", o.databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return conn, nil
}
