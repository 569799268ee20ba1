// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/vanarsena/db"
	"github.com/danielhkuo/vanarsena/seed"
)

func newMigrateCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			conn, err := root.open(ctx)
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := db.CreateSchemaContext(ctx, conn); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema ready")
			return nil
		},
	}
}

func newSeedCmd(root *rootOptions) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo events, media, contacts and settings into empty tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			conn, err := root.open(ctx)
			if err != nil {
				return err
			}
			defer conn.Close()

			if migrate {
				if err := db.CreateSchemaContext(ctx, conn); err != nil {
					return err
				}
			}

			res, err := seed.Run(ctx, conn)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d events, %d media, %d contacts, %d settings\n",
				res.Events, res.Media, res.Contacts, res.Settings)
			return nil
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", true, "Create the schema before seeding")
	return cmd
}

type createAdminOptions struct {
	username string
	email    string
	password string
	reset    bool
}

func newCreateAdminCmd(root *rootOptions) *cobra.Command {
	opts := createAdminOptions{
		username: os.Getenv("DEFAULT_ADMIN_USERNAME"),
		email:    os.Getenv("DEFAULT_ADMIN_EMAIL"),
	}

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account, or reset its password with --reset",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.password == "" {
				opts.password = os.Getenv("DEFAULT_ADMIN_PASSWORD")
			}
			if opts.username == "" || opts.password == "" {
				return errors.New("--username and --password are required (or DEFAULT_ADMIN_* env)")
			}
			if opts.email == "" {
				opts.email = opts.username + "@vanarsena.org"
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			conn, err := root.open(ctx)
			if err != nil {
				return err
			}
			defer conn.Close()

			err = seed.CreateAdmin(ctx, conn, seed.Admin{
				Username: opts.username,
				Email:    opts.email,
				Password: opts.password,
			}, opts.reset)
			if errors.Is(err, db.ErrDuplicateUser) {
				return fmt.Errorf("admin %q already exists, use --reset to change its password", opts.username)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "admin %s ready\n", opts.username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.username, "username", "u", opts.username, "Admin username")
	cmd.Flags().StringVar(&opts.email, "email", opts.email, "Admin email")
	cmd.Flags().StringVar(&opts.password, "password", "", "Admin password (default $DEFAULT_ADMIN_PASSWORD)")
	cmd.Flags().BoolVar(&opts.reset, "reset", false, "Reset the password when the account exists")
	return cmd
}
