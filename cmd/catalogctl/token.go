package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iliyamo/painting-catalog/internal/config"
	"github.com/iliyamo/painting-catalog/internal/middleware"
	"github.com/iliyamo/painting-catalog/internal/utils"
)

func tokenCmd() *cobra.Command {
	var subject string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a curator token for the write routes",
		RunE: func(cmd *cobra.Command, args []string) error {
			secret := config.Load().JWTSecret
			if secret == "" {
				return errors.New("JWT_SECRET is not set")
			}
			tok, err := utils.NewAccessToken(secret, subject, middleware.RoleCurator, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok.Token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", tok.Exp.Format(time.RFC3339))
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "curator", "Token subject (curator name)")
	cmd.Flags().DurationVar(&ttl, "ttl", 60*time.Minute, "Token lifetime")
	return cmd
}
