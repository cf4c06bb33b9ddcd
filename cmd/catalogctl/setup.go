package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iliyamo/painting-catalog/internal/config"
	"github.com/iliyamo/painting-catalog/internal/database"
	"github.com/iliyamo/painting-catalog/internal/setup"
	"github.com/iliyamo/painting-catalog/schema"
)

func setupCmd(logger func() *zap.Logger) *cobra.Command {
	var secretsPath, dir string

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Create the catalog tables and load the sample data",
		Long: `Runs create_tables.sql and then sample_data.sql against the database
named in the secrets file. Existing catalog tables are dropped first. The run
stops at the first missing script or SQL error.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("secrets") {
				secretsPath = config.Load().SecretsPath
			}
			creds, err := config.LoadCredentials(secretsPath)
			if err != nil {
				return err
			}
			db, err := database.Open(cmd.Context(), creds)
			if err != nil {
				return err
			}
			defer db.Close()

			if dir == "" {
				dir = filepath.Join("schema", string(db.Dialect()))
			}
			log := logger().With(zap.String("dialect", string(db.Dialect())), zap.String("dir", dir))
			if err := setup.Run(cmd.Context(), db, os.DirFS(dir), log, schema.CreateTables, schema.SampleData); err != nil {
				return err
			}
			log.Info("catalog database ready")
			return nil
		},
	}
	cmd.Flags().StringVar(&secretsPath, "secrets", config.DefaultSecretsPath, "YAML credentials file")
	cmd.Flags().StringVar(&dir, "dir", "", "Directory holding the setup scripts (default schema/<dialect>)")
	return cmd
}
