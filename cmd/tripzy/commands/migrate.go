package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/tripzy/internal/storage/sqlite"
)

func migrateCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := sqlite.Open(c.cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := sqlite.Migrate(db); err != nil {
				return err
			}
			version, err := sqlite.Version(db)
			if err != nil {
				return fmt.Errorf("failed to read schema version: %w", err)
			}

			c.logger.Info("Migrations applied", "database", c.cfg.DBPath, "version", version)
			fmt.Fprintf(cmd.OutOrStdout(), "%s: schema version %d\n", c.cfg.DBPath, version)
			return nil
		},
	}
	bindDB(c, cmd)
	return cmd
}
