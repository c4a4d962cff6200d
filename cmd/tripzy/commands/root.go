// Package commands implements the tripzy command line.
package commands

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mmynk/tripzy/internal/config"
	"github.com/mmynk/tripzy/pkg/logging"
)

// cli is the state shared by the subcommands of one invocation.
type cli struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
}

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	c := &cli{v: config.New()}

	root := &cobra.Command{
		Use:           "tripzy",
		Short:         "Group travel planning backend",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.cfgFile != "" {
				c.v.SetConfigFile(c.cfgFile)
			}
			cfg, err := config.Load(c.v)
			if err != nil {
				return err
			}
			c.cfg = cfg
			c.logger = logging.Setup(cfg.LogLevel)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default ./tripzy.yaml)")
	root.PersistentFlags().String("log-level", "", "debug, info, warn or error")
	_ = c.v.BindPFlag(config.KeyLogLevel, root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(serveCmd(c), workerCmd(c), balancesCmd(c), migrateCmd(c))
	return root
}

// bindDB adds the --db flag shared by the commands that open the database.
func bindDB(c *cli, cmd *cobra.Command) {
	cmd.Flags().String("db", "", "SQLite database path")
	_ = c.v.BindPFlag(config.KeyDBPath, cmd.Flags().Lookup("db"))
}
