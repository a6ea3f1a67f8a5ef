package main

import (
	"fmt"
	"os/user"

	"github.com/bitfantasy/nimo-fab/internal/config"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	operator   string
}

// RootCmd fab 命令入口
func RootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "fab",
		Short:        "Job order and delivery order back office",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ./configs/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.operator, "operator", defaultOperator(), "operator recorded in the transition log")

	cmd.AddCommand(
		serveCmd(opts),
		ordersCmd(opts),
		deliveryCmd(opts),
		masterCmd(opts),
		versionCmd(),
	)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fab %s (built %s)\n", Version, BuildTime)
		},
	}
}

func defaultOperator() string {
	fallback := "cli"
	if u, err := user.Current(); err == nil && u.Username != "" {
		fallback = u.Username
	}
	return config.GetEnvOrDefault("FAB_OPERATOR", fallback)
}
