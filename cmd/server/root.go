package main

import (
	"github.com/spf13/cobra"

	"videosvc/internal/config"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	loadConfig := func() (config.Config, error) {
		return config.Load(configFlag)
	}

	rootCmd := &cobra.Command{
		Use:           "videosvc",
		Short:         "Video rendition processing service",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path (YAML)")

	rootCmd.AddCommand(newServeCommand(loadConfig))
	rootCmd.AddCommand(newPlanCommand(loadConfig))
	return rootCmd
}
