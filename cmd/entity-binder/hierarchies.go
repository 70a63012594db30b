package main

import (
	"github.com/spf13/cobra"

	"entity-binder/internal/report"
)

func newHierarchiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hierarchies [packages]",
		Short: "Print the entity hierarchies and their mapped properties",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}

			res, diags, err := build(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}

			log.Info().Int("hierarchies", len(res.Hierarchies)).Msg("resolved entity hierarchies")

			return report.Write(cmd.OutOrStdout(), report.New(res.Hierarchies, diags), cfg.Format)
		},
	}
}
