package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"entity-binder/internal/config"
	"entity-binder/internal/diagnostic"
	"entity-binder/internal/report"
)

var errCheckFailed = errors.New("check failed")

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [packages]",
		Short: "Report configuration problems without printing hierarchies",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}

			res, diags, buildErr := build(cmd.Context(), cfg, log)
			if buildErr != nil {
				diags.AddError(diagnostic.CodeBuildFailed, buildErr.Error(), "", "")
			}

			if err := report.Write(cmd.OutOrStdout(), report.New(nil, diags), cfg.Format); err != nil {
				return err
			}

			if diags.HasErrors() {
				return fmt.Errorf("%w: %d error(s)", errCheckFailed, len(diags.Errors))
			}

			if cfg.Format == config.FormatText {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok: %d hierarchies, %d warnings\n",
					len(res.Hierarchies), len(diags.Warnings))
			}

			return err
		},
	}
}
