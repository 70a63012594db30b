package main

import (
	"github.com/spf13/cobra"

	"entity-binder/internal/analyze"
	"entity-binder/internal/descriptor"
)

func newDescribeCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "describe packages",
		Short: "Write the class descriptor of Go packages as YAML",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}

			a := analyze.NewAnalyzer(analyze.Options{Dir: cfg.Dir, Logger: log})

			idx, err := a.Load(cmd.Context(), cfg.Patterns...)
			if err != nil {
				return err
			}

			f := descriptor.FromIndex(idx)

			if out != "" {
				return descriptor.WriteFile(f, out)
			}

			data, err := descriptor.Marshal(f)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(data)

			return err
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "write to a file instead of stdout")

	return cmd
}
