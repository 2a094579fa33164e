package pslint

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update pslint to the latest release",
		RunE: func(cmd *cobra.Command, _ []string) error {
			latest, err := selfUpdate()
			if err != nil {
				return fmt.Errorf("self-update: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "pslint is up to date (v"+latest+")")
			return nil
		},
	}
	rootCmd.AddCommand(cmd)
}
