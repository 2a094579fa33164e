package pslint

import (
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/pslint/pslint/internal/script"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the rule allow-list behind each category filter",
		Long:  "Shows which PSScriptAnalyzer rules each --*-only switch keeps. Findings outside the selected category's list are dropped before reporting.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Category", "Switch", "Rules")
			for _, cat := range script.Categories {
				if err := table.Append([]string{
					cat.Marker,
					"--" + cat.Name + "-only",
					strings.Join(cat.Rules, "\n"),
				}); err != nil {
					return err
				}
			}
			return table.Render()
		},
	}
	rootCmd.AddCommand(cmd)
}
