package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var summariesCmd = &cobra.Command{
	Use:   "summaries",
	Short: "List the slug summaries used when patching",
	Long: `List the built-in slug summaries merged with the --summaries overlay.

The yaml output can be edited and passed back with --summaries.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := summaryTable()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch summariesOutput {
		case "yaml":
			data, err := table.EncodeYAML()
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		case "text", "":
			fmt.Fprintf(out, "Known summaries (%d):\n\n", len(table))
			for _, slug := range table.SortedSlugs() {
				fmt.Fprintf(out, "  %s\n    %s\n", slug, table[slug])
			}
			return nil
		default:
			return fmt.Errorf("unknown output format %q (use text or yaml)", summariesOutput)
		}
	},
}

var summariesOutput string

func init() {
	rootCmd.AddCommand(summariesCmd)

	summariesCmd.Flags().StringVarP(&summariesOutput, "output", "o", "text", "Output format: text or yaml")
}
