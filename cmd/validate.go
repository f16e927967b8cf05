package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/bgdnvk/catalogfix/internal/catalog"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var validateCmd = &cobra.Command{
	Use:   "validate [catalog-file]",
	Short: "Check the error catalog for missing fields and duplicate slugs",
	Long: `Count catalog records by category and report records missing any of
canonical_slug, title, summary, root_causes, fix_steps or examples, plus
duplicated slugs.

Example:
  catalogfix validate
  catalogfix validate kubernetes/errors/k8s_errors.ts --strict`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

var validateStrict bool

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Exit with an error when missing fields or duplicates are found")
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := catalogPath(args)

	var store catalog.Store
	doc, err := store.Read(path)
	if err != nil {
		return err
	}

	report := catalog.Validate(doc)
	printReport(cmd.OutOrStdout(), report)

	if validateStrict && !report.OK() {
		return fmt.Errorf("catalog %s: %d records with missing fields, %d duplicated slugs",
			path, len(report.MissingFields), len(report.Duplicates))
	}
	return nil
}

func printReport(w io.Writer, report catalog.Report) {
	title := cases.Title(language.English)

	fmt.Fprintf(w, "Total K8s errors: %d\n", report.Total)
	fmt.Fprintln(w, "Categories:")
	for _, name := range report.SortedCategories() {
		fmt.Fprintf(w, "  %s: %d\n", title.String(name), report.Categories[name])
	}

	fmt.Fprintf(w, "Errors with missing fields: %d\n", len(report.MissingFields))
	for _, m := range report.MissingFields {
		name := m.Slug
		if name == "" {
			name = "(no slug)"
		}
		fmt.Fprintf(w, "  %s (line %d): %s\n", name, m.Line, strings.Join(m.Fields, ", "))
	}

	fmt.Fprintf(w, "Unique slugs: %d (total: %d)\n", report.UniqueSlugs, report.Total)
	for _, slug := range sortedKeys(report.Duplicates) {
		fmt.Fprintf(w, "  duplicate %s x%d\n", slug, report.Duplicates[slug])
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
