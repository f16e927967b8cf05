package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bgdnvk/catalogfix/internal/catalog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var patchCmd = &cobra.Command{
	Use:   "patch [catalog-file]",
	Short: "Insert missing summary fields into the error catalog",
	Long: `Find every error object whose category is directly followed by root_causes,
resolve its canonical slug and insert the known summary between them.

The catalog is replaced atomically unless --unsafe-in-place is set. Objects
whose slug has no known summary are left alone and counted as remaining.

Example:
  catalogfix patch kubernetes/errors/k8s_errors.ts
  catalogfix patch --dry-run --debug
  catalogfix patch --summaries extra.yaml --backup
  catalogfix patch --watch`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPatch,
}

var (
	patchDryRun bool
	patchWatch  bool
)

func init() {
	rootCmd.AddCommand(patchCmd)

	patchCmd.Flags().BoolVar(&patchDryRun, "dry-run", false, "Report what would change without writing the catalog")
	patchCmd.Flags().BoolVar(&patchWatch, "watch", false, "Keep running and re-patch whenever the catalog changes")
	patchCmd.Flags().String("indent", catalog.DefaultIndent, "Indentation for inserted summary lines")
	patchCmd.Flags().Bool("backup", false, "Copy the catalog to <file>.bak before replacing it")
	patchCmd.Flags().Bool("unsafe-in-place", false, "Overwrite the catalog directly instead of write-then-rename")
	patchCmd.Flags().Int("debounce", int(catalog.DefaultDebounce/time.Millisecond), "Watch mode debounce in milliseconds")
}

func runPatch(cmd *cobra.Command, args []string) error {
	path := catalogPath(args)

	summaries, err := summaryTable()
	if err != nil {
		return err
	}

	runner := &catalog.Runner{
		Patcher: catalog.NewPatcher(summaries,
			catalog.WithIndent(viper.GetString("patch.indent")),
			catalog.WithLogger(logger)),
		Store: catalog.Store{
			Backup:  viper.GetBool("patch.backup"),
			InPlace: viper.GetBool("patch.unsafe_in_place"),
		},
		DryRun: patchDryRun,
		Logger: logger,
	}

	out := cmd.OutOrStdout()
	res, err := runner.Run(path)
	if err != nil {
		return err
	}
	printPatchResult(out, res, patchDryRun)

	if !patchWatch {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	debounce := time.Duration(viper.GetInt("patch.debounce_ms")) * time.Millisecond
	watcher := catalog.NewWatcher(path, debounce, logger, func(ctx context.Context) error {
		res, err := runner.Run(path)
		if err != nil {
			return err
		}
		if res.Changed {
			printPatchResult(out, res, patchDryRun)
		}
		return nil
	})
	return watcher.Run(ctx)
}

func printPatchResult(w io.Writer, res catalog.Result, dryRun bool) {
	fmt.Fprintf(w, "Found %d error objects missing summary field\n", res.Found)
	if dryRun {
		fmt.Fprintf(w, "Dry run: %d summaries would be inserted. Remaining missing summaries: %d\n", res.Patched, res.Remaining)
	} else {
		fmt.Fprintf(w, "Applied fixes. Remaining missing summaries: %d\n", res.Remaining)
	}

	for _, o := range res.Unresolved() {
		logger.Debug("summary still missing",
			zap.String("slug", o.Slug),
			zap.String("reason", string(o.Status)))
	}
}
