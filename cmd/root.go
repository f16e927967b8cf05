package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/bgdnvk/catalogfix/internal/catalog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultCatalogPath is the catalog patched when no path is given.
const DefaultCatalogPath = "kubernetes/errors/k8s_errors.ts"

var (
	cfgFile string
	logger  = zap.NewNop()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "catalogfix",
	Short: "Maintenance tool for the Kubernetes error catalog",
	Long: `catalogfix repairs and checks the static Kubernetes error catalog.

It fills in missing summary fields from a known slug table, validates the
catalog's records, and can keep watching the file to re-patch it on change.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		config.Encoding = "console"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		if viper.GetBool("debug") {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.catalogfix.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug output (shows per-gap decisions)")
	rootCmd.PersistentFlags().String("summaries", "", "YAML file with extra slug summaries (overrides built-in entries)")
}

// bindConfig maps flags onto config keys. It runs on every execution so the
// bindings survive a viper.Reset.
func bindConfig() {
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("catalog.summaries_file", rootCmd.PersistentFlags().Lookup("summaries"))
	viper.BindPFlag("patch.indent", patchCmd.Flags().Lookup("indent"))
	viper.BindPFlag("patch.backup", patchCmd.Flags().Lookup("backup"))
	viper.BindPFlag("patch.unsafe_in_place", patchCmd.Flags().Lookup("unsafe-in-place"))
	viper.BindPFlag("patch.debounce_ms", patchCmd.Flags().Lookup("debounce"))

	viper.SetDefault("catalog.path", DefaultCatalogPath)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	bindConfig()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".catalogfix")
	}

	viper.SetEnvPrefix("catalogfix")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("debug") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

// catalogPath picks the positional argument, falling back to configuration.
func catalogPath(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return viper.GetString("catalog.path")
}

// summaryTable returns the built-in summaries overlaid with the configured file.
func summaryTable() (catalog.Summaries, error) {
	table := catalog.DefaultSummaries()
	file := viper.GetString("catalog.summaries_file")
	if file == "" {
		return table, nil
	}
	overlay, err := catalog.LoadSummaries(file)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded summaries overlay", zap.String("file", file), zap.Int("entries", len(overlay)))
	return table.Merge(overlay), nil
}
