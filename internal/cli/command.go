package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/davidaganov/polyglot-keeper/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "polyglot-keeper",
		Short: "Translation file synchronizer",
		Long: `polyglot-keeper keeps translated content files in sync with a
primary locale.

It fills in missing translations via an AI provider, removes keys and
documents the primary locale no longer has, and tracks source changes in
a lock file so edits can be retranslated, skipped or frozen.

Examples:
  polyglot-keeper                      # Sync using .polyglot-keeper.yaml
  polyglot-keeper --dry-run            # Show what would change
  polyglot-keeper --force              # Retranslate everything
  polyglot-keeper --tracking carefully # Review changed units one by one`,
		Args:    cobra.NoArgs,
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is ./.polyglot-keeper.yaml)")

	// Local flags
	cmd.Flags().BoolVar(&flags.Force, "force", false, "Retranslate every unit, clearing the frozen list")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "Report planned work without calling the provider or writing files")
	cmd.Flags().StringVar(&flags.Tracking, "tracking", flags.Tracking, "Change tracking mode: off, on, carefully")
	cmd.Flags().StringSliceVar(&flags.Locales, "locales", nil, "Target locales to sync (default: all configured locales)")
	cmd.Flags().BoolVar(&flags.SkipTrees, "skip-trees", false, "Skip JSON tree synchronization")
	cmd.Flags().BoolVar(&flags.SkipMarkdown, "skip-markdown", false, "Skip markdown synchronization")
	cmd.Flags().BoolVar(&flags.NoCache, "no-cache", false, "Disable the local translation cache")

	// Provider flags
	cmd.Flags().StringVar(&flags.Provider, "provider", flags.Provider, "Translation provider: openai, gemini, noop")
	cmd.Flags().StringVar(&flags.Model, "model", "", "Provider model override")
	cmd.Flags().IntVar(&flags.BatchSize, "batch-size", flags.BatchSize, "Keys per translation request")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("force", cmd.Flags().Lookup("force"))
	viper.BindPFlag("tracking", cmd.Flags().Lookup("tracking"))
	viper.BindPFlag("provider.name", cmd.Flags().Lookup("provider"))
	viper.BindPFlag("provider.model", cmd.Flags().Lookup("model"))
	viper.BindPFlag("batch.size", cmd.Flags().Lookup("batch-size"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Search config in the working directory and home with name
		// ".polyglot-keeper" (without extension)
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName(".polyglot-keeper")
	}

	// Environment variables
	viper.SetEnvPrefix("POLYGLOT")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("provider.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("provider.gemini_key")
}
