package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zpam/nbspam/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
	Long:  `Generate, validate and display nbspam configuration files`,
}

var configGenCmd = &cobra.Command{
	Use:   "generate [config-file]",
	Short: "Generate default configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := "config.yaml"
		if len(args) > 0 {
			configPath = args[0]
		}

		if _, err := os.Stat(configPath); err == nil {
			overwrite, _ := cmd.Flags().GetBool("force")
			if !overwrite {
				return fmt.Errorf("config file already exists: %s (use --force to overwrite)", configPath)
			}
		}

		if err := config.DefaultConfig().SaveConfig(configPath); err != nil {
			return fmt.Errorf("failed to save config: %v", err)
		}

		fmt.Printf("✅ Configuration file generated: %s\n", configPath)
		fmt.Printf("📝 Set training.spam_file and training.ham_file before running\n")
		fmt.Printf("🚀 Use 'nbspam run --config %s' to use the configuration\n", configPath)
		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate [config-file]",
	Short: "Validate configuration file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(args[0])
		if err != nil {
			return fmt.Errorf("❌ Configuration validation failed: %v", err)
		}

		fmt.Printf("✅ Configuration is valid: %s\n", args[0])

		if warnings := configWarnings(cfg); len(warnings) > 0 {
			fmt.Printf("\n⚠️  Warnings:\n")
			for _, warning := range warnings {
				fmt.Printf("  - %s\n", warning)
			}
		}
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show [config-file]",
	Short: "Show current configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.DefaultConfig()
		if len(args) > 0 {
			var err error
			cfg, err = config.LoadConfig(args[0])
			if err != nil {
				return fmt.Errorf("failed to load config: %v", err)
			}
			fmt.Printf("Configuration: %s\n\n", args[0])
		} else {
			fmt.Printf("Default Configuration:\n\n")
		}

		fmt.Printf("📚 Training:\n")
		fmt.Printf("  Spam file: %s\n", orUnset(cfg.Training.SpamFile))
		fmt.Printf("  Ham file: %s\n", orUnset(cfg.Training.HamFile))

		fmt.Printf("\n🧪 Evaluation:\n")
		fmt.Printf("  Spam test file: %s\n", orUnset(cfg.Evaluation.SpamTestFile))
		fmt.Printf("  Ham test file: %s\n", orUnset(cfg.Evaluation.HamTestFile))
		fmt.Printf("  Workers: %d\n", cfg.Evaluation.Workers)
		fmt.Printf("  Top words: %d\n", cfg.Evaluation.TopWords)

		fmt.Printf("\n📋 Report:\n")
		fmt.Printf("  Console: %v\n", cfg.Report.Console)
		fmt.Printf("  Redis: %v", cfg.Report.Redis.Enabled)
		if cfg.Report.Redis.Enabled {
			fmt.Printf(" (%s, prefix %s, ttl %s)", cfg.Report.Redis.RedisURL,
				cfg.Report.Redis.KeyPrefix, cfg.Report.Redis.TTL)
		}
		fmt.Println()

		fmt.Printf("\n📝 Logging: %s/%s", cfg.Logging.Level, cfg.Logging.Format)
		if cfg.Logging.File != "" {
			fmt.Printf(" -> %s", cfg.Logging.File)
		}
		fmt.Println()

		fmt.Printf("\n📧 Milter: %s://%s (reject spam: %v)\n",
			cfg.Milter.Network, cfg.Milter.Address, cfg.Milter.RejectSpam)
		return nil
	},
}

// configWarnings reports settings that load fine but are probably mistakes.
func configWarnings(cfg *config.Config) []string {
	var warnings []string

	if cfg.Training.SpamFile == "" || cfg.Training.HamFile == "" {
		warnings = append(warnings, "Training files are not set; they must be given as flags")
	}
	if cfg.Training.SpamFile != "" && cfg.Training.SpamFile == cfg.Training.HamFile {
		warnings = append(warnings, "Spam and ham training files are the same file")
	}
	if cfg.Evaluation.Workers > 64 {
		warnings = append(warnings, "High worker count gives little benefit for classification")
	}
	if !cfg.Report.Console && !cfg.Report.Redis.Enabled {
		warnings = append(warnings, "No reporter enabled; only the summary will be printed")
	}
	if cfg.Milter.RejectSpam && cfg.Milter.RejectMessage == "" {
		warnings = append(warnings, "Spam is rejected without a reject message")
	}

	return warnings
}

func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}

func init() {
	configCmd.AddCommand(configGenCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configShowCmd)

	configGenCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
