package cmd

import (
	"context"
	"fmt"
	"net"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/zpam/nbspam/pkg/config"
	"github.com/zpam/nbspam/pkg/milter"
)

var (
	milterConfigFile string
	milterSpamTrain  string
	milterHamTrain   string
	milterNetwork    string
	milterAddress    string
	milterDebug      bool
)

var milterCmd = &cobra.Command{
	Use:   "milter",
	Short: "Start milter server for Postfix/Sendmail integration",
	Long: `Train a model and serve it to Postfix or Sendmail over the milter protocol.

Every message body is classified and the verdict is added as headers.
With milter.reject_spam set, spam is rejected at end of data.

For Postfix integration, add to main.cf:
  smtpd_milters = inet:127.0.0.1:7358
  non_smtpd_milters = inet:127.0.0.1:7358
  milter_default_action = accept`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, closer, err := setup(milterConfigFile, func(cfg *config.Config) {
			if cmd.Flags().Changed("network") {
				cfg.Milter.Network = milterNetwork
			}
			if cmd.Flags().Changed("address") {
				cfg.Milter.Address = milterAddress
			}
			if milterDebug {
				cfg.Logging.Level = "debug"
			}
		})
		if err != nil {
			return err
		}
		defer closer.Close()

		model, err := trainFromConfig(cfg, milterSpamTrain, milterHamTrain)
		if err != nil {
			return err
		}

		server, err := milter.NewServer(cfg.Milter, model)
		if err != nil {
			return errors.Wrap(err, "failed to create milter server")
		}

		listener, err := net.Listen(cfg.Milter.Network, cfg.Milter.Address)
		if err != nil {
			return errors.Wrap(err, "failed to create listener")
		}
		defer listener.Close()

		fmt.Printf("📧 nbspam milter listening on %s://%s\n", cfg.Milter.Network, cfg.Milter.Address)
		fmt.Printf("📚 Vocabulary: %d words\n", model.VocabularySize())
		fmt.Printf("🚀 Press Ctrl+C to stop\n\n")

		err = server.Serve(cmd.Context(), listener)
		if errors.Is(err, context.Canceled) {
			fmt.Printf("✅ Milter server stopped after %d connections\n", server.MilterCount())
			return nil
		}
		return err
	},
}

func init() {
	milterCmd.Flags().StringVarP(&milterConfigFile, "config", "c", "", "Configuration file path")
	milterCmd.Flags().StringVar(&milterSpamTrain, "spam-train", "", "Spam training corpus")
	milterCmd.Flags().StringVar(&milterHamTrain, "ham-train", "", "Ham training corpus")
	milterCmd.Flags().StringVarP(&milterNetwork, "network", "n", "", "Network type (tcp or unix)")
	milterCmd.Flags().StringVarP(&milterAddress, "address", "a", "", "Bind address (e.g., 127.0.0.1:7358 or /tmp/nbspam.sock)")
	milterCmd.Flags().BoolVarP(&milterDebug, "debug", "d", false, "Enable debug logging")
}
