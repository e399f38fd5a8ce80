package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	statsSpamTrain string
	statsHamTrain  string
	statsConfig    string
	statsTop       int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Train and print model statistics",
	Long:  `Train on the spam and ham corpora and print priors, vocabulary size and the most indicative words of each class.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, closer, err := setup(statsConfig)
		if err != nil {
			return err
		}
		defer closer.Close()

		if !cmd.Flags().Changed("top") {
			statsTop = cfg.Evaluation.TopWords
		}

		model, err := trainFromConfig(cfg, statsSpamTrain, statsHamTrain)
		if err != nil {
			return err
		}

		model.PrintStats(os.Stdout, statsTop)
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsSpamTrain, "spam-train", "", "Spam training corpus")
	statsCmd.Flags().StringVar(&statsHamTrain, "ham-train", "", "Ham training corpus")
	statsCmd.Flags().StringVarP(&statsConfig, "config", "c", "", "Configuration file path")
	statsCmd.Flags().IntVarP(&statsTop, "top", "t", 10, "Number of words listed per class")
}
