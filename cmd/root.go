package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "nbspam",
	Short: "nbspam - Bernoulli naive Bayes spam classifier",
	Long: `nbspam trains a Bernoulli naive Bayes model on tagged spam and ham corpora
and labels emails as spam or ham.

Every run trains from scratch; no model is stored between runs.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("nbspam - naive Bayes spam classifier")
		fmt.Println("Use 'nbspam --help' for usage information")
	},
}

// Execute runs the command tree. SIGINT and SIGTERM cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(milterCmd)
}
