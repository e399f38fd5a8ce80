package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/zpam/nbspam/pkg/config"
	"github.com/zpam/nbspam/pkg/corpus"
	"github.com/zpam/nbspam/pkg/learning"
	"github.com/zpam/nbspam/pkg/profiler"
	"github.com/zpam/nbspam/pkg/report"
)

var (
	runSpamTrain string
	runHamTrain  string
	runSpamTest  string
	runHamTest   string
	runConfig    string
	runWorkers   int
	runProfile   bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Train on two corpora and evaluate on two test corpora",
	Long: `Train the classifier on a spam and a ham training file, then classify every
body of the spam and ham test files and report how many were labeled correctly.

File names not given as flags or in the configuration are asked for interactively.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, closer, err := setup(runConfig, func(cfg *config.Config) {
			if cmd.Flags().Changed("workers") {
				cfg.Evaluation.Workers = runWorkers
			}
		})
		if err != nil {
			return err
		}
		defer closer.Close()

		if runSpamTrain == "" {
			runSpamTrain = cfg.Training.SpamFile
		}
		if runHamTrain == "" {
			runHamTrain = cfg.Training.HamFile
		}
		if runSpamTest == "" {
			runSpamTest = cfg.Evaluation.SpamTestFile
		}
		if runHamTest == "" {
			runHamTest = cfg.Evaluation.HamTestFile
		}

		prompts := []struct {
			value   *string
			message string
		}{
			{&runSpamTrain, "Enter spam training file name:"},
			{&runHamTrain, "Enter ham training file name:"},
			{&runSpamTest, "Enter spam testing file name:"},
			{&runHamTest, "Enter ham testing file name:"},
		}
		for _, p := range prompts {
			if err := promptPath(p.value, p.message); err != nil {
				return err
			}
		}

		prof := profiler.New()

		model, err := trainFromFiles(prof, runSpamTrain, runHamTrain)
		if err != nil {
			return err
		}
		fmt.Printf("VOCAB: %d\n", model.VocabularySize())

		var reporters report.Multi
		if cfg.Report.Console {
			reporters = append(reporters, report.NewConsole(os.Stdout, model.VocabularySize()))
		}
		if cfg.Report.Redis.Enabled {
			rr, err := report.NewRedis(cmd.Context(), cfg.Report.Redis)
			if err != nil {
				return errors.Wrap(err, "failed to start Redis reporter")
			}
			defer rr.Close()
			slog.Info("publishing results to Redis", "run_id", rr.RunID(), "results_key", rr.ResultsKey())
			reporters = append(reporters, rr)
		}

		opts := learning.EvalOptions{Workers: cfg.Evaluation.Workers, Reporter: reporters}

		var total learning.Evaluation
		for _, batch := range []struct {
			path  string
			truth learning.Label
		}{
			{runSpamTest, learning.Spam},
			{runHamTest, learning.Ham},
		} {
			docs, err := corpus.BodyOnlyDocuments(batch.path)
			if err != nil {
				return errors.Wrap(err, "failed to load test data")
			}

			var eval learning.Evaluation
			err = prof.Time("evaluate", func() error {
				var err error
				eval, err = learning.Evaluate(cmd.Context(), model, docs, batch.truth, opts)
				return err
			})
			if err != nil {
				return errors.Wrapf(err, "evaluating %s", batch.path)
			}

			slog.Debug("batch evaluated", "file", batch.path, "label", batch.truth,
				"correct", eval.Correct, "total", eval.Total, "failed", eval.Failed)
			total.Add(eval)
		}

		fmt.Println(report.Summary(total))

		if runProfile {
			fmt.Println()
			prof.PrintReport(os.Stdout)
		}

		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runSpamTrain, "spam-train", "", "Spam training corpus")
	runCmd.Flags().StringVar(&runHamTrain, "ham-train", "", "Ham training corpus")
	runCmd.Flags().StringVar(&runSpamTest, "spam-test", "", "Spam test corpus")
	runCmd.Flags().StringVar(&runHamTest, "ham-test", "", "Ham test corpus")
	runCmd.Flags().StringVarP(&runConfig, "config", "c", "", "Configuration file path")
	runCmd.Flags().IntVarP(&runWorkers, "workers", "w", 1, "Documents classified concurrently")
	runCmd.Flags().BoolVarP(&runProfile, "profile", "p", false, "Print stage timings")
}
