package cmd

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/zpam/nbspam/pkg/corpus"
	"github.com/zpam/nbspam/pkg/learning"
)

var (
	classifySpamTrain string
	classifyHamTrain  string
	classifyFile      string
	classifyConfig    string
)

var classifyCmd = &cobra.Command{
	Use:   "classify [text...]",
	Short: "Train, then label the given text or the bodies of a corpus file",
	Long: `Train on the spam and ham corpora, then label either the text given as
arguments or every body in the --file corpus.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if classifyFile == "" && len(args) == 0 {
			return fmt.Errorf("give text to classify or --file")
		}

		cfg, closer, err := setup(classifyConfig)
		if err != nil {
			return err
		}
		defer closer.Close()

		model, err := trainFromConfig(cfg, classifySpamTrain, classifyHamTrain)
		if err != nil {
			return err
		}

		var docs []string
		if classifyFile != "" {
			docs, err = corpus.BodyOnlyDocuments(classifyFile)
			if err != nil {
				return errors.Wrap(err, "failed to load documents")
			}
		} else {
			docs = []string{corpus.Normalize(strings.Join(args, " "))}
		}

		for i, doc := range docs {
			res, err := model.Classify(doc)
			if err != nil {
				fmt.Printf("%d: skipped: %v\n", i+1, err)
				continue
			}
			printResult(i+1, res, model.VocabularySize())
		}

		return nil
	},
}

func printResult(n int, res learning.Result, vocabSize int) {
	fmt.Printf("%d: %s (spam %.3f, ham %.3f, %d/%d features)\n",
		n, strings.ToUpper(string(res.Label)), res.SpamScore, res.HamScore,
		res.MatchedFeatures, vocabSize)
}

func init() {
	classifyCmd.Flags().StringVar(&classifySpamTrain, "spam-train", "", "Spam training corpus")
	classifyCmd.Flags().StringVar(&classifyHamTrain, "ham-train", "", "Ham training corpus")
	classifyCmd.Flags().StringVarP(&classifyFile, "file", "f", "", "Corpus file whose bodies are classified")
	classifyCmd.Flags().StringVarP(&classifyConfig, "config", "c", "", "Configuration file path")
}
