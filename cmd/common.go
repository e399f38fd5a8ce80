package cmd

import (
	"fmt"
	"io"

	"github.com/AlecAivazis/survey/v2"
	"github.com/pkg/errors"

	"github.com/zpam/nbspam/pkg/config"
	"github.com/zpam/nbspam/pkg/corpus"
	"github.com/zpam/nbspam/pkg/learning"
	"github.com/zpam/nbspam/pkg/logging"
	"github.com/zpam/nbspam/pkg/profiler"
)

// setup loads the configuration, applies overrides and installs the logger.
// The returned closer must be closed when the command ends.
func setup(configPath string, overrides ...func(*config.Config)) (*config.Config, io.Closer, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to load configuration")
	}
	for _, override := range overrides {
		override(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, errors.Wrap(err, "invalid configuration")
	}

	closer, err := logging.Init(cfg.Logging)
	if err != nil {
		return nil, nil, err
	}
	return cfg, closer, nil
}

// promptPath asks for a file name when value is empty.
func promptPath(value *string, message string) error {
	if *value != "" {
		return nil
	}

	prompt := &survey.Input{Message: message}
	if err := survey.AskOne(prompt, value, survey.WithValidator(survey.Required)); err != nil {
		return errors.Wrap(err, "reading file name")
	}
	return nil
}

// trainFromFiles loads both corpora and trains a model, timing each stage.
func trainFromFiles(prof *profiler.Profiler, spamPath, hamPath string) (*learning.Model, error) {
	var set learning.TrainingSet
	err := prof.Time("load", func() error {
		var err error
		set, err = corpus.Load(spamPath, hamPath)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load training data")
	}

	var model *learning.Model
	err = prof.Time("train", func() error {
		var err error
		model, err = learning.Train(set)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to train model")
	}

	return model, nil
}

// trainFromConfig trains on the files named by flags, falling back to cfg.
func trainFromConfig(cfg *config.Config, spamPath, hamPath string) (*learning.Model, error) {
	if spamPath == "" {
		spamPath = cfg.Training.SpamFile
	}
	if hamPath == "" {
		hamPath = cfg.Training.HamFile
	}
	if spamPath == "" || hamPath == "" {
		return nil, fmt.Errorf("both --spam-train and --ham-train (or training.spam_file and training.ham_file) are required")
	}
	return trainFromFiles(profiler.New(), spamPath, hamPath)
}
