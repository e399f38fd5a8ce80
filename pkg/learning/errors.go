package learning

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrEmptyModel is returned when classifying with a model that was not
// produced by Train.
var ErrEmptyModel = errors.New("learning: model has not been trained")

// InvalidTrainingDataError reports a training set the model cannot be built
// from, such as a class without any documents.
type InvalidTrainingDataError struct {
	Reason string
}

func (e *InvalidTrainingDataError) Error() string {
	return fmt.Sprintf("learning: invalid training data: %s", e.Reason)
}

func invalidTrainingData(format string, args ...interface{}) error {
	return &InvalidTrainingDataError{Reason: fmt.Sprintf(format, args...)}
}
