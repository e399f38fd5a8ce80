// Package corpus reads tagged email corpora into normalized documents.
//
// A corpus file holds one email after another, each laid out as
//
//	<SUBJECT>
//	subject text
//	</SUBJECT>
//	<BODY>
//	body text
//	</BODY>
//
// Markers are recognized at the start of a line. Text sharing a line with a
// start marker is dropped.
package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/zpam/nbspam/pkg/learning"
)

const (
	subjectStart = "<SUBJECT>"
	bodyStart    = "<BODY>"
	bodyEnd      = "</BODY>"

	maxLineSize = 1024 * 1024
)

// DataAccessError reports a corpus file that could not be read.
type DataAccessError struct {
	Path string
	Err  error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("corpus: cannot read %s: %v", e.Path, e.Err)
}

func (e *DataAccessError) Unwrap() error { return e.Err }

// extractor pulls the region between a start marker and </BODY> out of
// every email.
type extractor struct {
	start string

	// keepEmpty keeps regions that normalize to nothing.
	keepEmpty bool

	// strip lists tags, already lowercased, removed from the region text.
	strip []string
}

var (
	wholeDocument = extractor{
		start: subjectStart,
		strip: []string{"</subject>", "<body>"},
	}
	bodyOnly = extractor{
		start:     bodyStart,
		keepEmpty: true,
	}
)

func (x extractor) read(r io.Reader) ([]string, error) {
	var (
		docs    []string
		content strings.Builder
		inside  bool
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, x.start):
			inside = true
			content.Reset()
		case strings.HasPrefix(line, bodyEnd):
			if !inside {
				continue
			}
			inside = false

			text := Normalize(content.String())
			if text == "" && !x.keepEmpty {
				continue
			}
			for _, tag := range x.strip {
				text = strings.ReplaceAll(text, tag, "")
			}
			docs = append(docs, strings.TrimSpace(text))
		case inside:
			content.WriteString(collapse(line))
			content.WriteByte('\n')
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "scanning corpus")
	}
	return docs, nil
}

func (x extractor) readFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DataAccessError{Path: path, Err: err}
	}
	defer f.Close()

	docs, err := x.read(f)
	if err != nil {
		return nil, &DataAccessError{Path: path, Err: err}
	}
	return docs, nil
}

// WholeDocuments returns the subject and body of every email in the file at
// path. Emails whose text is empty are skipped.
func WholeDocuments(path string) ([]string, error) {
	return wholeDocument.readFile(path)
}

// BodyOnlyDocuments returns the body of every email in the file at path.
// An empty body still yields one (empty) document.
func BodyOnlyDocuments(path string) ([]string, error) {
	return bodyOnly.readFile(path)
}

// ReadWholeDocuments is WholeDocuments over an arbitrary reader.
func ReadWholeDocuments(r io.Reader) ([]string, error) {
	return wholeDocument.read(r)
}

// ReadBodyOnlyDocuments is BodyOnlyDocuments over an arbitrary reader.
func ReadBodyOnlyDocuments(r io.Reader) ([]string, error) {
	return bodyOnly.read(r)
}

// Normalize collapses whitespace runs within each line of text to a single
// space, trims the result and lowercases it.
func Normalize(text string) string {
	var b strings.Builder
	for _, line := range strings.Split(text, "\n") {
		b.WriteString(collapse(line))
		b.WriteByte('\n')
	}
	return cases.Lower(language.Und).String(strings.TrimSpace(b.String()))
}

func collapse(line string) string {
	return strings.Join(strings.Fields(line), " ")
}

// Load reads both views of the spam and ham training files. Any read failure
// aborts the load; no partial training set is returned.
func Load(spamPath, hamPath string) (learning.TrainingSet, error) {
	var set learning.TrainingSet

	steps := []struct {
		dst  *[]string
		path string
		read func(string) ([]string, error)
	}{
		{&set.SpamWhole, spamPath, WholeDocuments},
		{&set.HamWhole, hamPath, WholeDocuments},
		{&set.SpamBody, spamPath, BodyOnlyDocuments},
		{&set.HamBody, hamPath, BodyOnlyDocuments},
	}

	for _, step := range steps {
		docs, err := step.read(step.path)
		if err != nil {
			return learning.TrainingSet{}, err
		}
		*step.dst = docs
	}

	return set, nil
}
