package questionnaire

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// ValidationKind classifies a rejected submission.
type ValidationKind int

const (
	// MissingAnswers means the submitted ids differ from the catalog ids.
	MissingAnswers ValidationKind = iota + 1
	// InvalidOption means an answer is not one of the question's options.
	InvalidOption
)

// ValidationError is returned by Validate for client-caused problems.
type ValidationError struct {
	Kind ValidationKind
	// IDs lists catalog ids absent from the submission (MissingAnswers) or the
	// offending id (InvalidOption).
	IDs []string
	// Unexpected lists submitted ids the catalog does not know.
	Unexpected []string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case MissingAnswers:
		if len(e.IDs) == 0 {
			return fmt.Sprintf("Unexpected answers for questions: %s", strings.Join(e.Unexpected, ", "))
		}
		return fmt.Sprintf("Missing answers for questions: %s", strings.Join(e.IDs, ", "))
	case InvalidOption:
		return fmt.Sprintf("Invalid answer for %s. Please select from the provided options.", strings.Join(e.IDs, ", "))
	default:
		return "invalid submission"
	}
}

// Validate checks a submission against the catalog. The key set must equal
// the catalog id set and every answer must literally match one option.
// On success the submission is returned unchanged.
func (c *Catalog) Validate(submitted map[string]string) (AnswerSet, error) {
	missing := lo.Filter(c.IDs(), func(id string, _ int) bool {
		_, ok := submitted[id]
		return !ok
	})
	unexpected := lo.Filter(lo.Keys(submitted), func(id string, _ int) bool {
		_, ok := c.Lookup(id)
		return !ok
	})
	sort.Strings(unexpected)

	if len(missing) > 0 || len(unexpected) > 0 {
		return nil, &ValidationError{Kind: MissingAnswers, IDs: missing, Unexpected: unexpected}
	}

	for _, q := range c.Questions() {
		if !lo.Contains(q.Options, submitted[q.ID]) {
			return nil, &ValidationError{Kind: InvalidOption, IDs: []string{q.ID}}
		}
	}

	return AnswerSet(submitted), nil
}
