package record

import (
	"strings"

	"github.com/zhouzirui/treat-or-hell/backend/internal/model/questionnaire"
)

const (
	answerMarker    = "Answer:"
	timestampPrefix = "Response submitted at: "
)

// Separator delimits the header of a behavior record.
var Separator = strings.Repeat("=", 60)

// Encode renders a behavior record. Questions are written in catalog order and
// only when present in answers.
func Encode(catalog *questionnaire.Catalog, answers questionnaire.AnswerSet, timestamp string) string {
	var b strings.Builder
	b.WriteString(Separator + "\n")
	b.WriteString(timestampPrefix + timestamp + "\n")
	b.WriteString(Separator + "\n\n")

	for _, q := range catalog.Questions() {
		answer, ok := answers[q.ID]
		if !ok {
			continue
		}
		b.WriteString(q.ID + ": " + q.Text + "\n")
		b.WriteString(answerMarker + " " + answer + "\n\n")
	}

	return b.String()
}

// Decode recovers the answers of the latest complete record in text. Sections
// between separators are scanned newest first; the first one that yields at
// least one id/answer pair wins. Lines starting with idPrefix and containing a
// colon open a question; its answer is the next line starting with "Answer:".
// Decode never fails: malformed input yields nil or a partial mapping.
func Decode(text, idPrefix string) questionnaire.AnswerSet {
	sections := strings.Split(text, Separator)

	for i := len(sections) - 1; i >= 0; i-- {
		section := sections[i]
		if !strings.Contains(section, answerMarker) {
			continue
		}
		if answers := decodeSection(section, idPrefix); len(answers) > 0 {
			return answers
		}
	}

	return nil
}

func decodeSection(section, idPrefix string) questionnaire.AnswerSet {
	lines := strings.Split(strings.TrimSpace(section), "\n")
	answers := make(questionnaire.AnswerSet)

	for i, line := range lines {
		if !strings.HasPrefix(line, idPrefix) || !strings.Contains(line, ":") || i+1 >= len(lines) {
			continue
		}
		id := strings.TrimSpace(line[:strings.Index(line, ":")])

		for _, next := range lines[i+1:] {
			if strings.HasPrefix(next, answerMarker) {
				answers[id] = strings.TrimSpace(strings.TrimPrefix(next, answerMarker))
				break
			}
		}
	}

	return answers
}
