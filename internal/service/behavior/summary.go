// Package behavior turns a stored questionnaire submission into prompt text.
package behavior

import (
	"strings"

	"github.com/zhouzirui/treat-or-hell/backend/internal/model/questionnaire"
)

const (
	header      = "\n\nThe student's recent behavior report:"
	instruction = "\nUse this info to personalize your response. Reference their actual choices explicitly."
)

// Summarize renders one "- answer" bullet per catalog question present in
// answers, in catalog order. Ids unknown to the catalog are ignored. An empty
// result means no behavior context is available.
func Summarize(catalog *questionnaire.Catalog, answers questionnaire.AnswerSet) string {
	if len(answers) == 0 {
		return ""
	}

	lines := []string{header}
	for _, id := range catalog.IDs() {
		if answer, ok := answers[id]; ok {
			lines = append(lines, "- "+answer)
		}
	}
	lines = append(lines, instruction)

	return strings.Join(lines, "\n")
}
