package record

import (
	"reflect"
	"strings"
	"testing"

	"github.com/zhouzirui/treat-or-hell/backend/internal/model/questionnaire"
)

func sampleAnswers() questionnaire.AnswerSet {
	return questionnaire.AnswerSet{
		"Q1": "Submitted on time (solid responsible energy)",
		"Q2": "Googled aggressively",
		"Q3": "I type in the chat (participation ninja)",
		"Q4": "1 hour (efficient or reckless? undecided)",
	}
}

func TestEncodeLayout(t *testing.T) {
	got := Encode(questionnaire.Seed(), sampleAnswers(), "2025-12-05 18:30:00")

	sep := strings.Repeat("=", 60)
	want := sep + "\n" +
		"Response submitted at: 2025-12-05 18:30:00\n" +
		sep + "\n\n" +
		"Q1: How did you handle your first assignment in this course?\n" +
		"Answer: Submitted on time (solid responsible energy)\n\n" +
		"Q2: When you didn't understand something, what did you do?\n" +
		"Answer: Googled aggressively\n\n" +
		"Q3: How do you engage in class?\n" +
		"Answer: I type in the chat (participation ninja)\n\n" +
		"Q4: How many hours did you spend on the assignment?\n" +
		"Answer: 1 hour (efficient or reckless? undecided)\n\n"

	if got != want {
		t.Fatalf("unexpected encoding:\n%s\nwant:\n%s", got, want)
	}
}

func TestEncodeSkipsAbsentQuestions(t *testing.T) {
	got := Encode(questionnaire.Seed(), questionnaire.AnswerSet{"Q3": "I ask questions (Mikuláš approves)"}, "t")
	if strings.Contains(got, "Q1:") || strings.Contains(got, "Q4:") {
		t.Fatalf("absent questions were encoded:\n%s", got)
	}
	if !strings.Contains(got, "Q3: How do you engage in class?\nAnswer: I ask questions (Mikuláš approves)\n\n") {
		t.Fatalf("missing Q3 block:\n%s", got)
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	catalog := questionnaire.Seed()

	for _, q := range catalog.Questions() {
		for _, option := range q.Options {
			answers := sampleAnswers()
			answers[q.ID] = option

			got := Decode(Encode(catalog, answers, "2025-01-01 00:00:00"), catalog.IDPrefix())
			if !reflect.DeepEqual(got, answers) {
				t.Fatalf("round trip mismatch for %s=%q:\ngot  %v\nwant %v", q.ID, option, got, answers)
			}
		}
	}
}

func TestDecodeFixtures(t *testing.T) {
	sep := strings.Repeat("=", 60)

	tests := []struct {
		name string
		text string
		want questionnaire.AnswerSet
	}{
		{name: "empty", text: "", want: nil},
		{name: "whitespace", text: "\n\n  \n", want: nil},
		{name: "header only", text: sep + "\nResponse submitted at: 2025-01-01 00:00:00\n" + sep + "\n\n", want: nil},
		{name: "no answer marker", text: "Q1: How did you handle it?\nnothing here\n", want: nil},
		{
			name: "no separators",
			text: "Q1: question\nAnswer: yes\n",
			want: questionnaire.AnswerSet{"Q1": "yes"},
		},
		{
			name: "blank line between id and answer",
			text: "Q2: question\n\n\nAnswer:   padded value  \n",
			want: questionnaire.AnswerSet{"Q2": "padded value"},
		},
		{
			name: "windows line endings",
			text: "Q1: question\r\nAnswer: crlf\r\n",
			want: questionnaire.AnswerSet{"Q1": "crlf"},
		},
		{
			name: "id line as last line is ignored",
			text: "Q1: question\nAnswer: one\nQ2: dangling",
			want: questionnaire.AnswerSet{"Q1": "one"},
		},
		{
			name: "newest section wins",
			text: sep + "\nResponse submitted at: a\n" + sep + "\n\nQ1: q\nAnswer: old\n\n" +
				sep + "\nResponse submitted at: b\n" + sep + "\n\nQ1: q\nAnswer: new\n\n",
			want: questionnaire.AnswerSet{"Q1": "new"},
		},
		{
			name: "trailing empty sections are skipped",
			text: "Q1: q\nAnswer: kept\n" + sep + "\n\n" + sep + "\n",
			want: questionnaire.AnswerSet{"Q1": "kept"},
		},
		{
			name: "falls back when newest section yields nothing",
			text: "Q1: q\nAnswer: older\n" + sep + "\nAnswer: orphan without id\n",
			want: questionnaire.AnswerSet{"Q1": "older"},
		},
		{
			name: "missing answer borrows the next one",
			text: "Q1: q\nQ2: q\nAnswer: shared\n",
			want: questionnaire.AnswerSet{"Q1": "shared", "Q2": "shared"},
		},
		{
			name: "unknown ids are still recovered",
			text: "Q7: future question\nAnswer: something\n",
			want: questionnaire.AnswerSet{"Q7": "something"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decode(tt.text, "Q")
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Decode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecodeToleratesTruncation(t *testing.T) {
	catalog := questionnaire.Seed()
	answers := sampleAnswers()
	encoded := Encode(catalog, answers, "2025-01-01 00:00:00")

	for cut := 0; cut <= len(encoded); cut++ {
		got := Decode(encoded[:cut], catalog.IDPrefix())
		for id, value := range got {
			full, ok := answers[id]
			if !ok {
				t.Fatalf("cut %d: recovered unknown id %q", cut, id)
			}
			if !strings.HasPrefix(full, value) {
				t.Fatalf("cut %d: %s=%q is not a prefix of %q", cut, id, value, full)
			}
		}
	}
}
