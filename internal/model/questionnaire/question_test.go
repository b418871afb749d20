package questionnaire

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestCatalogKeepsInsertionOrder(t *testing.T) {
	catalog := NewCatalog("Q",
		Question{ID: "Q10", Text: "ten", Options: []string{"a"}},
		Question{ID: "Q2", Text: "two", Options: []string{"b"}},
		Question{ID: "Q1", Text: "one", Options: []string{"c"}},
	)

	if got := catalog.IDs(); !reflect.DeepEqual(got, []string{"Q10", "Q2", "Q1"}) {
		t.Fatalf("unexpected order: %v", got)
	}

	data, err := json.Marshal(catalog)
	if err != nil {
		t.Fatalf("Marshal err: %v", err)
	}
	body := string(data)
	if !(strings.Index(body, `"Q10"`) < strings.Index(body, `"Q2"`) && strings.Index(body, `"Q2"`) < strings.Index(body, `"Q1"`)) {
		t.Fatalf("json keys lost catalog order: %s", body)
	}
	if !strings.Contains(body, `"question":"ten"`) || !strings.Contains(body, `"options":["a"]`) {
		t.Fatalf("unexpected question shape: %s", body)
	}
}

func TestCatalogQuestionsAreCopies(t *testing.T) {
	catalog := Seed()
	questions := catalog.Questions()
	questions[0].Options[0] = "tampered"

	q, ok := catalog.Lookup("Q1")
	if !ok {
		t.Fatal("expected Q1 in catalog")
	}
	if q.Options[0] == "tampered" {
		t.Fatal("catalog mutated through Questions()")
	}
}

func TestSeedCatalog(t *testing.T) {
	catalog := Seed()
	if catalog.Len() != 4 {
		t.Fatalf("expected 4 questions, got %d", catalog.Len())
	}
	if catalog.IDPrefix() != "Q" {
		t.Fatalf("unexpected id prefix %q", catalog.IDPrefix())
	}
	if _, ok := catalog.Lookup("Q5"); ok {
		t.Fatal("Q5 should not exist")
	}
}
