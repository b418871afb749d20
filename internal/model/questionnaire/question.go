package questionnaire

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Question is a single multiple-choice entry of the questionnaire.
type Question struct {
	ID      string   `json:"-"`
	Text    string   `json:"question"`
	Options []string `json:"options"`
}

// AnswerSet maps question ids to the chosen option.
type AnswerSet map[string]string

// Catalog is the ordered, immutable set of questions. Insertion order is the
// canonical presentation and summarization order.
type Catalog struct {
	idPrefix  string
	questions *orderedmap.OrderedMap[string, Question]
}

// NewCatalog builds a catalog from questions in presentation order. idPrefix is
// the leading token every question id starts with ("Q" for Q1..Qn); the record
// decoder uses it to spot question lines.
func NewCatalog(idPrefix string, questions ...Question) *Catalog {
	items := orderedmap.New[string, Question]()
	for _, q := range questions {
		q.Options = append([]string(nil), q.Options...)
		items.Set(q.ID, q)
	}
	return &Catalog{idPrefix: idPrefix, questions: items}
}

// IDPrefix returns the id prefix shared by all question ids.
func (c *Catalog) IDPrefix() string {
	return c.idPrefix
}

// Len returns the number of questions.
func (c *Catalog) Len() int {
	return c.questions.Len()
}

// IDs returns question ids in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, c.questions.Len())
	for pair := c.questions.Oldest(); pair != nil; pair = pair.Next() {
		ids = append(ids, pair.Key)
	}
	return ids
}

// Questions returns a copy of the questions in catalog order.
func (c *Catalog) Questions() []Question {
	out := make([]Question, 0, c.questions.Len())
	for pair := c.questions.Oldest(); pair != nil; pair = pair.Next() {
		q := pair.Value
		q.Options = append([]string(nil), q.Options...)
		out = append(out, q)
	}
	return out
}

// Lookup finds a question by id.
func (c *Catalog) Lookup(id string) (Question, bool) {
	q, ok := c.questions.Get(id)
	if ok {
		q.Options = append([]string(nil), q.Options...)
	}
	return q, ok
}

// MarshalJSON renders the catalog as an id → {question, options} object whose
// keys keep catalog order.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.questions)
}
