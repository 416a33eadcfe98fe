// Package analysis computes linguistic counts for a transcript by asking a
// hosted model to fill in a fixed-shape tool call.
package analysis

import "fmt"

// Metrics holds derived counts for a transcript. They are never persisted.
type Metrics struct {
	WordCount        int `json:"wordCount"`
	CharacterCount   int `json:"characterCount"`
	VerbCount        int `json:"verbCount"`
	NounCount        int `json:"nounCount"`
	AdjectiveCount   int `json:"adjectiveCount"`
	ConjunctionCount int `json:"conjunctionCount"`
	ProfanityCount   int `json:"profanityCount"`
}

// Field is a labelled metric value, in display order.
type Field struct {
	Label string
	Value int
}

// Fields returns the metrics as labelled values for rendering.
func (m Metrics) Fields() []Field {
	return []Field{
		{"Words", m.WordCount},
		{"Characters", m.CharacterCount},
		{"Verbs", m.VerbCount},
		{"Nouns", m.NounCount},
		{"Adjectives", m.AdjectiveCount},
		{"Conjunctions", m.ConjunctionCount},
		{"Profanity", m.ProfanityCount},
	}
}

func (m Metrics) String() string {
	return fmt.Sprintf("%d words, %d characters", m.WordCount, m.CharacterCount)
}
