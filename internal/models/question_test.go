package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionSet_IsFlashcardOnly(t *testing.T) {
	tests := []struct {
		name  string
		items []QuestionItem
		want  bool
	}{
		{name: "empty set", items: nil, want: false},
		{name: "all flashcards", items: []QuestionItem{
			{ID: "c1", Type: Flashcard}, {ID: "c2", Type: Flashcard},
		}, want: true},
		{name: "mixed set", items: []QuestionItem{
			{ID: "c1", Type: Flashcard}, {ID: "q1", Type: MultipleChoice},
		}, want: false},
		{name: "no flashcards", items: []QuestionItem{
			{ID: "q1", Type: ShortAnswer},
		}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qs := QuestionSet{ID: "s", Items: tt.items}
			assert.Equal(t, tt.want, qs.IsFlashcardOnly())
		})
	}
}

func TestQuestionSet_ScoreableItemsAndCards(t *testing.T) {
	qs := QuestionSet{ID: "s", Items: []QuestionItem{
		{ID: "q1", Type: MultipleChoice},
		{ID: "c1", Type: Flashcard, Front: "Bonjour", Back: "Hello"},
		{ID: "q2", Type: FillBlanks},
	}}

	scoreable := qs.ScoreableItems()
	require.Len(t, scoreable, 2)
	assert.Equal(t, "q1", scoreable[0].ID)
	assert.Equal(t, "q2", scoreable[1].ID)

	cards := qs.Cards()
	require.Len(t, cards, 1)
	assert.Equal(t, Card{ID: "c1", Front: "Bonjour", Back: "Hello"}, cards[0])
}

func TestApplyDefaults(t *testing.T) {
	qs := QuestionSet{ID: "s", Items: []QuestionItem{
		{Type: MultipleChoice},
		{ID: "tf", Type: TrueFalse},
		{ID: "fb", Type: FillBlanks, TextParts: []string{"a ", " b ", "."}, CorrectAnswers: []string{"x"}},
		{ID: "fc", Type: Flashcard},
		{ID: "seq", Type: SequenceOrdering, SequenceItems: []SequenceItem{{ID: "s1"}, {ID: "s2"}}},
		{ID: "ma", Type: MultipleAnswer},
	}}

	qs.ApplyDefaults()

	mc := qs.Items[0]
	assert.Equal(t, "q1", mc.ID, "missing ids are synthesized from position")
	require.Len(t, mc.Options, 2)
	assert.Equal(t, mc.Options[0].ID, mc.CorrectOptionID)

	tf := qs.Items[1]
	require.Len(t, tf.Options, 2)
	assert.Equal(t, "true", tf.CorrectOptionID)

	fb := qs.Items[2]
	assert.Equal(t, []string{"x", ""}, fb.CorrectAnswers, "one correct answer per blank")

	fc := qs.Items[3]
	assert.NotEmpty(t, fc.Front)

	seq := qs.Items[4]
	assert.Equal(t, []string{"s1", "s2"}, seq.CorrectOrder, "item order stands in for a missing key")

	ma := qs.Items[5]
	require.Len(t, ma.Options, 2)
	assert.Equal(t, []string{ma.Options[0].ID}, ma.CorrectOptionIDs)
}

func TestApplyDefaults_SynthesizedIDsSkipExistingOnes(t *testing.T) {
	qs := QuestionSet{ID: "s", Items: []QuestionItem{
		{ID: "q2", Type: ShortAnswer},
		{Type: ShortAnswer},
		{Type: ShortAnswer},
	}}

	qs.ApplyDefaults()

	assert.Equal(t, "q2", qs.Items[0].ID)
	assert.Equal(t, "q3", qs.Items[1].ID, "positional id q2 is taken, counter bumps past it")
	assert.Equal(t, "q4", qs.Items[2].ID)

	seen := make(map[string]struct{}, len(qs.Items))
	for _, item := range qs.Items {
		_, dup := seen[item.ID]
		require.False(t, dup, "ids must stay unique within the set, got %q twice", item.ID)
		seen[item.ID] = struct{}{}
	}
}

func TestNewFlashcardTally(t *testing.T) {
	tally := NewFlashcardTally(map[string]bool{"c1": true, "c2": false, "c3": true})
	assert.Equal(t, 2, tally.Known)
	assert.Equal(t, 1, tally.Unknown)
	assert.Len(t, tally.Results, 3)
}
