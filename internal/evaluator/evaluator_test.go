package evaluator

import (
	"testing"

	"github.com/learnsphere/assessment-engine/internal/models"
	"github.com/stretchr/testify/assert"
)

func geographyItem() models.QuestionItem {
	return models.QuestionItem{
		ID:   "q1",
		Type: models.MultipleChoice,
		Options: []models.Option{
			{ID: "a", Text: "Paris"},
			{ID: "b", Text: "Rome"},
		},
		CorrectOptionID: "a",
	}
}

func TestEvaluate_MultipleChoice(t *testing.T) {
	item := geographyItem()

	tests := []struct {
		name        string
		answer      models.Answer
		wantCorrect bool
		wantUser    string
	}{
		{name: "correct option", answer: models.Answer{OptionID: "a"}, wantCorrect: true, wantUser: "Paris"},
		{name: "wrong option", answer: models.Answer{OptionID: "b"}, wantCorrect: false, wantUser: "Rome"},
		{name: "no answer", answer: models.Answer{}, wantCorrect: false, wantUser: "No answer"},
		{name: "unknown option id falls back to raw id", answer: models.Answer{OptionID: "z"}, wantCorrect: false, wantUser: "z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval := Evaluate(item, tt.answer)
			assert.Equal(t, tt.wantCorrect, eval.IsCorrect)
			assert.Equal(t, tt.wantUser, eval.UserAnswerDisplay)
			assert.Equal(t, "Paris", eval.CorrectAnswerDisplay)
		})
	}
}

func TestEvaluate_TrueFalse(t *testing.T) {
	item := models.QuestionItem{
		ID:   "q1",
		Type: models.TrueFalse,
		Options: []models.Option{
			{ID: "true", Text: "True"},
			{ID: "false", Text: "False"},
		},
		CorrectOptionID: "false",
	}

	assert.True(t, Evaluate(item, models.Answer{OptionID: "false"}).IsCorrect)
	assert.False(t, Evaluate(item, models.Answer{OptionID: "true"}).IsCorrect)
}

func TestEvaluate_ShortAnswer(t *testing.T) {
	item := models.QuestionItem{ID: "q1", Type: models.ShortAnswer, CorrectText: "Mitochondria"}

	tests := []struct {
		name        string
		text        string
		wantCorrect bool
	}{
		{name: "exact", text: "Mitochondria", wantCorrect: true},
		{name: "case insensitive", text: "mitochondria", wantCorrect: true},
		{name: "surrounding whitespace trimmed", text: "  MITOCHONDRIA  ", wantCorrect: true},
		{name: "wrong answer", text: "Ribosome", wantCorrect: false},
		{name: "empty never matches", text: "", wantCorrect: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval := Evaluate(item, models.Answer{Text: tt.text})
			assert.Equal(t, tt.wantCorrect, eval.IsCorrect)
		})
	}
}

func TestEvaluate_ShortAnswer_EmptyCorrectText(t *testing.T) {
	// A defaulted item carries an empty correct answer; an empty submission
	// must still not score.
	item := models.QuestionItem{ID: "q1", Type: models.ShortAnswer}
	assert.False(t, Evaluate(item, models.Answer{Text: "   "}).IsCorrect)
}

func TestEvaluate_FillBlanks(t *testing.T) {
	item := models.QuestionItem{
		ID:             "q2",
		Type:           models.FillBlanks,
		TextParts:      []string{"The sky is ", " and grass is ", "."},
		CorrectAnswers: []string{"blue", "green"},
	}

	tests := []struct {
		name        string
		texts       []string
		wantCorrect bool
	}{
		{name: "all blanks correct", texts: []string{"blue", "green"}, wantCorrect: true},
		{name: "normalized comparison", texts: []string{" Blue ", "GREEN"}, wantCorrect: true},
		{name: "one blank wrong", texts: []string{"blue", "red"}, wantCorrect: false},
		{name: "length mismatch always incorrect", texts: []string{"blue"}, wantCorrect: false},
		{name: "extra element always incorrect", texts: []string{"blue", "green", "blue"}, wantCorrect: false},
		{name: "no answer", texts: nil, wantCorrect: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval := Evaluate(item, models.Answer{Texts: tt.texts})
			assert.Equal(t, tt.wantCorrect, eval.IsCorrect)
		})
	}
}

func TestEvaluate_MultipleAnswer(t *testing.T) {
	item := models.QuestionItem{
		ID:   "q3",
		Type: models.MultipleAnswer,
		Options: []models.Option{
			{ID: "a", Text: "2"},
			{ID: "b", Text: "3"},
			{ID: "c", Text: "4"},
		},
		CorrectOptionIDs: []string{"a", "b"},
	}

	tests := []struct {
		name        string
		ids         []string
		wantCorrect bool
	}{
		{name: "same order", ids: []string{"a", "b"}, wantCorrect: true},
		{name: "different order still correct", ids: []string{"b", "a"}, wantCorrect: true},
		{name: "strict subset incorrect", ids: []string{"a"}, wantCorrect: false},
		{name: "superset incorrect", ids: []string{"a", "b", "c"}, wantCorrect: false},
		{name: "duplicates collapse to set", ids: []string{"a", "a", "b"}, wantCorrect: true},
		{name: "no selection", ids: nil, wantCorrect: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval := Evaluate(item, models.Answer{OptionIDs: tt.ids})
			assert.Equal(t, tt.wantCorrect, eval.IsCorrect)
		})
	}
}

func TestEvaluate_SequenceOrdering(t *testing.T) {
	item := models.QuestionItem{
		ID:   "q4",
		Type: models.SequenceOrdering,
		SequenceItems: []models.SequenceItem{
			{ID: "s1", Content: "Wake up"},
			{ID: "s2", Content: "Brush teeth"},
			{ID: "s3", Content: "Eat breakfast"},
		},
		CorrectOrder: []string{"s1", "s2", "s3"},
	}

	tests := []struct {
		name        string
		order       []string
		wantCorrect bool
	}{
		{name: "exact order", order: []string{"s1", "s2", "s3"}, wantCorrect: true},
		{name: "same ids different order incorrect", order: []string{"s2", "s1", "s3"}, wantCorrect: false},
		{name: "missing element incorrect", order: []string{"s1", "s2"}, wantCorrect: false},
		{name: "no answer", order: nil, wantCorrect: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval := Evaluate(item, models.Answer{Order: tt.order})
			assert.Equal(t, tt.wantCorrect, eval.IsCorrect)
		})
	}
}

func TestEvaluate_Matching_ForwardsVerdict(t *testing.T) {
	item := models.QuestionItem{
		ID:    "q5",
		Type:  models.Matching,
		Pairs: []models.MatchPair{{Action: "Heat water", Result: "Steam"}},
	}

	correct := Evaluate(item, models.Answer{Match: &models.MatchResult{IsCorrect: true}})
	assert.True(t, correct.IsCorrect)

	wrong := Evaluate(item, models.Answer{Match: &models.MatchResult{IsCorrect: false}})
	assert.False(t, wrong.IsCorrect)

	missing := Evaluate(item, models.Answer{})
	assert.False(t, missing.IsCorrect)
	assert.Equal(t, "No answer", missing.UserAnswerDisplay)
	assert.Equal(t, "Heat water: Steam", missing.CorrectAnswerDisplay)
}

func TestEvaluate_Composite(t *testing.T) {
	item := models.QuestionItem{
		ID:   "q6",
		Type: models.CaseStudy,
		SubQuestions: []models.QuestionItem{
			{ID: "q6a", Type: models.ShortAnswer, CorrectText: "insulin"},
			{ID: "q6b", Type: models.TrueFalse, Options: []models.Option{
				{ID: "true", Text: "True"}, {ID: "false", Text: "False"},
			}, CorrectOptionID: "true"},
		},
	}

	allRight := models.Answer{Sub: map[string]models.Answer{
		"q6a": {Text: "Insulin"},
		"q6b": {OptionID: "true"},
	}}
	assert.True(t, Evaluate(item, allRight).IsCorrect)

	oneWrong := models.Answer{Sub: map[string]models.Answer{
		"q6a": {Text: "glucagon"},
		"q6b": {OptionID: "true"},
	}}
	assert.False(t, Evaluate(item, oneWrong).IsCorrect)

	assert.False(t, Evaluate(item, models.Answer{}).IsCorrect)
}

func TestEvaluate_Flashcard_NotScored(t *testing.T) {
	item := models.QuestionItem{ID: "c1", Type: models.Flashcard, Front: "Bonjour", Back: "Hello"}
	eval := Evaluate(item, models.Answer{})
	assert.False(t, eval.IsCorrect)
	assert.Equal(t, "Not scored", eval.UserAnswerDisplay)
}

func TestEvaluate_UnknownType(t *testing.T) {
	item := models.QuestionItem{ID: "q9", Type: "word_search"}
	eval := Evaluate(item, models.Answer{Text: "anything"})
	assert.False(t, eval.IsCorrect)
	assert.Equal(t, "Unsupported question type", eval.UserAnswerDisplay)
	assert.Equal(t, "Unsupported question type", eval.CorrectAnswerDisplay)
}
