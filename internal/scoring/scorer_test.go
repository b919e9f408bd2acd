package scoring

import (
	"testing"

	"github.com/learnsphere/assessment-engine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capitalsAndSky() *models.QuestionSet {
	return &models.QuestionSet{
		ID:    "set-1",
		Title: "Warm-up",
		Items: []models.QuestionItem{
			{
				ID:   "q1",
				Type: models.MultipleChoice,
				Options: []models.Option{
					{ID: "a", Text: "Paris"},
					{ID: "b", Text: "Rome"},
				},
				CorrectOptionID: "a",
			},
			{
				ID:             "q2",
				Type:           models.FillBlanks,
				TextParts:      []string{"The sky is ", "."},
				CorrectAnswers: []string{"blue"},
			},
		},
	}
}

func TestScore_AllCorrect(t *testing.T) {
	answers := map[string]models.Answer{
		"q1": {OptionID: "a"},
		"q2": {Texts: []string{"blue"}},
	}

	result := Score(capitalsAndSky(), answers)

	assert.Equal(t, 2, result.Score)
	assert.Equal(t, 2, result.TotalScoreable)
	require.Len(t, result.PerItem, 2)
	for _, row := range result.PerItem {
		assert.True(t, row.IsCorrect)
	}
}

func TestScore_NormalizationAndWrongChoice(t *testing.T) {
	// q1 wrong, q2 correct after trim + casefold.
	answers := map[string]models.Answer{
		"q1": {OptionID: "b"},
		"q2": {Texts: []string{"Blue "}},
	}

	result := Score(capitalsAndSky(), answers)

	assert.Equal(t, 1, result.Score)
	assert.Equal(t, 2, result.TotalScoreable)
	require.Len(t, result.PerItem, 2)
	assert.False(t, result.PerItem[0].IsCorrect)
	assert.Equal(t, "Rome", result.PerItem[0].UserAnswerDisplay)
	assert.Equal(t, "Paris", result.PerItem[0].CorrectAnswerDisplay)
	assert.True(t, result.PerItem[1].IsCorrect)
}

func TestScore_FlashcardsExcludedFromDenominator(t *testing.T) {
	set := capitalsAndSky()
	set.Items = append(set.Items, models.QuestionItem{
		ID: "c1", Type: models.Flashcard, Front: "Bonjour", Back: "Hello",
	})

	result := Score(set, map[string]models.Answer{
		"q1": {OptionID: "a"},
		"q2": {Texts: []string{"blue"}},
	})

	assert.Equal(t, 2, result.Score)
	assert.Equal(t, 2, result.TotalScoreable)
	assert.Len(t, result.PerItem, 2)
}

func TestScore_EmptySet(t *testing.T) {
	result := Score(&models.QuestionSet{ID: "empty"}, nil)
	assert.Equal(t, 0, result.Score)
	assert.Equal(t, 0, result.TotalScoreable)
	assert.Empty(t, result.PerItem)
}

func TestScore_BoundsInvariant(t *testing.T) {
	sets := []map[string]models.Answer{
		nil,
		{"q1": {OptionID: "a"}},
		{"q1": {OptionID: "b"}, "q2": {Texts: []string{"red"}}},
		{"q1": {OptionID: "a"}, "q2": {Texts: []string{"blue"}}},
	}
	for _, answers := range sets {
		result := Score(capitalsAndSky(), answers)
		assert.GreaterOrEqual(t, result.Score, 0)
		assert.LessOrEqual(t, result.Score, result.TotalScoreable)
	}
}

func TestScore_UnknownTypeDoesNotAbortPass(t *testing.T) {
	set := capitalsAndSky()
	set.Items = append(set.Items, models.QuestionItem{ID: "q3", Type: "word_search"})

	result := Score(set, map[string]models.Answer{
		"q1": {OptionID: "a"},
		"q2": {Texts: []string{"blue"}},
	})

	assert.Equal(t, 2, result.Score)
	assert.Equal(t, 3, result.TotalScoreable)
	assert.False(t, result.PerItem[2].IsCorrect)
}
