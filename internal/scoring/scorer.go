package scoring

import (
	"github.com/learnsphere/assessment-engine/internal/evaluator"
	"github.com/learnsphere/assessment-engine/internal/models"
)

// Score runs every scoreable item of the set through its evaluator and
// aggregates the verdicts. Flashcards are filtered out before evaluation, so
// a mixed set simply scores its non-flashcard subset; an all-flashcard or
// empty set yields 0 of 0.
func Score(qs *models.QuestionSet, answers map[string]models.Answer) models.AggregateResult {
	result := models.AggregateResult{
		PerItem: make([]models.ItemResult, 0, len(qs.Items)),
	}
	for _, item := range qs.Items {
		if !item.Type.Scoreable() {
			continue
		}
		eval := evaluator.Evaluate(item, answers[item.ID])
		if eval.IsCorrect {
			result.Score++
		}
		result.TotalScoreable++
		result.PerItem = append(result.PerItem, models.ItemResult{
			QuestionID:           item.ID,
			IsCorrect:            eval.IsCorrect,
			UserAnswerDisplay:    eval.UserAnswerDisplay,
			CorrectAnswerDisplay: eval.CorrectAnswerDisplay,
			Explanation:          item.Explanation,
		})
	}
	return result
}
