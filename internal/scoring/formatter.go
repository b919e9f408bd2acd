package scoring

import (
	"math"

	"github.com/learnsphere/assessment-engine/internal/models"
)

// Review is the display payload for a submitted quiz session.
type Review struct {
	Score          int                 `json:"score"`
	TotalScoreable int                 `json:"total_scoreable"`
	Percentage     int                 `json:"percentage"`
	Feedback       string              `json:"feedback"`
	Rows           []models.ItemResult `json:"rows"`
}

// FlashcardReview is the display payload for a finished flashcard session.
type FlashcardReview struct {
	Known    int    `json:"known"`
	Unknown  int    `json:"unknown"`
	Total    int    `json:"total"`
	Feedback string `json:"feedback"`
}

// FormatReview turns a raw aggregate result into its review payload.
func FormatReview(result models.AggregateResult) Review {
	pct := Percentage(result.Score, result.TotalScoreable)
	return Review{
		Score:          result.Score,
		TotalScoreable: result.TotalScoreable,
		Percentage:     pct,
		Feedback:       feedbackFor(pct),
		Rows:           result.PerItem,
	}
}

// FormatFlashcardReview turns a flashcard tally into its review payload.
func FormatFlashcardReview(tally models.FlashcardTally) FlashcardReview {
	return FlashcardReview{
		Known:    tally.Known,
		Unknown:  tally.Unknown,
		Total:    tally.Known + tally.Unknown,
		Feedback: flashcardFeedbackFor(tally),
	}
}

// Percentage rounds score/total to the nearest whole percent. A zero total
// yields 0 rather than a division by zero.
func Percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(total) * 100))
}

// Feedback tiers are keyed on percentage thresholds; the wording is cosmetic,
// the thresholds are the contract.
func feedbackFor(pct int) string {
	switch {
	case pct >= 90:
		return "Excellent work! You have mastered this material."
	case pct >= 75:
		return "Great job! You have a solid grasp of this material."
	case pct >= 60:
		return "Good effort. Review the items you missed and try again."
	case pct >= 40:
		return "You are making progress. A retake would help this stick."
	default:
		return "Keep practicing. Go through the material once more before retaking."
	}
}

func flashcardFeedbackFor(tally models.FlashcardTally) string {
	total := tally.Known + tally.Unknown
	if total == 0 {
		return "No cards reviewed."
	}
	if tally.Unknown == 0 {
		return "You knew every card. Time for harder material."
	}
	return "Review complete. Focus your next pass on the cards you marked unknown."
}
