package models

// ItemResult is one row of the per-question breakdown after submission.
type ItemResult struct {
	QuestionID           string `json:"question_id"`
	IsCorrect            bool   `json:"is_correct"`
	UserAnswerDisplay    string `json:"user_answer_display"`
	CorrectAnswerDisplay string `json:"correct_answer_display"`
	Explanation          string `json:"explanation,omitempty"`
}

// AggregateResult is the scored outcome of a quiz session.
// Invariant: 0 <= Score <= TotalScoreable.
type AggregateResult struct {
	Score          int          `json:"score"`
	TotalScoreable int          `json:"total_scoreable"`
	PerItem        []ItemResult `json:"per_item"`
}

// FlashcardTally is the terminal payload of a flashcard-only session: the
// known/unknown map plus derived counts. Flashcard sessions never produce an
// AggregateResult.
type FlashcardTally struct {
	Known   int             `json:"known"`
	Unknown int             `json:"unknown"`
	Results map[string]bool `json:"results"`
}

// NewFlashcardTally derives counts from a full results map.
func NewFlashcardTally(results map[string]bool) FlashcardTally {
	tally := FlashcardTally{Results: make(map[string]bool, len(results))}
	for id, known := range results {
		tally.Results[id] = known
		if known {
			tally.Known++
		} else {
			tally.Unknown++
		}
	}
	return tally
}
