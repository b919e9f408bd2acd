package models

type QuestionType string

const (
	MultipleChoice   QuestionType = "multiple_choice"
	TrueFalse        QuestionType = "true_false"
	ShortAnswer      QuestionType = "short_answer"
	FillBlanks       QuestionType = "fill_blanks"
	Flashcard        QuestionType = "flashcard"
	Matching         QuestionType = "matching"
	SequenceOrdering QuestionType = "sequence_ordering"
	MultipleAnswer   QuestionType = "multiple_answer"
	CaseStudy        QuestionType = "case_study"
	Viva             QuestionType = "viva"
)

// Scoreable reports whether answers of this type count toward the score.
// Flashcards are reviewed, never graded.
func (t QuestionType) Scoreable() bool {
	return t != Flashcard
}

// Known reports whether the type is one the evaluator set understands.
func (t QuestionType) Known() bool {
	switch t {
	case MultipleChoice, TrueFalse, ShortAnswer, FillBlanks, Flashcard,
		Matching, SequenceOrdering, MultipleAnswer, CaseStudy, Viva:
		return true
	}
	return false
}

type Option struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type MatchPair struct {
	Action string `json:"action"`
	Result string `json:"result"`
}

type SequenceItem struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// QuestionItem is a tagged variant: Type selects which payload fields apply.
// Only the type tag is validated at the boundary; payloads are deliberately
// not, so incomplete items from the generation layer are defaulted when a
// session is built rather than rejected.
type QuestionItem struct {
	ID          string       `json:"id"`
	Type        QuestionType `json:"type" validate:"omitempty,question_type"`
	PromptText  string       `json:"prompt_text"`
	Explanation string       `json:"explanation,omitempty"`

	// multiple_choice / true_false / multiple_answer
	Options          []Option `json:"options,omitempty"`
	CorrectOptionID  string   `json:"correct_option_id,omitempty"`
	CorrectOptionIDs []string `json:"correct_option_ids,omitempty"`

	// short_answer
	CorrectText string `json:"correct_text,omitempty"`

	// fill_blanks: len(CorrectAnswers) == len(TextParts)-1
	TextParts      []string `json:"text_parts,omitempty"`
	CorrectAnswers []string `json:"correct_answers,omitempty"`

	// flashcard
	Front string `json:"front,omitempty"`
	Back  string `json:"back,omitempty"`

	// matching
	Pairs []MatchPair `json:"pairs,omitempty"`

	// sequence_ordering
	SequenceItems []SequenceItem `json:"items,omitempty"`
	CorrectOrder  []string       `json:"correct_order,omitempty"`

	// case_study / viva
	SubQuestions []QuestionItem `json:"sub_questions,omitempty" validate:"omitempty,dive"`
}

type QuestionSet struct {
	ID               string         `json:"id" validate:"required"`
	Title            string         `json:"title" validate:"required,min=1,max=200"`
	Description      string         `json:"description,omitempty"`
	TimeLimitSeconds *int           `json:"time_limit_seconds,omitempty" validate:"omitempty,min=1"`
	Items            []QuestionItem `json:"items"`
}

// IsFlashcardOnly reports whether every item in the set is a flashcard.
// Empty sets are not flashcard-only.
func (qs *QuestionSet) IsFlashcardOnly() bool {
	if len(qs.Items) == 0 {
		return false
	}
	for _, item := range qs.Items {
		if item.Type != Flashcard {
			return false
		}
	}
	return true
}

// ScoreableItems returns the items that participate in scoring, preserving order.
func (qs *QuestionSet) ScoreableItems() []QuestionItem {
	scoreable := make([]QuestionItem, 0, len(qs.Items))
	for _, item := range qs.Items {
		if item.Type.Scoreable() {
			scoreable = append(scoreable, item)
		}
	}
	return scoreable
}

// Cards projects the flashcard items of the set into review cards.
func (qs *QuestionSet) Cards() []Card {
	cards := make([]Card, 0, len(qs.Items))
	for _, item := range qs.Items {
		if item.Type != Flashcard {
			continue
		}
		cards = append(cards, Card{
			ID:          item.ID,
			Front:       item.Front,
			Back:        item.Back,
			Explanation: item.Explanation,
		})
	}
	return cards
}

// Card is a single flashcard as consumed by the flashcard sub-session.
type Card struct {
	ID          string `json:"id"`
	Front       string `json:"front"`
	Back        string `json:"back"`
	Explanation string `json:"explanation,omitempty"`
}
