package evaluator

import (
	"strings"

	"github.com/learnsphere/assessment-engine/internal/models"
)

// Evaluation is the display-ready verdict for one (item, answer) pair.
type Evaluation struct {
	IsCorrect            bool   `json:"is_correct"`
	UserAnswerDisplay    string `json:"user_answer_display"`
	CorrectAnswerDisplay string `json:"correct_answer_display"`
}

const (
	noAnswerDisplay    = "No answer"
	unsupportedDisplay = "Unsupported question type"
	notScoredDisplay   = "Not scored"
)

// Evaluate applies the type-specific correctness rule for the given item.
// It is pure and never fails: unknown types and malformed payloads come back
// as incorrect with a sentinel display instead of an error.
func Evaluate(item models.QuestionItem, answer models.Answer) Evaluation {
	switch item.Type {
	case models.MultipleChoice, models.TrueFalse:
		return evaluateSingleChoice(item, answer)
	case models.ShortAnswer:
		return evaluateShortAnswer(item, answer)
	case models.FillBlanks:
		return evaluateFillBlanks(item, answer)
	case models.MultipleAnswer:
		return evaluateMultipleAnswer(item, answer)
	case models.SequenceOrdering:
		return evaluateSequenceOrdering(item, answer)
	case models.Matching:
		return evaluateMatching(item, answer)
	case models.CaseStudy, models.Viva:
		return evaluateComposite(item, answer)
	case models.Flashcard:
		// Flashcards are reviewed by the flashcard sub-session, never graded.
		return Evaluation{
			IsCorrect:            false,
			UserAnswerDisplay:    notScoredDisplay,
			CorrectAnswerDisplay: notScoredDisplay,
		}
	default:
		return Evaluation{
			IsCorrect:            false,
			UserAnswerDisplay:    unsupportedDisplay,
			CorrectAnswerDisplay: unsupportedDisplay,
		}
	}
}

func evaluateSingleChoice(item models.QuestionItem, answer models.Answer) Evaluation {
	userDisplay := noAnswerDisplay
	if answer.OptionID != "" {
		userDisplay = resolveOption(item.Options, answer.OptionID)
	}
	return Evaluation{
		IsCorrect:            answer.OptionID != "" && answer.OptionID == item.CorrectOptionID,
		UserAnswerDisplay:    userDisplay,
		CorrectAnswerDisplay: resolveOption(item.Options, item.CorrectOptionID),
	}
}

func evaluateShortAnswer(item models.QuestionItem, answer models.Answer) Evaluation {
	userDisplay := noAnswerDisplay
	if strings.TrimSpace(answer.Text) != "" {
		userDisplay = strings.TrimSpace(answer.Text)
	}
	return Evaluation{
		IsCorrect:            normalizeText(answer.Text) != "" && normalizeText(answer.Text) == normalizeText(item.CorrectText),
		UserAnswerDisplay:    userDisplay,
		CorrectAnswerDisplay: item.CorrectText,
	}
}

// evaluateFillBlanks requires one answer per blank: a length mismatch is
// always incorrect, there is no partial credit.
func evaluateFillBlanks(item models.QuestionItem, answer models.Answer) Evaluation {
	correct := len(answer.Texts) == len(item.CorrectAnswers)
	if correct {
		for i, want := range item.CorrectAnswers {
			if normalizeText(answer.Texts[i]) != normalizeText(want) {
				correct = false
				break
			}
		}
	}
	userDisplay := noAnswerDisplay
	if len(answer.Texts) > 0 {
		userDisplay = strings.Join(answer.Texts, ", ")
	}
	return Evaluation{
		IsCorrect:            correct,
		UserAnswerDisplay:    userDisplay,
		CorrectAnswerDisplay: strings.Join(item.CorrectAnswers, ", "),
	}
}

// evaluateMultipleAnswer compares the selected ids as a set: order does not
// matter, but a strict subset or superset is incorrect.
func evaluateMultipleAnswer(item models.QuestionItem, answer models.Answer) Evaluation {
	correct := len(answer.OptionIDs) > 0 && sameIDSet(answer.OptionIDs, item.CorrectOptionIDs)
	return Evaluation{
		IsCorrect:            correct,
		UserAnswerDisplay:    resolveOptionList(item.Options, answer.OptionIDs),
		CorrectAnswerDisplay: resolveOptionList(item.Options, item.CorrectOptionIDs),
	}
}

// evaluateSequenceOrdering compares element-wise: the same ids in a different
// order are incorrect.
func evaluateSequenceOrdering(item models.QuestionItem, answer models.Answer) Evaluation {
	correct := len(answer.Order) == len(item.CorrectOrder) && len(answer.Order) > 0
	if correct {
		for i, id := range item.CorrectOrder {
			if answer.Order[i] != id {
				correct = false
				break
			}
		}
	}
	return Evaluation{
		IsCorrect:            correct,
		UserAnswerDisplay:    resolveSequenceList(item.SequenceItems, answer.Order),
		CorrectAnswerDisplay: resolveSequenceList(item.SequenceItems, item.CorrectOrder),
	}
}

// evaluateMatching forwards the verdict computed by the matching-interaction
// primitive; the evaluator adds display text only.
func evaluateMatching(item models.QuestionItem, answer models.Answer) Evaluation {
	userDisplay := noAnswerDisplay
	correct := false
	if answer.Match != nil {
		correct = answer.Match.IsCorrect
		userDisplay = formatPairs(answer.Match.Pairs)
	}
	return Evaluation{
		IsCorrect:            correct,
		UserAnswerDisplay:    userDisplay,
		CorrectAnswerDisplay: formatPairs(item.Pairs),
	}
}

// evaluateComposite applies the same rules recursively over the sub-question
// list; the parent is correct only when every scoreable sub-question is.
func evaluateComposite(item models.QuestionItem, answer models.Answer) Evaluation {
	if len(item.SubQuestions) == 0 {
		return Evaluation{
			IsCorrect:            false,
			UserAnswerDisplay:    noAnswerDisplay,
			CorrectAnswerDisplay: noAnswerDisplay,
		}
	}
	correct := true
	userParts := make([]string, 0, len(item.SubQuestions))
	correctParts := make([]string, 0, len(item.SubQuestions))
	for _, sub := range item.SubQuestions {
		if !sub.Type.Scoreable() {
			continue
		}
		subEval := Evaluate(sub, answer.Sub[sub.ID])
		if !subEval.IsCorrect {
			correct = false
		}
		userParts = append(userParts, subEval.UserAnswerDisplay)
		correctParts = append(correctParts, subEval.CorrectAnswerDisplay)
	}
	return Evaluation{
		IsCorrect:            correct && len(userParts) > 0,
		UserAnswerDisplay:    strings.Join(userParts, "; "),
		CorrectAnswerDisplay: strings.Join(correctParts, "; "),
	}
}

// normalizeText applies the shared answer normalization: surrounding
// whitespace is ignored and comparison is case-insensitive.
func normalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// resolveOption maps an option id to its display text, falling back to the
// raw id when the option list does not contain it.
func resolveOption(options []models.Option, id string) string {
	for _, opt := range options {
		if opt.ID == id {
			return opt.Text
		}
	}
	return id
}

func resolveOptionList(options []models.Option, ids []string) string {
	if len(ids) == 0 {
		return noAnswerDisplay
	}
	texts := make([]string, len(ids))
	for i, id := range ids {
		texts[i] = resolveOption(options, id)
	}
	return strings.Join(texts, ", ")
}

func resolveSequenceList(items []models.SequenceItem, ids []string) string {
	if len(ids) == 0 {
		return noAnswerDisplay
	}
	texts := make([]string, len(ids))
	for i, id := range ids {
		texts[i] = id
		for _, item := range items {
			if item.ID == id {
				texts[i] = item.Content
				break
			}
		}
	}
	return strings.Join(texts, ", ")
}

func formatPairs(pairs []models.MatchPair) string {
	if len(pairs) == 0 {
		return noAnswerDisplay
	}
	parts := make([]string, len(pairs))
	for i, pair := range pairs {
		parts[i] = pair.Action + ": " + pair.Result
	}
	return strings.Join(parts, "; ")
}

// sameIDSet compares two id lists as sets. Duplicates collapse, so it is
// set equality rather than multiset equality.
func sameIDSet(a, b []string) bool {
	setA := make(map[string]struct{}, len(a))
	for _, id := range a {
		setA[id] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, id := range b {
		setB[id] = struct{}{}
	}
	if len(setA) != len(setB) {
		return false
	}
	for id := range setA {
		if _, ok := setB[id]; !ok {
			return false
		}
	}
	return true
}
