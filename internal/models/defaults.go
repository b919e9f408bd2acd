package models

import "fmt"

// ApplyDefaults repairs malformed items in place so that evaluation can
// proceed without ever failing: missing options, correct-answer ids and
// flashcard faces are replaced with safe placeholders which are then treated
// as authoritative. Generation-layer output is not trusted to be complete.
func (qs *QuestionSet) ApplyDefaults() {
	used := collectIDs(qs.Items)
	for i := range qs.Items {
		applyItemDefaults(&qs.Items[i], i, used)
	}
}

func applyItemDefaults(item *QuestionItem, position int, used map[string]struct{}) {
	if item.ID == "" {
		item.ID = nextFreeID(position, used)
	}

	switch item.Type {
	case MultipleChoice:
		if len(item.Options) == 0 {
			item.Options = []Option{
				{ID: "a", Text: "Option A"},
				{ID: "b", Text: "Option B"},
			}
		}
		if item.CorrectOptionID == "" {
			item.CorrectOptionID = item.Options[0].ID
		}
	case TrueFalse:
		if len(item.Options) == 0 {
			item.Options = []Option{
				{ID: "true", Text: "True"},
				{ID: "false", Text: "False"},
			}
		}
		if item.CorrectOptionID == "" {
			item.CorrectOptionID = item.Options[0].ID
		}
	case MultipleAnswer:
		if len(item.Options) == 0 {
			item.Options = []Option{
				{ID: "a", Text: "Option A"},
				{ID: "b", Text: "Option B"},
			}
		}
		if len(item.CorrectOptionIDs) == 0 {
			item.CorrectOptionIDs = []string{item.Options[0].ID}
		}
	case FillBlanks:
		if len(item.TextParts) < 2 {
			item.TextParts = []string{"", ""}
		}
		// One correct answer per blank; pad or cut to fit.
		blanks := len(item.TextParts) - 1
		for len(item.CorrectAnswers) < blanks {
			item.CorrectAnswers = append(item.CorrectAnswers, "")
		}
		item.CorrectAnswers = item.CorrectAnswers[:blanks]
	case Flashcard:
		if item.Front == "" {
			item.Front = item.PromptText
		}
		if item.Front == "" {
			item.Front = "Card"
		}
		if item.Back == "" {
			item.Back = item.Explanation
		}
	case SequenceOrdering:
		if len(item.CorrectOrder) == 0 {
			for _, seq := range item.SequenceItems {
				item.CorrectOrder = append(item.CorrectOrder, seq.ID)
			}
		}
	case CaseStudy, Viva:
		subUsed := collectIDs(item.SubQuestions)
		for i := range item.SubQuestions {
			applyItemDefaults(&item.SubQuestions[i], i, subUsed)
		}
	}
}

func collectIDs(items []QuestionItem) map[string]struct{} {
	ids := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item.ID != "" {
			ids[item.ID] = struct{}{}
		}
	}
	return ids
}

// nextFreeID synthesizes an id from the item's position, skipping past ids
// already present so a generated id can never shadow an explicit one.
func nextFreeID(position int, used map[string]struct{}) string {
	for n := position + 1; ; n++ {
		id := fmt.Sprintf("q%d", n)
		if _, taken := used[id]; !taken {
			used[id] = struct{}{}
			return id
		}
	}
}
