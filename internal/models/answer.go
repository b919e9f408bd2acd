package models

// Answer captures a learner's response to one question. Exactly one group of
// fields is populated, matching the question's type; re-answering replaces the
// whole value.
type Answer struct {
	// multiple_choice / true_false
	OptionID string `json:"option_id,omitempty"`

	// multiple_answer
	OptionIDs []string `json:"option_ids,omitempty"`

	// short_answer
	Text string `json:"text,omitempty"`

	// fill_blanks: one entry per blank, in order
	Texts []string `json:"texts,omitempty"`

	// sequence_ordering: item ids in the submitted order
	Order []string `json:"order,omitempty"`

	// matching: outcome of the matching interaction
	Match *MatchResult `json:"match,omitempty"`

	// case_study / viva: sub-question id -> answer
	Sub map[string]Answer `json:"sub,omitempty"`
}

// MatchResult is produced by the matching-interaction primitive; correctness
// is decided there and carried along, the evaluator only forwards it.
type MatchResult struct {
	IsCorrect bool        `json:"is_correct"`
	Pairs     []MatchPair `json:"pairs,omitempty"`
}
