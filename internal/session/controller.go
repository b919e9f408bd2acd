package session

import (
	"strings"
	"sync"

	"github.com/learnsphere/assessment-engine/internal/models"
	"github.com/learnsphere/assessment-engine/internal/scoring"
)

type State string

const (
	StateActive    State = "active"
	StateSubmitted State = "submitted"
)

// Outcome is the terminal payload handed to OnComplete: a scored aggregate
// for quiz sessions, a known/unknown tally for flashcard-only sessions.
type Outcome struct {
	Aggregate  *models.AggregateResult
	Flashcards *models.FlashcardTally
}

// Controller owns one attempt at a question set: the current position, the
// captured answers and the submitted flag. All mutation goes through its
// methods; the answers map is never handed out for external writes.
//
// The submitted flag is monotonic. Once it flips, answers are frozen and the
// only way to a fresh attempt is Retake, which builds a new Controller.
type Controller struct {
	mu sync.Mutex

	source models.QuestionSet // pristine definition, used by Retake
	set    models.QuestionSet // defaulted working copy
	cfg    Config

	flashcardOnly bool
	flashcards    *FlashcardSession

	currentIndex int
	answers      map[string]models.Answer
	submitted    bool
	result       *models.AggregateResult
	tally        *models.FlashcardTally

	countdown *Countdown
}

// New creates a controller with production timing.
func New(set models.QuestionSet) *Controller {
	return NewWithConfig(set, DefaultConfig())
}

// NewWithConfig creates a controller for one attempt at the given set.
// Malformed items are defaulted up front so evaluation can never fail. A set
// consisting entirely of flashcards is routed to the flashcard sub-session;
// otherwise, a time limit on the set arms the countdown immediately.
func NewWithConfig(set models.QuestionSet, cfg Config) *Controller {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultConfig().TickInterval
	}

	working := set
	working.Items = make([]models.QuestionItem, len(set.Items))
	copy(working.Items, set.Items)
	working.ApplyDefaults()

	c := &Controller{
		source:        set,
		set:           working,
		cfg:           cfg,
		flashcardOnly: working.IsFlashcardOnly(),
		answers:       make(map[string]models.Answer),
	}

	if c.flashcardOnly {
		c.flashcards = newFlashcardSession(working.Cards(), cfg.SettleDelay)
		return c
	}

	if working.TimeLimitSeconds != nil && *working.TimeLimitSeconds > 0 {
		c.countdown = NewCountdown(*working.TimeLimitSeconds, cfg.TickInterval, nil, func() {
			// Expiry is the one transition the engine initiates itself.
			// Submit's idempotency absorbs the race with a manual submit.
			c.Submit()
		})
		c.countdown.Start()
	}
	return c
}

// Set returns the defaulted question set this attempt runs over.
func (c *Controller) Set() models.QuestionSet {
	return c.set
}

// IsFlashcardOnly reports whether this attempt is a flashcard review rather
// than a scored quiz. Classified once at construction.
func (c *Controller) IsFlashcardOnly() bool {
	return c.flashcardOnly
}

// Flashcards returns the sub-session driving a flashcard-only attempt, or nil
// for scored quizzes.
func (c *Controller) Flashcards() *FlashcardSession {
	return c.flashcards
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitted {
		return StateSubmitted
	}
	return StateActive
}

// SelectAnswer upserts the learner's answer for a question. Re-answering
// replaces the previous value wholesale. Frozen after submission.
func (c *Controller) SelectAnswer(questionID string, answer models.Answer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitted {
		return
	}
	c.answers[questionID] = answer
}

// CurrentIndex returns the current question position.
func (c *Controller) CurrentIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentIndex
}

// CurrentItem returns the question at the current position.
func (c *Controller) CurrentItem() (models.QuestionItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.set.Items) == 0 {
		return models.QuestionItem{}, false
	}
	return c.set.Items[c.currentIndex], true
}

// GoNext advances one question, clamped at the last item. Quiz navigation
// never wraps; wraparound belongs to the flashcard sub-session.
func (c *Controller) GoNext() {
	c.move(1)
}

// GoPrevious steps back one question, clamped at the first item.
func (c *Controller) GoPrevious() {
	c.move(-1)
}

func (c *Controller) move(delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitted || len(c.set.Items) == 0 {
		return
	}
	next := c.currentIndex + delta
	if next < 0 {
		next = 0
	}
	if max := len(c.set.Items) - 1; next > max {
		next = max
	}
	c.currentIndex = next
}

// CanSubmit reports whether every non-flashcard item has a non-empty captured
// answer. String answers must be non-empty after trimming; array answers need
// every element non-empty after trimming. Element counts are deliberately not
// checked against the item (a short fill-blanks array still counts as
// answered), matching the observed behavior of the submission gate.
func (c *Controller) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range c.set.Items {
		if !item.Type.Scoreable() {
			continue
		}
		answer, ok := c.answers[item.ID]
		if !ok || !AnswerProvided(item, answer) {
			return false
		}
	}
	return true
}

// AnswerProvided reports whether the captured answer counts as non-empty for
// the item's type. Shared with the answered counter in the service layer.
func AnswerProvided(item models.QuestionItem, answer models.Answer) bool {
	switch item.Type {
	case models.MultipleChoice, models.TrueFalse:
		return strings.TrimSpace(answer.OptionID) != ""
	case models.ShortAnswer:
		return strings.TrimSpace(answer.Text) != ""
	case models.FillBlanks:
		return allNonEmpty(answer.Texts)
	case models.MultipleAnswer:
		return allNonEmpty(answer.OptionIDs)
	case models.SequenceOrdering:
		return allNonEmpty(answer.Order)
	case models.Matching:
		return answer.Match != nil
	case models.CaseStudy, models.Viva:
		for _, sub := range item.SubQuestions {
			if !sub.Type.Scoreable() {
				continue
			}
			subAnswer, ok := answer.Sub[sub.ID]
			if !ok || !AnswerProvided(sub, subAnswer) {
				return false
			}
		}
		return true
	default:
		// Unknown types have no answer shape to capture; they must not be
		// able to block submission forever.
		return true
	}
}

func allNonEmpty(values []string) bool {
	if len(values) == 0 {
		return false
	}
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// Submit scores the attempt and freezes it. Idempotent: any call after the
// first returns the stored result without recomputation, which is also how
// the timer-expiry versus manual-click race is resolved. Flashcard-only
// attempts end through FinishFlashcards instead; Submit on one is a no-op.
func (c *Controller) Submit() models.AggregateResult {
	if c.flashcardOnly {
		return models.AggregateResult{}
	}

	c.mu.Lock()
	if c.submitted {
		result := *c.result
		c.mu.Unlock()
		return result
	}

	if c.countdown != nil {
		c.countdown.Stop()
	}
	result := scoring.Score(&c.set, c.answers)
	c.submitted = true
	c.result = &result
	onComplete := c.cfg.OnComplete
	c.mu.Unlock()

	if onComplete != nil {
		onComplete(Outcome{Aggregate: &result})
	}
	return result
}

// FinishFlashcards ends a flashcard-only attempt once every card has been
// marked. It is the flashcard analogue of Submit and shares its monotonic
// submitted flag; the reported tally is frozen on first call.
func (c *Controller) FinishFlashcards() (models.FlashcardTally, bool) {
	if c.flashcards == nil {
		return models.FlashcardTally{}, false
	}

	c.mu.Lock()
	if c.submitted {
		tally := *c.tally
		c.mu.Unlock()
		return tally, true
	}
	if !c.flashcards.Complete() {
		c.mu.Unlock()
		return models.FlashcardTally{}, false
	}
	tally := c.flashcards.Tally()
	c.submitted = true
	c.tally = &tally
	onComplete := c.cfg.OnComplete
	c.mu.Unlock()

	if onComplete != nil {
		onComplete(Outcome{Flashcards: &tally})
	}
	return tally, true
}

// Result returns the aggregate result of a submitted quiz attempt.
func (c *Controller) Result() (models.AggregateResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.result == nil {
		return models.AggregateResult{}, false
	}
	return *c.result, true
}

// Tally returns the tally of a finished flashcard attempt.
func (c *Controller) Tally() (models.FlashcardTally, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tally == nil {
		return models.FlashcardTally{}, false
	}
	return *c.tally, true
}

// Answers returns a snapshot copy of the captured answers.
func (c *Controller) Answers() map[string]models.Answer {
	c.mu.Lock()
	defer c.mu.Unlock()
	snapshot := make(map[string]models.Answer, len(c.answers))
	for id, answer := range c.answers {
		snapshot[id] = answer
	}
	return snapshot
}

// TimeRemaining returns the ticks left on a timed attempt, or false when the
// attempt is untimed.
func (c *Controller) TimeRemaining() (int, bool) {
	if c.countdown == nil {
		return 0, false
	}
	return c.countdown.Remaining(), true
}

// Retake tears this attempt down and builds a brand-new one from the same
// question set definition. Nothing carries over: fresh answers, index zero,
// submitted false, the time limit rewound.
func (c *Controller) Retake() *Controller {
	c.Close()
	return NewWithConfig(c.source, c.cfg)
}

// Close releases the attempt's timers. A stale tick or settle callback must
// never mutate a superseded session, so teardown cancels both.
func (c *Controller) Close() {
	if c.countdown != nil {
		c.countdown.Stop()
	}
	if c.flashcards != nil {
		c.flashcards.Close()
	}
}
