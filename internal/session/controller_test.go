package session

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/learnsphere/assessment-engine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{TickInterval: time.Millisecond, SettleDelay: 0}
}

func quizSet() models.QuestionSet {
	return models.QuestionSet{
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
			{
				ID:          "q3",
				Type:        models.ShortAnswer,
				CorrectText: "gravity",
			},
		},
	}
}

func flashcardSet() models.QuestionSet {
	return models.QuestionSet{
		ID: "cards-1",
		Items: []models.QuestionItem{
			{ID: "c1", Type: models.Flashcard, Front: "Bonjour", Back: "Hello"},
			{ID: "c2", Type: models.Flashcard, Front: "Merci", Back: "Thank you"},
			{ID: "c3", Type: models.Flashcard, Front: "Chat", Back: "Cat"},
		},
	}
}

func TestController_Classification(t *testing.T) {
	quiz := NewWithConfig(quizSet(), testConfig())
	defer quiz.Close()
	assert.False(t, quiz.IsFlashcardOnly())
	assert.Nil(t, quiz.Flashcards())

	cards := NewWithConfig(flashcardSet(), testConfig())
	defer cards.Close()
	assert.True(t, cards.IsFlashcardOnly())
	require.NotNil(t, cards.Flashcards())

	// A single non-flashcard item makes the whole set a scored quiz.
	mixed := flashcardSet()
	mixed.Items = append(mixed.Items, quizSet().Items[0])
	c := NewWithConfig(mixed, testConfig())
	defer c.Close()
	assert.False(t, c.IsFlashcardOnly())
}

func TestController_NavigationClamps(t *testing.T) {
	c := NewWithConfig(quizSet(), testConfig())
	defer c.Close()

	assert.Equal(t, 0, c.CurrentIndex())

	c.GoPrevious()
	assert.Equal(t, 0, c.CurrentIndex(), "no wraparound below zero")

	c.GoNext()
	c.GoNext()
	assert.Equal(t, 2, c.CurrentIndex())

	c.GoNext()
	c.GoNext()
	assert.Equal(t, 2, c.CurrentIndex(), "no wraparound past the last item")

	c.GoPrevious()
	assert.Equal(t, 1, c.CurrentIndex())
}

func TestController_CanSubmit(t *testing.T) {
	c := NewWithConfig(quizSet(), testConfig())
	defer c.Close()

	assert.False(t, c.CanSubmit(), "nothing answered yet")

	c.SelectAnswer("q1", models.Answer{OptionID: "a"})
	c.SelectAnswer("q2", models.Answer{Texts: []string{"blue"}})
	assert.False(t, c.CanSubmit(), "q3 still unanswered")

	c.SelectAnswer("q3", models.Answer{Text: "   "})
	assert.False(t, c.CanSubmit(), "whitespace-only answers do not count")

	c.SelectAnswer("q3", models.Answer{Text: "gravity"})
	assert.True(t, c.CanSubmit())

	// Array answers need every element non-empty, but the element count is
	// not checked against the item.
	c.SelectAnswer("q2", models.Answer{Texts: []string{"blue", " "}})
	assert.False(t, c.CanSubmit())
	c.SelectAnswer("q2", models.Answer{Texts: []string{"blue", "extra"}})
	assert.True(t, c.CanSubmit())
}

func TestController_CanSubmit_IgnoresFlashcards(t *testing.T) {
	set := quizSet()
	set.Items = append(set.Items, models.QuestionItem{
		ID: "c1", Type: models.Flashcard, Front: "Bonjour", Back: "Hello",
	})
	c := NewWithConfig(set, testConfig())
	defer c.Close()

	c.SelectAnswer("q1", models.Answer{OptionID: "a"})
	c.SelectAnswer("q2", models.Answer{Texts: []string{"blue"}})
	c.SelectAnswer("q3", models.Answer{Text: "gravity"})
	assert.True(t, c.CanSubmit(), "unmarked flashcard must not block submission")
}

func TestController_SubmitScoresAndFreezes(t *testing.T) {
	var outcomes []Outcome
	cfg := testConfig()
	cfg.OnComplete = func(o Outcome) { outcomes = append(outcomes, o) }

	c := NewWithConfig(quizSet(), cfg)
	defer c.Close()

	c.SelectAnswer("q1", models.Answer{OptionID: "a"})
	c.SelectAnswer("q2", models.Answer{Texts: []string{"Blue "}})
	c.SelectAnswer("q3", models.Answer{Text: "magnetism"})

	result := c.Submit()
	assert.Equal(t, 2, result.Score)
	assert.Equal(t, 3, result.TotalScoreable)
	assert.Equal(t, StateSubmitted, c.State())

	// Frozen: late answers and navigation are no-ops.
	c.SelectAnswer("q3", models.Answer{Text: "gravity"})
	c.GoNext()
	assert.Equal(t, 0, c.CurrentIndex())

	again := c.Submit()
	assert.Equal(t, result, again, "second submit returns the stored result unchanged")

	require.Len(t, outcomes, 1, "completion fires exactly once")
	require.NotNil(t, outcomes[0].Aggregate)
	assert.Equal(t, result, *outcomes[0].Aggregate)
}

func TestController_RetakeStartsFresh(t *testing.T) {
	c := NewWithConfig(quizSet(), testConfig())

	c.SelectAnswer("q1", models.Answer{OptionID: "a"})
	c.SelectAnswer("q2", models.Answer{Texts: []string{"blue"}})
	c.SelectAnswer("q3", models.Answer{Text: "gravity"})
	c.GoNext()
	c.Submit()

	fresh := c.Retake()
	defer fresh.Close()

	assert.Equal(t, StateActive, fresh.State())
	assert.Equal(t, 0, fresh.CurrentIndex())
	assert.Empty(t, fresh.Answers())
	assert.False(t, fresh.CanSubmit(), "fresh answers map cannot satisfy the gate")
	assert.False(t, fresh.IsFlashcardOnly())

	_, ok := fresh.Result()
	assert.False(t, ok, "no result carries over")
}

func TestController_TimerAutoSubmitsOnce(t *testing.T) {
	var completions atomic.Int32
	limit := 3
	set := quizSet()
	set.TimeLimitSeconds = &limit

	cfg := Config{TickInterval: 2 * time.Millisecond, SettleDelay: 0,
		OnComplete: func(Outcome) { completions.Add(1) }}
	c := NewWithConfig(set, cfg)
	defer c.Close()

	_, timed := c.TimeRemaining()
	assert.True(t, timed)

	assert.Eventually(t, func() bool {
		return c.State() == StateSubmitted
	}, time.Second, time.Millisecond, "expiry must force a submit")

	// Give any stray ticks time to fire, then confirm a single completion.
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), completions.Load())

	result, ok := c.Result()
	assert.True(t, ok)
	assert.Equal(t, 0, result.Score)
	assert.Equal(t, 3, result.TotalScoreable)
}

func TestController_ManualSubmitStopsTimer(t *testing.T) {
	limit := 2
	set := quizSet()
	set.TimeLimitSeconds = &limit

	var completions atomic.Int32
	cfg := Config{TickInterval: 2 * time.Millisecond,
		OnComplete: func(Outcome) { completions.Add(1) }}
	c := NewWithConfig(set, cfg)
	defer c.Close()

	first := c.Submit()
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, int32(1), completions.Load(), "expiry after manual submit is absorbed")
	again := c.Submit()
	assert.Equal(t, first, again)
}

func TestController_FlashcardSetHasNoTimer(t *testing.T) {
	limit := 1
	set := flashcardSet()
	set.TimeLimitSeconds = &limit

	c := NewWithConfig(set, Config{TickInterval: time.Millisecond, SettleDelay: 0})
	defer c.Close()

	_, timed := c.TimeRemaining()
	assert.False(t, timed, "time limits do not apply to flashcard review")

	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, StateActive, c.State())
}

func TestController_FinishFlashcards(t *testing.T) {
	var outcomes []Outcome
	cfg := testConfig()
	cfg.OnComplete = func(o Outcome) { outcomes = append(outcomes, o) }

	c := NewWithConfig(flashcardSet(), cfg)
	defer c.Close()

	fc := c.Flashcards()
	require.NotNil(t, fc)

	_, ok := c.FinishFlashcards()
	assert.False(t, ok, "finish unavailable until every card is marked")

	fc.MarkKnown(true)
	fc.MarkKnown(false)
	_, ok = c.FinishFlashcards()
	assert.False(t, ok)

	fc.MarkKnown(true)
	tally, ok := c.FinishFlashcards()
	require.True(t, ok)
	assert.Equal(t, 2, tally.Known)
	assert.Equal(t, 1, tally.Unknown)
	assert.Len(t, tally.Results, 3)
	assert.Equal(t, StateSubmitted, c.State())

	again, ok := c.FinishFlashcards()
	require.True(t, ok)
	assert.Equal(t, tally, again)

	require.Len(t, outcomes, 1)
	require.NotNil(t, outcomes[0].Flashcards)
	assert.Nil(t, outcomes[0].Aggregate)
}

func TestController_FinishFlashcardsOnQuizIsRejected(t *testing.T) {
	c := NewWithConfig(quizSet(), testConfig())
	defer c.Close()

	_, ok := c.FinishFlashcards()
	assert.False(t, ok)
}

func TestController_SubmitOnFlashcardSetIsNoOp(t *testing.T) {
	var outcomes []Outcome
	cfg := testConfig()
	cfg.OnComplete = func(o Outcome) { outcomes = append(outcomes, o) }

	c := NewWithConfig(flashcardSet(), cfg)
	defer c.Close()

	result := c.Submit()
	assert.Equal(t, models.AggregateResult{}, result)
	assert.Equal(t, StateActive, c.State(), "submit must not end a flashcard review")
	assert.Empty(t, outcomes, "no aggregate completion for a flashcard set")

	// The review still ends the proper way.
	fc := c.Flashcards()
	fc.MarkKnown(true)
	fc.MarkKnown(true)
	fc.MarkKnown(false)
	tally, ok := c.FinishFlashcards()
	require.True(t, ok)
	assert.Equal(t, 2, tally.Known)
}

func TestController_DefaultsMalformedItems(t *testing.T) {
	set := models.QuestionSet{
		ID: "broken",
		Items: []models.QuestionItem{
			{ID: "q1", Type: models.MultipleChoice}, // no options at all
			{Type: models.ShortAnswer},              // no id, no correct text
		},
	}

	c := NewWithConfig(set, testConfig())
	defer c.Close()

	items := c.Set().Items
	require.Len(t, items[0].Options, 2)
	assert.Equal(t, items[0].Options[0].ID, items[0].CorrectOptionID)
	assert.NotEmpty(t, items[1].ID)

	// The caller's set definition is untouched.
	assert.Empty(t, set.Items[0].Options)
}
