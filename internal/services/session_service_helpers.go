package services

import (
	"context"

	"github.com/learnsphere/assessment-engine/internal/events"
	"github.com/learnsphere/assessment-engine/internal/models"
	"github.com/learnsphere/assessment-engine/internal/session"
)

func (s *sessionService) lookup(sessionID string) (*liveSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	live, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return live, nil
}

func (s *sessionService) lookupFlashcards(sessionID string) (*liveSession, *session.FlashcardSession, error) {
	live, err := s.lookup(sessionID)
	if err != nil {
		return nil, nil, err
	}
	fc := live.controller.Flashcards()
	if fc == nil {
		return nil, nil, ErrNotFlashcardSession
	}
	return live, fc, nil
}

// completionConfig wires the controller's OnComplete hook to the event bus.
// The hook fires from the controller's goroutine on timer expiry, so it gets
// a background context rather than any request's.
func (s *sessionService) completionConfig(sessionID, questionSetID string) session.Config {
	cfg := s.cfg
	cfg.OnComplete = func(outcome session.Outcome) {
		if outcome.Flashcards != nil {
			s.publish(context.Background(), events.NewFlashcardsCompleted(sessionID, questionSetID, *outcome.Flashcards))
			return
		}
		if outcome.Aggregate != nil {
			s.publish(context.Background(), events.NewQuizCompleted(sessionID, questionSetID, *outcome.Aggregate))
		}
	}
	return cfg
}

// publish fires an event without letting bus trouble surface to the caller.
// Lifecycle events are observability, not part of the session contract.
func (s *sessionService) publish(ctx context.Context, event *events.SessionEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishSessionEvent(ctx, event); err != nil {
		s.logger.Warn("Failed to publish session event",
			"event_type", event.Type,
			"session_id", event.SessionID,
			"error", err)
	}
}

func hasQuestion(set models.QuestionSet, questionID string) bool {
	for _, item := range set.Items {
		if item.ID == questionID {
			return true
		}
	}
	return false
}

func (s *sessionService) buildResponse(live *liveSession) *SessionResponse {
	live.mu.Lock()
	defer live.mu.Unlock()
	return s.buildResponseLocked(live)
}

// buildResponseLocked assembles the client-facing snapshot. Caller holds
// live.mu so the controller cannot be swapped out mid-build.
func (s *sessionService) buildResponseLocked(live *liveSession) *SessionResponse {
	ctrl := live.controller
	set := ctrl.Set()

	resp := &SessionResponse{
		SessionID:       live.id,
		QuestionSetID:   live.questionSetID,
		Title:           set.Title,
		State:           ctrl.State(),
		IsFlashcardOnly: ctrl.IsFlashcardOnly(),
		TotalItems:      len(set.Items),
	}

	if fc := ctrl.Flashcards(); fc != nil {
		resp.Flashcards = buildFlashcardView(fc)
		return resp
	}

	resp.CurrentIndex = ctrl.CurrentIndex()
	if item, ok := ctrl.CurrentItem(); ok {
		view := buildQuestionView(item)
		resp.CurrentItem = &view
	}
	resp.AnsweredCount = countAnswered(set, ctrl.Answers())
	resp.CanSubmit = ctrl.CanSubmit()

	if remaining, timed := ctrl.TimeRemaining(); timed {
		resp.TimeRemaining = &remaining
	}
	return resp
}

// buildQuestionView strips the answer key out of an item. Matching pairs are
// split into separate action and result columns so the correct mapping never
// leaves the engine.
func buildQuestionView(item models.QuestionItem) QuestionView {
	view := QuestionView{
		ID:            item.ID,
		Type:          item.Type,
		PromptText:    item.PromptText,
		Options:       item.Options,
		TextParts:     item.TextParts,
		SequenceItems: item.SequenceItems,
	}
	if len(item.Pairs) > 0 {
		view.Actions = make([]string, len(item.Pairs))
		view.Results = make([]string, len(item.Pairs))
		for i, pair := range item.Pairs {
			view.Actions[i] = pair.Action
			view.Results[i] = pair.Result
		}
	}
	for _, sub := range item.SubQuestions {
		view.SubQuestions = append(view.SubQuestions, buildQuestionView(sub))
	}
	return view
}

func buildFlashcardView(fc *session.FlashcardSession) *FlashcardView {
	view := &FlashcardView{
		CardIndex:   fc.CurrentIndex(),
		TotalCards:  fc.Count(),
		Revealed:    fc.IsRevealed(),
		MarkedCards: len(fc.Results()),
		Complete:    fc.Complete(),
	}
	if card, ok := fc.Current(); ok {
		view.Front = card.Front
		if view.Revealed {
			view.Back = card.Back
		}
	}
	return view
}

func countAnswered(set models.QuestionSet, answers map[string]models.Answer) int {
	count := 0
	for _, item := range set.Items {
		if !item.Type.Scoreable() {
			continue
		}
		if answer, ok := answers[item.ID]; ok && session.AnswerProvided(item, answer) {
			count++
		}
	}
	return count
}
