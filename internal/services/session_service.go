package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/learnsphere/assessment-engine/internal/events"
	"github.com/learnsphere/assessment-engine/internal/models"
	"github.com/learnsphere/assessment-engine/internal/scoring"
	"github.com/learnsphere/assessment-engine/internal/session"
	"github.com/learnsphere/assessment-engine/internal/store"
	"github.com/learnsphere/assessment-engine/internal/utils"
)

// SessionService drives assessment sessions over registered question sets.
// Sessions live in memory only: durability across restarts is a non-goal.
type SessionService interface {
	Start(ctx context.Context, req *StartSessionRequest) (*SessionResponse, error)
	Get(ctx context.Context, sessionID string) (*SessionResponse, error)
	Answer(ctx context.Context, sessionID string, req *AnswerRequest) (*SessionResponse, error)
	Navigate(ctx context.Context, sessionID string, req *NavigateRequest) (*SessionResponse, error)
	Submit(ctx context.Context, sessionID string) (*ResultsResponse, error)
	Results(ctx context.Context, sessionID string) (*ResultsResponse, error)
	Retake(ctx context.Context, sessionID string) (*SessionResponse, error)
	TimeRemaining(ctx context.Context, sessionID string) (*TimeRemainingResponse, error)

	// Flashcard sub-session operations; valid only for flashcard-only sets.
	FlipCard(ctx context.Context, sessionID string) (*SessionResponse, error)
	NavigateCard(ctx context.Context, sessionID string, req *NavigateRequest) (*SessionResponse, error)
	MarkCard(ctx context.Context, sessionID string, req *MarkCardRequest) (*SessionResponse, error)
	FinishFlashcards(ctx context.Context, sessionID string) (*ResultsResponse, error)

	Teardown(ctx context.Context, sessionID string) error
}

// ===== REQUEST / RESPONSE TYPES =====

type StartSessionRequest struct {
	QuestionSetID string `json:"question_set_id" validate:"required"`
}

type AnswerRequest struct {
	QuestionID string        `json:"question_id" validate:"required"`
	Answer     models.Answer `json:"answer"`
}

type NavigateRequest struct {
	Direction string `json:"direction" validate:"required,nav_direction"`
}

type MarkCardRequest struct {
	Known *bool `json:"known" validate:"required"`
}

type SessionResponse struct {
	SessionID       string         `json:"session_id"`
	QuestionSetID   string         `json:"question_set_id"`
	Title           string         `json:"title"`
	State           session.State  `json:"state"`
	IsFlashcardOnly bool           `json:"is_flashcard_only"`
	TotalItems      int            `json:"total_items"`
	CurrentIndex    int            `json:"current_index"`
	CurrentItem     *QuestionView  `json:"current_item,omitempty"`
	AnsweredCount   int            `json:"answered_count"`
	CanSubmit       bool           `json:"can_submit"`
	TimeRemaining   *int           `json:"time_remaining,omitempty"`
	Flashcards      *FlashcardView `json:"flashcards,omitempty"`
}

// QuestionView is a question stripped of its answer key, safe to hand to the
// display layer while the session is active.
type QuestionView struct {
	ID            string                `json:"id"`
	Type          models.QuestionType   `json:"type"`
	PromptText    string                `json:"prompt_text"`
	Options       []models.Option       `json:"options,omitempty"`
	TextParts     []string              `json:"text_parts,omitempty"`
	SequenceItems []models.SequenceItem `json:"items,omitempty"`
	Actions       []string              `json:"actions,omitempty"`
	Results       []string              `json:"results,omitempty"`
	SubQuestions  []QuestionView        `json:"sub_questions,omitempty"`
}

// FlashcardView is the state of the flashcard sub-session. The back of the
// card travels only once it has been revealed.
type FlashcardView struct {
	CardIndex   int    `json:"card_index"`
	TotalCards  int    `json:"total_cards"`
	Front       string `json:"front"`
	Back        string `json:"back,omitempty"`
	Revealed    bool   `json:"revealed"`
	MarkedCards int    `json:"marked_cards"`
	Complete    bool   `json:"complete"`
}

// ResultsResponse is the review payload of a terminal session: a scored
// review for quizzes, a tally review for flashcard sets.
type ResultsResponse struct {
	SessionID  string                   `json:"session_id"`
	Quiz       *scoring.Review          `json:"quiz,omitempty"`
	Flashcards *scoring.FlashcardReview `json:"flashcards,omitempty"`
}

type TimeRemainingResponse struct {
	Timed            bool `json:"timed"`
	RemainingSeconds int  `json:"remaining_seconds"`
}

// ===== IMPLEMENTATION =====

type liveSession struct {
	id            string
	questionSetID string

	mu         sync.Mutex
	controller *session.Controller
}

type sessionService struct {
	sets      store.QuestionSetStore
	logger    utils.Logger
	validator *utils.Validator
	publisher events.EventPublisher
	cfg       session.Config

	mu       sync.RWMutex
	sessions map[string]*liveSession
}

func NewSessionService(
	sets store.QuestionSetStore,
	publisher events.EventPublisher,
	logger utils.Logger,
	validator *utils.Validator,
) SessionService {
	return NewSessionServiceWithConfig(sets, publisher, logger, validator, session.DefaultConfig())
}

// NewSessionServiceWithConfig lets tests shrink the session timing.
func NewSessionServiceWithConfig(
	sets store.QuestionSetStore,
	publisher events.EventPublisher,
	logger utils.Logger,
	validator *utils.Validator,
	cfg session.Config,
) SessionService {
	return &sessionService{
		sets:      sets,
		logger:    logger,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
		sessions:  make(map[string]*liveSession),
	}
}

func (s *sessionService) Start(ctx context.Context, req *StartSessionRequest) (*SessionResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	set, err := s.sets.Get(ctx, req.QuestionSetID)
	if err != nil {
		if errors.Is(err, store.ErrQuestionSetNotFound) {
			return nil, ErrQuestionSetNotFound
		}
		return nil, fmt.Errorf("failed to load question set: %w", err)
	}

	sessionID := uuid.New().String()
	live := &liveSession{id: sessionID, questionSetID: set.ID}
	live.controller = session.NewWithConfig(set, s.completionConfig(sessionID, set.ID))

	s.mu.Lock()
	s.sessions[sessionID] = live
	s.mu.Unlock()

	s.logger.Info("Session started",
		"session_id", sessionID,
		"question_set_id", set.ID,
		"flashcard_only", live.controller.IsFlashcardOnly(),
		"items", len(set.Items))

	s.publish(ctx, events.NewSessionStarted(sessionID, set.ID))
	return s.buildResponse(live), nil
}

func (s *sessionService) Get(ctx context.Context, sessionID string) (*SessionResponse, error) {
	live, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	return s.buildResponse(live), nil
}

func (s *sessionService) Answer(ctx context.Context, sessionID string, req *AnswerRequest) (*SessionResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	live, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	live.mu.Lock()
	defer live.mu.Unlock()

	if !hasQuestion(live.controller.Set(), req.QuestionID) {
		return nil, ErrQuestionNotFound
	}
	// Answers on a submitted session fall through as a no-op: the controller
	// keeps its map frozen and the response shows the unchanged state.
	live.controller.SelectAnswer(req.QuestionID, req.Answer)
	return s.buildResponseLocked(live), nil
}

func (s *sessionService) Navigate(ctx context.Context, sessionID string, req *NavigateRequest) (*SessionResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	live, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	live.mu.Lock()
	defer live.mu.Unlock()

	if req.Direction == "previous" {
		live.controller.GoPrevious()
	} else {
		live.controller.GoNext()
	}
	return s.buildResponseLocked(live), nil
}

func (s *sessionService) Submit(ctx context.Context, sessionID string) (*ResultsResponse, error) {
	live, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	live.mu.Lock()
	defer live.mu.Unlock()

	if live.controller.IsFlashcardOnly() {
		return nil, ErrFlashcardSession
	}

	result := live.controller.Submit()
	review := scoring.FormatReview(result)

	s.logger.Info("Session submitted",
		"session_id", sessionID,
		"score", result.Score,
		"total_scoreable", result.TotalScoreable)

	return &ResultsResponse{SessionID: sessionID, Quiz: &review}, nil
}

func (s *sessionService) Results(ctx context.Context, sessionID string) (*ResultsResponse, error) {
	live, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	live.mu.Lock()
	defer live.mu.Unlock()

	if live.controller.State() != session.StateSubmitted {
		return nil, ErrSessionNotSubmitted
	}

	if tally, ok := live.controller.Tally(); ok {
		review := scoring.FormatFlashcardReview(tally)
		return &ResultsResponse{SessionID: sessionID, Flashcards: &review}, nil
	}
	result, _ := live.controller.Result()
	review := scoring.FormatReview(result)
	return &ResultsResponse{SessionID: sessionID, Quiz: &review}, nil
}

func (s *sessionService) Retake(ctx context.Context, sessionID string) (*SessionResponse, error) {
	live, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	live.mu.Lock()
	defer live.mu.Unlock()

	// Retake tears down the old controller (timers included) and swaps in a
	// fresh attempt over the same set definition. Nothing carries over.
	live.controller = live.controller.Retake()

	s.logger.Info("Session retaken", "session_id", sessionID, "question_set_id", live.questionSetID)
	s.publish(ctx, events.NewSessionRetaken(sessionID, live.questionSetID))
	return s.buildResponseLocked(live), nil
}

func (s *sessionService) TimeRemaining(ctx context.Context, sessionID string) (*TimeRemainingResponse, error) {
	live, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	remaining, timed := live.controller.TimeRemaining()
	return &TimeRemainingResponse{Timed: timed, RemainingSeconds: remaining}, nil
}

func (s *sessionService) FlipCard(ctx context.Context, sessionID string) (*SessionResponse, error) {
	live, fc, err := s.lookupFlashcards(sessionID)
	if err != nil {
		return nil, err
	}
	fc.Flip()
	return s.buildResponse(live), nil
}

func (s *sessionService) NavigateCard(ctx context.Context, sessionID string, req *NavigateRequest) (*SessionResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	live, fc, err := s.lookupFlashcards(sessionID)
	if err != nil {
		return nil, err
	}
	if req.Direction == "previous" {
		fc.Navigate(session.Previous)
	} else {
		fc.Navigate(session.Next)
	}
	return s.buildResponse(live), nil
}

func (s *sessionService) MarkCard(ctx context.Context, sessionID string, req *MarkCardRequest) (*SessionResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	live, fc, err := s.lookupFlashcards(sessionID)
	if err != nil {
		return nil, err
	}
	fc.MarkKnown(*req.Known)
	return s.buildResponse(live), nil
}

func (s *sessionService) FinishFlashcards(ctx context.Context, sessionID string) (*ResultsResponse, error) {
	live, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	live.mu.Lock()
	defer live.mu.Unlock()

	if !live.controller.IsFlashcardOnly() {
		return nil, ErrNotFlashcardSession
	}
	tally, ok := live.controller.FinishFlashcards()
	if !ok {
		return nil, ErrFlashcardsIncomplete
	}

	s.logger.Info("Flashcard review finished",
		"session_id", sessionID,
		"known", tally.Known,
		"unknown", tally.Unknown)

	review := scoring.FormatFlashcardReview(tally)
	return &ResultsResponse{SessionID: sessionID, Flashcards: &review}, nil
}

func (s *sessionService) Teardown(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	live, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}

	live.mu.Lock()
	live.controller.Close()
	live.mu.Unlock()

	s.logger.Info("Session torn down", "session_id", sessionID)
	return nil
}
