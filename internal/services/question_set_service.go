package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/learnsphere/assessment-engine/internal/models"
	"github.com/learnsphere/assessment-engine/internal/store"
	"github.com/learnsphere/assessment-engine/internal/utils"
)

// QuestionSetService registers and serves the question sets produced by the
// generation layer. Set-level fields are validated at this boundary; item
// payloads are accepted as-is and defaulted when a session is built.
type QuestionSetService interface {
	Create(ctx context.Context, req *CreateQuestionSetRequest) (*models.QuestionSet, error)
	Get(ctx context.Context, id string) (*models.QuestionSet, error)
	List(ctx context.Context) ([]models.QuestionSet, error)
	Delete(ctx context.Context, id string) error
}

type CreateQuestionSetRequest struct {
	ID               string                `json:"id,omitempty"`
	Title            string                `json:"title" validate:"required,min=1,max=200"`
	Description      string                `json:"description,omitempty"`
	TimeLimitSeconds *int                  `json:"time_limit_seconds,omitempty" validate:"omitempty,min=1"`
	Items            []models.QuestionItem `json:"items" validate:"required,min=1,dive"`
}

type questionSetService struct {
	sets      store.QuestionSetStore
	logger    utils.Logger
	validator *utils.Validator
}

func NewQuestionSetService(sets store.QuestionSetStore, logger utils.Logger, validator *utils.Validator) QuestionSetService {
	return &questionSetService{
		sets:      sets,
		logger:    logger,
		validator: validator,
	}
}

func (s *questionSetService) Create(ctx context.Context, req *CreateQuestionSetRequest) (*models.QuestionSet, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	if err := checkUniqueIDs(req.Items); err != nil {
		return nil, err
	}

	set := models.QuestionSet{
		ID:               req.ID,
		Title:            req.Title,
		Description:      req.Description,
		TimeLimitSeconds: req.TimeLimitSeconds,
		Items:            req.Items,
	}
	if set.ID == "" {
		set.ID = uuid.New().String()
	}

	if err := s.sets.Save(ctx, set); err != nil {
		return nil, fmt.Errorf("failed to save question set: %w", err)
	}

	s.logger.Info("Question set created",
		"question_set_id", set.ID,
		"title", set.Title,
		"items", len(set.Items),
		"flashcard_only", set.IsFlashcardOnly())
	return &set, nil
}

func (s *questionSetService) Get(ctx context.Context, id string) (*models.QuestionSet, error) {
	set, err := s.sets.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrQuestionSetNotFound) {
			return nil, ErrQuestionSetNotFound
		}
		return nil, fmt.Errorf("failed to load question set: %w", err)
	}
	return &set, nil
}

func (s *questionSetService) List(ctx context.Context) ([]models.QuestionSet, error) {
	sets, err := s.sets.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list question sets: %w", err)
	}
	return sets, nil
}

func (s *questionSetService) Delete(ctx context.Context, id string) error {
	if err := s.sets.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrQuestionSetNotFound) {
			return ErrQuestionSetNotFound
		}
		return fmt.Errorf("failed to delete question set: %w", err)
	}
	s.logger.Info("Question set deleted", "question_set_id", id)
	return nil
}

// checkUniqueIDs enforces unique item ids within a set. Duplicate ids would
// make answer capture ambiguous, so they are rejected rather than defaulted.
// Items without an id are exempt; the session builder synthesizes those.
func checkUniqueIDs(items []models.QuestionItem) error {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item.ID == "" {
			continue
		}
		if _, dup := seen[item.ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateQuestionIDs, item.ID)
		}
		seen[item.ID] = struct{}{}
	}
	return nil
}
