package store

import (
	"context"
	"errors"
	"sync"

	"github.com/learnsphere/assessment-engine/internal/models"
)

var ErrQuestionSetNotFound = errors.New("question set not found")

// QuestionSetStore holds the question sets handed over by the generation
// layer. Sets are stored as received; defaulting of malformed items happens
// when a session is built over them.
type QuestionSetStore interface {
	Save(ctx context.Context, set models.QuestionSet) error
	Get(ctx context.Context, id string) (models.QuestionSet, error)
	List(ctx context.Context) ([]models.QuestionSet, error)
	Delete(ctx context.Context, id string) error
}

type memoryStore struct {
	mu   sync.RWMutex
	sets map[string]models.QuestionSet
}

// NewMemoryStore returns an in-memory store. Durability is deliberately out
// of scope; the generation layer re-registers its sets on restart.
func NewMemoryStore() QuestionSetStore {
	return &memoryStore{sets: make(map[string]models.QuestionSet)}
}

func (s *memoryStore) Save(ctx context.Context, set models.QuestionSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets[set.ID] = set
	return nil
}

func (s *memoryStore) Get(ctx context.Context, id string) (models.QuestionSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set, ok := s.sets[id]
	if !ok {
		return models.QuestionSet{}, ErrQuestionSetNotFound
	}
	return set, nil
}

func (s *memoryStore) List(ctx context.Context) ([]models.QuestionSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sets := make([]models.QuestionSet, 0, len(s.sets))
	for _, set := range s.sets {
		sets = append(sets, set)
	}
	return sets, nil
}

func (s *memoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sets[id]; !ok {
		return ErrQuestionSetNotFound
	}
	delete(s.sets, id)
	return nil
}
