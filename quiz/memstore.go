package quiz

import (
	"context"
	"sync"
)

// MemQuizStore is an in-memory QuizStore for tests. FailWith, when set, makes
// every call return that error.
type MemQuizStore struct {
	mu      sync.RWMutex
	quizzes map[string]Quiz

	FailWith error
}

func NewMemQuizStore() *MemQuizStore {
	return &MemQuizStore{
		quizzes: make(map[string]Quiz),
	}
}

func (s *MemQuizStore) Get(ctx context.Context, id string) (*Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	if quiz, ok := s.quizzes[id]; ok {
		return &quiz, nil
	}
	return nil, nil
}

func (s *MemQuizStore) ListByOwner(ctx context.Context, ownerID string) ([]Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	var quizzes []Quiz
	for _, quiz := range s.quizzes {
		if quiz.OwnerID == ownerID {
			quizzes = append(quizzes, quiz)
		}
	}
	return quizzes, nil
}

func (s *MemQuizStore) ListPublished(ctx context.Context) ([]Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	var quizzes []Quiz
	for _, quiz := range s.quizzes {
		if quiz.Published {
			quizzes = append(quizzes, quiz)
		}
	}
	return quizzes, nil
}

func (s *MemQuizStore) Put(ctx context.Context, quiz *Quiz) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	s.quizzes[quiz.ID] = *quiz
	return nil
}

func (s *MemQuizStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	delete(s.quizzes, id)
	return nil
}

// MemSubmissionStore is an in-memory SubmissionStore for tests.
type MemSubmissionStore struct {
	mu    sync.RWMutex
	subms map[string][]Submission // quiz id -> submissions

	FailWith error
}

func NewMemSubmissionStore() *MemSubmissionStore {
	return &MemSubmissionStore{
		subms: make(map[string][]Submission),
	}
}

func (s *MemSubmissionStore) ListByQuiz(ctx context.Context, quizID string) ([]Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	return append([]Submission(nil), s.subms[quizID]...), nil
}

func (s *MemSubmissionStore) Put(ctx context.Context, subm *Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	s.subms[subm.QuizID] = append(s.subms[subm.QuizID], *subm)
	return nil
}
