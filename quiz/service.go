package quiz

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/galaxylms/backend/session"
	"github.com/galaxylms/backend/srvcerror"
)

// Service owns the quiz catalog, quiz details and submissions. Reads and
// writes go straight to the document store; standing catalog subscriptions
// are re-evaluated and re-broadcast wholesale after every change.
type Service struct {
	logger *slog.Logger

	quizzes QuizStore
	subms   SubmissionStore
	names   NameResolver

	catalogSubs  []*catalogListener
	listenerLock sync.Mutex
}

func NewService(quizzes QuizStore, subms SubmissionStore, names NameResolver) *Service {
	return &Service{
		logger:  slog.Default().With("module", "quiz"),
		quizzes: quizzes,
		subms:   subms,
		names:   names,
	}
}

// catalogSnapshot evaluates the caller's standing query: ownership-filtered
// for tutors, publication-filtered for everyone else.
func (s *Service) catalogSnapshot(ctx context.Context, sess session.Session) ([]Quiz, error) {
	var quizzes []Quiz
	var err error
	if sess.IsTutor {
		quizzes, err = s.quizzes.ListByOwner(ctx, sess.UserID)
	} else {
		quizzes, err = s.quizzes.ListPublished(ctx)
	}
	if err != nil {
		return nil, err
	}

	sort.Slice(quizzes, func(i, j int) bool {
		return quizzes[i].CreatedAt.After(quizzes[j].CreatedAt)
	})
	return quizzes, nil
}

// ListCatalog is the one-shot form of the catalog query.
func (s *Service) ListCatalog(ctx context.Context, sess session.Session) ([]Quiz, error) {
	quizzes, err := s.catalogSnapshot(ctx, sess)
	if err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(
			fmt.Errorf("error listing quizzes: %w", err))
	}
	return quizzes, nil
}

// CreateQuiz creates an empty unpublished quiz shell owned by the caller.
func (s *Service) CreateQuiz(ctx context.Context, sess session.Session) (*Quiz, error) {
	if !sess.Authenticated() {
		return nil, srvcerror.ErrUnauthenticated()
	}
	if !sess.IsTutor {
		return nil, srvcerror.ErrAuthorizationDenied()
	}

	quiz := &Quiz{
		ID:        uuid.New().String(),
		OwnerID:   sess.UserID,
		Title:     "Untitled quiz",
		CreatedAt: time.Now().UTC(),
	}
	if err := s.quizzes.Put(ctx, quiz); err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(
			fmt.Errorf("error storing quiz: %w", err))
	}

	s.broadcastCatalog(ctx)
	return quiz, nil
}

// DeleteQuiz deletes a quiz by id. Ownership is enforced here: the original
// client relied on backend rules for this, and this backend is those rules.
func (s *Service) DeleteQuiz(ctx context.Context, sess session.Session, id string) error {
	if !sess.Authenticated() {
		return srvcerror.ErrUnauthenticated()
	}

	quiz, err := s.quizzes.Get(ctx, id)
	if err != nil {
		return srvcerror.ErrInternalSE().SetDebug(
			fmt.Errorf("error reading quiz %s: %w", id, err))
	}
	if quiz == nil {
		return newErrQuizNotFound()
	}
	if quiz.OwnerID != sess.UserID && !sess.IsAdmin {
		return srvcerror.ErrAuthorizationDenied()
	}

	if err := s.quizzes.Delete(ctx, id); err != nil {
		return srvcerror.ErrInternalSE().SetDebug(
			fmt.Errorf("error deleting quiz %s: %w", id, err))
	}

	s.broadcastCatalog(ctx)
	return nil
}

// SetPublished moves a quiz between draft and published.
func (s *Service) SetPublished(ctx context.Context, sess session.Session, id string, published bool) (*Quiz, error) {
	if !sess.Authenticated() {
		return nil, srvcerror.ErrUnauthenticated()
	}

	quiz, err := s.quizzes.Get(ctx, id)
	if err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(
			fmt.Errorf("error reading quiz %s: %w", id, err))
	}
	if quiz == nil {
		return nil, newErrQuizNotFound()
	}
	if quiz.OwnerID != sess.UserID {
		return nil, srvcerror.ErrAuthorizationDenied()
	}

	quiz.Published = published
	if err := s.quizzes.Put(ctx, quiz); err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(
			fmt.Errorf("error storing quiz %s: %w", id, err))
	}

	s.broadcastCatalog(ctx)
	return quiz, nil
}

// GetQuizDetail fetches one quiz and, when the caller is the owning tutor,
// every submission under it, each joined to a display name. One profile
// lookup per submission; fine at this scale, no pagination.
func (s *Service) GetQuizDetail(ctx context.Context, sess session.Session, id string) (*QuizDetail, error) {
	quiz, err := s.quizzes.Get(ctx, id)
	if err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(
			fmt.Errorf("error reading quiz %s: %w", id, err))
	}
	if quiz == nil {
		return nil, newErrQuizNotFound()
	}
	if !quiz.Published && quiz.OwnerID != sess.UserID && !sess.IsAdmin {
		return nil, srvcerror.ErrAuthorizationDenied()
	}

	detail := &QuizDetail{Quiz: *quiz}

	if sess.IsTutor && quiz.OwnerID == sess.UserID {
		subms, err := s.subms.ListByQuiz(ctx, id)
		if err != nil {
			return nil, srvcerror.ErrInternalSE().SetDebug(
				fmt.Errorf("error listing submissions for quiz %s: %w", id, err))
		}
		sort.Slice(subms, func(i, j int) bool {
			return subms[i].CreatedAt.After(subms[j].CreatedAt)
		})
		for _, subm := range subms {
			detail.Submissions = append(detail.Submissions, SubmissionView{
				Submission: subm,
				Name:       s.names.DisplayNameFor(ctx, subm.UserID),
			})
		}
	}

	return detail, nil
}

// SubmitAnswers records a learner's submission on a published quiz. The
// record is immutable once created.
func (s *Service) SubmitAnswers(ctx context.Context, sess session.Session, quizID string, score, max int, answers map[string]any) (*Submission, error) {
	if !sess.Authenticated() {
		return nil, srvcerror.ErrUnauthenticated()
	}

	quiz, err := s.quizzes.Get(ctx, quizID)
	if err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(
			fmt.Errorf("error reading quiz %s: %w", quizID, err))
	}
	if quiz == nil {
		return nil, newErrQuizNotFound()
	}
	if !quiz.Published {
		return nil, newErrQuizNotPublished()
	}

	subm := &Submission{
		ID:        uuid.New().String(),
		QuizID:    quizID,
		UserID:    sess.UserID,
		Score:     score,
		Max:       max,
		Answers:   answers,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.subms.Put(ctx, subm); err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(
			fmt.Errorf("error storing submission: %w", err))
	}

	return subm, nil
}
