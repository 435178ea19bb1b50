package quiz

import "context"

// QuizStore is the document-store surface of the quiz collection. Get returns
// (nil, nil) when no record exists. Only the two equality filters the catalog
// needs are modeled; there is no pagination.
type QuizStore interface {
	Get(ctx context.Context, id string) (*Quiz, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Quiz, error)
	ListPublished(ctx context.Context) ([]Quiz, error)
	Put(ctx context.Context, quiz *Quiz) error
	Delete(ctx context.Context, id string) error
}

// SubmissionStore is the submissions subcollection, keyed under a quiz.
type SubmissionStore interface {
	ListByQuiz(ctx context.Context, quizID string) ([]Submission, error)
	Put(ctx context.Context, subm *Submission) error
}

// NameResolver resolves a user id to a display name for read-side joins.
// Implementations must fall back to the raw id instead of failing.
type NameResolver interface {
	DisplayNameFor(ctx context.Context, userID string) string
}
