package quiz

import "time"

// Quiz is a backend-held quiz record. A quiz starts as an unpublished shell
// owned by the tutor who created it and becomes visible to learners once
// published. Questions are an ordered sequence of schemaless subdocuments.
type Quiz struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	Published   bool
	CreatedAt   time.Time
	Questions   []map[string]any
}

// Submission is scoped under a quiz and immutable once created.
type Submission struct {
	ID        string
	QuizID    string
	UserID    string
	Score     int
	Max       int
	Answers   map[string]any
	CreatedAt time.Time
}

// SubmissionView joins a submission to the submitter's display name.
type SubmissionView struct {
	Submission
	Name string
}

// QuizDetail is one quiz plus, for the owning tutor, its submissions.
type QuizDetail struct {
	Quiz
	Submissions []SubmissionView
}
