package http

import (
	"time"

	"github.com/galaxylms/backend/helpdesk"
	"github.com/galaxylms/backend/quiz"
	"github.com/galaxylms/backend/resource"
	"github.com/galaxylms/backend/session"
)

type SessionView struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	IsTutor     bool   `json:"is_tutor"`
	IsAdmin     bool   `json:"is_admin"`
}

func mapSession(sess session.Session) *SessionView {
	return &SessionView{
		UserID:      sess.UserID,
		Email:       sess.Email,
		DisplayName: sess.DisplayName,
		IsTutor:     sess.IsTutor,
		IsAdmin:     sess.IsAdmin,
	}
}

type BriefQuiz struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"created_at"`
}

func mapBriefQuiz(q *quiz.Quiz) *BriefQuiz {
	if q == nil {
		return nil
	}
	return &BriefQuiz{
		ID:          q.ID,
		OwnerID:     q.OwnerID,
		Title:       q.Title,
		Description: q.Description,
		Published:   q.Published,
		CreatedAt:   q.CreatedAt,
	}
}

func mapQuizList(quizzes []quiz.Quiz) []*BriefQuiz {
	response := make([]*BriefQuiz, len(quizzes))
	for i := range quizzes {
		response[i] = mapBriefQuiz(&quizzes[i])
	}
	return response
}

type SubmissionEntry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
	Max   int    `json:"max"`
}

type QuizDetailView struct {
	BriefQuiz
	Questions   []map[string]any  `json:"questions,omitempty"`
	Submissions []SubmissionEntry `json:"submissions,omitempty"`
}

func mapQuizDetail(detail *quiz.QuizDetail) *QuizDetailView {
	view := &QuizDetailView{
		BriefQuiz: *mapBriefQuiz(&detail.Quiz),
		Questions: detail.Questions,
	}
	for _, subm := range detail.Submissions {
		view.Submissions = append(view.Submissions, SubmissionEntry{
			ID:    subm.ID,
			Name:  subm.Name,
			Score: subm.Score,
			Max:   subm.Max,
		})
	}
	return view
}

type ResourceView struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Subject        string    `json:"subject"`
	FileName       string    `json:"fileName"`
	FileSize       int64     `json:"fileSize"`
	FileType       string    `json:"fileType"`
	DownloadURL    string    `json:"downloadURL"`
	UploadedBy     string    `json:"uploadedBy"`
	UploadedByName string    `json:"uploadedByName"`
	UploadedAt     time.Time `json:"uploadedAt"`
	Likes          int       `json:"likes"`
	Downloads      int       `json:"downloads"`
	StoragePath    string    `json:"storagePath"`
}

func mapResource(res *resource.Resource) *ResourceView {
	return &ResourceView{
		ID:             res.ID,
		Title:          res.Title,
		Description:    res.Description,
		Subject:        res.Subject,
		FileName:       res.FileName,
		FileSize:       res.FileSize,
		FileType:       res.FileType,
		DownloadURL:    res.DownloadURL,
		UploadedBy:     res.UploadedBy,
		UploadedByName: res.UploadedByName,
		UploadedAt:     res.UploadedAt,
		Likes:          res.Likes,
		Downloads:      res.Downloads,
		StoragePath:    res.StoragePath,
	}
}

type ApplicantView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	AppliedAt time.Time `json:"applied_at"`
}

type HelperView struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Subjects []string `json:"subjects,omitempty"`
}

type RostersView struct {
	Applicants []ApplicantView `json:"applicants"`
	Helpers    []HelperView    `json:"helpers"`
}

func mapRosters(rosters *helpdesk.Rosters) *RostersView {
	view := &RostersView{
		Applicants: make([]ApplicantView, 0, len(rosters.Applicants)),
		Helpers:    make([]HelperView, 0, len(rosters.Helpers)),
	}
	for _, a := range rosters.Applicants {
		view.Applicants = append(view.Applicants, ApplicantView(a))
	}
	for _, h := range rosters.Helpers {
		view.Helpers = append(view.Helpers, HelperView(h))
	}
	return view
}
