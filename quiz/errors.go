package quiz

import (
	"net/http"

	"github.com/galaxylms/backend/srvcerror"
)

const ErrCodeQuizNotFound = "quiz_not_found"

func newErrQuizNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeQuizNotFound,
		"quiz not found",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeQuizNotPublished = "quiz_not_published"

func newErrQuizNotPublished() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeQuizNotPublished,
		"this quiz is not accepting submissions",
	).SetHttpStatusCode(http.StatusConflict)
}
