package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"

	"github.com/galaxylms/backend/httpjson"
)

func (httpserver *HttpServer) listQuizzes(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	sess := httpserver.sessionFromRequest(r)
	quizzes, err := httpserver.quizSrvc.ListCatalog(r.Context(), sess)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapQuizList(quizzes))
}

func (httpserver *HttpServer) createQuiz(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	sess := httpserver.sessionFromRequest(r)
	created, err := httpserver.quizSrvc.CreateQuiz(r.Context(), sess)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapBriefQuiz(created))
}

func (httpserver *HttpServer) deleteQuiz(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	sess := httpserver.sessionFromRequest(r)
	id := chi.URLParam(r, "id")
	if err := httpserver.quizSrvc.DeleteQuiz(r.Context(), sess, id); err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, nil)
}

func (httpserver *HttpServer) setQuizPublished(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	type setPublishedRequest struct {
		Published bool `json:"published"`
	}

	var request setPublishedRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	sess := httpserver.sessionFromRequest(r)
	id := chi.URLParam(r, "id")
	updated, err := httpserver.quizSrvc.SetPublished(r.Context(), sess, id, request.Published)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapBriefQuiz(updated))
}

func (httpserver *HttpServer) getQuizDetail(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	sess := httpserver.sessionFromRequest(r)
	id := chi.URLParam(r, "id")
	detail, err := httpserver.quizSrvc.GetQuizDetail(r.Context(), sess, id)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapQuizDetail(detail))
}

func (httpserver *HttpServer) submitAnswers(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	type submitRequest struct {
		Score   int            `json:"score"`
		Max     int            `json:"max"`
		Answers map[string]any `json:"answers"`
	}

	var request submitRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	sess := httpserver.sessionFromRequest(r)
	id := chi.URLParam(r, "id")
	subm, err := httpserver.quizSrvc.SubmitAnswers(r.Context(), sess, id,
		request.Score, request.Max, request.Answers)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	type submitResponse struct {
		ID    string `json:"id"`
		Score int    `json:"score"`
		Max   int    `json:"max"`
	}

	httpjson.WriteSuccessJson(w, submitResponse{
		ID:    subm.ID,
		Score: subm.Score,
		Max:   subm.Max,
	})
}
