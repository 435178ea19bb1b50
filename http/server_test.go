package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galaxylms/backend/auth"
	"github.com/galaxylms/backend/helpdesk"
	galaxyhttp "github.com/galaxylms/backend/http"
	"github.com/galaxylms/backend/quiz"
	"github.com/galaxylms/backend/resource"
	"github.com/galaxylms/backend/session"
)

var testJwtKey = []byte("test-jwt-key")

type testEnv struct {
	handler   http.Handler
	profiles  *session.MemProfileStore
	quizzes   *quiz.MemQuizStore
	rosters   *helpdesk.MemRosterStore
	resources *resource.MemResourceStore
	blobs     *resource.MemBlobStore
}

func newTestServer(t *testing.T) *testEnv {
	t.Helper()

	profiles := session.NewMemProfileStore()
	resolver := session.NewResolver(profiles)

	quizzes := quiz.NewMemQuizStore()
	subms := quiz.NewMemSubmissionStore()
	quizSrvc := quiz.NewService(quizzes, subms, resolver)

	resources := resource.NewMemResourceStore()
	blobs := resource.NewMemBlobStore()
	resourceSrvc := resource.NewService(resources, blobs, profiles)

	rosters := helpdesk.NewMemRosterStore()
	helpdeskSrvc := helpdesk.NewService(rosters)

	server := galaxyhttp.NewHttpServer(resolver, quizSrvc, resourceSrvc, helpdeskSrvc, testJwtKey)
	return &testEnv{
		handler:   server.Handler(),
		profiles:  profiles,
		quizzes:   quizzes,
		rosters:   rosters,
		resources: resources,
		blobs:     blobs,
	}
}

func bearerToken(t *testing.T, uid, email string) string {
	t.Helper()
	token, err := auth.GenerateJWT(uid, email, "", testJwtKey)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) (status string, data json.RawMessage, errCode string) {
	t.Helper()
	var envelope struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
		Code   string          `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope.Status, envelope.Data, envelope.Code
}

func TestGetSession(t *testing.T) {
	env := newTestServer(t)
	require.NoError(t, env.profiles.Put(context.Background(), &session.Profile{
		ID: "u1", FullName: "Tina Tutor", Email: "tina@example.com", IsTutor: true,
	}))

	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	req.Header.Set("Authorization", "Bearer "+bearerToken(t, "u1", "tina@example.com"))
	w := doRequest(t, env.handler, req)

	require.Equal(t, http.StatusOK, w.Code)
	status, data, _ := decodeEnvelope(t, w)
	assert.Equal(t, "success", status)

	var view struct {
		UserID      string `json:"user_id"`
		DisplayName string `json:"display_name"`
		IsTutor     bool   `json:"is_tutor"`
		IsAdmin     bool   `json:"is_admin"`
	}
	require.NoError(t, json.Unmarshal(data, &view))
	assert.Equal(t, "u1", view.UserID)
	assert.Equal(t, "Tina Tutor", view.DisplayName)
	assert.True(t, view.IsTutor)
	assert.False(t, view.IsAdmin)
}

func TestListQuizzesFiltersByRole(t *testing.T) {
	env := newTestServer(t)
	ctx := context.Background()
	require.NoError(t, env.profiles.Put(ctx, &session.Profile{ID: "u1", IsTutor: true}))
	require.NoError(t, env.quizzes.Put(ctx, &quiz.Quiz{ID: "q1", OwnerID: "u1"}))
	require.NoError(t, env.quizzes.Put(ctx, &quiz.Quiz{ID: "q2", OwnerID: "u2", Published: true}))

	list := func(token string) []string {
		req := httptest.NewRequest(http.MethodGet, "/quizzes", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := doRequest(t, env.handler, req)
		require.Equal(t, http.StatusOK, w.Code)
		_, data, _ := decodeEnvelope(t, w)
		var quizzes []struct {
			ID string `json:"id"`
		}
		require.NoError(t, json.Unmarshal(data, &quizzes))
		ids := make([]string, 0, len(quizzes))
		for _, q := range quizzes {
			ids = append(ids, q.ID)
		}
		return ids
	}

	assert.Equal(t, []string{"q1"}, list(bearerToken(t, "u1", "tina@example.com")))
	assert.Equal(t, []string{"q2"}, list(bearerToken(t, "u5", "sam@example.com")))
	// anonymous callers get the published catalog
	assert.Equal(t, []string{"q2"}, list(""))
}

func TestDeleteQuizForbiddenForNonOwner(t *testing.T) {
	env := newTestServer(t)
	ctx := context.Background()
	require.NoError(t, env.quizzes.Put(ctx, &quiz.Quiz{ID: "q1", OwnerID: "u1", Published: true}))

	req := httptest.NewRequest(http.MethodDelete, "/quizzes/q1", nil)
	req.Header.Set("Authorization", "Bearer "+bearerToken(t, "u2", "other@example.com"))
	w := doRequest(t, env.handler, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	status, _, errCode := decodeEnvelope(t, w)
	assert.Equal(t, "error", status)
	assert.Equal(t, "authorization_denied", errCode)
}

func TestPublishResourceValidation(t *testing.T) {
	env := newTestServer(t)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	require.NoError(t, form.WriteField("title", "Notes"))
	// description, subject and file intentionally missing
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/resources", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+bearerToken(t, "u1", "u1@example.com"))
	w := doRequest(t, env.handler, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	_, _, errCode := decodeEnvelope(t, w)
	assert.Equal(t, resource.ErrCodeMissingFields, errCode)
	assert.Zero(t, env.blobs.UploadCalls)
}

func TestPublishResource(t *testing.T) {
	env := newTestServer(t)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	require.NoError(t, form.WriteField("title", "Notes"))
	require.NoError(t, form.WriteField("description", "Chapter 3"))
	require.NoError(t, form.WriteField("subject", "Maths"))
	part, err := form.CreateFormFile("file", "notes.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 content"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/resources", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+bearerToken(t, "u1", "u1@example.com"))
	w := doRequest(t, env.handler, req)

	require.Equal(t, http.StatusOK, w.Code)
	_, data, _ := decodeEnvelope(t, w)

	var view struct {
		FileName    string `json:"fileName"`
		StoragePath string `json:"storagePath"`
		UploadedBy  string `json:"uploadedBy"`
	}
	require.NoError(t, json.Unmarshal(data, &view))
	assert.Equal(t, "notes.pdf", view.FileName)
	assert.Contains(t, view.StoragePath, "_notes.pdf")
	assert.Equal(t, "u1", view.UploadedBy)
	assert.Equal(t, 1, env.blobs.UploadCalls)
}

func TestDownloadResource(t *testing.T) {
	env := newTestServer(t)
	ctx := context.Background()

	url, err := env.blobs.Upload(ctx, []byte("%PDF-1.4 content"), "resources/1_notes.pdf", "application/pdf", nil)
	require.NoError(t, err)
	require.NoError(t, env.resources.Put(ctx, &resource.Resource{
		ID: "r1", FileName: "notes.pdf", FileType: "application/pdf",
		DownloadURL: url, StoragePath: "resources/1_notes.pdf",
	}))

	t.Run("serves the file bytes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/resources/r1/file", nil)
		w := doRequest(t, env.handler, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Equal(t, "%PDF-1.4 content", w.Body.String())

		stored, err := env.resources.Get(ctx, "r1")
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, 1, stored.Downloads)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/resources/nope/file", nil)
		w := doRequest(t, env.handler, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		_, _, errCode := decodeEnvelope(t, w)
		assert.Equal(t, resource.ErrCodeResourceNotFound, errCode)
	})
}

func TestAdminSetup(t *testing.T) {
	env := newTestServer(t)

	body, err := json.Marshal(map[string]string{
		"full_name": "Ada Admin",
		"email":     "ada@example.com",
		"password":  "hunter22",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/admin/setup", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+bearerToken(t, "u1", "ada@example.com"))
	w := doRequest(t, env.handler, req)

	require.Equal(t, http.StatusOK, w.Code)
	_, data, _ := decodeEnvelope(t, w)
	var view struct {
		UserID string `json:"user_id"`
		Token  string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(data, &view))
	assert.Equal(t, "u1", view.UserID)

	// the bootstrap token must pass the same validation as service-issued ones
	claims, err := auth.ValidateJWT(view.Token, testJwtKey)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UID)

	stored, err := env.profiles.Get(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.IsAdmin)
}

func TestHelpdeskRosters(t *testing.T) {
	env := newTestServer(t)
	env.rosters.Applicants = []helpdesk.Applicant{{ID: "a1", Name: "Alice"}}
	env.rosters.Helpers = []helpdesk.Helper{{ID: "h1", Name: "Cleo"}}

	t.Run("non-admin forbidden without store reads", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/helpdesk/rosters", nil)
		req.Header.Set("Authorization", "Bearer "+bearerToken(t, "u1", "u1@example.com"))
		w := doRequest(t, env.handler, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Zero(t, env.rosters.ListCalls)
	})

	t.Run("admin-by-email-heuristic loads both lists", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/helpdesk/rosters", nil)
		req.Header.Set("Authorization", "Bearer "+bearerToken(t, "u2", "support+admin@example.com"))
		w := doRequest(t, env.handler, req)

		require.Equal(t, http.StatusOK, w.Code)
		_, data, _ := decodeEnvelope(t, w)
		var view struct {
			Applicants []struct {
				ID string `json:"id"`
			} `json:"applicants"`
			Helpers []struct {
				ID string `json:"id"`
			} `json:"helpers"`
		}
		require.NoError(t, json.Unmarshal(data, &view))
		assert.Len(t, view.Applicants, 1)
		assert.Len(t, view.Helpers, 1)
	})
}
