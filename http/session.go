package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/httplog/v2"

	"github.com/galaxylms/backend/auth"
	"github.com/galaxylms/backend/httpjson"
	"github.com/galaxylms/backend/srvcerror"
)

// getSession reports who the current caller is, with role flags resolved
// from their profile record.
func (httpserver *HttpServer) getSession(w http.ResponseWriter, r *http.Request) {
	sess := httpserver.sessionFromRequest(r)
	httpjson.WriteSuccessJson(w, mapSession(sess))
}

// adminSetup provisions the very first admin profile. It is only usable while
// no admin exists.
func (httpserver *HttpServer) adminSetup(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		httpjson.HandleError(logger, w, srvcerror.ErrUnauthenticated())
		return
	}

	type adminSetupRequest struct {
		FullName string `json:"full_name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var request adminSetupRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	profile, err := httpserver.resolver.ProvisionFirstAdmin(r.Context(),
		claims.UID, request.FullName, request.Email, request.Password)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	// hand the fresh admin a session token so the client can sign in
	// without a round trip through the auth service
	token, err := auth.GenerateJWT(profile.ID, profile.Email, profile.FullName, httpserver.jwtKey)
	if err != nil {
		httpjson.HandleError(logger, w, srvcerror.ErrInternalSE().SetDebug(err))
		return
	}

	type adminSetupResponse struct {
		UserID   string `json:"user_id"`
		FullName string `json:"full_name"`
		Email    string `json:"email"`
		Token    string `json:"token"`
	}

	httpjson.WriteSuccessJson(w, adminSetupResponse{
		UserID:   profile.ID,
		FullName: profile.FullName,
		Email:    profile.Email,
		Token:    token,
	})
}
