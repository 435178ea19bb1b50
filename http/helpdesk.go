package http

import (
	"net/http"

	"github.com/go-chi/httplog/v2"

	"github.com/galaxylms/backend/httpjson"
)

func (httpserver *HttpServer) getHelpdeskRosters(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	sess := httpserver.sessionFromRequest(r)
	rosters, err := httpserver.helpdeskSrvc.LoadRosters(r.Context(), sess)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapRosters(rosters))
}
