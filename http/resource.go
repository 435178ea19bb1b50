package http

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"

	"github.com/galaxylms/backend/httpjson"
	"github.com/galaxylms/backend/resource"
)

// maxResourceUpload caps the multipart form we are willing to buffer.
const maxResourceUpload = 50 << 20 // 50 MiB

func (httpserver *HttpServer) publishResource(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	if err := r.ParseMultipartForm(maxResourceUpload); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	input := resource.PublishInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Subject:     r.FormValue("subject"),
	}

	file, header, err := r.FormFile("file")
	if err == nil {
		defer file.Close()
		content, readErr := io.ReadAll(file)
		if readErr != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		input.FileName = header.Filename
		input.FileSize = header.Size
		input.FileType = header.Header.Get("Content-Type")
		input.Content = content
	}

	sess := httpserver.sessionFromRequest(r)
	published, err := httpserver.resourceSrvc.Publish(r.Context(), sess, input)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapResource(published))
}

func (httpserver *HttpServer) listResources(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	resources, err := httpserver.resourceSrvc.List(r.Context())
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	response := make([]*ResourceView, len(resources))
	for i := range resources {
		response[i] = mapResource(&resources[i])
	}
	httpjson.WriteSuccessJson(w, response)
}

// downloadResource streams the file bytes directly instead of the JSON
// envelope, so the response can be saved as-is.
func (httpserver *HttpServer) downloadResource(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	downloaded, content, err := httpserver.resourceSrvc.Download(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	w.Header().Set("Content-Type", downloaded.FileType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", downloaded.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	if _, err := w.Write(content); err != nil {
		logger.Warn("failed to write resource file response", "error", err)
	}
}
