package http

import (
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/httplog/v2"

	"github.com/galaxylms/backend/httpjson"
)

// watchQuizCatalog streams catalog snapshots over SSE. Each event carries the
// caller's full filtered result set; the subscription ends when the client
// disconnects, which cancels the request context and releases the listener.
func (httpserver *HttpServer) watchQuizCatalog(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	sess := httpserver.sessionFromRequest(r)

	snapshots, err := httpserver.quizSrvc.WatchCatalog(r.Context(), sess)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported!", http.StatusInternalServerError)
		return
	}

	var writeMutex sync.Mutex
	safeWrite := func(data string) {
		writeMutex.Lock()
		defer writeMutex.Unlock()
		io.WriteString(w, data)
		flusher.Flush()
	}

	keepAliveTicker := time.NewTicker(15 * time.Second)
	defer keepAliveTicker.Stop()

	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			select {
			case <-done:
				return
			case <-keepAliveTicker.C:
				safeWrite(": keep-alive\n\n")
			}
		}
	}()

	for snapshot := range snapshots {
		marshalled, err := json.Marshal(mapQuizList(snapshot))
		if err != nil {
			logger.Error("failed to marshal catalog snapshot", "error", err)
			return
		}
		safeWrite("data: " + string(marshalled) + "\n\n")
	}
}
