package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"

	"github.com/galaxylms/backend/auth"
	"github.com/galaxylms/backend/helpdesk"
	"github.com/galaxylms/backend/quiz"
	"github.com/galaxylms/backend/resource"
	"github.com/galaxylms/backend/session"
)

type HttpServer struct {
	resolver     *session.Resolver
	quizSrvc     *quiz.Service
	resourceSrvc *resource.Service
	helpdeskSrvc *helpdesk.Service
	jwtKey       []byte
	router       *chi.Mux
}

func NewHttpServer(
	resolver *session.Resolver,
	quizSrvc *quiz.Service,
	resourceSrvc *resource.Service,
	helpdeskSrvc *helpdesk.Service,
	jwtKey []byte,
) *HttpServer {
	router := chi.NewRouter()

	logger := httplog.NewLogger("galaxylms", httplog.Options{
		LogLevel:         slog.LevelDebug,
		Concise:          true,
		MessageFieldName: "message",
	})

	router.Use(httplog.RequestLogger(logger))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           3000,
	}))

	router.Use(auth.GetJwtAuthMiddleware(jwtKey))

	server := &HttpServer{
		resolver:     resolver,
		quizSrvc:     quizSrvc,
		resourceSrvc: resourceSrvc,
		helpdeskSrvc: helpdeskSrvc,
		jwtKey:       jwtKey,
		router:       router,
	}

	server.routes()

	return server
}

func (httpserver *HttpServer) Start(address string) error {
	return http.ListenAndServe(address, httpserver.router)
}

// Handler exposes the router, mainly for tests.
func (httpserver *HttpServer) Handler() http.Handler {
	return httpserver.router
}

func (httpserver *HttpServer) routes() {
	r := httpserver.router
	r.Get("/session", httpserver.getSession)
	r.Post("/admin/setup", httpserver.adminSetup)

	r.Get("/quizzes", httpserver.listQuizzes)
	r.Get("/quizzes/updates", httpserver.watchQuizCatalog)
	r.Post("/quizzes", httpserver.createQuiz)
	r.Get("/quizzes/{id}", httpserver.getQuizDetail)
	r.Delete("/quizzes/{id}", httpserver.deleteQuiz)
	r.Patch("/quizzes/{id}/published", httpserver.setQuizPublished)
	r.Post("/quizzes/{id}/submissions", httpserver.submitAnswers)

	r.Get("/resources", httpserver.listResources)
	r.Post("/resources", httpserver.publishResource)
	r.Get("/resources/{id}/file", httpserver.downloadResource)

	r.Get("/helpdesk/rosters", httpserver.getHelpdeskRosters)
}

// sessionFromRequest resolves the caller's session once per request from the
// validated token claims. Anonymous requests get a zero session.
func (httpserver *HttpServer) sessionFromRequest(r *http.Request) session.Session {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		return session.Session{}
	}
	return httpserver.resolver.Resolve(r.Context(), claims.UID, claims.Email, claims.DisplayName)
}
