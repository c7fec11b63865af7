package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/rendetalje/friday/pkg/auth"

	httpLogger "github.com/chi-middleware/logrus-logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rendetalje/friday/pkg/models"
)

const ReadHeaderTimeout = 5 * time.Second

// Create creates a new HTTP server with the given app state
func Create(appState *models.AppState) *http.Server {
	serverPort := appState.Config.Server.Port
	router := setupRouter(appState)
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", serverPort),
		Handler:           router,
		ReadHeaderTimeout: ReadHeaderTimeout,
	}
}

// @title						Friday REST API
// @version					0.x
// @BasePath					/api/v1
// @schemes					http https
// @securityDefinitions.apikey	Bearer
// @in							header
// @name						Authorization
// @description				Type "Bearer" followed by a space and JWT token.
func setupRouter(appState *models.AppState) *chi.Mux {
	router := chi.NewRouter()
	router.Use(httpLogger.Logger("router", log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(SendVersion)
	router.Use(middleware.Heartbeat("/healthz"))

	if appState.Config.Auth.Required {
		log.Info("JWT authentication required")
		router.Use(auth.JWTVerifier(appState.Config))
		router.Use(jwtauth.Authenticator)
	}

	router.Route("/api/v1", func(r chi.Router) {
		// Conversation-related routes
		r.Route("/chat", func(r chi.Router) {
			r.Post("/", CreateConversationHandler(appState))
			r.Get("/", ListConversationsHandler(appState))
			r.Route("/{conversationId}", func(r chi.Router) {
				r.Get("/", GetConversationHandler(appState))
				r.Post("/message", PostMessageHandler(appState))
				r.Post("/approve", ApproveActionHandler(appState))
			})
		})
		// Inbox routes back the operational dashboard
		r.Route("/inbox", func(r chi.Router) {
			r.Route("/leads", func(r chi.Router) {
				r.Get("/", GetLeadsHandler(appState))
				r.Post("/", CreateLeadHandler(appState))
				r.Patch("/{leadId}/status", UpdateLeadStatusHandler(appState))
				r.Post("/{leadId}/score", ScoreLeadHandler(appState))
			})
			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", GetTasksHandler(appState))
				r.Post("/", CreateTaskHandler(appState))
				r.Patch("/{taskId}/status", UpdateTaskStatusHandler(appState))
			})
			r.Get("/calendar", GetCalendarHandler(appState))
			r.Get("/email", SearchEmailHandler(appState))
			r.Get("/invoices", GetInvoicesHandler(appState))
			r.Get("/customers", GetCustomersHandler(appState))
			r.Get("/products", GetProductsHandler(appState))
		})
	})

	return router
}
