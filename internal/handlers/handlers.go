package handlers

import (
	"net/http"

	"GroceryWise/internal/auth"
	"GroceryWise/internal/config"
	"GroceryWise/internal/middleware"
	"GroceryWise/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	groceryService *service.GroceryService,
	tokens *auth.TokenService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.WithTracing(otel.GetTracerProvider()))
	r.Use(middleware.WithCORS(config.CORSOrigins))
	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	authn := middleware.NewAuthenticator(tokens, userService)

	// Handlers
	authHandler := NewAuthHandler(userService, tokens, logger)
	userHandler := NewUserHandler(userService, logger)
	groceryHandler := NewGroceryHandler(groceryService, logger)

	project := config.ProjectName
	if project == "" {
		project = "GroceryWise API"
	}
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, Message{Message: "Welcome to " + project})
	})

	api := func(r chi.Router) {
		// Auth routes
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/register", authHandler.Register)

		r.Group(func(r chi.Router) {
			r.Use(authn.Require)

			r.Get("/auth/test-token", authHandler.TestToken)

			// User routes
			r.Get("/users/me", userHandler.Me)
			r.Put("/users/me", userHandler.UpdateMe)
			r.Delete("/users/me", userHandler.DeleteMe)
			r.Put("/users/me/password", userHandler.ChangePassword)

			// Grocery routes
			r.Route("/groceries", func(r chi.Router) {
				r.Post("/", groceryHandler.Create)
				r.Get("/", groceryHandler.List)
				r.Get("/{id}", groceryHandler.Get)
				r.Put("/{id}", groceryHandler.Update)
				r.Delete("/{id}", groceryHandler.Delete)
			})
		})
	}
	if config.APIPrefix == "" {
		r.Group(api)
	} else {
		r.Route(config.APIPrefix, api)
	}

	return &Handler{Router: r}
}
