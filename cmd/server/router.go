package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phrazzld/bgtasks/internal/api"
	apiMiddleware "github.com/phrazzld/bgtasks/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(apiMiddleware.NewRecoverer(app.logger))
	// Browser front-ends on any origin may call the service.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	postsHandler := api.NewPostsHandler(app.postStore, app.clock, app.config.Server.PostsDelay, app.logger)
	systemHandler := api.NewSystemHandler(app.clock, app.logger)

	r.NotFound(api.NotFound)
	r.MethodNotAllowed(api.MethodNotAllowed)

	r.Get("/", systemHandler.Root)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", systemHandler.Health)
		r.Get("/slow", systemHandler.Slow)

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", postsHandler.ListPosts)
			r.Post("/", postsHandler.CreatePost)
			r.Get("/{id}", postsHandler.GetPost)
		})
	})

	return r
}
