package routes

import (
	"Postfeed/internal/api/handlers/post"
	"Postfeed/internal/core/posts"

	"github.com/go-chi/chi/v5"
)

// RegisterPostRoutes registers the post list endpoint on the router
// Both /api/posts and /api/posts/ are served so clients need not care about the slash
func RegisterPostRoutes(r chi.Router, service posts.Service, publicBaseURL string) error {
	listHandler, err := post.NewListHandler(service, publicBaseURL)
	if err != nil {
		return err
	}

	r.Get("/api/posts", listHandler.HandleList)
	r.Get("/api/posts/", listHandler.HandleList)

	return nil
}
