package post

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"Postfeed/internal/core/posts"
)

// ListResponse is the paginated envelope for the post list
// Next and Previous are absolute URLs, null when there is no page in that direction
type ListResponse struct {
	Count    int               `json:"count"`
	Next     *string           `json:"next"`
	Previous *string           `json:"previous"`
	Results  []*posts.PostView `json:"results"`
}

// ListHandler handles the post list endpoint
type ListHandler struct {
	service posts.Service
	links   *linkBuilder
}

// NewListHandler creates a new post list handler
// publicBaseURL may be empty, in which case links use the request's scheme and host
func NewListHandler(service posts.Service, publicBaseURL string) (*ListHandler, error) {
	links, err := newLinkBuilder(publicBaseURL)
	if err != nil {
		return nil, err
	}
	return &ListHandler{
		service: service,
		links:   links,
	}, nil
}

// HandleList returns one page of posts with comment counts and previews
// GET /api/posts/?page=2&page_size=20
func (h *ListHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	// Parse query parameters
	req, err := h.parseRequest(r)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	page, err := h.service.ListPosts(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	response := ListResponse{
		Count:   page.Count,
		Results: page.Results,
	}
	if response.Results == nil {
		response.Results = []*posts.PostView{}
	}
	if page.HasNext() {
		next := h.links.pageURL(r, page.NextNumber())
		response.Next = &next
	}
	if page.HasPrevious() {
		previous := h.links.pageURL(r, page.PreviousNumber())
		response.Previous = &previous
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		// Headers already sent
		slog.WarnContext(r.Context(), "failed to encode post list response",
			slog.String("error", err.Error()))
	}
}

// parseRequest parses page and page_size from the query string
func (h *ListHandler) parseRequest(r *http.Request) (posts.PageRequest, error) {
	query := r.URL.Query()
	return posts.ParsePageRequest(query.Get("page"), query.Get("page_size"))
}
