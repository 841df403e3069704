package engine

import "context"

// Engine is the interface that all fetch engines must implement.
type Engine interface {
	// Name returns the engine identifier (e.g. "http").
	Name() string

	// Fetch retrieves the raw page content for the given request.
	Fetch(ctx context.Context, req *FetchRequest) (*FetchResult, error)
}

// FetchRequest contains everything an engine needs to fetch a page.
type FetchRequest struct {
	URL string
}

// FetchResult is the output of a successful engine fetch.
type FetchResult struct {
	Body       []byte
	StatusCode int
	FinalURL   string
	EngineName string

	// Truncated is set when the body was cut at the configured size cap.
	Truncated bool
}

// Text returns the body as a string.
func (r *FetchResult) Text() string {
	return string(r.Body)
}
