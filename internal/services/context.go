package services

import "context"

type contextKey string

const (
	runIDKey contextKey = "run_id"
	urlKey   contextKey = "url"
)

// WithRunID annotates context with the download run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithURL annotates context with the queue URL being processed.
func WithURL(ctx context.Context, url string) context.Context {
	if url == "" {
		return ctx
	}
	return context.WithValue(ctx, urlKey, url)
}

// URLFromContext returns the queue URL if present.
func URLFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(urlKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
