// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const keyAPIClient ctxKey = "api_client"

// WithRequest annotates context with the request id
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	return ctx
}

// WithAPIClient annotates context with the authenticated client name
func WithAPIClient(ctx context.Context, name string) context.Context {
	if name != "" {
		ctx = context.WithValue(ctx, keyAPIClient, name)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}

// APIClient returns the authenticated client name if present
func APIClient(ctx context.Context) string {
	if v, ok := ctx.Value(keyAPIClient).(string); ok {
		return v
	}
	return ""
}
