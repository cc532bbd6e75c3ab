package services

import "context"

type contextKey string

const (
	runIDKey   contextKey = "run_id"
	modeKey    contextKey = "mode"
	assetIDKey contextKey = "asset_id"
)

// WithRunID annotates context with the run correlation identifier.
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

// WithMode annotates context with the sync mode (pull, push, publish).
func WithMode(ctx context.Context, mode string) context.Context {
	if mode == "" {
		return ctx
	}
	return context.WithValue(ctx, modeKey, mode)
}

// ModeFromContext returns the mode if present.
func ModeFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(modeKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithAssetID annotates context with the asset currently being processed.
func WithAssetID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, assetIDKey, id)
}

// AssetIDFromContext returns the asset id if present.
func AssetIDFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(assetIDKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}
