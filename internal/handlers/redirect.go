package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shrinklab/shrink/internal/redirect"
)

// RedirectHandler serves short-code redirects through the redirect engine.
type RedirectHandler struct {
	engine *redirect.Engine
}

// NewRedirectHandler creates a redirect handler.
func NewRedirectHandler(engine *redirect.Engine) *RedirectHandler {
	return &RedirectHandler{engine: engine}
}

// Redirect resolves a short code and issues a temporary redirect. Missing,
// expired, and exhausted codes all present as 404.
func (h *RedirectHandler) Redirect(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	meta := RequestMetaFromContext(ctx)

	outcome := h.engine.Redirect(ctx, req.Code, redirect.ClickMeta{
		Referrer:  meta.Referrer,
		UserAgent: meta.UserAgent,
		ClientIP:  meta.ClientIP,
	})

	switch {
	case outcome.Reason == redirect.ReasonRedirect:
		resp := &RedirectResponse{Status: http.StatusTemporaryRedirect}
		resp.Headers.Location = outcome.TargetURL

		return resp, nil
	case outcome.Gone():
		return nil, huma.Error404NotFound("short url not found")
	default:
		return nil, huma.Error500InternalServerError("failed to resolve short url")
	}
}
