package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shrinklab/shrink/internal/clicks"
	"github.com/shrinklab/shrink/internal/shortener"
	"go.uber.org/zap"
)

// URLHandler handles owner-scoped URL record operations.
type URLHandler struct {
	service    *shortener.Service
	repo       shortener.Repository
	clickStore clicks.Store
	baseURL    string
	logger     *zap.Logger
}

// NewURLHandler creates a URL handler.
func NewURLHandler(
	service *shortener.Service,
	repo shortener.Repository,
	clickStore clicks.Store,
	baseURL string,
	logger *zap.Logger,
) *URLHandler {
	return &URLHandler{
		service:    service,
		repo:       repo,
		clickStore: clickStore,
		baseURL:    baseURL,
		logger:     logger,
	}
}

// CreateURL creates a short URL owned by the authenticated caller.
func (h *URLHandler) CreateURL(ctx context.Context, req *CreateURLRequest) (*CreateURLResponse, error) {
	ownerID, ok := UserIDFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("authentication required")
	}

	record, err := h.service.Create(ctx, shortener.CreateParams{
		OriginalURL: req.Body.URL,
		ShortCode:   req.Body.CustomShortCode,
		OwnerID:     &ownerID,
		ExpiresAt:   req.Body.ExpiresAt,
		MaxClicks:   req.Body.MaxClicks,
		OneTimeUse:  req.Body.OneTimeUse,
	})
	if err != nil {
		switch {
		case errors.Is(err, shortener.ErrDuplicateCode):
			return nil, huma.Error400BadRequest(
				fmt.Sprintf("custom short code %q is already in use", req.Body.CustomShortCode))
		case errors.Is(err, shortener.ErrInvalidCode), errors.Is(err, shortener.ErrInvalidURL):
			return nil, huma.Error400BadRequest(err.Error())
		default:
			h.logger.Error("url creation failed", zap.Error(err))

			return nil, huma.Error500InternalServerError("failed to create url")
		}
	}

	resp := &CreateURLResponse{Body: h.payload(record)}
	resp.Headers.Location = resp.Body.ShortURL

	return resp, nil
}

// GetURL returns one record owned by the caller.
func (h *URLHandler) GetURL(ctx context.Context, req *GetURLRequest) (*GetURLResponse, error) {
	record, err := h.ownedRecord(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	return &GetURLResponse{Body: h.payload(record)}, nil
}

// ListURLs returns all records owned by the caller.
func (h *URLHandler) ListURLs(ctx context.Context, _ *struct{}) (*ListURLsResponse, error) {
	ownerID, ok := UserIDFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("authentication required")
	}

	records, err := h.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		h.logger.Error("url listing failed", zap.Int64("owner_id", ownerID), zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to list urls")
	}

	resp := &ListURLsResponse{}
	resp.Body.URLs = make([]URLPayload, 0, len(records))

	for _, record := range records {
		resp.Body.URLs = append(resp.Body.URLs, h.payload(record))
	}

	return resp, nil
}

// UpdateURL applies a partial update to an owned record.
func (h *URLHandler) UpdateURL(ctx context.Context, req *UpdateURLRequest) (*UpdateURLResponse, error) {
	ownerID, ok := UserIDFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("authentication required")
	}

	record, err := h.repo.Update(ctx, req.ID, ownerID, shortener.UpdateParams{
		OriginalURL: req.Body.URL,
		ExpiresAt:   req.Body.ExpiresAt,
		MaxClicks:   req.Body.MaxClicks,
		OneTimeUse:  req.Body.OneTimeUse,
	})
	if err != nil {
		if errors.Is(err, shortener.ErrNotFound) {
			return nil, huma.Error404NotFound("url not found")
		}

		h.logger.Error("url update failed", zap.Int64("id", req.ID), zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to update url")
	}

	return &UpdateURLResponse{Body: h.payload(record)}, nil
}

// DeleteURL removes an owned record and its click ledger.
func (h *URLHandler) DeleteURL(ctx context.Context, req *DeleteURLRequest) (*struct{}, error) {
	ownerID, ok := UserIDFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("authentication required")
	}

	deleted, err := h.repo.Delete(ctx, req.ID, ownerID)
	if err != nil {
		h.logger.Error("url deletion failed", zap.Int64("id", req.ID), zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to delete url")
	}

	if !deleted {
		return nil, huma.Error404NotFound("url not found")
	}

	return nil, nil
}

// Analytics returns the click count and ledger entries for an owned record.
func (h *URLHandler) Analytics(ctx context.Context, req *GetURLRequest) (*AnalyticsResponse, error) {
	record, err := h.ownedRecord(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	entries, err := h.clickStore.ListByURL(ctx, record.ID)
	if err != nil {
		h.logger.Error("click ledger read failed", zap.Int64("url_id", record.ID), zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to load analytics")
	}

	resp := &AnalyticsResponse{}
	resp.Body.URL = h.payload(record)
	resp.Body.TotalClicks = record.ClickCount
	resp.Body.Clicks = make([]ClickPayload, 0, len(entries))

	for _, entry := range entries {
		resp.Body.Clicks = append(resp.Body.Clicks, ClickPayload{
			ClickedAt: entry.ClickedAt,
			Referrer:  entry.Referrer,
			UserAgent: entry.UserAgent,
			ClientIP:  entry.ClientIP,
		})
	}

	return resp, nil
}

func (h *URLHandler) ownedRecord(ctx context.Context, id int64) (*shortener.URL, error) {
	ownerID, ok := UserIDFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("authentication required")
	}

	record, err := h.repo.FindByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, shortener.ErrNotFound) {
			return nil, huma.Error404NotFound("url not found")
		}

		h.logger.Error("url lookup failed", zap.Int64("id", id), zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to load url")
	}

	return record, nil
}

func (h *URLHandler) payload(record *shortener.URL) URLPayload {
	return URLPayload{
		ID:          record.ID,
		ShortCode:   record.ShortCode,
		ShortURL:    fmt.Sprintf("%s/%s", h.baseURL, record.ShortCode),
		OriginalURL: record.OriginalURL,
		ClickCount:  record.ClickCount,
		CreatedAt:   record.CreatedAt,
		ExpiresAt:   record.ExpiresAt,
		MaxClicks:   record.MaxClicks,
		OneTimeUse:  record.OneTimeUse,
	}
}

// ShortURL builds the public short URL for a record. Used by the QR handler.
func (h *URLHandler) ShortURL(code string) string {
	return fmt.Sprintf("%s/%s", h.baseURL, code)
}
