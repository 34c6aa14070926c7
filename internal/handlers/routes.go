package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shrinklab/shrink/internal/auth"
)

func authRequired() map[string]any {
	return map[string]any{auth.MetadataKey: true}
}

// RegisterRoutes registers every operation of the service.
func RegisterRoutes(
	api huma.API,
	authHandler *AuthHandler,
	urlHandler *URLHandler,
	redirectHandler *RedirectHandler,
	healthHandler *HealthHandler,
) {
	huma.Register(api, huma.Operation{
		OperationID:   "register",
		Method:        http.MethodPost,
		Path:          "/auth/register",
		Summary:       "Register an account",
		Tags:          []string{"Auth"},
		DefaultStatus: http.StatusCreated,
	}, authHandler.Register)

	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/auth/login",
		Summary:     "Log in",
		Tags:        []string{"Auth"},
	}, authHandler.Login)

	huma.Register(api, huma.Operation{
		OperationID:   "create-url",
		Method:        http.MethodPost,
		Path:          "/url",
		Summary:       "Create short URL",
		Description:   "Creates a shortened URL with optional custom code, expiration, click ceiling, and one-time use.",
		Tags:          []string{"URLs"},
		DefaultStatus: http.StatusCreated,
		Metadata:      authRequired(),
	}, urlHandler.CreateURL)

	huma.Register(api, huma.Operation{
		OperationID: "list-urls",
		Method:      http.MethodGet,
		Path:        "/url",
		Summary:     "List own short URLs",
		Tags:        []string{"URLs"},
		Metadata:    authRequired(),
	}, urlHandler.ListURLs)

	huma.Register(api, huma.Operation{
		OperationID: "get-url",
		Method:      http.MethodGet,
		Path:        "/url/{id}",
		Summary:     "Get a short URL",
		Tags:        []string{"URLs"},
		Metadata:    authRequired(),
	}, urlHandler.GetURL)

	huma.Register(api, huma.Operation{
		OperationID: "update-url",
		Method:      http.MethodPut,
		Path:        "/url/{id}",
		Summary:     "Update a short URL",
		Tags:        []string{"URLs"},
		Metadata:    authRequired(),
	}, urlHandler.UpdateURL)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-url",
		Method:        http.MethodDelete,
		Path:          "/url/{id}",
		Summary:       "Delete a short URL",
		Tags:          []string{"URLs"},
		DefaultStatus: http.StatusNoContent,
		Metadata:      authRequired(),
	}, urlHandler.DeleteURL)

	huma.Register(api, huma.Operation{
		OperationID: "url-analytics",
		Method:      http.MethodGet,
		Path:        "/url/{id}/analytics",
		Summary:     "Get click analytics for a short URL",
		Tags:        []string{"URLs"},
		Metadata:    authRequired(),
	}, urlHandler.Analytics)

	huma.Register(api, huma.Operation{
		OperationID: "url-qr",
		Method:      http.MethodGet,
		Path:        "/url/{id}/qr",
		Summary:     "Get a QR code for a short URL",
		Tags:        []string{"URLs"},
		Metadata:    authRequired(),
	}, urlHandler.QRCode)

	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Tags:        []string{"Health"},
	}, healthHandler.Check)

	huma.Register(api, huma.Operation{
		OperationID: "redirect",
		Method:      http.MethodGet,
		Path:        "/{code}",
		Summary:     "Redirect to the original URL",
		Description: "Redirects to the original URL for the short code and accounts for the click.",
		Tags:        []string{"Redirect"},
	}, redirectHandler.Redirect)
}
