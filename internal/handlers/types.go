package handlers

import "time"

// URLPayload is the wire representation of a URL record.
type URLPayload struct {
	ID          int64      `doc:"Record identifier"                 json:"id"`
	ShortCode   string     `doc:"The short code"                    example:"abc123" json:"shortCode"`
	ShortURL    string     `doc:"The full short URL"                json:"shortUrl"`
	OriginalURL string     `doc:"The original URL"                  json:"originalUrl"`
	ClickCount  int64      `doc:"Redirects served so far"           json:"clickCount"`
	CreatedAt   time.Time  `doc:"Creation time"                     json:"createdAt"`
	ExpiresAt   *time.Time `doc:"Expiration time, if any"           json:"expiresAt,omitempty"`
	MaxClicks   *int64     `doc:"Click ceiling, if any"             json:"maxClicks,omitempty"`
	OneTimeUse  bool       `doc:"Whether the first redirect is the last" json:"oneTimeUse"`
}

// CreateURLRequest is the request for creating a short URL.
type CreateURLRequest struct {
	Body struct {
		URL             string     `doc:"The URL to shorten" example:"https://example.com/very/long/path" format:"uri" json:"url"`
		CustomShortCode string     `doc:"Optional caller-chosen short code" json:"customShortCode,omitempty" maxLength:"12" minLength:"4" pattern:"^[A-Za-z0-9_-]+$" required:"false"`
		ExpiresAt       *time.Time `doc:"Optional expiration time"          json:"expiresAt,omitempty" required:"false"`
		MaxClicks       *int64     `doc:"Optional click ceiling"            json:"maxClicks,omitempty" minimum:"1" required:"false"`
		OneTimeUse      bool       `doc:"Expire after the first redirect"   json:"oneTimeUse,omitempty" required:"false"`
	}
}

// CreateURLResponse is the response for a successfully created short URL.
type CreateURLResponse struct {
	Headers struct {
		Location string `doc:"The short URL location" header:"Location"`
	}
	Body URLPayload
}

// GetURLRequest addresses one owned URL record.
type GetURLRequest struct {
	ID int64 `doc:"Record identifier" path:"id"`
}

// GetURLResponse returns one owned URL record.
type GetURLResponse struct {
	Body URLPayload
}

// ListURLsResponse returns all records owned by the caller.
type ListURLsResponse struct {
	Body struct {
		URLs []URLPayload `json:"urls"`
	}
}

// UpdateURLRequest is the request for a partial update of an owned record.
type UpdateURLRequest struct {
	ID   int64 `doc:"Record identifier" path:"id"`
	Body struct {
		URL        *string    `doc:"New target URL"                  format:"uri" json:"url,omitempty" required:"false"`
		ExpiresAt  *time.Time `doc:"New expiration time"             json:"expiresAt,omitempty" required:"false"`
		MaxClicks  *int64     `doc:"New click ceiling"               json:"maxClicks,omitempty" minimum:"1" required:"false"`
		OneTimeUse *bool      `doc:"Expire after the first redirect" json:"oneTimeUse,omitempty" required:"false"`
	}
}

// UpdateURLResponse returns the updated record.
type UpdateURLResponse struct {
	Body URLPayload
}

// DeleteURLRequest addresses one owned URL record for deletion.
type DeleteURLRequest struct {
	ID int64 `doc:"Record identifier" path:"id"`
}

// ClickPayload is the wire representation of one click ledger entry.
type ClickPayload struct {
	ClickedAt time.Time `json:"clickedAt"`
	Referrer  string    `json:"referrer,omitempty"`
	UserAgent string    `json:"userAgent,omitempty"`
	ClientIP  string    `json:"clientIp,omitempty"`
}

// AnalyticsResponse returns the click count and ledger for an owned record.
type AnalyticsResponse struct {
	Body struct {
		URL         URLPayload     `json:"url"`
		TotalClicks int64          `json:"totalClicks"`
		Clicks      []ClickPayload `json:"clicks"`
	}
}

// QRCodeResponse returns a base64-encoded PNG for an owned short URL.
type QRCodeResponse struct {
	Body struct {
		ShortURL string `json:"shortUrl"`
		QRCode   string `doc:"Base64-encoded PNG" json:"qrCode"`
	}
}

// RedirectRequest is the request for redirecting a short code.
type RedirectRequest struct {
	Code string `doc:"The short code" example:"abc123" maxLength:"12" path:"code"`
}

// RedirectResponse carries the redirect status and target location.
type RedirectResponse struct {
	Status  int
	Headers struct {
		Location string `doc:"The redirect target" header:"Location"`
	}
}

// RegisterRequest is the request for creating an account.
type RegisterRequest struct {
	Body struct {
		Email    string `doc:"Account email"    format:"email" json:"email"`
		Password string `doc:"Account password" json:"password" minLength:"8"`
	}
}

// LoginRequest is the request for logging in.
type LoginRequest struct {
	Body struct {
		Email    string `format:"email" json:"email"`
		Password string `json:"password"`
	}
}

// AuthResponse returns the account and a bearer token.
type AuthResponse struct {
	Body struct {
		UserID    int64     `json:"userId"`
		Email     string    `json:"email"`
		CreatedAt time.Time `json:"createdAt"`
		Token     string    `doc:"Bearer token for subsequent requests" json:"token"`
	}
}
