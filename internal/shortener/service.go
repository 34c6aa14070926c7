package shortener

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

// maxGenerateAttempts bounds collision retries for generated codes.
// At the default code space size collisions are effectively unreachable,
// but generation must never loop forever.
const maxGenerateAttempts = 5

// ErrInvalidURL is returned when the original URL is not an absolute http(s) URI.
var ErrInvalidURL = errors.New("original url must be an absolute http or https url")

// ErrInvalidCode is returned when a custom short code fails validation.
var ErrInvalidCode = errors.New("custom short code must be 4-12 characters of A-Za-z0-9_-")

// Service creates URL records, owning short-code assignment.
type Service struct {
	repo         Repository
	generateCode CodeGenerator
	logger       *zap.Logger
}

// NewService creates a new shortener service.
func NewService(repo Repository, generator CodeGenerator, logger *zap.Logger) *Service {
	return &Service{
		repo:         repo,
		generateCode: generator,
		logger:       logger,
	}
}

// Create validates the input and inserts a new URL record. A caller-supplied
// code is used as-is and fails with ErrDuplicateCode on collision; otherwise
// a code is generated, retrying generation on the rare collision.
func (s *Service) Create(ctx context.Context, params CreateParams) (*URL, error) {
	if err := validateTarget(params.OriginalURL); err != nil {
		return nil, err
	}

	if params.OneTimeUse && params.MaxClicks == nil {
		one := int64(1)
		params.MaxClicks = &one
	}

	if params.ShortCode != "" {
		if !ValidCustomCode(params.ShortCode) {
			return nil, ErrInvalidCode
		}

		record, err := s.repo.Create(ctx, params)
		if err != nil {
			if errors.Is(err, ErrDuplicateCode) {
				s.logger.Warn("custom short code already taken",
					zap.String("code", params.ShortCode),
				)
			}

			return nil, err
		}

		return record, nil
	}

	return s.createWithGeneratedCode(ctx, params)
}

func (s *Service) createWithGeneratedCode(ctx context.Context, params CreateParams) (*URL, error) {
	var record *URL

	backoff := retry.WithMaxRetries(maxGenerateAttempts-1, retry.NewConstant(time.Millisecond))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		params.ShortCode = s.generateCode()

		created, err := s.repo.Create(ctx, params)
		if err != nil {
			if errors.Is(err, ErrDuplicateCode) {
				s.logger.Warn("generated short code collided, retrying",
					zap.String("code", params.ShortCode),
				)

				return retry.RetryableError(err)
			}

			return err
		}

		record = created

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateCode) {
			return nil, fmt.Errorf("exhausted %d code generation attempts: %w", maxGenerateAttempts, err)
		}

		return nil, err
	}

	return record, nil
}

func validateTarget(rawURL string) error {
	u, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return ErrInvalidURL
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidURL
	}

	return nil
}
