package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/jewel_backoffice_app/internal/apperrors"
	"github.com/SscSPs/jewel_backoffice_app/internal/middleware"
	"github.com/google/uuid"
)

// BaseService provides common functionality for all services
type BaseService struct{}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a recoverable problem
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// validateID rejects ids that are not UUIDs before they reach storage.
func validateID(field, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.NewValidationError(field, "must be a valid UUID")
	}
	return nil
}

// serviceOptions holds the collaborators every service can have replaced in tests.
type serviceOptions struct {
	now          func() time.Time
	newID        func() string
	loc          *time.Location
	fetchTimeout time.Duration
}

// Option configures the clock, id generator or business timezone of a service.
type Option func(*serviceOptions)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *serviceOptions) { o.now = now }
}

// WithIDGenerator overrides uuid generation.
func WithIDGenerator(newID func() string) Option {
	return func(o *serviceOptions) { o.newID = newID }
}

// WithLocation sets the business timezone used for invoice months and report days.
func WithLocation(loc *time.Location) Option {
	return func(o *serviceOptions) {
		if loc != nil {
			o.loc = loc
		}
	}
}

// WithFetchTimeout bounds outbound market rate fetches.
func WithFetchTimeout(d time.Duration) Option {
	return func(o *serviceOptions) {
		if d > 0 {
			o.fetchTimeout = d
		}
	}
}

func newServiceOptions(opts []Option) serviceOptions {
	o := serviceOptions{now: time.Now, newID: uuid.NewString, loc: time.Local, fetchTimeout: DefaultMarketRatesFetchTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
