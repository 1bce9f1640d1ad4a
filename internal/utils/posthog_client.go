// Package utils holds small process-wide helpers shared by the HTTP layer.
package utils

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

// DefaultPosthogEndpoint is the EU ingestion host.
const DefaultPosthogEndpoint = "https://eu.i.posthog.com"

// PosthogClientWrapper makes a missing API key a no-op instead of a nil check at every call site.
type PosthogClientWrapper struct {
	posthogClient posthog.Client
	logger        *slog.Logger
}

// InitializePosthogClient returns an uninitialized wrapper when apiKey is empty or the client cannot be built.
func InitializePosthogClient(apiKey string, logger *slog.Logger) *PosthogClientWrapper {
	if apiKey == "" {
		logger.Warn("Posthog API key is empty, not initializing posthog client.")
		return &PosthogClientWrapper{}
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: DefaultPosthogEndpoint})
	if err != nil {
		logger.Error("Failed to initialize posthog client", slog.String("error", err.Error()))
		return &PosthogClientWrapper{}
	}
	logger.Info("Posthog client initialized", slog.String("endpoint", DefaultPosthogEndpoint))
	return &PosthogClientWrapper{posthogClient: client, logger: logger}
}

func (w *PosthogClientWrapper) IsInitialized() bool {
	return w != nil && w.posthogClient != nil
}

func (w *PosthogClientWrapper) Enqueue(distinctID string, event string, properties map[string]any) {
	if !w.IsInitialized() {
		return
	}
	if w.logger != nil {
		w.logger.Debug("Enqueueing event", slog.String("distinct_id", distinctID), slog.String("event", event))
	}
	if err := w.posthogClient.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	}); err != nil && w.logger != nil {
		w.logger.Warn("Failed to enqueue posthog event", slog.String("event", event), slog.String("error", err.Error()))
	}
}

func (w *PosthogClientWrapper) Close() {
	if !w.IsInitialized() {
		return
	}
	w.posthogClient.Close()
}
