package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
)

const (
	// HTTP status code threshold for considering a request successful
	successStatusCodeThreshold = http.StatusBadRequest
)

// SentryMetrics handles custom metrics for Sentry
type SentryMetrics struct {
	enabled bool
}

// NewSentryMetrics creates a new Sentry metrics client
func NewSentryMetrics() *SentryMetrics {
	return &SentryMetrics{
		enabled: true, // Always enabled if Sentry is configured
	}
}

// RecordAPIRequest records API request metrics
func (m *SentryMetrics) RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration) {
	if !m.enabled {
		return
	}

	// Create a span for API request tracking using the request context
	span := sentry.StartSpan(ctx, "api.request")
	defer span.Finish()

	span.SetTag("endpoint", endpoint)
	span.SetTag("status_code", fmt.Sprintf("%d", statusCode))
	span.SetTag("success", fmt.Sprintf("%t", statusCode < successStatusCodeThreshold))

	span.SetData("duration_ms", duration.Milliseconds())
	span.SetData("endpoint", endpoint)
	span.SetData("status_code", statusCode)

	if statusCode < successStatusCodeThreshold {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInternalError
	}

	span.Description = fmt.Sprintf("API Request: %s", endpoint)
}

// RecordEngineCall records a music-engine invocation
func (m *SentryMetrics) RecordEngineCall(ctx context.Context, engine string, duration time.Duration, failed bool) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "engine.call")
	defer span.Finish()

	span.SetTag("engine", engine)
	span.SetTag("failed", fmt.Sprintf("%t", failed))

	span.SetData("duration_ms", duration.Milliseconds())
	span.SetData("engine", engine)

	if failed {
		span.Status = sentry.SpanStatusInternalError
	} else {
		span.Status = sentry.SpanStatusOK
	}

	span.Description = fmt.Sprintf("Engine Call: %s", engine)
}

// RecordClassification records intent classification outcomes
func (m *SentryMetrics) RecordClassification(ctx context.Context, intent string, confidence float64, contextBoosted bool) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "intent.classify")
	defer span.Finish()

	span.SetTag("intent", intent)
	span.SetTag("context_boosted", fmt.Sprintf("%t", contextBoosted))

	span.SetData("confidence", confidence)

	span.Status = sentry.SpanStatusOK
	span.Description = fmt.Sprintf("Intent: %s", intent)
}

// RecordCustomMetric sends a custom metric with arbitrary data
func (m *SentryMetrics) RecordCustomMetric(metricName string, data map[string]interface{}) {
	if !m.enabled {
		return
	}

	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("metric_type", "custom")
		scope.SetTag("metric_name", metricName)

		scope.SetContext("custom_metric", data)

		sentry.CaptureMessage("Custom Metric: " + metricName)
	})
}
