package main

import (
	"context"
	"log"
	"time"

	"github.com/chordelia/chordelia-api/internal/api"
	"github.com/chordelia/chordelia-api/internal/config"
	"github.com/chordelia/chordelia-api/internal/conversation"
	"github.com/chordelia/chordelia-api/internal/engines"
	"github.com/chordelia/chordelia-api/internal/metrics"
	"github.com/chordelia/chordelia-api/internal/orchestrator"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const (
	sentryFlushTimeout    = 2 * time.Second
	environmentProduction = "production"
	sessionSweepInterval  = 10 * time.Minute
)

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

// GetVersion returns the current release version
func GetVersion() string {
	return releaseVersion
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize Sentry
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			Release:          "chordelia-api@" + releaseVersion,
			EnableTracing:    true,
			TracesSampleRate: 1.0,
			EnableLogs:       true,
			Debug:            cfg.Environment != environmentProduction,
			BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
				// Filter out sensitive data
				if event.Request != nil {
					event.Request.Headers = filterSensitiveHeaders(event.Request.Headers)
				}
				return event
			},
		}); err != nil {
			log.Printf("Failed to initialize Sentry: %v", err)
		} else {
			log.Printf("✅ Sentry initialized (environment: %s, release: %s)", cfg.Environment, releaseVersion)
			// Flush on shutdown
			defer sentry.Flush(sentryFlushTimeout)
		}
	} else {
		log.Println("⚠️  Sentry not configured (SENTRY_DSN not set)")
	}

	// Metric sinks
	sentryMetrics := metrics.NewSentryMetrics()
	cloudwatchClient, err := metrics.NewClient(context.Background(), cfg.Environment, cfg.CloudWatchMetrics)
	if err != nil {
		log.Printf("⚠️  CloudWatch metrics unavailable: %v", err)
	}

	// Conversation stores
	chatlog, err := conversation.NewChatLog(cfg.ChatLogPath)
	if err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to open chatlog:", err)
	}
	memory := conversation.NewMemory(cfg.SessionTTL)
	resolver := conversation.NewResolver(chatlog, memory, cfg.SessionTTL)

	var history *conversation.History
	if cfg.HistoryDBPath != "" {
		history, err = conversation.OpenHistory(cfg.HistoryDBPath)
		if err != nil {
			sentry.CaptureException(err)
			log.Printf("⚠️  Transcript history disabled: %v", err)
			history = nil
		} else {
			defer history.Close()
		}
	}

	// Engines and orchestrator
	adapters := engines.NewAdapters(sentryMetrics, cloudwatchClient)
	orch := orchestrator.New(adapters, resolver, history, sentryMetrics)

	// Periodic ephemeral-store sweep
	go func() {
		ticker := time.NewTicker(sessionSweepInterval)
		defer ticker.Stop()
		for range ticker.C {
			evicted, remaining := memory.Cleanup()
			if cloudwatchClient != nil {
				cloudwatchClient.RecordSessionSweep(evicted, remaining)
			}
			if evicted > 0 {
				log.Printf("📊 session sweep: evicted %d, %d active", evicted, remaining)
			}
		}
	}()

	// Set Gin mode
	if cfg.Environment == environmentProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	router := api.SetupRouter(orch, adapters, cloudwatchClient, GetVersion())

	// Start server
	log.Printf("🚀 Starting server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to start server:", err)
	}
}

func filterSensitiveHeaders(headers map[string]string) map[string]string {
	filtered := make(map[string]string)
	sensitiveKeys := map[string]bool{
		"authorization": true,
		"cookie":        true,
		"x-api-key":     true,
	}

	for k, v := range headers {
		if sensitiveKeys[k] {
			filtered[k] = "[REDACTED]"
		} else {
			filtered[k] = v
		}
	}
	return filtered
}
