package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/raushankrgupta/nyakazi-storefront/config"
	"go.uber.org/zap"
)

// RespondJSON sends a JSON response with the given status code and payload.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// Headers are already sent, so all we can do is log
		Logger.Error("Error encoding JSON response", zap.Error(err))
	}
}

// RespondError sends a JSON error response and logs the error to the provided logger.
// If logger is nil, the message goes straight to the process logger.
func RespondError(w http.ResponseWriter, logger *strings.Builder, message string, status int) {
	if logger != nil {
		AddToLogMessage(logger, message)
	} else {
		Logger.Warn(message, zap.Int("status", status))
	}
	RespondJSON(w, status, map[string]string{"error": message})
}

// ResolveImageURL turns a catalog image reference into a URL the browser can load.
// Absolute URLs are kept as is. With a bucket configured the reference is
// presigned as an S3 key; S3 failures fall back to the base-URL form.
func ResolveImageURL(ctx context.Context, image string) string {
	if image == "" || strings.HasPrefix(image, "http") {
		return image
	}
	if config.AWSBucketName != "" {
		url, err := GetPresignedURL(ctx, strings.TrimPrefix(image, "/"))
		if err == nil {
			return url
		}
		Logger.Warn("presign failed", zap.String("image", image), zap.Error(err))
	}
	if config.ImageBaseURL != "" {
		return strings.TrimSuffix(config.ImageBaseURL, "/") + "/" + strings.TrimPrefix(image, "/")
	}
	return image
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// LatencyMiddleware logs and records the duration of each request
func LatencyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		duration := time.Since(start)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		RequestDuration.WithLabelValues(r.Method, route).Observe(duration.Seconds())
		Logger.Debug("[LATENCY]",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", duration),
		)
	})
}

// CORSMiddleware allows the storefront API to be called from other origins
func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS, PUT, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
