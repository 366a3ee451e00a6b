package api

import (
	"context"
	"net/http"

	"proxy-rotator/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

func GenerateRequestID(ctx context.Context) (context.Context, string) {
	id := uuid.New().String()
	return context.WithValue(ctx, logger.RequestID, id), id
}

// withRequestID tags every request with an id and a logger so the rotator's
// log lines can be correlated with the HTTP call that caused them.
func withRequestID(log *logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, id := GenerateRequestID(r.Context())
		ctx = logger.SetLoggerInCtx(ctx, log)
		w.Header().Set(requestIDHeader, id)

		log.Debug(ctx, "request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
