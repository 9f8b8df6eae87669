package api

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"prodgen/pipeline"

	"github.com/rs/cors"
	"go.uber.org/zap"
)

const RequestIDHeader = "X-Request-ID"

// withCORS allows every method and header from the configured origins. A "*"
// entry echoes the caller's origin so credentials keep working.
func withCORS(origins []string, next http.Handler) http.Handler {
	allowAll := slices.Contains(origins, "*")

	return cors.New(cors.Options{
		AllowOriginFunc: func(origin string) bool {
			return allowAll || slices.Contains(origins, origin)
		},
		AllowedMethods: []string{
			http.MethodDelete, http.MethodGet, http.MethodHead, http.MethodOptions,
			http.MethodPatch, http.MethodPost, http.MethodPut,
		},
		AllowedHeaders:       []string{"*"},
		AllowCredentials:     true,
		MaxAge:               600,
		OptionsSuccessStatus: http.StatusOK,
	}).Handler(next)
}

// withRequestID tags the request context with the caller's X-Request-ID or a
// fresh one, and echoes it back.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := pipeline.WithRequestID(r.Context(), strings.TrimSpace(r.Header.Get(RequestIDHeader)))
		w.Header().Set(RequestIDHeader, pipeline.RequestID(ctx))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(b)
	s.bytes += n
	return n, err
}

func withAccessLog(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}

		next.ServeHTTP(rec, r)

		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		pipeline.GetContextLogger(r.Context(), logger).Info("request served",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Int("bytes", rec.bytes),
			zap.Duration("took", time.Since(start)))
	})
}
