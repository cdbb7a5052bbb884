// Package logging configures logrus for the services and carries a
// request-scoped logger through HTTP handlers.
package logging

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type ctxKeyLog struct{}
type ctxKeyRequestID struct{}

// New returns a JSON logger tagged with the service name. LOG_LEVEL selects
// the level and defaults to info.
func New(service string) *logrus.Logger {
	logger := logrus.New()
	logger.Out = os.Stdout
	logger.Formatter = &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "severity",
			logrus.FieldKeyMsg:   "message",
		},
		TimestampFormat: time.RFC3339Nano,
	}
	logger.Level = ParseLevel(os.Getenv("LOG_LEVEL"))
	logger.AddHook(serviceHook{service: service})
	return logger
}

func ParseLevel(raw string) logrus.Level {
	level, err := logrus.ParseLevel(raw)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

type serviceHook struct {
	service string
}

func (h serviceHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h serviceHook) Fire(entry *logrus.Entry) error {
	if _, ok := entry.Data["service"]; !ok {
		entry.Data["service"] = h.service
	}
	return nil
}

// FromContext returns the request logger stored by Middleware, or a logger
// writing to the standard logrus output.
func FromContext(ctx context.Context) logrus.FieldLogger {
	if ctx != nil {
		if log, ok := ctx.Value(ctxKeyLog{}).(logrus.FieldLogger); ok {
			return log
		}
	}
	return logrus.StandardLogger()
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyRequestID{}).(string)
	return id
}

func WithLogger(ctx context.Context, log logrus.FieldLogger) context.Context {
	return context.WithValue(ctx, ctxKeyLog{}, log)
}

type responseRecorder struct {
	b      int
	status int
	w      http.ResponseWriter
}

func (r *responseRecorder) Header() http.Header { return r.w.Header() }

func (r *responseRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.w.Write(p)
	r.b += n
	return n, err
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.status = statusCode
	r.w.WriteHeader(statusCode)
}

// Middleware attaches a logger carrying a fresh request id, path and method to
// every request and logs its completion.
func Middleware(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := uuid.NewString()
			ctx := context.WithValue(r.Context(), ctxKeyRequestID{}, requestID)

			rr := &responseRecorder{w: w}
			reqLog := log.WithFields(logrus.Fields{
				"http.req.path":   r.URL.Path,
				"http.req.method": r.Method,
				"http.req.id":     requestID,
			})
			ctx = WithLogger(ctx, reqLog)

			defer func() {
				reqLog.WithFields(logrus.Fields{
					"http.resp.took_ms": int64(time.Since(start) / time.Millisecond),
					"http.resp.status":  rr.status,
					"http.resp.bytes":   rr.b,
				}).Debug("request complete")
			}()

			w.Header().Set("X-Request-ID", requestID)
			next.ServeHTTP(rr, r.WithContext(ctx))
		})
	}
}
