package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-ID"

type requestIDKey struct{}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RequestID берёт X-Request-ID из запроса или генерирует новый и возвращает его в ответе
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		w.Header().Set(HeaderRequestID, id)
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID возвращает ID запроса из контекста
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Logging пишет строку лога на каждый запрос и перехватывает панику
func Logging(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			defer func() {
				if p := recover(); p != nil {
					log.Error("%s %s - panic: %v, request_id=%s", r.Method, r.URL.Path, p, GetRequestID(r.Context()))
					if !rec.wroteHeader {
						rec.WriteHeader(http.StatusInternalServerError)
					}
					return
				}
				log.Info("%s %s - %d in %s, request_id=%s",
					r.Method, r.URL.Path, rec.status, time.Since(start), GetRequestID(r.Context()))
			}()

			next.ServeHTTP(rec, r)
		})
	}
}
