package middleware

import (
	"net/http"
	"runtime/debug"

	"health-first-server/pkg/response"

	"github.com/sirupsen/logrus"
)

type RecoveryMiddleware struct {
	log *logrus.Logger
}

func NewRecoveryMiddleware(log *logrus.Logger) *RecoveryMiddleware {
	return &RecoveryMiddleware{log: log}
}

func (m *RecoveryMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				m.log.WithFields(logrus.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
					"stack":  string(debug.Stack()),
				}).Errorf("Recovered from panic: %v", rec)
				response.InternalServerError(w, "")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
