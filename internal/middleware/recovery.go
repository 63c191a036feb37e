package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/jacksonn455/wallet-service/internal/handler"
	"github.com/jacksonn455/wallet-service/internal/logging"
)

func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log := logging.FromContext(r.Context())
				log.Error("panic recovered", "error", err, "stack", string(debug.Stack()))
				handler.RespondAppError(w, handler.ErrInternalError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
