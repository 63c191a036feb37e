package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jacksonn455/wallet-service/internal/auth"
	"github.com/jacksonn455/wallet-service/internal/handler"
	"github.com/jacksonn455/wallet-service/internal/logging"
)

func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				handler.RespondAppError(w, handler.ErrMissingAuthHeader)
				return
			}

			// a bare token without the Bearer prefix is accepted too
			token := strings.TrimPrefix(header, "Bearer ")
			if token == "" {
				handler.RespondAppError(w, handler.ErrMissingToken)
				return
			}

			claims, err := auth.ValidateToken(token, secret)
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					handler.RespondAppError(w, handler.ErrTokenExpired)
					return
				}
				handler.RespondAppError(w, handler.ErrInvalidToken)
				return
			}

			ctx := auth.ContextWithUserID(r.Context(), claims.UserID)
			ctx = logging.WithLogger(ctx, logging.FromContext(ctx).With("user_id", claims.UserID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
