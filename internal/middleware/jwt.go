package middleware

import (
	"net/http"
	"strings"

	"theinsight/internal/logger"
	"theinsight/internal/reqctx"
	"theinsight/internal/utils"
	"theinsight/internal/utils/helpers"

	"go.uber.org/zap"
)

// JWTAuth проверяет Bearer-токен и кладёт user_id и role в контекст запроса.
func JWTAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				logger.WithCtx(r.Context()).Warn("JWTAuth: отсутствует access token")
				helpers.Error(w, http.StatusUnauthorized, "Access token is required")
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			userID, role, err := utils.ParseToken(secret, tokenString)
			if err != nil {
				logger.WithCtx(r.Context()).Warn("JWTAuth: неверный или просроченный токен", zap.Error(err))
				helpers.Error(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			ctx := reqctx.WithUserID(r.Context(), userID)
			ctx = reqctx.WithRole(ctx, role)

			logger.WithCtx(ctx).Debug("JWTAuth: токен валиден")
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
