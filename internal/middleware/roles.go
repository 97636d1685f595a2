package middleware

import (
	"net/http"

	"theinsight/internal/logger"
	"theinsight/internal/reqctx"
	"theinsight/internal/utils/helpers"

	"go.uber.org/zap"
)

func OnlyRole(role string) func(http.Handler) http.Handler {
	return AnyRole(role)
}

func AnyRole(allowedRoles ...string) func(http.Handler) http.Handler {
	roleSet := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		roleSet[r] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// фастлейн для админа
			if SkipGuards(r.Context()) {
				next.ServeHTTP(w, r)
				return
			}

			userRole, ok := reqctx.GetRole(r.Context())
			if !ok {
				helpers.Error(w, http.StatusUnauthorized, "Access token is required")
				return
			}
			if _, found := roleSet[userRole]; !found {
				logger.WithCtx(r.Context()).Warn("Доступ запрещён", zap.Strings("allowed", allowedRoles))
				helpers.Error(w, http.StatusForbidden, "Access denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
