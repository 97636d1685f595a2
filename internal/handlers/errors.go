package handlers

import (
	"errors"
	"net/http"

	"theinsight/internal/logger"
	"theinsight/internal/services"
	"theinsight/internal/utils/helpers"

	"go.uber.org/zap"
)

// exposeErrors включает поле error с текстом внутренней ошибки (вне prod).
var exposeErrors bool

func SetExposeErrors(enabled bool) { exposeErrors = enabled }

// writeServiceError переводит ошибку сервиса в HTTP-ответ. fallback уходит клиенту при 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var nf *services.NotFoundError
	var ve *services.ValidationError

	switch {
	case errors.As(err, &ve):
		helpers.ValidationErrors(w, ve.Fields)
	case errors.As(err, &nf):
		helpers.Error(w, http.StatusNotFound, nf.Error())
	case errors.Is(err, services.ErrNotFound):
		helpers.Error(w, http.StatusNotFound, "Not found")
	case errors.Is(err, services.ErrInvalidPosition):
		helpers.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrCommentsDisabled):
		helpers.Error(w, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrInactiveUser):
		helpers.Error(w, http.StatusUnauthorized, err.Error())
	default:
		logger.WithCtx(r.Context()).Error(fallback, zap.String("path", r.URL.Path), zap.Error(err))
		if exposeErrors {
			helpers.ErrorDetail(w, http.StatusInternalServerError, fallback, err.Error())
			return
		}
		helpers.Error(w, http.StatusInternalServerError, fallback)
	}
}

func writeInvalidID(w http.ResponseWriter, entity string) {
	helpers.Error(w, http.StatusBadRequest, "Invalid "+entity+" ID")
}

func writeBadJSON(w http.ResponseWriter, r *http.Request, err error) {
	logger.WithCtx(r.Context()).Warn("Некорректный JSON", zap.Error(err))
	helpers.Error(w, http.StatusBadRequest, "Invalid JSON body")
}

// NotFound: единый JSON-ответ для неизвестных маршрутов.
func NotFound(w http.ResponseWriter, r *http.Request) {
	helpers.Error(w, http.StatusNotFound, "Route "+r.URL.Path+" not found")
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	helpers.Error(w, http.StatusMethodNotAllowed, "Method "+r.Method+" not allowed")
}
