package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"theinsight/internal/models"

	"github.com/gorilla/mux"
)

var errInvalidID = errors.New("invalid id")

// pathID разбирает числовой идентификатор из переменной пути.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// pageFrom читает page и limit; некорректные значения заменяются значениями по умолчанию.
// Верхней границы у limit нет.
func pageFrom(r *http.Request, defaultLimit int) models.Page {
	q := r.URL.Query()
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	return models.Page{Number: page, Limit: limitFrom(r, defaultLimit)}
}

func limitFrom(r *http.Request, defaultLimit int) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 {
		return defaultLimit
	}
	return limit
}

// boolParam возвращает nil, если параметр не задан или не равен "true"/"false".
func boolParam(r *http.Request, name string) *bool {
	switch strings.ToLower(r.URL.Query().Get(name)) {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	default:
		return nil
	}
}

func queryString(r *http.Request, name string) string {
	return strings.TrimSpace(r.URL.Query().Get(name))
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
