package handlers

import (
	"context"
	"net/http"
	"time"

	"theinsight/internal/logger"
	"theinsight/internal/models"
	"theinsight/internal/utils/helpers"

	"go.uber.org/zap"
)

type Searcher interface {
	GlobalSearch(ctx context.Context, query string) (*models.SearchResults, error)
}

type SearchHandler struct {
	search Searcher
}

func NewSearchHandler(search Searcher) *SearchHandler {
	return &SearchHandler{search: search}
}

// GlobalSearch godoc
// @Summary Глобальный поиск по опубликованным материалам
// @Tags public
// @Produce json
// @Param query query string true "Поисковый запрос"
// @Success 200 {object} helpers.Response{data=models.SearchResults}
// @Failure 400 {object} helpers.Response "Пустой запрос"
// @Router /api/public/search [get]
func (h *SearchHandler) GlobalSearch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	res, err := h.search.GlobalSearch(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		writeServiceError(w, r, err, "Error searching content")
		return
	}
	logger.WithCtx(r.Context()).Info("search: готово",
		zap.String("query", res.Query), zap.Duration("took", time.Since(start)))
	helpers.JSON(w, http.StatusOK, res)
}
