package handlers

import (
	"net/http"

	"theinsight/internal/services"
	"theinsight/internal/utils/helpers"
)

type DashboardHandler struct {
	svc services.DashboardService
}

func NewDashboardHandler(svc services.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Stats godoc
// @Summary  Карточки дашборда
// @Tags     dashboard
// @Produce  json
// @Success  200  {object}  helpers.Response{data=[]models.StatCard}
// @Security ApiKeyAuth
// @Router   /api/dashboard/stats [get]
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	cards, err := h.svc.Stats(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Error fetching dashboard statistics")
		return
	}
	helpers.JSON(w, http.StatusOK, cards)
}

// RecentArticles godoc
// @Summary  Последние статьи для дашборда (главные первыми)
// @Tags     dashboard
// @Produce  json
// @Param    limit  query  int  false  "Количество (3)"
// @Success  200  {object}  helpers.Response{data=[]models.RecentArticle}
// @Security ApiKeyAuth
// @Router   /api/dashboard/recent-articles [get]
func (h *DashboardHandler) RecentArticles(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.RecentArticles(r.Context(), limitFrom(r, 3))
	if err != nil {
		writeServiceError(w, r, err, "Error fetching recent articles")
		return
	}
	helpers.JSON(w, http.StatusOK, items)
}

// Analytics godoc
// @Summary  Аналитика контента
// @Tags     dashboard
// @Produce  json
// @Success  200  {object}  helpers.Response{data=models.Analytics}
// @Security ApiKeyAuth
// @Router   /api/dashboard/analytics [get]
func (h *DashboardHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Analytics(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Error fetching dashboard analytics")
		return
	}
	helpers.JSON(w, http.StatusOK, out)
}
