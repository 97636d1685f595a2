package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"theinsight/internal/models"
	"theinsight/internal/services"
	"theinsight/internal/utils/helpers"
)

type TVShowHandler struct {
	svc services.TVShowService
}

func NewTVShowHandler(svc services.TVShowService) *TVShowHandler {
	return &TVShowHandler{svc: svc}
}

func tvShowFilterFrom(r *http.Request, public bool) models.TVShowFilter {
	return models.TVShowFilter{
		Category:   queryString(r, "category"),
		Status:     queryString(r, "status"),
		Featured:   boolParam(r, "featured"),
		IsNew:      boolParam(r, "is_new"),
		Search:     queryString(r, "search"),
		OnlyPublic: public,
	}
}

// Create godoc
// @Summary  Создать выпуск ТВ-шоу
// @Tags     tvshows
// @Accept   json
// @Produce  json
// @Param    body  body      models.TVShowInput  true  "Данные выпуска"
// @Success  201   {object}  helpers.Response{data=models.TVShow}
// @Failure  400   {object}  helpers.Response
// @Security ApiKeyAuth
// @Router   /api/tvshows [post]
func (h *TVShowHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.TVShowInput
	if err := decodeJSON(r, &in); err != nil {
		writeBadJSON(w, r, err)
		return
	}
	show, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err, "Error creating TV show episode")
		return
	}
	helpers.Message(w, http.StatusCreated, "TV show episode created successfully", show)
}

// Update godoc
// @Summary      Обновить выпуск ТВ-шоу
// @Description  Частичное обновление: поля, которых нет в теле, сохраняют текущие значения.
// @Tags         tvshows
// @Accept       json
// @Produce      json
// @Param        id    path      int                 true  "ID выпуска"
// @Param        body  body      models.TVShowInput  true  "Изменяемые поля"
// @Success      200   {object}  helpers.Response{data=models.TVShow}
// @Failure      404   {object}  helpers.Response
// @Security     ApiKeyAuth
// @Router       /api/tvshows/{id} [put]
func (h *TVShowHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeInvalidID(w, "TV show episode")
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil || !json.Valid(body) {
		writeBadJSON(w, r, err)
		return
	}
	show, err := h.svc.Update(r.Context(), id, func(in *models.TVShowInput) error {
		return json.Unmarshal(body, in)
	})
	if err != nil {
		writeServiceError(w, r, err, "Error updating TV show episode")
		return
	}
	helpers.Message(w, http.StatusOK, "TV show episode updated successfully", show)
}

// Delete godoc
// @Summary  Удалить выпуск ТВ-шоу
// @Tags     tvshows
// @Param    id  path  int  true  "ID выпуска"
// @Success  200  {object}  helpers.Response
// @Security ApiKeyAuth
// @Router   /api/tvshows/{id} [delete]
func (h *TVShowHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeInvalidID(w, "TV show episode")
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "Error deleting TV show episode")
		return
	}
	helpers.Message(w, http.StatusOK, "TV show episode deleted successfully", nil)
}

func (h *TVShowHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeInvalidID(w, "TV show episode")
		return
	}
	show, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "Error fetching TV show episode")
		return
	}
	helpers.JSON(w, http.StatusOK, show)
}

// List godoc
// @Summary  Выпуски ТВ-шоу (админка)
// @Tags     tvshows
// @Produce  json
// @Param    category  query  string  false  "Категория или all"
// @Param    status    query  string  false  "Статус или all"
// @Param    featured  query  bool    false  "Featured"
// @Param    is_new    query  bool    false  "Новинка"
// @Param    search    query  string  false  "Поиск"
// @Param    page      query  int     false  "Страница"
// @Param    limit     query  int     false  "Размер страницы"
// @Success  200  {object}  helpers.Response{data=[]models.TVShow}
// @Security ApiKeyAuth
// @Router   /api/tvshows [get]
func (h *TVShowHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false, adminPageLimit)
}

// PublicList godoc
// @Summary  Опубликованные выпуски ТВ-шоу
// @Tags     public
// @Produce  json
// @Success  200  {object}  helpers.Response{data=[]models.TVShow}
// @Router   /api/public/tvshows [get]
func (h *TVShowHandler) PublicList(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true, publicPageLimit)
}

func (h *TVShowHandler) list(w http.ResponseWriter, r *http.Request, public bool, limit int) {
	res, err := h.svc.List(r.Context(), tvShowFilterFrom(r, public), pageFrom(r, limit))
	if err != nil {
		writeServiceError(w, r, err, "Error fetching TV show episodes")
		return
	}
	helpers.Paged(w, res.Items, res.Pagination)
}

// PublicGet godoc
// @Summary  Опубликованный выпуск (views + 1)
// @Tags     public
// @Produce  json
// @Param    id  path  int  true  "ID выпуска"
// @Success  200  {object}  helpers.Response{data=models.TVShow}
// @Failure  404  {object}  helpers.Response
// @Router   /api/public/tvshows/{id} [get]
func (h *TVShowHandler) PublicGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeInvalidID(w, "TV show episode")
		return
	}
	show, err := h.svc.GetPublic(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "Error fetching TV show episode")
		return
	}
	helpers.JSON(w, http.StatusOK, show)
}

// Stats godoc
// @Summary  Статистика ТВ-шоу
// @Tags     tvshows
// @Produce  json
// @Success  200  {object}  helpers.Response{data=models.TVShowStats}
// @Security ApiKeyAuth
// @Router   /api/tvshows/stats [get]
func (h *TVShowHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Stats(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Error fetching TV show statistics")
		return
	}
	helpers.JSON(w, http.StatusOK, st)
}
