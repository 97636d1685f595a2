package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"theinsight/internal/models"
	"theinsight/internal/services"
	"theinsight/internal/utils/helpers"
)

type PodcastHandler struct {
	svc services.PodcastService
}

func NewPodcastHandler(svc services.PodcastService) *PodcastHandler {
	return &PodcastHandler{svc: svc}
}

func podcastFilterFrom(r *http.Request, public bool) models.PodcastFilter {
	return models.PodcastFilter{
		Status:     queryString(r, "status"),
		Featured:   boolParam(r, "featured"),
		GuestID:    queryString(r, "guest_id"),
		SeriesID:   queryString(r, "series_id"),
		Search:     queryString(r, "search"),
		OnlyPublic: public,
	}
}

// Create godoc
// @Summary  Создать выпуск подкаста
// @Tags     podcasts
// @Accept   json
// @Produce  json
// @Param    body  body      models.PodcastInput  true  "Данные выпуска"
// @Success  201   {object}  helpers.Response{data=models.Podcast}
// @Failure  400   {object}  helpers.Response
// @Security ApiKeyAuth
// @Router   /api/podcasts [post]
func (h *PodcastHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.PodcastInput
	if err := decodeJSON(r, &in); err != nil {
		writeBadJSON(w, r, err)
		return
	}
	p, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err, "Error creating podcast episode")
		return
	}
	helpers.Message(w, http.StatusCreated, "Podcast episode created successfully", p)
}

// Update godoc
// @Summary      Обновить выпуск подкаста
// @Description  Частичное обновление поверх текущих значений.
// @Tags         podcasts
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true  "ID выпуска"
// @Param        body  body      models.PodcastInput  true  "Изменяемые поля"
// @Success      200   {object}  helpers.Response{data=models.Podcast}
// @Failure      404   {object}  helpers.Response
// @Security     ApiKeyAuth
// @Router       /api/podcasts/{id} [put]
func (h *PodcastHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeInvalidID(w, "podcast episode")
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil || !json.Valid(body) {
		writeBadJSON(w, r, err)
		return
	}
	p, err := h.svc.Update(r.Context(), id, func(in *models.PodcastInput) error {
		return json.Unmarshal(body, in)
	})
	if err != nil {
		writeServiceError(w, r, err, "Error updating podcast episode")
		return
	}
	helpers.Message(w, http.StatusOK, "Podcast episode updated successfully", p)
}

// Delete godoc
// @Summary  Удалить выпуск подкаста
// @Tags     podcasts
// @Param    id  path  int  true  "ID выпуска"
// @Success  200  {object}  helpers.Response
// @Security ApiKeyAuth
// @Router   /api/podcasts/{id} [delete]
func (h *PodcastHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeInvalidID(w, "podcast episode")
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "Error deleting podcast episode")
		return
	}
	helpers.Message(w, http.StatusOK, "Podcast episode deleted successfully", nil)
}

func (h *PodcastHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeInvalidID(w, "podcast episode")
		return
	}
	p, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "Error fetching podcast episode")
		return
	}
	helpers.JSON(w, http.StatusOK, p)
}

// List godoc
// @Summary  Выпуски подкаста (админка)
// @Tags     podcasts
// @Produce  json
// @Param    status     query  string  false  "Статус"
// @Param    featured   query  bool    false  "Featured"
// @Param    guest_id   query  string  false  "Гость"
// @Param    series_id  query  string  false  "Серия"
// @Param    search     query  string  false  "Поиск"
// @Param    page       query  int     false  "Страница"
// @Param    limit      query  int     false  "Размер страницы"
// @Success  200  {object}  helpers.Response{data=[]models.Podcast}
// @Security ApiKeyAuth
// @Router   /api/podcasts [get]
func (h *PodcastHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false, adminPageLimit)
}

// PublicList godoc
// @Summary  Опубликованные выпуски подкаста
// @Tags     public
// @Produce  json
// @Success  200  {object}  helpers.Response{data=[]models.Podcast}
// @Router   /api/public/podcasts [get]
func (h *PodcastHandler) PublicList(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true, publicPageLimit)
}

func (h *PodcastHandler) list(w http.ResponseWriter, r *http.Request, public bool, limit int) {
	res, err := h.svc.List(r.Context(), podcastFilterFrom(r, public), pageFrom(r, limit))
	if err != nil {
		writeServiceError(w, r, err, "Error fetching podcast episodes")
		return
	}
	helpers.Paged(w, res.Items, res.Pagination)
}

// PublicGet godoc
// @Summary  Опубликованный выпуск (plays + 1)
// @Tags     public
// @Produce  json
// @Param    id  path  int  true  "ID выпуска"
// @Success  200  {object}  helpers.Response{data=models.Podcast}
// @Failure  404  {object}  helpers.Response
// @Router   /api/public/podcasts/{id} [get]
func (h *PodcastHandler) PublicGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeInvalidID(w, "podcast episode")
		return
	}
	p, err := h.svc.GetPublic(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "Error fetching podcast episode")
		return
	}
	helpers.JSON(w, http.StatusOK, p)
}

// Stats godoc
// @Summary  Статистика подкастов
// @Tags     podcasts
// @Produce  json
// @Success  200  {object}  helpers.Response{data=models.PodcastStats}
// @Security ApiKeyAuth
// @Router   /api/podcasts/stats [get]
func (h *PodcastHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Stats(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Error fetching podcast statistics")
		return
	}
	helpers.JSON(w, http.StatusOK, st)
}
