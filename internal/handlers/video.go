package handlers

import (
	"net/http"

	"theinsight/internal/models"
	"theinsight/internal/services"
	"theinsight/internal/utils/helpers"
)

type VideoHandler struct {
	svc services.VideoService
}

func NewVideoHandler(svc services.VideoService) *VideoHandler {
	return &VideoHandler{svc: svc}
}

func videoFilterFrom(r *http.Request, public bool) models.VideoFilter {
	return models.VideoFilter{
		Category:   queryString(r, "category"),
		Search:     queryString(r, "search"),
		OnlyPublic: public,
	}
}

// Create godoc
// @Summary  Создать видео
// @Tags     videos
// @Accept   json
// @Produce  json
// @Param    body  body      models.VideoRequest  true  "Данные видео"
// @Success  201   {object}  helpers.Response{data=models.Video}
// @Failure  400   {object}  helpers.Response
// @Security ApiKeyAuth
// @Router   /api/videos [post]
func (h *VideoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.VideoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadJSON(w, r, err)
		return
	}
	v, err := h.svc.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, "Error creating video")
		return
	}
	helpers.Message(w, http.StatusCreated, "Video created successfully", v)
}

// Update godoc
// @Summary  Обновить видео
// @Tags     videos
// @Accept   json
// @Produce  json
// @Param    id    path      int                  true  "ID видео"
// @Param    body  body      models.VideoRequest  true  "Данные видео"
// @Success  200   {object}  helpers.Response{data=models.Video}
// @Failure  404   {object}  helpers.Response
// @Security ApiKeyAuth
// @Router   /api/videos/{id} [put]
func (h *VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeInvalidID(w, "video")
		return
	}
	var req models.VideoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadJSON(w, r, err)
		return
	}
	v, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, r, err, "Error updating video")
		return
	}
	helpers.Message(w, http.StatusOK, "Video updated successfully", v)
}

// Delete godoc
// @Summary  Удалить видео
// @Tags     videos
// @Param    id  path  int  true  "ID видео"
// @Success  200  {object}  helpers.Response
// @Security ApiKeyAuth
// @Router   /api/videos/{id} [delete]
func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeInvalidID(w, "video")
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "Error deleting video")
		return
	}
	helpers.Message(w, http.StatusOK, "Video deleted successfully", nil)
}

func (h *VideoHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeInvalidID(w, "video")
		return
	}
	v, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "Error fetching video")
		return
	}
	helpers.JSON(w, http.StatusOK, v)
}

// List godoc
// @Summary  Список видео (админка)
// @Tags     videos
// @Produce  json
// @Param    category  query  string  false  "Рубрика"
// @Param    search    query  string  false  "Поиск"
// @Param    page      query  int     false  "Страница"
// @Param    limit     query  int     false  "Размер страницы"
// @Success  200  {object}  helpers.Response{data=[]models.Video}
// @Security ApiKeyAuth
// @Router   /api/videos [get]
func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false, adminPageLimit)
}

// PublicList godoc
// @Summary  Опубликованные видео
// @Tags     public
// @Produce  json
// @Param    category  query  string  false  "Рубрика"
// @Param    search    query  string  false  "Поиск"
// @Param    page      query  int     false  "Страница"
// @Param    limit     query  int     false  "Размер страницы"
// @Success  200  {object}  helpers.Response{data=[]models.Video}
// @Router   /api/public/videos [get]
func (h *VideoHandler) PublicList(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true, publicPageLimit)
}

func (h *VideoHandler) list(w http.ResponseWriter, r *http.Request, public bool, limit int) {
	res, err := h.svc.List(r.Context(), videoFilterFrom(r, public), pageFrom(r, limit))
	if err != nil {
		writeServiceError(w, r, err, "Error fetching videos")
		return
	}
	helpers.Paged(w, res.Items, res.Pagination)
}

// PublicLatest godoc
// @Summary  Последние видео (4)
// @Tags     public
// @Produce  json
// @Success  200  {object}  helpers.Response{data=[]models.Video}
// @Router   /api/public/videos/latest [get]
func (h *VideoHandler) PublicLatest(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Latest(r.Context(), limitFrom(r, 4))
	if err != nil {
		writeServiceError(w, r, err, "Error fetching videos")
		return
	}
	helpers.JSON(w, http.StatusOK, items)
}

// PublicGet godoc
// @Summary  Опубликованное видео (views + 1)
// @Tags     public
// @Produce  json
// @Param    id  path  int  true  "ID видео"
// @Success  200  {object}  helpers.Response{data=models.Video}
// @Failure  404  {object}  helpers.Response
// @Router   /api/public/videos/{id} [get]
func (h *VideoHandler) PublicGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeInvalidID(w, "video")
		return
	}
	v, err := h.svc.GetPublic(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "Error fetching video")
		return
	}
	helpers.JSON(w, http.StatusOK, v)
}
