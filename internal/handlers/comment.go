package handlers

import (
	"net/http"

	"theinsight/internal/middleware"
	"theinsight/internal/models"
	"theinsight/internal/services"
	"theinsight/internal/utils/helpers"
)

type CommentHandler struct {
	svc services.CommentService
}

func NewCommentHandler(svc services.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

// Create godoc
// @Summary      Оставить комментарий
// @Description  Имя и email необязательны. Для статей с закрытыми комментариями вернётся 403.
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        articleId  path      int                    true  "ID статьи"
// @Param        body       body      models.CommentRequest  true  "Комментарий"
// @Success      201        {object}  helpers.Response{data=models.PublicComment}
// @Failure      400        {object}  helpers.Response
// @Failure      403        {object}  helpers.Response
// @Failure      404        {object}  helpers.Response
// @Router       /api/comments/{articleId} [post]
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	articleID, err := pathID(r, "articleId")
	if err != nil {
		writeInvalidID(w, "article")
		return
	}
	var req models.CommentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadJSON(w, r, err)
		return
	}
	client := services.ClientInfo{IP: middleware.ClientIP(r), UserAgent: r.UserAgent()}
	c, err := h.svc.Create(r.Context(), articleID, req, client)
	if err != nil {
		writeServiceError(w, r, err, "Error creating comment")
		return
	}
	helpers.Message(w, http.StatusCreated, "Comment created successfully", c)
}

// List godoc
// @Summary  Комментарии статьи
// @Tags     comments
// @Produce  json
// @Param    articleId  path   int   true   "ID статьи"
// @Param    page       query  int   false  "Страница"
// @Param    limit      query  int   false  "Размер страницы (3)"
// @Param    all        query  bool  false  "Все комментарии без пагинации"
// @Success  200  {object}  helpers.Response{data=[]models.PublicComment}
// @Router   /api/comments/{articleId} [get]
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	articleID, err := pathID(r, "articleId")
	if err != nil {
		writeInvalidID(w, "article")
		return
	}
	if all := boolParam(r, "all"); all != nil && *all {
		items, err := h.svc.All(r.Context(), articleID)
		if err != nil {
			writeServiceError(w, r, err, "Error fetching comments")
			return
		}
		helpers.JSON(w, http.StatusOK, items)
		return
	}
	res, err := h.svc.List(r.Context(), articleID, pageFrom(r, 3))
	if err != nil {
		writeServiceError(w, r, err, "Error fetching comments")
		return
	}
	helpers.Paged(w, res.Items, res.Pagination)
}

type commentCount struct {
	ArticleID int64 `json:"articleId"`
	Count     int   `json:"count"`
}

// Count godoc
// @Summary  Число одобренных комментариев статьи
// @Tags     comments
// @Produce  json
// @Param    articleId  path  int  true  "ID статьи"
// @Success  200  {object}  helpers.Response
// @Router   /api/comments/{articleId}/count [get]
func (h *CommentHandler) Count(w http.ResponseWriter, r *http.Request) {
	articleID, err := pathID(r, "articleId")
	if err != nil {
		writeInvalidID(w, "article")
		return
	}
	n, err := h.svc.Count(r.Context(), articleID)
	if err != nil {
		writeServiceError(w, r, err, "Error fetching comment count")
		return
	}
	helpers.JSON(w, http.StatusOK, commentCount{ArticleID: articleID, Count: n})
}

// Delete godoc
// @Summary  Удалить комментарий
// @Tags     comments
// @Param    commentId  path  int  true  "ID комментария"
// @Success  200  {object}  helpers.Response
// @Failure  404  {object}  helpers.Response
// @Security ApiKeyAuth
// @Router   /api/comments/comment/{commentId} [delete]
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "commentId")
	if err != nil {
		writeInvalidID(w, "comment")
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "Error deleting comment")
		return
	}
	helpers.Message(w, http.StatusOK, "Comment deleted successfully", nil)
}

// Recent godoc
// @Summary  Последние комментарии по всем статьям
// @Tags     comments
// @Produce  json
// @Param    limit  query  int  false  "Количество (10)"
// @Success  200  {object}  helpers.Response{data=[]models.RecentComment}
// @Security ApiKeyAuth
// @Router   /api/comments/recent/all [get]
func (h *CommentHandler) Recent(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Recent(r.Context(), limitFrom(r, 10))
	if err != nil {
		writeServiceError(w, r, err, "Error fetching recent comments")
		return
	}
	helpers.JSON(w, http.StatusOK, items)
}
