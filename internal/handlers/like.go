package handlers

import (
	"net/http"

	"theinsight/internal/models"
	"theinsight/internal/services"
	"theinsight/internal/utils/helpers"
)

type LikeHandler struct {
	svc services.LikeService
}

func NewLikeHandler(svc services.LikeService) *LikeHandler {
	return &LikeHandler{svc: svc}
}

// Increment godoc
// @Summary  Лайкнуть статью
// @Tags     likes
// @Produce  json
// @Param    articleId  path  int  true  "ID статьи"
// @Success  200  {object}  helpers.Response{data=models.LikeCount}
// @Failure  404  {object}  helpers.Response
// @Router   /api/likes/{articleId}/increment [post]
func (h *LikeHandler) Increment(w http.ResponseWriter, r *http.Request) {
	articleID, err := pathID(r, "articleId")
	if err != nil {
		writeInvalidID(w, "article")
		return
	}
	n, err := h.svc.Increment(r.Context(), articleID)
	if err != nil {
		writeServiceError(w, r, err, "Error processing like")
		return
	}
	helpers.Message(w, http.StatusOK, "Article liked", models.LikeCount{ArticleID: articleID, LikeCount: n})
}

// Decrement godoc
// @Summary      Снять лайк
// @Description  Счётчик не опускается ниже нуля.
// @Tags         likes
// @Produce      json
// @Param        articleId  path  int  true  "ID статьи"
// @Success      200  {object}  helpers.Response{data=models.LikeCount}
// @Failure      404  {object}  helpers.Response
// @Router       /api/likes/{articleId}/decrement [post]
func (h *LikeHandler) Decrement(w http.ResponseWriter, r *http.Request) {
	articleID, err := pathID(r, "articleId")
	if err != nil {
		writeInvalidID(w, "article")
		return
	}
	n, changed, err := h.svc.Decrement(r.Context(), articleID)
	if err != nil {
		writeServiceError(w, r, err, "Error processing unlike")
		return
	}
	msg := "Article unliked"
	if !changed {
		msg = "No likes to remove"
	}
	helpers.Message(w, http.StatusOK, msg, models.LikeCount{ArticleID: articleID, LikeCount: n})
}

// Count godoc
// @Summary  Число лайков статьи
// @Tags     likes
// @Produce  json
// @Param    articleId  path  int  true  "ID статьи"
// @Success  200  {object}  helpers.Response{data=models.LikeCount}
// @Router   /api/likes/{articleId} [get]
func (h *LikeHandler) Count(w http.ResponseWriter, r *http.Request) {
	articleID, err := pathID(r, "articleId")
	if err != nil {
		writeInvalidID(w, "article")
		return
	}
	n, err := h.svc.Count(r.Context(), articleID)
	if err != nil {
		writeServiceError(w, r, err, "Error fetching like count")
		return
	}
	helpers.JSON(w, http.StatusOK, models.LikeCount{ArticleID: articleID, LikeCount: n})
}

// MostLiked godoc
// @Summary  Самые залайканные опубликованные статьи
// @Tags     likes
// @Produce  json
// @Param    limit  query  int  false  "Количество (10)"
// @Success  200  {object}  helpers.Response{data=[]models.MostLikedArticle}
// @Router   /api/likes/most-liked/articles [get]
func (h *LikeHandler) MostLiked(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.MostLiked(r.Context(), limitFrom(r, 10))
	if err != nil {
		writeServiceError(w, r, err, "Error fetching most liked articles")
		return
	}
	helpers.JSON(w, http.StatusOK, items)
}
