package handlers

import (
	"net/http"

	"theinsight/internal/logger"
	"theinsight/internal/models"
	"theinsight/internal/services"
	"theinsight/internal/utils/helpers"

	"go.uber.org/zap"
)

const (
	adminPageLimit  = 10
	publicPageLimit = 20
)

type ArticleHandler struct {
	svc services.ArticleService
}

func NewArticleHandler(svc services.ArticleService) *ArticleHandler {
	return &ArticleHandler{svc: svc}
}

func articleFilterFrom(r *http.Request) models.ArticleFilter {
	return models.ArticleFilter{
		Status:      queryString(r, "status"),
		Category:    queryString(r, "category"),
		Featured:    boolParam(r, "featured"),
		Trending:    boolParam(r, "trending"),
		EditorsPick: boolParam(r, "editors_pick"),
		Search:      queryString(r, "search"),
	}
}

// Create godoc
// @Summary      Создать статью
// @Description  Создаёт статью. HTML контента очищается, publishDate по умолчанию равен текущему времени.
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        body  body      models.ArticleRequest  true  "Данные статьи"
// @Success      201   {object}  helpers.Response{data=models.Article}
// @Failure      400   {object}  helpers.Response
// @Security     ApiKeyAuth
// @Router       /api/articles [post]
func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.ArticleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadJSON(w, r, err)
		return
	}
	article, err := h.svc.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, "Error creating article")
		return
	}
	helpers.Message(w, http.StatusCreated, "Article created successfully", article)
}

// Update godoc
// @Summary      Обновить статью
// @Description  Полная замена редактируемых полей. Флаги главной статьи и просмотры не меняются.
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        id    path      int                    true  "ID статьи"
// @Param        body  body      models.ArticleRequest  true  "Данные статьи"
// @Success      200   {object}  helpers.Response{data=models.Article}
// @Failure      400   {object}  helpers.Response
// @Failure      404   {object}  helpers.Response
// @Security     ApiKeyAuth
// @Router       /api/articles/{id} [put]
func (h *ArticleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeInvalidID(w, "article")
		return
	}
	var req models.ArticleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadJSON(w, r, err)
		return
	}
	article, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, r, err, "Error updating article")
		return
	}
	helpers.Message(w, http.StatusOK, "Article updated successfully", article)
}

// Delete godoc
// @Summary  Удалить статью
// @Tags     articles
// @Produce  json
// @Param    id  path  int  true  "ID статьи"
// @Success  200  {object}  helpers.Response
// @Failure  404  {object}  helpers.Response
// @Security ApiKeyAuth
// @Router   /api/articles/{id} [delete]
func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeInvalidID(w, "article")
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "Error deleting article")
		return
	}
	helpers.Message(w, http.StatusOK, "Article deleted successfully", nil)
}

// GetByID godoc
// @Summary  Статья для редактора
// @Description Любой статус, просмотры не засчитываются.
// @Tags     articles
// @Produce  json
// @Param    id  path  int  true  "ID статьи"
// @Success  200  {object}  helpers.Response{data=models.Article}
// @Failure  404  {object}  helpers.Response
// @Security ApiKeyAuth
// @Router   /api/articles/{id} [get]
func (h *ArticleHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeInvalidID(w, "article")
		return
	}
	article, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "Error fetching article")
		return
	}
	helpers.JSON(w, http.StatusOK, article)
}

// List godoc
// @Summary  Список статей (админка)
// @Tags     articles
// @Produce  json
// @Param    status        query  string  false  "draft | review | published"
// @Param    category      query  string  false  "Рубрика"
// @Param    featured      query  bool    false  "Featured"
// @Param    trending      query  bool    false  "Trending"
// @Param    editors_pick  query  bool    false  "Выбор редакции"
// @Param    search        query  string  false  "Поиск по заголовку, анонсу и автору"
// @Param    page          query  int     false  "Страница"
// @Param    limit         query  int     false  "Размер страницы"
// @Success  200  {object}  helpers.Response{data=[]models.Article}
// @Security ApiKeyAuth
// @Router   /api/articles [get]
func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.List(r.Context(), articleFilterFrom(r), pageFrom(r, adminPageLimit))
	if err != nil {
		writeServiceError(w, r, err, "Error fetching articles")
		return
	}
	helpers.Paged(w, res.Items, res.Pagination)
}

// Trending godoc
// @Summary  Трендовые статьи (админка)
// @Tags     articles
// @Produce  json
// @Param    page   query  int  false  "Страница"
// @Param    limit  query  int  false  "Размер страницы"
// @Success  200  {object}  helpers.Response{data=[]models.Article}
// @Security ApiKeyAuth
// @Router   /api/articles/trending [get]
func (h *ArticleHandler) Trending(w http.ResponseWriter, r *http.Request) {
	trending := true
	res, err := h.svc.List(r.Context(), models.ArticleFilter{Trending: &trending}, pageFrom(r, adminPageLimit))
	if err != nil {
		writeServiceError(w, r, err, "Error fetching trending articles")
		return
	}
	helpers.Paged(w, res.Items, res.Pagination)
}

func (h *ArticleHandler) latestFlagged(w http.ResponseWriter, r *http.Request, f models.ArticleFilter, limit int, fallback string) {
	items, err := h.svc.Latest(r.Context(), f, limitFrom(r, limit))
	if err != nil {
		writeServiceError(w, r, err, fallback)
		return
	}
	helpers.JSON(w, http.StatusOK, items)
}

// Featured godoc
// @Summary  Featured-статьи (админка, 3 последние)
// @Tags     articles
// @Produce  json
// @Success  200  {object}  helpers.Response{data=[]models.Article}
// @Security ApiKeyAuth
// @Router   /api/articles/featured [get]
func (h *ArticleHandler) Featured(w http.ResponseWriter, r *http.Request) {
	featured := true
	h.latestFlagged(w, r, models.ArticleFilter{Featured: &featured}, 3, "Error fetching featured articles")
}

// EditorsPick godoc
// @Summary  Выбор редакции (админка, 3 последние)
// @Tags     articles
// @Produce  json
// @Success  200  {object}  helpers.Response{data=[]models.Article}
// @Security ApiKeyAuth
// @Router   /api/articles/editors-pick [get]
func (h *ArticleHandler) EditorsPick(w http.ResponseWriter, r *http.Request) {
	pick := true
	h.latestFlagged(w, r, models.ArticleFilter{EditorsPick: &pick}, 3, "Error fetching editor's pick articles")
}

// SetMain godoc
// @Summary      Назначить главную статью
// @Description  position = main | second. Предыдущая статья на этой позиции снимается в той же транзакции.
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        id    path      int                    true  "ID статьи"
// @Param        body  body      models.SetMainRequest  true  "Позиция"
// @Success      200   {object}  helpers.Response{data=models.Article}
// @Failure      400   {object}  helpers.Response
// @Failure      404   {object}  helpers.Response
// @Security     ApiKeyAuth
// @Router       /api/articles/{id}/set-main [put]
func (h *ArticleHandler) SetMain(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeInvalidID(w, "article")
		return
	}
	var req models.SetMainRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadJSON(w, r, err)
		return
	}
	article, err := h.svc.SetMain(r.Context(), id, req.Position)
	if err != nil {
		writeServiceError(w, r, err, "Error setting main article")
		return
	}
	helpers.Message(w, http.StatusOK, "Article set as "+req.Position+" main article successfully", article)
}

// RemoveMain godoc
// @Summary  Снять статью с главной
// @Tags     articles
// @Produce  json
// @Param    id  path  int  true  "ID статьи"
// @Success  200  {object}  helpers.Response{data=models.Article}
// @Failure  404  {object}  helpers.Response
// @Security ApiKeyAuth
// @Router   /api/articles/{id}/remove-main [put]
func (h *ArticleHandler) RemoveMain(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeInvalidID(w, "article")
		return
	}
	article, err := h.svc.RemoveMain(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "Error removing main article")
		return
	}
	helpers.Message(w, http.StatusOK, "Article removed from main articles successfully", article)
}

// MainArticles godoc
// @Summary  Главная и вторая главная статьи
// @Tags     articles
// @Produce  json
// @Success  200  {object}  helpers.Response{data=models.MainArticles}
// @Security ApiKeyAuth
// @Router   /api/articles/main-articles [get]
func (h *ArticleHandler) MainArticles(w http.ResponseWriter, r *http.Request) {
	mains, err := h.svc.MainArticles(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Error fetching main articles")
		return
	}
	helpers.JSON(w, http.StatusOK, mains)
}

// LatestExcludingMain godoc
// @Summary  Свежие опубликованные статьи без главных
// @Tags     articles
// @Produce  json
// @Param    limit  query  int  false  "Количество (по умолчанию 3)"
// @Success  200  {object}  helpers.Response{data=[]models.Article}
// @Security ApiKeyAuth
// @Router   /api/articles/latest-excluding-main [get]
func (h *ArticleHandler) LatestExcludingMain(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.LatestExcludingMain(r.Context(), limitFrom(r, 3))
	if err != nil {
		writeServiceError(w, r, err, "Error fetching latest articles")
		return
	}
	helpers.JSON(w, http.StatusOK, items)
}

// ---------- public ----------

// PublicList godoc
// @Summary  Опубликованные статьи
// @Tags     public
// @Produce  json
// @Param    category      query  string  false  "Рубрика"
// @Param    featured      query  bool    false  "Featured"
// @Param    trending      query  bool    false  "Trending"
// @Param    editors_pick  query  bool    false  "Выбор редакции"
// @Param    search        query  string  false  "Поиск"
// @Param    page          query  int     false  "Страница"
// @Param    limit         query  int     false  "Размер страницы (20)"
// @Success  200  {object}  helpers.Response{data=[]models.Article}
// @Router   /api/public/articles [get]
func (h *ArticleHandler) PublicList(w http.ResponseWriter, r *http.Request) {
	f := articleFilterFrom(r)
	f.OnlyPublic = true
	res, err := h.svc.List(r.Context(), f, pageFrom(r, publicPageLimit))
	if err != nil {
		writeServiceError(w, r, err, "Error fetching articles")
		return
	}
	helpers.Paged(w, res.Items, res.Pagination)
}

// PublicRegular godoc
// @Summary  Опубликованные статьи без редакционных флагов
// @Tags     public
// @Produce  json
// @Param    page   query  int  false  "Страница"
// @Param    limit  query  int  false  "Размер страницы (20)"
// @Success  200  {object}  helpers.Response{data=[]models.Article}
// @Router   /api/public/articles/regular [get]
func (h *ArticleHandler) PublicRegular(w http.ResponseWriter, r *http.Request) {
	f := models.ArticleFilter{OnlyPublic: true, NoEditorial: true, Category: queryString(r, "category")}
	res, err := h.svc.List(r.Context(), f, pageFrom(r, publicPageLimit))
	if err != nil {
		writeServiceError(w, r, err, "Error fetching articles")
		return
	}
	helpers.Paged(w, res.Items, res.Pagination)
}

// PublicEditorsPick godoc
// @Summary  Выбор редакции (4 последние)
// @Tags     public
// @Produce  json
// @Success  200  {object}  helpers.Response{data=[]models.Article}
// @Router   /api/public/articles/editors-pick [get]
func (h *ArticleHandler) PublicEditorsPick(w http.ResponseWriter, r *http.Request) {
	pick := true
	h.latestFlagged(w, r, models.ArticleFilter{OnlyPublic: true, EditorsPick: &pick}, 4, "Error fetching editor's pick articles")
}

// PublicFeatured godoc
// @Summary  Featured-статьи (3 последние)
// @Tags     public
// @Produce  json
// @Success  200  {object}  helpers.Response{data=[]models.Article}
// @Router   /api/public/articles/featured [get]
func (h *ArticleHandler) PublicFeatured(w http.ResponseWriter, r *http.Request) {
	featured := true
	h.latestFlagged(w, r, models.ArticleFilter{OnlyPublic: true, Featured: &featured}, 3, "Error fetching featured articles")
}

// PublicGet godoc
// @Summary      Опубликованная статья
// @Description  Каждый успешный запрос увеличивает счётчик просмотров на 1.
// @Tags         public
// @Produce      json
// @Param        id   path      int  true  "ID статьи"
// @Success      200  {object}  helpers.Response{data=models.Article}
// @Failure      400  {object}  helpers.Response
// @Failure      404  {object}  helpers.Response
// @Router       /api/public/articles/{id} [get]
func (h *ArticleHandler) PublicGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeInvalidID(w, "article")
		return
	}
	article, err := h.svc.GetPublic(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "Error fetching article")
		return
	}
	logger.WithCtx(r.Context()).Debug("Просмотр статьи", zap.Int64("id", id), zap.Int64("views", article.Views))
	helpers.JSON(w, http.StatusOK, article)
}
