package handlers

import (
	"net/http"

	"screensynced_backend/internal/services"
	"screensynced_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type BookmarkHandler struct {
	*BaseHandler
	bookmarkService services.BookmarkService
}

func NewBookmarkHandler(base *BaseHandler, bookmarkService services.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{
		BaseHandler:     base,
		bookmarkService: bookmarkService,
	}
}

// RegisterRoutes регистрирует маршруты закладок. Все они защищены guard-ом.
func (h *BookmarkHandler) RegisterRoutes(rg *gin.RouterGroup, guard gin.HandlerFunc) {
	bookmarks := rg.Group("/bookmarks")
	bookmarks.Use(guard)
	{
		bookmarks.POST("", h.Create)
		bookmarks.GET("", h.List)
		bookmarks.GET("/:id", h.GetByID)
		bookmarks.DELETE("/:id", h.Delete)
	}
}

// Create godoc
// @Summary Добавить закладку
// @Description Сохраняет фильм или сериал в закладки пользователя
// @Tags bookmarks
// @Accept json
// @Produce json
// @Param request body dto.CreateBookmarkRequest true "Данные закладки"
// @Success 201 {object} models.Bookmark
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse
// @Router /bookmarks [post]
func (h *BookmarkHandler) Create(c *gin.Context) {
	identity, ok := h.CurrentIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateBookmarkRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	bookmark, err := h.bookmarkService.Create(c.Request.Context(), identity.UserID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bookmark)
}

// List godoc
// @Summary Список закладок
// @Description Возвращает все закладки пользователя, новые первыми
// @Tags bookmarks
// @Produce json
// @Success 200 {array} models.Bookmark
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /bookmarks [get]
func (h *BookmarkHandler) List(c *gin.Context) {
	identity, ok := h.CurrentIdentity(c)
	if !ok {
		return
	}

	bookmarks, err := h.bookmarkService.List(c.Request.Context(), identity.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookmarks)
}

// GetByID godoc
// @Summary Получить закладку по ID
// @Tags bookmarks
// @Produce json
// @Param id path int true "ID закладки"
// @Success 200 {object} models.Bookmark
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /bookmarks/{id} [get]
func (h *BookmarkHandler) GetByID(c *gin.Context) {
	identity, ok := h.CurrentIdentity(c)
	if !ok {
		return
	}

	bookmarkID, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	bookmark, err := h.bookmarkService.GetByID(c.Request.Context(), identity.UserID, bookmarkID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookmark)
}

// Delete godoc
// @Summary Удалить закладку
// @Tags bookmarks
// @Produce json
// @Param id path int true "ID закладки"
// @Success 200 {object} map[string]string
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /bookmarks/{id} [delete]
func (h *BookmarkHandler) Delete(c *gin.Context) {
	identity, ok := h.CurrentIdentity(c)
	if !ok {
		return
	}

	bookmarkID, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.bookmarkService.Delete(c.Request.Context(), identity.UserID, bookmarkID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": "Bookmark deleted successfully"})
}
