package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// @Summary Лента уведомлений
// @Description Возвращает уведомления авторизованного пользователя, новые первыми
// @Tags Уведомления
// @Produce json
// @Param limit query int false "Размер страницы" default(20)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {array} domain.Notification "Уведомления"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /notifications [get]
func (h *Handler) getNotifications(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	notifications, err := h.services.Notification.ListByUser(c.Request.Context(), userID, limit, offset)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	successResponse(c, http.StatusOK, notifications)
}

// @Summary Удалить уведомление
// @Tags Уведомления
// @Produce json
// @Param id path string true "ID уведомления"
// @Success 204 {object} nil "Уведомление удалено"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 404 {object} errorResponseBody "Уведомление не найдено"
// @Security ApiKeyAuth
// @Router /notifications/{id} [delete]
func (h *Handler) deleteNotification(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		unauthorizedResponse(c)
		return
	}

	id := c.Param("id")
	if err := h.services.Notification.Delete(c.Request.Context(), id); err != nil {
		notFoundResponse(c, err.Error())
		return
	}

	noContentResponse(c)
}
