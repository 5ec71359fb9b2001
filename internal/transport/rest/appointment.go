package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"chalkup/internal/domain"
)

// @Summary Получить сессию по ID
// @Tags Сессии
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} domain.Appointment "Данные сессии"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Сессия не найдена"
// @Security ApiKeyAuth
// @Router /appointments/{id} [get]
func (h *Handler) getAppointmentByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	id := c.Param("id")
	appointment, err := h.services.Appointment.GetByID(c.Request.Context(), id)
	if err != nil {
		notFoundResponse(c, err.Error())
		return
	}

	userType, _ := getUserType(c)
	if appointment.StudentID != userID && appointment.TutorID != userID && userType != domain.UserTypeAdmin {
		forbiddenResponse(c)
		return
	}

	successResponse(c, http.StatusOK, appointment)
}

// @Summary Список сессий пользователя
// @Description Возвращает сессии, где авторизованный пользователь выступает студентом или тьютором
// @Tags Сессии
// @Produce json
// @Param date query string false "Фильтр по дню в формате 2006-01-02"
// @Param limit query int false "Размер страницы" default(20)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} paginatedResponse "Сессии"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /appointments [get]
func (h *Handler) getAppointments(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	filter := domain.AppointmentFilter{
		Limit:  limit,
		Offset: offset,
	}

	if date := c.Query("date"); date != "" {
		filter.Date = &date
	}

	userType, _ := getUserType(c)
	if userType == domain.UserTypeTutor {
		filter.TutorID = &userID
	} else {
		filter.StudentID = &userID
	}

	appointments, total, err := h.services.Appointment.List(c.Request.Context(), filter)
	if err != nil {
		internalServerErrorResponse(c)
		return
	}

	page := offset/limit + 1
	paginatedSuccessResponse(c, appointments, total, page, limit)
}

// @Summary Занятые даты пользователя
// @Description Возвращает дни, на которые у авторизованного пользователя есть сессии
// @Tags Сессии
// @Produce json
// @Success 200 {array} string "Даты в формате 2006-01-02"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /appointments/dates [get]
func (h *Handler) getAppointmentDates(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	filter := domain.AppointmentFilter{}
	userType, _ := getUserType(c)
	if userType == domain.UserTypeTutor {
		filter.TutorID = &userID
	} else {
		filter.StudentID = &userID
	}

	dates, err := h.services.Appointment.ListDates(c.Request.Context(), filter)
	if err != nil {
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, dates)
}
