package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"chalkup/internal/domain"
)

// @Summary Рабочий шаблон слотов
// @Description Возвращает все 30-минутные метки рабочего дня с 9:00 AM до 9:30 PM
// @Tags Доступность
// @Produce json
// @Success 200 {array} string "Метки слотов"
// @Security ApiKeyAuth
// @Router /availability/time-intervals [get]
func (h *Handler) getTimeIntervals(c *gin.Context) {
	successResponse(c, http.StatusOK, domain.TimeIntervals())
}

// @Summary Допустимые времена окончания
// @Description Возвращает времена окончания, образующие непрерывное окно от заданного начала по свободным слотам дня
// @Tags Доступность
// @Produce json
// @Param tutor_id query string true "ID тьютора"
// @Param day query string true "День в формате 2006-01-02"
// @Param start query string true "Время начала, например 9:00 AM"
// @Success 200 {array} string "Времена окончания"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Security ApiKeyAuth
// @Router /availability/end-times [get]
func (h *Handler) getValidEndTimes(c *gin.Context) {
	tutorID := c.Query("tutor_id")
	day := c.Query("day")
	start := c.Query("start")
	if tutorID == "" || day == "" || start == "" {
		badRequestResponse(c, "требуются tutor_id, day и start")
		return
	}

	mode := domain.SessionMode(c.DefaultQuery("mode", string(domain.SessionModeOnline)))

	slots, err := h.services.Availability.GetDay(c.Request.Context(), tutorID, day)
	if err != nil {
		badRequestResponse(c, err.Error())
		return
	}

	available := make([]string, 0, len(slots))
	for _, slot := range slots {
		if slot.EligibleFor(mode) {
			available = append(available, slot.Time)
		}
	}

	endTimes, err := domain.ValidEndTimes(start, available)
	if err != nil {
		badRequestResponse(c, err.Error())
		return
	}

	successResponse(c, http.StatusOK, endTimes)
}

// @Summary Сетка доступности за месяц
// @Tags Доступность
// @Produce json
// @Param tutorId path string true "ID тьютора"
// @Param month path string true "Месяц в формате 2006-01"
// @Success 200 {object} domain.MonthAvailability "Сетка месяца"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /availability/{tutorId}/{month} [get]
func (h *Handler) getMonthAvailability(c *gin.Context) {
	tutorID := c.Param("tutorId")
	month := c.Param("month")

	availability, err := h.services.Availability.GetMonth(c.Request.Context(), tutorID, month)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	successResponse(c, http.StatusOK, availability)
}

// @Summary Слоты одного дня
// @Tags Доступность
// @Produce json
// @Param tutorId path string true "ID тьютора"
// @Param day path string true "День в формате 2006-01-02"
// @Success 200 {array} domain.TimeSlot "Слоты дня"
// @Failure 400 {object} errorResponseBody "Неверный формат дня"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Security ApiKeyAuth
// @Router /availability/{tutorId}/day/{day} [get]
func (h *Handler) getDayAvailability(c *gin.Context) {
	tutorID := c.Param("tutorId")
	day := c.Param("day")

	slots, err := h.services.Availability.GetDay(c.Request.Context(), tutorID, day)
	if err != nil {
		badRequestResponse(c, err.Error())
		return
	}

	successResponse(c, http.StatusOK, slots)
}

// @Summary Редактировать слоты дня
// @Description Применяет операцию selectAll, clearAll или toggle к слотам дня тьютора; забронированные слоты не меняются
// @Tags Доступность
// @Accept json
// @Produce json
// @Param input body domain.EditDayDTO true "Операция редактирования"
// @Success 200 {array} domain.TimeSlot "Слоты дня после изменения"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 403 {object} errorResponseBody "Требуется роль тьютора"
// @Security ApiKeyAuth
// @Router /availability/edit [post]
func (h *Handler) editDayAvailability(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var input domain.EditDayDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	slots, err := h.services.Availability.EditDay(c.Request.Context(), userID, input)
	if err != nil {
		badRequestResponse(c, err.Error())
		return
	}

	successResponse(c, http.StatusOK, slots)
}

// @Summary Инициализировать счетчик сессий месяца
// @Description Создает нулевой недельный счетчик, если его еще нет; повторный вызов ничего не меняет
// @Tags Доступность
// @Produce json
// @Param tutorId path string true "ID тьютора"
// @Param month path string true "Месяц в формате 2006-01"
// @Success 200 {object} messageResponseType "Счетчик готов"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 403 {object} errorResponseBody "Требуется роль тьютора"
// @Security ApiKeyAuth
// @Router /availability/{tutorId}/{month}/session-count [post]
func (h *Handler) ensureSessionCount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	tutorID := c.Param("tutorId")
	if tutorID != userID {
		forbiddenResponse(c, "можно инициализировать только свой счетчик")
		return
	}

	month := c.Param("month")
	if err := h.services.Availability.EnsureSessionCount(c.Request.Context(), tutorID, month); err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "счетчик готов")
}
