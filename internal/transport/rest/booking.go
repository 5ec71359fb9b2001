package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"chalkup/internal/domain"
)

// @Summary Найти тьюторов по критериям
// @Description Возвращает активных тьюторов с позицией прайс-листа под предмет, класс и ценовой коридор
// @Tags Подбор
// @Accept json
// @Produce json
// @Param input body domain.MatchRequestDTO true "Критерии подбора"
// @Success 200 {array} domain.User "Подходящие тьюторы"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Security ApiKeyAuth
// @Router /matching/tutors [post]
func (h *Handler) findCandidateTutors(c *gin.Context) {
	var input domain.MatchRequestDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	tutors, err := h.services.Matching.FindCandidateTutors(c.Request.Context(), input)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	successResponse(c, http.StatusOK, tutors)
}

// @Summary Подобрать тьютора на окно
// @Description Выбирает тьютора, полностью покрывающего окно, с наименьшей загрузкой на неделе окна
// @Tags Подбор
// @Accept json
// @Produce json
// @Param input body domain.MatchRequestDTO true "Критерии подбора и окно"
// @Success 200 {object} domain.MatchResult "Выбранный тьютор"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 404 {object} errorResponseBody "Подходящий тьютор не найден"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /matching/window [post]
func (h *Handler) matchTutorForWindow(c *gin.Context) {
	var input domain.MatchRequestDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	result, err := h.services.Matching.MatchTutorForWindow(c.Request.Context(), input)
	if err != nil {
		// "никого нет" отличается от "не смогли проверить": сбой
		// хранилища не должен выглядеть как пустой результат подбора
		switch {
		case errors.Is(err, domain.ErrNoAvailabilityData):
			notFoundResponse(c, err.Error())
		case errors.Is(err, domain.ErrMalformedRange):
			badRequestResponse(c, err.Error())
		default:
			h.logger.Error("ошибка подбора тьютора", zap.Error(err))
			internalServerErrorResponse(c)
		}
		return
	}

	successResponse(c, http.StatusOK, result)
}

// @Summary Календарь доступности кандидатов
// @Description Объединяет свободные слоты всех подходящих тьюторов за месяц в один календарь по датам
// @Tags Подбор
// @Accept json
// @Produce json
// @Param input body domain.CandidateCalendarDTO true "Критерии подбора и месяц"
// @Success 200 {object} map[string][]string "Даты месяца со свободными временами"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /matching/calendar [post]
func (h *Handler) getCandidateCalendar(c *gin.Context) {
	var input domain.CandidateCalendarDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	calendar, err := h.services.Matching.CandidateCalendar(c.Request.Context(), input)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	successResponse(c, http.StatusOK, calendar)
}

// @Summary Забронировать сессию
// @Description Бронирует окно у тьютора: помечает слоты, увеличивает недельный счетчик, создает запись и уведомления
// @Tags Бронирование
// @Accept json
// @Produce json
// @Param input body domain.BookSessionDTO true "Параметры бронирования"
// @Success 201 {object} domain.Appointment "Созданная сессия"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 409 {object} errorResponseBody "Окно уже недоступно"
// @Security ApiKeyAuth
// @Router /bookings [post]
func (h *Handler) bookSession(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var input domain.BookSessionDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	appointment, err := h.services.Booking.Book(c.Request.Context(), userID, input)
	if err != nil {
		h.logger.Error("ошибка бронирования сессии", zap.Error(err))
		if errors.Is(err, domain.ErrWindowUnavailable) || errors.Is(err, domain.ErrNoAvailabilityData) {
			errorResponse(c, http.StatusConflict, err.Error())
			return
		}
		badRequestResponse(c, err.Error())
		return
	}

	createdResponse(c, appointment)
}

// @Summary Отменить сессию
// @Description Освобождает слоты, уменьшает недельный счетчик, рассылает уведомления и удаляет запись
// @Tags Бронирование
// @Produce json
// @Param id path string true "ID сессии"
// @Success 204 {object} nil "Сессия отменена"
// @Failure 400 {object} errorResponseBody "Ошибка отмены"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 403 {object} errorResponseBody "Сессия принадлежит другим пользователям"
// @Security ApiKeyAuth
// @Router /bookings/{id} [delete]
func (h *Handler) cancelSession(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	id := c.Param("id")
	if err := h.services.Booking.Cancel(c.Request.Context(), userID, id); err != nil {
		h.logger.Error("ошибка отмены сессии", zap.String("id", id), zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	noContentResponse(c)
}
