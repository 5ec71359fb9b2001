package rest

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"chalkup/internal/domain"
)

const maxCertificationSize = 10 << 20 // 10 МБ

// @Summary Создать пользователя
// @Description Создает пользователя от имени администратора
// @Tags Пользователи
// @Accept json
// @Produce json
// @Param input body domain.CreateUserDTO true "Данные пользователя"
// @Success 201 {object} map[string]interface{} "ID созданного пользователя"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /users [post]
func (h *Handler) createUser(c *gin.Context) {
	var input domain.CreateUserDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.User.Create(c.Request.Context(), input)
	if err != nil {
		h.logger.Error("ошибка создания пользователя", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	createdResponse(c, gin.H{"id": id})
}

// @Summary Получить пользователя по ID
// @Description Возвращает профиль пользователя, включая прайс-лист тьютора
// @Tags Пользователи
// @Produce json
// @Param id path string true "ID пользователя"
// @Success 200 {object} domain.User "Профиль пользователя"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 404 {object} errorResponseBody "Пользователь не найден"
// @Security ApiKeyAuth
// @Router /users/{id} [get]
func (h *Handler) getUserByID(c *gin.Context) {
	id := c.Param("id")

	user, err := h.services.User.GetByID(c.Request.Context(), id)
	if err != nil {
		notFoundResponse(c, err.Error())
		return
	}

	successResponse(c, http.StatusOK, user)
}

// @Summary Получить текущего пользователя
// @Description Возвращает профиль авторизованного пользователя
// @Tags Пользователи
// @Produce json
// @Success 200 {object} domain.User "Профиль пользователя"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Security ApiKeyAuth
// @Router /users/me [get]
func (h *Handler) getCurrentUser(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	user, err := h.services.User.GetByID(c.Request.Context(), userID)
	if err != nil {
		notFoundResponse(c, err.Error())
		return
	}

	successResponse(c, http.StatusOK, user)
}

// @Summary Обновить пользователя
// @Description Обновляет профиль: имя, класс, прайс-лист тьютора
// @Tags Пользователи
// @Accept json
// @Produce json
// @Param id path string true "ID пользователя"
// @Param input body domain.UpdateUserDTO true "Изменяемые поля"
// @Success 200 {object} messageResponseType "Профиль обновлен"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 403 {object} errorResponseBody "Можно менять только свой профиль"
// @Security ApiKeyAuth
// @Router /users/{id} [put]
func (h *Handler) updateUser(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	id := c.Param("id")
	userType, _ := getUserType(c)
	if id != userID && userType != domain.UserTypeAdmin {
		forbiddenResponse(c, "можно менять только свой профиль")
		return
	}

	var input domain.UpdateUserDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.User.Update(c.Request.Context(), id, input); err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "профиль обновлен")
}

// @Summary Сменить пароль
// @Tags Пользователи
// @Accept json
// @Produce json
// @Param id path string true "ID пользователя"
// @Param input body domain.PasswordUpdateDTO true "Старый и новый пароль"
// @Success 200 {object} messageResponseType "Пароль обновлен"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 403 {object} errorResponseBody "Можно менять только свой пароль"
// @Security ApiKeyAuth
// @Router /users/{id}/password [put]
func (h *Handler) updatePassword(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	id := c.Param("id")
	if id != userID {
		forbiddenResponse(c, "можно менять только свой пароль")
		return
	}

	var input domain.PasswordUpdateDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.User.UpdatePassword(c.Request.Context(), id, input); err != nil {
		badRequestResponse(c, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "пароль обновлен")
}

// @Summary Удалить пользователя
// @Tags Пользователи
// @Produce json
// @Param id path string true "ID пользователя"
// @Success 204 {object} nil "Пользователь удален"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Пользователь не найден"
// @Security ApiKeyAuth
// @Router /users/{id} [delete]
func (h *Handler) deleteUser(c *gin.Context) {
	id := c.Param("id")

	if err := h.services.User.Delete(c.Request.Context(), id); err != nil {
		notFoundResponse(c, err.Error())
		return
	}

	noContentResponse(c)
}

// @Summary Список пользователей
// @Tags Пользователи
// @Produce json
// @Param limit query int false "Размер страницы" default(20)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {array} domain.User "Пользователи"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /users [get]
func (h *Handler) getUsers(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	users, err := h.services.User.List(c.Request.Context(), limit, offset)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	successResponse(c, http.StatusOK, users)
}

// @Summary Загрузить сертификат тьютора
// @Description Принимает файл сертификата и кладет его в объектное хранилище
// @Tags Пользователи
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "ID тьютора"
// @Param file formData file true "Файл сертификата"
// @Success 201 {object} map[string]interface{} "URL загруженного файла"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 403 {object} errorResponseBody "Можно загружать только свои сертификаты"
// @Security ApiKeyAuth
// @Router /users/{id}/certifications [post]
func (h *Handler) uploadCertification(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	id := c.Param("id")
	if id != userID {
		forbiddenResponse(c, "можно загружать только свои сертификаты")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		badRequestResponse(c, "файл не найден в запросе")
		return
	}
	if fileHeader.Size > maxCertificationSize {
		badRequestResponse(c, "файл слишком большой")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		badRequestResponse(c, "не удалось прочитать файл")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		badRequestResponse(c, "не удалось прочитать файл")
		return
	}

	fileURL, err := h.services.User.UploadCertification(c.Request.Context(), id, data, fileHeader.Filename)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	createdResponse(c, gin.H{"url": fileURL})
}

// @Summary Получить ссылку на сертификат
// @Description Возвращает временную подписанную ссылку на файл сертификата
// @Tags Пользователи
// @Produce json
// @Param id path string true "ID тьютора"
// @Param file query string true "URL файла в хранилище"
// @Success 200 {object} map[string]interface{} "Подписанная ссылка"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Security ApiKeyAuth
// @Router /users/{id}/certifications/url [get]
func (h *Handler) getCertificationURL(c *gin.Context) {
	fileURL := c.Query("file")
	if fileURL == "" {
		badRequestResponse(c, "требуется параметр file")
		return
	}

	url, err := h.services.User.CertificationURL(c.Request.Context(), fileURL)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	successResponse(c, http.StatusOK, gin.H{"url": url})
}
