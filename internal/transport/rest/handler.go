package rest

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"chalkup/config"
	"chalkup/internal/service"
	"chalkup/internal/transport/websocket"
)

type Handler struct {
	services *service.Services
	logger   *zap.Logger
	config   *config.Config
	watchHub *websocket.WatchHub
}

func NewHandler(services *service.Services, logger *zap.Logger, config *config.Config, watchHub *websocket.WatchHub) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
		config:   config,
		watchHub: watchHub,
	}
}

func (h *Handler) InitRoutes(router *gin.Engine) {
	router.Use(h.loggerMiddleware())

	router.Use(h.errorMiddleware())

	router.Use(h.corsMiddleware())

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.register)
			auth.POST("/login", h.login)
			auth.POST("/refresh", h.refreshTokens)
			auth.POST("/logout", h.logout)
		}

		users := api.Group("/users")
		users.Use(h.authMiddleware())
		{
			users.GET("/me", h.getCurrentUser)
			users.GET("/:id", h.getUserByID)
			users.PUT("/:id", h.updateUser)
			users.PUT("/:id/password", h.updatePassword)

			tutors := users.Group("/")
			tutors.Use(h.tutorMiddleware())
			{
				tutors.POST("/:id/certifications", h.uploadCertification)
				tutors.GET("/:id/certifications/url", h.getCertificationURL)
			}

			admin := users.Group("/")
			admin.Use(h.adminMiddleware())
			{
				admin.POST("/", h.createUser)
				admin.GET("/", h.getUsers)
				admin.DELETE("/:id", h.deleteUser)
			}
		}

		availability := api.Group("/availability")
		availability.Use(h.authMiddleware())
		{
			availability.GET("/time-intervals", h.getTimeIntervals)
			availability.GET("/end-times", h.getValidEndTimes)
			availability.GET("/:tutorId/:month", h.getMonthAvailability)
			availability.GET("/:tutorId/day/:day", h.getDayAvailability)

			tutorRoutes := availability.Group("/", h.tutorMiddleware())
			{
				tutorRoutes.POST("/edit", h.editDayAvailability)
				tutorRoutes.POST("/:tutorId/:month/session-count", h.ensureSessionCount)
			}
		}

		matching := api.Group("/matching")
		matching.Use(h.authMiddleware())
		{
			matching.POST("/tutors", h.findCandidateTutors)
			matching.POST("/window", h.matchTutorForWindow)
			matching.POST("/calendar", h.getCandidateCalendar)
		}

		bookings := api.Group("/bookings")
		bookings.Use(h.authMiddleware())
		{
			bookings.POST("/", h.bookSession)
			bookings.DELETE("/:id", h.cancelSession)
		}

		appointments := api.Group("/appointments")
		appointments.Use(h.authMiddleware())
		{
			appointments.GET("/", h.getAppointments)
			appointments.GET("/dates", h.getAppointmentDates)
			appointments.GET("/:id", h.getAppointmentByID)
		}

		notifications := api.Group("/notifications")
		notifications.Use(h.authMiddleware())
		{
			notifications.GET("/", h.getNotifications)
			notifications.DELETE("/:id", h.deleteNotification)
		}
	}

	// живые обновления сетки доступности (авторизация внутри по токену)
	router.GET("/ws/availability", h.watchHub.HandleWebSocket)
}
