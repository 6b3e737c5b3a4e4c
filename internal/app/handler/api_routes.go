package handler

import (
	"arka/internal/app/middleware"
	"arka/internal/app/role"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterAPIRoutes регистрирует все REST API маршруты с авторизацией
func (h *APIHandler) RegisterAPIRoutes(router *gin.Engine, authMiddleware *middleware.AuthMiddleware) {
	// REST API маршруты
	api := router.Group("/api")

	// ============ Лендинг (публичные эндпоинты) ============
	api.GET("/stats", h.GetStats)
	api.POST("/contact", h.Contact)

	// ============ Заявки (Website Requests) ============
	requests := api.Group("/requests")
	{
		// Аноним паркует данные до логина, авторизованный создаёт запись
		requests.POST("", authMiddleware.WithOptionalAuth(), h.CreateRequest)

		// Личный кабинет
		requests.GET("", authMiddleware.WithAuthCheck(role.Client, role.Admin), h.GetMyRequests)
	}

	// ============ Аутентификация ============
	auth := api.Group("/auth")
	{
		// Публичные эндпоинты
		auth.POST("/register", h.AuthHandler.RegisterUser) // POST регистрация
		auth.POST("/login", h.AuthHandler.LoginUser)       // POST аутентификация JWT

		// Защищенные эндпоинты
		auth.GET("/profile", authMiddleware.WithAuthCheck(role.Client, role.Admin), h.AuthHandler.GetUserProfile)
		auth.POST("/logout", authMiddleware.WithAuthCheck(role.Client, role.Admin), h.AuthHandler.LogoutUser)
	}

	// ============ Платежи ============
	payment := api.Group("/payment")
	{
		payment.GET("/:id", authMiddleware.WithAuthCheck(role.Client, role.Admin), h.GetPayment)
		payment.GET("/success/:id", authMiddleware.WithAuthCheck(role.Client, role.Admin), h.PaymentSuccess)

		// Колбэк гейтвея: без JWT, аутентификация HMAC-подписью
		payment.POST("/callback", h.PaymentCallback)
	}

	// ============ Админка ============
	admin := api.Group("/admin")
	admin.Use(authMiddleware.WithAuthCheck(role.Admin))
	{
		admin.GET("/requests", h.GetAllRequests)                             // GET все заявки с фильтром
		admin.PUT("/requests/:id", h.UpdateRequestStatus)                    // PUT смена статуса с уведомлением
		admin.GET("/requests/:id/status-updates", h.GetRequestStatusUpdates) // GET история переходов
	}

	// Ping эндпоинт для проверки
	router.GET("/ping", h.Ping)

	// Swagger документация
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// Ping проверяет работоспособность API
// @Summary Проверка работоспособности
// @Description Возвращает простой ответ для проверки работы сервера
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func (h *APIHandler) Ping(ctx *gin.Context) {
	ctx.JSON(200, gin.H{"message": "pong"})
}
