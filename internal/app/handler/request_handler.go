package handler

import (
	"net/http"

	"arka/internal/app/dto"
	"arka/internal/app/middleware"
	"arka/internal/app/redis"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// GetStats возвращает счётчики для лендинга
// @Summary Статистика для лендинга
// @Description Возвращает количество всех, активных и завершённых проектов
// @Tags Requests
// @Produce json
// @Success 200 {object} dto.StatsResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/stats [get]
func (h *APIHandler) GetStats(c *gin.Context) {
	total, err := h.Repository.CountRequests()
	if err != nil {
		logrus.Error("Error counting requests: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Failed to load stats")
		return
	}
	active, err := h.Repository.CountActiveRequests()
	if err != nil {
		logrus.Error("Error counting active requests: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Failed to load stats")
		return
	}
	completed, err := h.Repository.CountCompletedRequests()
	if err != nil {
		logrus.Error("Error counting completed requests: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Failed to load stats")
		return
	}

	c.JSON(http.StatusOK, dto.StatsResponse{
		TotalProjects:  total,
		ActiveProjects: active,
		HappyClients:   completed,
	})
}

// CreateRequest принимает заявку на сайт
// @Summary Подача заявки на сайт
// @Description Авторизованный пользователь сразу получает запись; аноним — парковку данных до логина
// @Tags Requests
// @Accept json
// @Produce json
// @Param request body dto.CreateRequestRequest true "Данные заявки"
// @Success 201 {object} dto.RequestResponse
// @Success 202 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/requests [post]
func (h *APIHandler) CreateRequest(c *gin.Context) {
	var req dto.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.validationErrorResponse(c, err)
		return
	}

	// Аноним: валидные данные ждут логина в Redis, записи в БД нет
	if _, exists := c.Get("userID"); !exists {
		sid := middleware.SessionID(c)
		if sid == "" {
			sid = middleware.IssueSession(c)
		}

		pending := redis.PendingRequest{
			BusinessName: req.BusinessName,
			WebsiteType:  req.WebsiteType,
			Email:        req.Email,
			Description:  req.Description,
			Budget:       req.Budget,
		}
		if err := h.RedisClient.ParkPendingRequest(c.Request.Context(), sid, pending); err != nil {
			logrus.Error("Error parking pending request: ", err)
			h.errorResponse(c, http.StatusInternalServerError, "Failed to save request")
			return
		}

		h.successResponse(c, http.StatusAccepted,
			"Please log in or sign up to finish submitting your request", gin.H{
				"next": "/api/auth/login",
			})
		return
	}

	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var budget *string
	if req.Budget != "" {
		budget = &req.Budget
	}

	request, err := h.Repository.CreateRequest(&userID, req.BusinessName, req.WebsiteType, req.Email, req.Description, budget)
	if err != nil {
		logrus.Error("Error creating request: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Failed to save request")
		return
	}

	h.sendRequestEmails(request, true)

	c.JSON(http.StatusCreated, requestToDTO(request))
}

// GetMyRequests возвращает заявки текущего пользователя
// @Summary Личный кабинет
// @Description Список заявок текущего пользователя, новые сверху
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.RequestListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/requests [get]
func (h *APIHandler) GetMyRequests(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	requests, err := h.Repository.GetRequestsByUser(userID)
	if err != nil {
		logrus.Error("Error getting requests: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Failed to load requests")
		return
	}

	dtoRequests := make([]dto.RequestResponse, len(requests))
	for i := range requests {
		dtoRequests[i] = requestToDTO(&requests[i])
	}

	c.JSON(http.StatusOK, dto.RequestListResponse{
		Requests: dtoRequests,
		Total:    len(dtoRequests),
	})
}
