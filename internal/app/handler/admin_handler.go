package handler

import (
	"errors"
	"net/http"
	"strconv"

	"arka/internal/app/ds"
	"arka/internal/app/dto"
	"arka/internal/app/repository"
	"arka/internal/app/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// GetAllRequests возвращает все заявки для админки
// @Summary Список всех заявок
// @Description Все заявки, опционально отфильтрованные по статусу
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Фильтр по статусу" Enums(new, contacted, in_progress, completed)
// @Success 200 {object} dto.RequestListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/admin/requests [get]
func (h *APIHandler) GetAllRequests(c *gin.Context) {
	status := c.Query("status")
	if status != "" && !ds.ValidRequestStatus(ds.RequestStatus(status)) {
		h.errorResponse(c, http.StatusBadRequest, "Invalid status filter")
		return
	}

	requests, err := h.Repository.GetAllRequests(status)
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

// UpdateRequestStatus меняет статус и/или заметки по заявке
// @Summary Смена статуса заявки
// @Description Фиксирует переход в истории и уведомляет клиента письмом
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заявки"
// @Param request body dto.UpdateRequestStatusRequest true "Новый статус и заметки"
// @Success 200 {object} dto.RequestResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/admin/requests/{id} [put]
func (h *APIHandler) UpdateRequestStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Invalid request ID")
		return
	}

	var req dto.UpdateRequestStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.validationErrorResponse(c, err)
		return
	}

	request, err := h.Repository.GetRequestByID(uint(id))
	if err != nil {
		if repository.IsNotFound(err) {
			h.errorResponse(c, http.StatusNotFound, "Request not found")
		} else {
			logrus.Error("Error getting request: ", err)
			h.errorResponse(c, http.StatusInternalServerError, "Failed to load request")
		}
		return
	}

	// Пустой статус в теле — правка только заметок
	newStatus := request.Status
	if req.Status != "" {
		newStatus = ds.RequestStatus(req.Status)
	}

	if err := h.Notifications.ApplyStatusChange(request, newStatus, req.AdminNotes); err != nil {
		if errors.Is(err, services.ErrInvalidStatus) {
			h.errorResponse(c, http.StatusBadRequest, "Invalid status")
			return
		}
		logrus.Error("Error applying status change: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Failed to update request")
		return
	}

	c.JSON(http.StatusOK, requestToDTO(request))
}

// GetRequestStatusUpdates возвращает историю переходов по заявке
// @Summary История статусов заявки
// @Description Переходы статусов в обратном хронологическом порядке
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заявки"
// @Success 200 {object} dto.StatusUpdateListResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/admin/requests/{id}/status-updates [get]
func (h *APIHandler) GetRequestStatusUpdates(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Invalid request ID")
		return
	}

	if _, err := h.Repository.GetRequestByID(uint(id)); err != nil {
		h.errorResponse(c, http.StatusNotFound, "Request not found")
		return
	}

	updates, err := h.Repository.GetStatusUpdates(uint(id))
	if err != nil {
		logrus.Error("Error getting status updates: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Failed to load status updates")
		return
	}

	dtoUpdates := make([]dto.StatusUpdateResponse, len(updates))
	for i, u := range updates {
		dtoUpdates[i] = dto.StatusUpdateResponse{
			ID:        u.ID,
			OldStatus: string(u.OldStatus),
			NewStatus: string(u.NewStatus),
			Notified:  u.Notified,
			CreatedAt: u.CreatedAt,
		}
		if u.AdminMessage != nil {
			dtoUpdates[i].AdminMessage = *u.AdminMessage
		}
	}

	c.JSON(http.StatusOK, dto.StatusUpdateListResponse{
		Updates: dtoUpdates,
		Total:   len(dtoUpdates),
	})
}
