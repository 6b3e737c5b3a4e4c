package handler

import (
	"errors"
	"net/http"
	"strconv"

	"arka/internal/app/ds"
	"arka/internal/app/dto"
	"arka/internal/app/repository"
	"arka/internal/app/role"
	"arka/internal/app/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// GetPayment возвращает платёж по заявке, лениво создавая его
// @Summary Страница оплаты
// @Description Возвращает платёж заявки; при первом обращении создаёт его с оценочной суммой
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заявки"
// @Success 200 {object} dto.PaymentResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/payment/{id} [get]
func (h *APIHandler) GetPayment(c *gin.Context) {
	request, ok := h.ownedRequest(c)
	if !ok {
		return
	}

	payment, err := h.Payments.EnsurePayment(request)
	if err != nil {
		logrus.Error("Error ensuring payment: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Failed to load payment")
		return
	}

	c.JSON(http.StatusOK, h.paymentToDTO(payment))
}

// PaymentCallback принимает вебхук платёжного гейтвея.
// Маршрут без авторизации: гейтвей аутентифицируется HMAC-подписью.
// @Summary Колбэк гейтвея
// @Description Фиксирует оплату после проверки подписи; заявка переходит в contacted
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body dto.PaymentCallbackRequest true "Тело колбэка"
// @Success 200 {object} dto.PaymentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/payment/callback [post]
func (h *APIHandler) PaymentCallback(c *gin.Context) {
	var req dto.PaymentCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Invalid payment callback")
		return
	}

	request, err := h.Repository.GetRequestByID(req.RequestID)
	if err != nil {
		// Не раскрываем, существует ли заявка
		h.errorResponse(c, http.StatusBadRequest, "Invalid payment callback")
		return
	}

	payment, err := h.Payments.CompleteFromCallback(request, services.CallbackInput{
		RazorpayPaymentID: req.RazorpayPaymentID,
		RazorpayOrderID:   req.RazorpayOrderID,
		RazorpaySignature: req.RazorpaySignature,
		RequestID:         req.RequestID,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBadSignature):
			logrus.Warnf("payment callback with bad signature for request %d", req.RequestID)
			h.errorResponse(c, http.StatusBadRequest, "Invalid payment callback")
		case errors.Is(err, services.ErrPaymentNotFound):
			h.errorResponse(c, http.StatusBadRequest, "Invalid payment callback")
		default:
			logrus.Error("Error completing payment: ", err)
			h.errorResponse(c, http.StatusInternalServerError, "Failed to process payment")
		}
		return
	}

	c.JSON(http.StatusOK, h.paymentToDTO(payment))
}

// PaymentSuccess возвращает данные для страницы успешной оплаты
// @Summary Подтверждение оплаты
// @Description Платёж и ссылка на квитанцию после успешной оплаты
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заявки"
// @Success 200 {object} dto.PaymentResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/payment/success/{id} [get]
func (h *APIHandler) PaymentSuccess(c *gin.Context) {
	request, ok := h.ownedRequest(c)
	if !ok {
		return
	}

	payment, err := h.Repository.GetPaymentByRequestID(request.ID)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Payment not found")
		return
	}

	h.successResponse(c, http.StatusOK, "Payment confirmed. Thank you!", h.paymentToDTO(payment))
}

// ownedRequest достаёт заявку из :id и проверяет владение.
// Админ видит любую заявку, клиент — только свою.
func (h *APIHandler) ownedRequest(c *gin.Context) (*ds.WebsiteRequest, bool) {
	userID, userRole, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return nil, false
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Invalid request ID")
		return nil, false
	}

	request, err := h.Repository.GetRequestByID(uint(id))
	if err != nil {
		if repository.IsNotFound(err) {
			h.errorResponse(c, http.StatusNotFound, "Request not found")
		} else {
			logrus.Error("Error getting request: ", err)
			h.errorResponse(c, http.StatusInternalServerError, "Failed to load request")
		}
		return nil, false
	}

	if userRole != role.Admin {
		if request.UserID == nil || *request.UserID != userID {
			h.errorResponse(c, http.StatusForbidden, "Access denied")
			return nil, false
		}
	}

	return request, true
}

func (h *APIHandler) paymentToDTO(p *ds.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:            p.ID,
		RequestID:     p.RequestID,
		Amount:        p.Amount,
		Currency:      p.Currency,
		Status:        string(p.Status),
		InvoiceNumber: p.InvoiceNumber,
		PaidAt:        p.PaidAt,
		ReceiptURL:    h.Payments.ReceiptURL(p),
		CreatedAt:     p.CreatedAt,
	}
}
