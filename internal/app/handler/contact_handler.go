package handler

import (
	"net/http"
	"time"

	"arka/internal/app/dto"
	"arka/internal/app/mailer"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Contact пересылает сообщение контактной формы админу
// @Summary Контактная форма
// @Description Пересылает сообщение на адрес оператора; отправитель всегда видит успех
// @Tags Contact
// @Accept json
// @Produce json
// @Param request body dto.ContactRequest true "Сообщение"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Router /api/contact [post]
func (h *APIHandler) Contact(c *gin.Context) {
	var req dto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.validationErrorResponse(c, err)
		return
	}

	subject, body := mailer.BuildContactEmail(req.Name, req.Email, req.Message, time.Now())
	if err := h.Mailer.Send(h.Config.AdminEmail, subject, body); err != nil {
		// Сбой почты не показываем посетителю
		logrus.Errorf("contact form email failed: %v", err)
	}

	h.successResponse(c, http.StatusOK, "Thanks for reaching out! We'll get back to you soon.", nil)
}
