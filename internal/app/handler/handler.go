package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"arka/internal/app/config"
	"arka/internal/app/ds"
	"arka/internal/app/dto"
	"arka/internal/app/mailer"
	"arka/internal/app/redis"
	"arka/internal/app/role"
	"arka/internal/app/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// store — срез репозитория, который используют обработчики.
// Реализации: *repository.Repository и фейк в тестах.
type store interface {
	CreateRequest(userID *uint, businessName, websiteType, email, description string, budget *string) (*ds.WebsiteRequest, error)
	GetRequestByID(id uint) (*ds.WebsiteRequest, error)
	GetRequestsByUser(userID uint) ([]ds.WebsiteRequest, error)
	GetAllRequests(status string) ([]ds.WebsiteRequest, error)
	GetStatusUpdates(requestID uint) ([]ds.StatusUpdate, error)
	GetPaymentByRequestID(requestID uint) (*ds.Payment, error)
	CountRequests() (int64, error)
	CountActiveRequests() (int64, error)
	CountCompletedRequests() (int64, error)
	GetUserByID(id uint) (*ds.User, error)
	GetUserByLogin(login string) (*ds.User, error)
	UserExistsByLogin(login string) (bool, error)
	UserExistsByEmail(email string) (bool, error)
	CreateUser(login, email, password, fullName string, isAdmin bool) (*ds.User, error)
}

// sessionStore — срез Redis-клиента: парковка заявок и блэклист токенов
type sessionStore interface {
	ParkPendingRequest(ctx context.Context, sessionID string, req redis.PendingRequest) error
	PopPendingRequest(ctx context.Context, sessionID string) (*redis.PendingRequest, error)
	WriteJWTToBlacklist(ctx context.Context, jwtStr string, jwtTTL time.Duration) error
}

// APIHandler содержит обработчики для REST API
type APIHandler struct {
	Repository    store
	RedisClient   sessionStore
	Config        *config.Config
	Mailer        mailer.Sender
	Notifications *services.NotificationService
	Payments      *services.PaymentService
	AuthHandler   *AuthHandler
}

func NewAPIHandler(
	r store,
	redisClient sessionStore,
	cfg *config.Config,
	sender mailer.Sender,
	notifications *services.NotificationService,
	payments *services.PaymentService,
	authHandler *AuthHandler,
) *APIHandler {
	return &APIHandler{
		Repository:    r,
		RedisClient:   redisClient,
		Config:        cfg,
		Mailer:        sender,
		Notifications: notifications,
		Payments:      payments,
		AuthHandler:   authHandler,
	}
}

// Получение текущего пользователя из контекста
func (h *APIHandler) getUserFromContext(c *gin.Context) (uint, role.Role, error) {
	userID, exists := c.Get("userID")
	if !exists {
		logrus.Warn("userID not found in context")
		return 0, role.Client, fmt.Errorf("user not authenticated")
	}

	userRole, _ := c.Get("userRole")
	r, _ := userRole.(role.Role)

	id, ok := userID.(uint)
	if !ok {
		logrus.Errorf("getUserFromContext: invalid userID type: %T", userID)
		return 0, r, fmt.Errorf("invalid user ID")
	}

	return id, r, nil
}

// ============ Вспомогательные функции ============

func (h *APIHandler) errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{
		Status:  "fail",
		Message: message,
	})
}

func (h *APIHandler) successResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	response := dto.SuccessResponse{
		Status:  "success",
		Message: message,
	}
	if data != nil {
		response.Data = data
	}
	c.JSON(statusCode, response)
}

// validationErrorResponse отдаёт пофилдовые ошибки формы контрактом
// {"errors": {...}} со статусом 400 — его ждут AJAX-клиенты
func (h *APIHandler) validationErrorResponse(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{
			Errors: map[string]string{"non_field": "Invalid request body."},
		})
		return
	}

	fieldErrors := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fieldErrors[toSnakeCase(fe.Field())] = fieldErrorMessage(fe)
	}

	c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{Errors: fieldErrors})
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "oneof":
		return "Select a valid choice."
	case "min":
		return fmt.Sprintf("Ensure this value has at least %s characters.", fe.Param())
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	default:
		return "Invalid value."
	}
}

func toSnakeCase(field string) string {
	var b strings.Builder
	for i, r := range field {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// requestToDTO переводит запись заявки в ответ API
func requestToDTO(r *ds.WebsiteRequest) dto.RequestResponse {
	resp := dto.RequestResponse{
		ID:              r.ID,
		BusinessName:    r.BusinessName,
		WebsiteType:     r.WebsiteType,
		Email:           r.Email,
		Description:     r.Description,
		Status:          string(r.Status),
		StatusLabel:     ds.StatusLabel(r.Status),
		PaymentStatus:   string(r.PaymentStatus),
		StatusUpdatedAt: r.StatusUpdatedAt,
		CreatedAt:       r.CreatedAt,
	}
	if r.Budget != nil {
		resp.Budget = *r.Budget
	}
	if r.AdminNotes != nil {
		resp.AdminNotes = *r.AdminNotes
	}
	return resp
}

// sendRequestEmails — два письма о новой заявке: админу и клиенту.
// Неудачи только логируются, податель формы всегда видит успех.
func (h *APIHandler) sendRequestEmails(request *ds.WebsiteRequest, loggedIn bool) {
	budget := ""
	if request.Budget != nil {
		budget = *request.Budget
	}

	subject, body := mailer.BuildNewRequestEmail(
		request.BusinessName, request.Email, request.WebsiteType,
		request.Description, budget, loggedIn, time.Now())
	if err := h.Mailer.Send(h.Config.AdminEmail, subject, body); err != nil {
		logrus.Errorf("admin notification email failed: %v", err)
	}

	subject, body = mailer.BuildConfirmationEmail(request.BusinessName, request.Email)
	if err := h.Mailer.Send(request.Email, subject, body); err != nil {
		logrus.Errorf("confirmation email to %s failed: %v", request.Email, err)
	}
}
