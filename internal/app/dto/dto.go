package dto

import "time"

// ============ Общие структуры ============

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ValidationErrorResponse — контракт AJAX-ошибок валидации: {"errors": {...}}
type ValidationErrorResponse struct {
	Errors map[string]string `json:"errors"`
}

// ============ Заявки (Website Requests) ============

type CreateRequestRequest struct {
	BusinessName string `json:"business_name" binding:"required,max=200"`
	WebsiteType  string `json:"website_type" binding:"required,oneof=ecommerce blog portfolio business landing saas social other"`
	Email        string `json:"email" binding:"required,email"`
	Description  string `json:"description" binding:"required"`
	Budget       string `json:"budget" binding:"omitempty,max=50"`
}

type RequestResponse struct {
	ID              uint       `json:"id"`
	BusinessName    string     `json:"business_name"`
	WebsiteType     string     `json:"website_type"`
	Email           string     `json:"email"`
	Description     string     `json:"description"`
	Budget          string     `json:"budget,omitempty"`
	Status          string     `json:"status"`
	StatusLabel     string     `json:"status_label"`
	PaymentStatus   string     `json:"payment_status"`
	AdminNotes      string     `json:"admin_notes,omitempty"`
	StatusUpdatedAt *time.Time `json:"status_updated_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type RequestListResponse struct {
	Requests []RequestResponse `json:"requests"`
	Total    int               `json:"total"`
}

// StatsResponse — счётчики для лендинга
type StatsResponse struct {
	TotalProjects  int64 `json:"total_projects"`
	ActiveProjects int64 `json:"active_projects"`
	HappyClients   int64 `json:"happy_clients"`
}

// UpdateRequestStatusRequest — админская операция смены статуса/заметок
type UpdateRequestStatusRequest struct {
	Status     string `json:"status" binding:"omitempty,oneof=new contacted in_progress completed"`
	AdminNotes string `json:"admin_notes"`
}

type StatusUpdateResponse struct {
	ID           uint      `json:"id"`
	OldStatus    string    `json:"old_status"`
	NewStatus    string    `json:"new_status"`
	AdminMessage string    `json:"admin_message,omitempty"`
	Notified     bool      `json:"notified"`
	CreatedAt    time.Time `json:"created_at"`
}

type StatusUpdateListResponse struct {
	Updates []StatusUpdateResponse `json:"updates"`
	Total   int                    `json:"total"`
}

// ============ Платежи ============

type PaymentResponse struct {
	ID            uint       `json:"id"`
	RequestID     uint       `json:"request_id"`
	Amount        int64      `json:"amount"`
	Currency      string     `json:"currency"`
	Status        string     `json:"status"`
	InvoiceNumber string     `json:"invoice_number"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	ReceiptURL    string     `json:"receipt_url,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// PaymentCallbackRequest — тело вебхука гейтвея (имена полей фиксированы Razorpay)
type PaymentCallbackRequest struct {
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
	RequestID         uint   `json:"request_id" binding:"required"`
}

// ============ Пользователи ============

type UserResponse struct {
	ID       uint   `json:"id"`
	Login    string `json:"login"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	IsAdmin  bool   `json:"is_admin"`
}

type RegisterRequest struct {
	Login    string `json:"login" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name"`
}

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ============ Контактная форма ============

type ContactRequest struct {
	Name    string `json:"name" binding:"required,max=200"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}
