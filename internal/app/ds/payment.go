package ds

import "time"

// Статусы платежа (гейтвей-вариант схемы)
type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentCompleted  PaymentStatus = "completed"
	PaymentFailed     PaymentStatus = "failed"
	PaymentRefunded   PaymentStatus = "refunded"
)

// 4. Таблица платежей — не больше одного на заявку
type Payment struct {
	ID        uint           `gorm:"primaryKey"`
	RequestID uint           `gorm:"uniqueIndex;not null"`
	Request   WebsiteRequest `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE"`

	Amount   int64         `gorm:"not null"` // рупии, без копеек
	Currency string        `gorm:"type:varchar(3);not null;default:'INR'"`
	Status   PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'"`

	// Поля гейтвея, заполняются колбэком
	RazorpayOrderID   *string `gorm:"type:varchar(100)"`
	RazorpayPaymentID *string `gorm:"type:varchar(100)"`
	RazorpaySignature *string `gorm:"type:varchar(255)"`

	InvoiceNumber string  `gorm:"type:varchar(50);uniqueIndex;not null"`
	ReceiptObject *string `gorm:"type:varchar(255)"` // ключ квитанции в MinIO

	CreatedAt time.Time  `gorm:"not null"`
	UpdatedAt time.Time  `gorm:"not null"`
	PaidAt    *time.Time `gorm:"default:null"`
}
