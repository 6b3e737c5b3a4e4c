package ds

import "time"

// Статусы жизненного цикла заявки: new → contacted → in_progress → completed
type RequestStatus string

const (
	StatusNew        RequestStatus = "new"
	StatusContacted  RequestStatus = "contacted"
	StatusInProgress RequestStatus = "in_progress"
	StatusCompleted  RequestStatus = "completed"
)

// StatusLabel возвращает человекочитаемую метку статуса (для писем и админки)
func StatusLabel(s RequestStatus) string {
	switch s {
	case StatusNew:
		return "New"
	case StatusContacted:
		return "Contacted"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

// ValidRequestStatus проверяет что статус из допустимого набора
func ValidRequestStatus(s RequestStatus) bool {
	switch s {
	case StatusNew, StatusContacted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Типы сайтов, которые заказывают клиенты
const (
	TypeEcommerce = "ecommerce"
	TypeBlog      = "blog"
	TypePortfolio = "portfolio"
	TypeBusiness  = "business"
	TypeLanding   = "landing"
	TypeSaaS      = "saas"
	TypeSocial    = "social"
	TypeOther     = "other"
)

// 2. Таблица заявок на сайт
type WebsiteRequest struct {
	ID     uint  `gorm:"primaryKey"`
	UserID *uint `gorm:"index;default:null"` // nullable — аноним до авторизации
	User   *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	BusinessName string  `gorm:"type:varchar(200);not null"`
	WebsiteType  string  `gorm:"type:varchar(50);not null;default:'other'"`
	Email        string  `gorm:"type:varchar(254);not null"`
	Description  string  `gorm:"type:text;not null"`
	Budget       *string `gorm:"type:varchar(50)"` // необязательная строка диапазона

	Status          RequestStatus `gorm:"type:varchar(20);not null;default:'new'"`
	AdminNotes      *string       `gorm:"type:text"`
	StatusUpdatedAt *time.Time    `gorm:"default:null"`
	NotifiedUser    bool          `gorm:"type:boolean;default:false;not null"`

	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	PaymentNote   *string       `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// 3. Таблица истории смен статуса (append-only)
type StatusUpdate struct {
	ID        uint           `gorm:"primaryKey"`
	RequestID uint           `gorm:"not null;index"`
	Request   WebsiteRequest `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE"`

	OldStatus    RequestStatus `gorm:"type:varchar(20);not null"`
	NewStatus    RequestStatus `gorm:"type:varchar(20);not null"`
	AdminMessage *string       `gorm:"type:text"`
	Notified     bool          `gorm:"type:boolean;default:false;not null"`
	CreatedAt    time.Time     `gorm:"not null"`
}
