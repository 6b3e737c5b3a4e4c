package repository

import (
	"arka/internal/app/ds"
	"time"
)

// Методы для работы с заявками на сайт

// CreateRequest сохраняет новую заявку. userID == nil допустим только
// теоретически: к моменту записи заявка всегда привязана к пользователю.
func (r *Repository) CreateRequest(userID *uint, businessName, websiteType, email, description string, budget *string) (*ds.WebsiteRequest, error) {
	now := time.Now()
	request := ds.WebsiteRequest{
		UserID:        userID,
		BusinessName:  businessName,
		WebsiteType:   websiteType,
		Email:         email,
		Description:   description,
		Budget:        budget,
		Status:        ds.StatusNew,
		PaymentStatus: ds.PaymentPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := r.db.Create(&request).Error
	if err != nil {
		return nil, err
	}

	return &request, nil
}

func (r *Repository) GetRequestByID(id uint) (*ds.WebsiteRequest, error) {
	var request ds.WebsiteRequest
	err := r.db.First(&request, id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// GetRequestsByUser — заявки пользователя, новые сверху
func (r *Repository) GetRequestsByUser(userID uint) ([]ds.WebsiteRequest, error) {
	var requests []ds.WebsiteRequest
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&requests).Error
	return requests, err
}

// GetAllRequests — все заявки для админки, с фильтром по статусу
func (r *Repository) GetAllRequests(status string) ([]ds.WebsiteRequest, error) {
	var requests []ds.WebsiteRequest

	query := r.db.Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	err := query.Find(&requests).Error
	return requests, err
}

func (r *Repository) SaveRequest(request *ds.WebsiteRequest) error {
	request.UpdatedAt = time.Now()
	return r.db.Save(request).Error
}

// SetRequestNotified выставляет флаг уведомления не трогая остальные поля
func (r *Repository) SetRequestNotified(requestID uint, notified bool) error {
	return r.db.Model(&ds.WebsiteRequest{}).
		Where("id = ?", requestID).
		Updates(map[string]interface{}{
			"notified_user": notified,
			"updated_at":    time.Now(),
		}).Error
}

// Счётчики для лендинга

func (r *Repository) CountRequests() (int64, error) {
	var count int64
	err := r.db.Model(&ds.WebsiteRequest{}).Count(&count).Error
	return count, err
}

func (r *Repository) CountActiveRequests() (int64, error) {
	var count int64
	err := r.db.Model(&ds.WebsiteRequest{}).Where("status != ?", ds.StatusCompleted).Count(&count).Error
	return count, err
}

func (r *Repository) CountCompletedRequests() (int64, error) {
	var count int64
	err := r.db.Model(&ds.WebsiteRequest{}).Where("status = ?", ds.StatusCompleted).Count(&count).Error
	return count, err
}
