package services

import (
	"arka/internal/app/ds"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
)

// подменяется в тестах
var timeNow = time.Now

var ErrInvalidStatus = errors.New("invalid request status")

// Sender — отправка одного письма (реализация в mailer)
type Sender interface {
	Send(to, subject, body string) error
}

// notificationStore — срез репозитория, нужный сервису уведомлений
type notificationStore interface {
	SaveRequest(request *ds.WebsiteRequest) error
	CreateStatusUpdate(requestID uint, oldStatus, newStatus ds.RequestStatus, adminMessage *string) (*ds.StatusUpdate, error)
	SetRequestNotified(requestID uint, notified bool) error
	SetStatusUpdateNotified(updateID uint, notified bool) error
}

// buildStatusEmail — сборка письма вынесена в поле, чтобы не тянуть mailer в тесты
type buildStatusEmail func(businessName, oldLabel, newLabel, adminNotes, dashboardURL string) (string, string)

// NotificationService — явная операция смены статуса с побочным эффектом
// «письмо клиенту». Смена статуса фиксируется всегда; неудача отправки
// логируется и проглатывается, откатов нет.
type NotificationService struct {
	Store        notificationStore
	Mailer       Sender
	DashboardURL string
	BuildEmail   buildStatusEmail
}

func NewNotificationService(store notificationStore, sender Sender, dashboardURL string, build buildStatusEmail) *NotificationService {
	return &NotificationService{
		Store:        store,
		Mailer:       sender,
		DashboardURL: dashboardURL,
		BuildEmail:   build,
	}
}

// ApplyStatusChange применяет новый статус и/или заметки админа к заявке.
// Запись в историю и письмо происходят только если статус реально меняется.
func (s *NotificationService) ApplyStatusChange(request *ds.WebsiteRequest, newStatus ds.RequestStatus, adminNotes string) error {
	if !ds.ValidRequestStatus(newStatus) {
		return ErrInvalidStatus
	}

	oldStatus := request.Status
	if adminNotes != "" {
		request.AdminNotes = &adminNotes
	}

	if newStatus == oldStatus {
		// Меняются только заметки — истории и письма нет
		return s.Store.SaveRequest(request)
	}

	// 1. Запись в историю переходов
	update, err := s.Store.CreateStatusUpdate(request.ID, oldStatus, newStatus, request.AdminNotes)
	if err != nil {
		return err
	}

	// 2-3. Штамп времени и сброс флага уведомления до попытки отправки
	request.Status = newStatus
	nowStamp := timeNow()
	request.StatusUpdatedAt = &nowStamp
	request.NotifiedUser = false

	if err := s.Store.SaveRequest(request); err != nil {
		return err
	}

	// 4-5. Письмо клиенту: fire-and-forget, статус уже сохранён
	notes := ""
	if request.AdminNotes != nil {
		notes = *request.AdminNotes
	}
	subject, body := s.BuildEmail(request.BusinessName,
		ds.StatusLabel(oldStatus), ds.StatusLabel(newStatus), notes, s.DashboardURL)

	if err := s.Mailer.Send(request.Email, subject, body); err != nil {
		logrus.Errorf("status change email to %s failed: %v", request.Email, err)
		return nil
	}

	request.NotifiedUser = true
	if err := s.Store.SetRequestNotified(request.ID, true); err != nil {
		logrus.Error("failed to mark request notified: ", err)
	}
	if err := s.Store.SetStatusUpdateNotified(update.ID, true); err != nil {
		logrus.Error("failed to mark status update notified: ", err)
	}

	return nil
}
