package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"arka/internal/app/ds"
	"arka/internal/app/pricing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPaymentNotFound = errors.New("payment not found")
	ErrBadSignature    = errors.New("invalid gateway signature")
)

// paymentStore — срез репозитория для платёжного сервиса
type paymentStore interface {
	GetPaymentByRequestID(requestID uint) (*ds.Payment, error)
	CreatePayment(requestID uint, amount int64, currency, invoiceNumber string) (*ds.Payment, error)
	SavePayment(payment *ds.Payment) error
	SaveRequest(request *ds.WebsiteRequest) error
}

// ReceiptStorage — загрузка квитанций в объектное хранилище
type ReceiptStorage interface {
	UploadReceipt(data []byte, invoiceNumber string) (string, error)
	GetReceiptURL(objectKey string) (string, error)
}

// CallbackInput — разобранное тело вебхука гейтвея
type CallbackInput struct {
	RazorpayPaymentID string
	RazorpayOrderID   string
	RazorpaySignature string
	RequestID         uint
}

type PaymentService struct {
	Store     paymentStore
	Receipts  ReceiptStorage
	KeySecret string
	Currency  string
}

func NewPaymentService(store paymentStore, receipts ReceiptStorage, keySecret string) *PaymentService {
	return &PaymentService{
		Store:     store,
		Receipts:  receipts,
		KeySecret: keySecret,
		Currency:  "INR",
	}
}

// EnsurePayment лениво создаёт платёж при первом визите на страницу оплаты.
// Сумма — детерминированная оценка по бюджету и типу сайта, номер счёта уникален.
func (s *PaymentService) EnsurePayment(request *ds.WebsiteRequest) (*ds.Payment, error) {
	payment, err := s.Store.GetPaymentByRequestID(request.ID)
	if err == nil {
		return payment, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	budget := ""
	if request.Budget != nil {
		budget = *request.Budget
	}
	amount := pricing.EstimateAmount(budget, request.WebsiteType)

	return s.Store.CreatePayment(request.ID, amount, s.Currency, newInvoiceNumber())
}

// CompleteFromCallback обрабатывает вебхук гейтвея. Подпись проверяется
// до любых изменений; повторный колбэк с тем же телом приводит к тому же
// конечному состоянию без дублей в истории статусов.
func (s *PaymentService) CompleteFromCallback(request *ds.WebsiteRequest, in CallbackInput) (*ds.Payment, error) {
	if !VerifyRazorpaySignature(in.RazorpayOrderID, in.RazorpayPaymentID, in.RazorpaySignature, s.KeySecret) {
		return nil, ErrBadSignature
	}

	payment, err := s.Store.GetPaymentByRequestID(in.RequestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	alreadyCompleted := payment.Status == ds.PaymentCompleted

	payment.RazorpayOrderID = &in.RazorpayOrderID
	payment.RazorpayPaymentID = &in.RazorpayPaymentID
	payment.RazorpaySignature = &in.RazorpaySignature
	payment.Status = ds.PaymentCompleted
	if payment.PaidAt == nil {
		now := timeNow()
		payment.PaidAt = &now
	}

	if !alreadyCompleted && s.Receipts != nil {
		receipt := BuildReceipt(payment, request, *payment.PaidAt)
		objectKey, err := s.Receipts.UploadReceipt([]byte(receipt), payment.InvoiceNumber)
		if err != nil {
			// Квитанция вторична, платёж фиксируем в любом случае
			logrus.Errorf("receipt upload for %s failed: %v", payment.InvoiceNumber, err)
		} else {
			payment.ReceiptObject = &objectKey
		}
	}

	if err := s.Store.SavePayment(payment); err != nil {
		return nil, err
	}

	// Оплаченная заявка сразу переводится в contacted, минуя сервис
	// уведомлений: записи в истории и письма здесь нет
	request.Status = ds.StatusContacted
	request.PaymentStatus = ds.PaymentCompleted
	if !alreadyCompleted {
		appendPaymentNote(request, payment)
	}
	if err := s.Store.SaveRequest(request); err != nil {
		return nil, err
	}

	return payment, nil
}

// ReceiptURL возвращает временную ссылку на квитанцию, если она есть
func (s *PaymentService) ReceiptURL(payment *ds.Payment) string {
	if payment.ReceiptObject == nil || s.Receipts == nil {
		return ""
	}
	url, err := s.Receipts.GetReceiptURL(*payment.ReceiptObject)
	if err != nil {
		logrus.Errorf("presign receipt %s failed: %v", *payment.ReceiptObject, err)
		return ""
	}
	return url
}

// BuildReceipt — текстовая квитанция об оплате
func BuildReceipt(payment *ds.Payment, request *ds.WebsiteRequest, paidAt time.Time) string {
	return strings.TrimSpace(fmt.Sprintf(`
Arka Payment Receipt

Invoice:       %s
Business:      %s
Amount:        %d %s
Payment ID:    %s
Paid At:       %s

Thank you for your business!
`, payment.InvoiceNumber, request.BusinessName, payment.Amount, payment.Currency,
		deref(payment.RazorpayPaymentID), paidAt.Format("2006-01-02 15:04:05")))
}

func appendPaymentNote(request *ds.WebsiteRequest, payment *ds.Payment) {
	line := fmt.Sprintf("Payment received: %d %s (invoice %s)",
		payment.Amount, payment.Currency, payment.InvoiceNumber)
	if request.PaymentNote != nil && *request.PaymentNote != "" {
		line = *request.PaymentNote + "\n" + line
	}
	request.PaymentNote = &line
}

func newInvoiceNumber() string {
	return "ARKA-" + strings.ToUpper(uuid.New().String()[:8])
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
