package repository

import (
	"arka/internal/app/ds"
	"time"
)

// Методы для платежей

func (r *Repository) CreatePayment(requestID uint, amount int64, currency, invoiceNumber string) (*ds.Payment, error) {
	now := time.Now()
	payment := ds.Payment{
		RequestID:     requestID,
		Amount:        amount,
		Currency:      currency,
		Status:        ds.PaymentPending,
		InvoiceNumber: invoiceNumber,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := r.db.Create(&payment).Error
	if err != nil {
		return nil, err
	}

	return &payment, nil
}

func (r *Repository) GetPaymentByRequestID(requestID uint) (*ds.Payment, error) {
	var payment ds.Payment
	err := r.db.Where("request_id = ?", requestID).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *Repository) SavePayment(payment *ds.Payment) error {
	payment.UpdatedAt = time.Now()
	return r.db.Save(payment).Error
}
