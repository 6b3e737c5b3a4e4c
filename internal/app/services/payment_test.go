package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"arka/internal/app/ds"

	"gorm.io/gorm"
)

type fakePaymentStore struct {
	payments      map[uint]*ds.Payment
	nextPaymentID uint
	savedPayments int
	savedRequests int
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{payments: make(map[uint]*ds.Payment)}
}

func (s *fakePaymentStore) GetPaymentByRequestID(requestID uint) (*ds.Payment, error) {
	payment, ok := s.payments[requestID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return payment, nil
}

func (s *fakePaymentStore) CreatePayment(requestID uint, amount int64, currency, invoiceNumber string) (*ds.Payment, error) {
	s.nextPaymentID++
	payment := &ds.Payment{
		ID:            s.nextPaymentID,
		RequestID:     requestID,
		Amount:        amount,
		Currency:      currency,
		Status:        ds.PaymentPending,
		InvoiceNumber: invoiceNumber,
		CreatedAt:     time.Now(),
	}
	s.payments[requestID] = payment
	return payment, nil
}

func (s *fakePaymentStore) SavePayment(payment *ds.Payment) error {
	s.savedPayments++
	s.payments[payment.RequestID] = payment
	return nil
}

func (s *fakePaymentStore) SaveRequest(request *ds.WebsiteRequest) error {
	s.savedRequests++
	return nil
}

type fakeReceipts struct {
	uploads []string
	fail    bool
}

func (f *fakeReceipts) UploadReceipt(data []byte, invoiceNumber string) (string, error) {
	if f.fail {
		return "", errors.New("minio down")
	}
	key := "receipts/" + strings.ToLower(invoiceNumber) + ".txt"
	f.uploads = append(f.uploads, key)
	return key, nil
}

func (f *fakeReceipts) GetReceiptURL(objectKey string) (string, error) {
	return "http://minio.local/" + objectKey, nil
}

func paymentTestRequest() *ds.WebsiteRequest {
	budget := "5000-10000"
	return &ds.WebsiteRequest{
		ID:            11,
		BusinessName:  "Chai Point",
		Email:         "owner@chaipoint.example",
		WebsiteType:   ds.TypeEcommerce,
		Budget:        &budget,
		Status:        ds.StatusNew,
		PaymentStatus: ds.PaymentPending,
	}
}

func TestEnsurePaymentCreatesOnce(t *testing.T) {
	store := newFakePaymentStore()
	svc := NewPaymentService(store, nil, "secret")

	request := paymentTestRequest()
	first, err := svc.EnsurePayment(request)
	if err != nil {
		t.Fatalf("EnsurePayment() error = %v", err)
	}

	// Бюджет распознан — сумма из таблицы бюджетов, не из таблицы типов
	if first.Amount != 7500 {
		t.Errorf("amount = %d, want 7500", first.Amount)
	}
	if first.Currency != "INR" {
		t.Errorf("currency = %q, want INR", first.Currency)
	}
	if !strings.HasPrefix(first.InvoiceNumber, "ARKA-") || len(first.InvoiceNumber) != len("ARKA-")+8 {
		t.Errorf("invoice number %q has wrong shape", first.InvoiceNumber)
	}

	second, err := svc.EnsurePayment(request)
	if err != nil {
		t.Fatalf("EnsurePayment() second call error = %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("second call created a new payment: id %d != %d", second.ID, first.ID)
	}
}

func TestEnsurePaymentFallsBackToType(t *testing.T) {
	store := newFakePaymentStore()
	svc := NewPaymentService(store, nil, "secret")

	request := paymentTestRequest()
	request.ID = 12
	request.Budget = nil

	payment, err := svc.EnsurePayment(request)
	if err != nil {
		t.Fatalf("EnsurePayment() error = %v", err)
	}
	if payment.Amount != 50000 {
		t.Errorf("amount = %d, want 50000 for ecommerce without budget", payment.Amount)
	}
}

func TestCompleteFromCallback(t *testing.T) {
	const secret = "key_secret"
	store := newFakePaymentStore()
	receipts := &fakeReceipts{}
	svc := NewPaymentService(store, receipts, secret)

	request := paymentTestRequest()
	if _, err := svc.EnsurePayment(request); err != nil {
		t.Fatalf("EnsurePayment() error = %v", err)
	}

	in := CallbackInput{
		RazorpayPaymentID: "pay_123",
		RazorpayOrderID:   "order_456",
		RequestID:         request.ID,
	}
	in.RazorpaySignature = signPayload(in.RazorpayOrderID, in.RazorpayPaymentID, secret)

	payment, err := svc.CompleteFromCallback(request, in)
	if err != nil {
		t.Fatalf("CompleteFromCallback() error = %v", err)
	}

	if payment.Status != ds.PaymentCompleted {
		t.Errorf("payment status = %q, want completed", payment.Status)
	}
	if payment.PaidAt == nil {
		t.Error("PaidAt not stamped")
	}
	if payment.RazorpayPaymentID == nil || *payment.RazorpayPaymentID != "pay_123" {
		t.Error("gateway payment id not recorded")
	}
	if request.Status != ds.StatusContacted {
		t.Errorf("request status = %q, want contacted after payment", request.Status)
	}
	if request.PaymentStatus != ds.PaymentCompleted {
		t.Errorf("request payment status = %q, want completed", request.PaymentStatus)
	}
	if request.PaymentNote == nil || !strings.Contains(*request.PaymentNote, payment.InvoiceNumber) {
		t.Error("payment note with invoice number not appended")
	}
	if len(receipts.uploads) != 1 {
		t.Errorf("receipt uploads = %d, want 1", len(receipts.uploads))
	}
	if payment.ReceiptObject == nil {
		t.Error("receipt object key not recorded")
	}
}

func TestCompleteFromCallbackIdempotent(t *testing.T) {
	const secret = "key_secret"
	store := newFakePaymentStore()
	receipts := &fakeReceipts{}
	svc := NewPaymentService(store, receipts, secret)

	request := paymentTestRequest()
	if _, err := svc.EnsurePayment(request); err != nil {
		t.Fatalf("EnsurePayment() error = %v", err)
	}

	in := CallbackInput{
		RazorpayPaymentID: "pay_123",
		RazorpayOrderID:   "order_456",
		RequestID:         request.ID,
	}
	in.RazorpaySignature = signPayload(in.RazorpayOrderID, in.RazorpayPaymentID, secret)

	first, err := svc.CompleteFromCallback(request, in)
	if err != nil {
		t.Fatalf("first callback error = %v", err)
	}
	firstPaidAt := *first.PaidAt
	firstNote := *request.PaymentNote

	second, err := svc.CompleteFromCallback(request, in)
	if err != nil {
		t.Fatalf("second callback error = %v", err)
	}

	if !second.PaidAt.Equal(firstPaidAt) {
		t.Error("PaidAt changed on repeated callback")
	}
	if len(receipts.uploads) != 1 {
		t.Errorf("receipt uploads = %d, want 1 after repeated callback", len(receipts.uploads))
	}
	if *request.PaymentNote != firstNote {
		t.Error("payment note duplicated on repeated callback")
	}
}

func TestCompleteFromCallbackBadSignature(t *testing.T) {
	store := newFakePaymentStore()
	svc := NewPaymentService(store, nil, "key_secret")

	request := paymentTestRequest()
	if _, err := svc.EnsurePayment(request); err != nil {
		t.Fatalf("EnsurePayment() error = %v", err)
	}

	_, err := svc.CompleteFromCallback(request, CallbackInput{
		RazorpayPaymentID: "pay_123",
		RazorpayOrderID:   "order_456",
		RazorpaySignature: "forged",
		RequestID:         request.ID,
	})
	if !errors.Is(err, ErrBadSignature) {
		t.Fatalf("error = %v, want ErrBadSignature", err)
	}

	if store.savedPayments != 0 || store.savedRequests != 0 {
		t.Error("bad signature must not mutate anything")
	}
	if request.Status != ds.StatusNew {
		t.Errorf("request status = %q, want unchanged new", request.Status)
	}
}

func TestCompleteFromCallbackUnknownPayment(t *testing.T) {
	const secret = "key_secret"
	svc := NewPaymentService(newFakePaymentStore(), nil, secret)

	request := paymentTestRequest()
	in := CallbackInput{
		RazorpayPaymentID: "pay_123",
		RazorpayOrderID:   "order_456",
		RequestID:         request.ID,
	}
	in.RazorpaySignature = signPayload(in.RazorpayOrderID, in.RazorpayPaymentID, secret)

	_, err := svc.CompleteFromCallback(request, in)
	if !errors.Is(err, ErrPaymentNotFound) {
		t.Fatalf("error = %v, want ErrPaymentNotFound", err)
	}
}

func TestBuildReceipt(t *testing.T) {
	paymentID := "pay_123"
	payment := &ds.Payment{
		Amount:            7500,
		Currency:          "INR",
		InvoiceNumber:     "ARKA-DEADBEEF",
		RazorpayPaymentID: &paymentID,
	}
	request := &ds.WebsiteRequest{BusinessName: "Chai Point"}
	paidAt := time.Date(2025, 3, 14, 12, 30, 0, 0, time.UTC)

	receipt := BuildReceipt(payment, request, paidAt)

	for _, want := range []string{"ARKA-DEADBEEF", "Chai Point", "7500 INR", "pay_123", "2025-03-14 12:30:00"} {
		if !strings.Contains(receipt, want) {
			t.Errorf("receipt missing %q:\n%s", want, receipt)
		}
	}
}
