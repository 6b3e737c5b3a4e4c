package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifyRazorpaySignature проверяет подпись колбэка гейтвея:
// HMAC-SHA256 от "order_id|payment_id" на общем секрете, hex.
// Сравнение в константное время.
func VerifyRazorpaySignature(orderID, paymentID, signature, secret string) bool {
	if secret == "" || signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
