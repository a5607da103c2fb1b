package settle_payment

// SettlePaymentRequest событие платежного шлюза об успешной оплате
type SettlePaymentRequest struct {
	BookingID string `json:"bookingId" validate:"required"`
}

// SettlePaymentResponse HTTP response model
type SettlePaymentResponse struct {
	BookingID string `json:"bookingId"`
	IsPaid    bool   `json:"isPaid"`
}
