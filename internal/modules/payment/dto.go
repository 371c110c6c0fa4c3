package payment

type CreatePreferenceRequest struct {
	BookingID   int64   `json:"booking_id" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	// ApplyCredits spends the client's unused referral credits against the
	// charge.
	ApplyCredits bool `json:"apply_credits"`
}

type CreatePreferenceResponse struct {
	PreferenceID  string  `json:"preference_id,omitempty"`
	InitPoint     string  `json:"init_point,omitempty"`
	PaymentID     int64   `json:"payment_id"`
	CreditApplied float64 `json:"credit_applied,omitempty"`
}

type QuoteRequest struct {
	BookingID     int64  `json:"booking_id" binding:"required"`
	PaymentType   string `json:"payment_type" binding:"required,oneof=total partial"`
	PaymentMethod string `json:"payment_method"`
	Accreditation string `json:"accreditation"`
	ApplyCredits  bool   `json:"apply_credits"`
}

type ReleaseRequest struct {
	BookingID int64 `json:"booking_id" binding:"required"`
}

type ReleaseResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type VerifyRequest struct {
	PaymentID int64 `json:"payment_id" binding:"required"`
}

type VerifyResponse struct {
	PaymentID         int64   `json:"payment_id"`
	LocalStatus       string  `json:"local_status"`
	MercadoPagoStatus string  `json:"mercadopago_status,omitempty"`
	MercadoPagoDetail string  `json:"mercadopago_detail,omitempty"`
	Amount            float64 `json:"amount"`
	Updated           bool    `json:"updated"`
}

// WebhookNotification is the shape MercadoPago posts to the notification
// URL. Only payment events are acted on.
type WebhookNotification struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}
