package subscription

type PayRequest struct {
	PlanID          string `json:"plan_id" binding:"required"`
	CardToken       string `json:"card_token" binding:"required"`
	PaymentMethodID string `json:"payment_method_id" binding:"required"`
	PayerEmail      string `json:"payer_email" binding:"required,email"`
	Installments    int    `json:"installments"`
}

type PayResponse struct {
	PaymentID    string `json:"payment_id"`
	Status       string `json:"status"`
	StatusDetail string `json:"status_detail,omitempty"`
	PlanID       string `json:"plan_id"`
}

type CurrentResponse struct {
	PlanID           string `json:"plan_id"`
	PlanName         string `json:"plan_name"`
	Status           string `json:"status"`
	ApplicationsUsed int    `json:"applications_used"`
	ApplicationsMax  int    `json:"applications_limit"`
	ContactsUsed     int    `json:"contacts_used"`
	ContactsMax      int    `json:"contacts_limit"`
	IsFeatured       bool   `json:"is_featured"`
	CanPostAds       bool   `json:"can_post_ads"`
	ExpiresAt        string `json:"expires_at,omitempty"`
}
