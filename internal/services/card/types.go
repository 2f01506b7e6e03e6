package card

// Input is what the checkout card form collects. It never leaves this
// process; only the token does.
type Input struct {
	Number      string `json:"card_number" validate:"required"`
	ExpiryMonth string `json:"expiry_month" validate:"required"`
	ExpiryYear  string `json:"expiry_year" validate:"required"`
	CVC         string `json:"cvc" validate:"required,min=3,max=4"`
	Name        string `json:"name"`
}

// Token is a reusable card reference safe to send to the platform.
type Token struct {
	ID       string `json:"token"`
	Brand    string `json:"brand"`
	LastFour string `json:"last_four"`
	Expiry   string `json:"expiry"`
}
