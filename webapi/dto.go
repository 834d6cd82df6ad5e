package webapi

// RegisterInput is the request body for user registration.
type RegisterInput struct {
	FullName    string `json:"fullName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Password    string `json:"password" validate:"required,min=8"`
}

// LoginInput is the request body for authentication.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ResolveRecipientInput is the request body for recipient verification.
type ResolveRecipientInput struct {
	CashID      string `json:"cashID" validate:"required,numeric,len=10"`
	FullName    string `json:"fullName" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
}

// TransferInput is the request body for sending money.
type TransferInput struct {
	RecipientID string  `json:"recipientID" validate:"required"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Currency    string  `json:"currency" validate:"required,oneof=TL USD"`
	Message     string  `json:"message" validate:"max=200"`
}

// AmountInput is the request body for deposits and withdrawals.
type AmountInput struct {
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Currency string  `json:"currency" validate:"required,oneof=TL USD"`
}

// PhotoInput is the request body for profile photo updates.
type PhotoInput struct {
	Data string `json:"data" validate:"required"`
}

// AccountResponse is the profile payload.
type AccountResponse struct {
	ID          string  `json:"id"`
	FullName    string  `json:"fullName"`
	Email       string  `json:"email"`
	PhoneNumber string  `json:"phoneNumber"`
	IdCash      string  `json:"idCash"`
	IBAN        string  `json:"iban"`
	CreatedAt   int64   `json:"createdAt"`
	BalanceTL   float64 `json:"balanceTL"`
	BalanceUSD  float64 `json:"balanceUSD"`
}
