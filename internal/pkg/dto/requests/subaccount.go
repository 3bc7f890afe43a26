package requests

type CreateSubaccount struct {
	UserID           string  `json:"userId" validate:"required"`
	BusinessName     string  `json:"business_name" validate:"required"`
	AccountNumber    string  `json:"account_number" validate:"required,numeric"`
	SettlementBank   string  `json:"settlement_bank" validate:"required"`
	PercentageCharge float64 `json:"percentage_charge" validate:"required,gt=0"`
	Currency         string  `json:"currency" validate:"required"`
}
