package models

type Subaccount struct {
	ID               string  `json:"id" bson:"_id,omitempty"`
	UserID           string  `json:"userId" bson:"userId"`
	BusinessName     string  `json:"business_name" bson:"businessName"`
	AccountNumber    string  `json:"account_number" bson:"accountNumber"`
	SettlementBank   string  `json:"settlement_bank" bson:"settlementBank"`
	PercentageCharge float64 `json:"percentage_charge" bson:"percentageCharge"`
	Currency         string  `json:"currency" bson:"currency"`
	SubaccountCode   string  `json:"subaccount_code" bson:"subaccountCode"`
	TimeModel        `bson:",inline"`
}
