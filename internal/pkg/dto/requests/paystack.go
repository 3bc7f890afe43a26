package requests

import (
	"encoding/json"
	"strconv"
)

// PaystackInitializeTransaction is the outbound wire shape for
// POST {base}/transaction/initialize.
type PaystackInitializeTransaction struct {
	Amount   int64             `json:"amount"`
	Email    string            `json:"email"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// PaystackCreateSubaccount is the outbound wire shape for POST {base}/subaccount.
type PaystackCreateSubaccount struct {
	BusinessName     string  `json:"business_name"`
	SettlementBank   string  `json:"settlement_bank"`
	AccountNumber    string  `json:"account_number"`
	PercentageCharge float64 `json:"percentage_charge"`
}

// PaystackWebhookEvent is the inbound webhook body. Data.ID is the
// gateway-assigned reference for the payment attempt.
type PaystackWebhookEvent struct {
	Event string              `json:"event"`
	Data  PaystackWebhookData `json:"data"`
}

type PaystackWebhookData struct {
	ID       string                 `json:"id"`
	Status   string                 `json:"status"`
	Email    string                 `json:"email"`
	Metadata map[string]interface{} `json:"metadata"`
}

// Ignored reports whether the event type is outside this workflow's scope.
// Ignored events are acknowledged, never processed.
func (e *PaystackWebhookEvent) Ignored() bool {
	return e.Event != "charge.success"
}

// MetadataAmount digs the charge amount out of the metadata block, which
// arrives as arbitrary JSON numbers or strings depending on the client.
func (d *PaystackWebhookData) MetadataAmount() int64 {
	switch v := d.Metadata["amount"].(type) {
	case float64:
		return int64(v)
	case json.Number:
		n, _ := v.Int64()
		return n
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	default:
		return 0
	}
}
