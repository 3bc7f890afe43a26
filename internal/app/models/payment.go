package models

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentSuccess PaymentStatus = "success"
	PaymentFailed  PaymentStatus = "failed"
)

// Terminal reports whether the status can no longer change. Terminal payment
// documents are immutable and never deleted by the workflow.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentSuccess || s == PaymentFailed
}

// Payment is one ledger entry per gateway reference. The reference carries a
// unique index; RecordIfAbsent relies on it as the idempotency boundary.
type Payment struct {
	ID        string                 `json:"id" bson:"_id,omitempty"`
	Reference string                 `json:"reference" bson:"reference"`
	Amount    int64                  `json:"amount" bson:"amount"`
	Email     string                 `json:"email" bson:"email"`
	FullName  string                 `json:"full_name" bson:"fullName"`
	Status    PaymentStatus          `json:"status" bson:"status"`
	Metadata  map[string]interface{} `json:"metadata,omitempty" bson:"metadata,omitempty"`
	TimeModel `bson:",inline"`
}

// MetadataString returns a string-typed metadata value, tolerating the legacy
// key spellings the mobile clients still send.
func (p *Payment) MetadataString(keys ...string) string {
	for _, key := range keys {
		if v, ok := p.Metadata[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}
