package responses

// PaystackInitializeTransaction is the wire shape returned by
// POST {base}/transaction/initialize.
type PaystackInitializeTransaction struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

// PaystackVerifyTransaction is the wire shape returned by
// GET {base}/transaction/verify/{reference}.
type PaystackVerifyTransaction struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status   string                 `json:"status"`
		Amount   int64                  `json:"amount"`
		Metadata map[string]interface{} `json:"metadata"`
		Customer struct {
			Email string `json:"email"`
		} `json:"customer"`
	} `json:"data"`
}

// PaystackCreateSubaccount is the wire shape returned by POST {base}/subaccount.
type PaystackCreateSubaccount struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		SubaccountCode string `json:"subaccount_code"`
		BusinessName   string `json:"business_name"`
		AccountNumber  string `json:"account_number"`
		SettlementBank string `json:"settlement_bank"`
	} `json:"data"`
}

// VerifiedTransaction is the adapter's normalized view of a verify response.
type VerifiedTransaction struct {
	Reference string
	Status    string
	Amount    int64
	Email     string
	Metadata  map[string]interface{}
}
