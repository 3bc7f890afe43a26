package responses

// StartPayment carries the checkout handoff back to the mobile client.
type StartPayment struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code,omitempty"`
	Reference        string `json:"reference"`
}
