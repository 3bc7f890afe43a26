package requests

// EmailPayload is the message published to the mailer queue and drained by the
// SMTP worker.
type EmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
