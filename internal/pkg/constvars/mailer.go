package constvars

const (
	EmailAppointmentConfirmedSubject = "Your appointment is confirmed"
	EmailVerifyAccountSubject        = "Verify your account"
)

const (
	EmailSendBasicEmailSubjectFormat = "To: %s\r\nSubject: %s\r\n\r\n%s\r\n"
	EmailBodyAppointmentConfirmed    = "Hi %s, your appointment on %s at %s is confirmed. Payment reference: %s."
	EmailBodyVerifyAccount           = "Hi %s, use this link to verify your account: %s"
)
