package constvars

const (
	RegexEmail        = `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	RegexAlphanumeric = `^[a-zA-Z0-9]+$`
	RegexDateYYYYMMDD = `^\d{4}-\d{2}-\d{2}$`
	// RegexTimeOfDay matches "10:00 AM" style values coming from the booking UI.
	RegexTimeOfDay = `^(0?[1-9]|1[0-2]):[0-5]\d\s?(AM|PM)$`
)
