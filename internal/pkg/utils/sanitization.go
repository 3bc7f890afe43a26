package utils

import (
	"medibook-service/internal/pkg/dto/requests"
	"strings"
)

func SanitizeRegisterUserRequest(request *requests.RegisterUser) {
	request.Email = strings.ToLower(strings.TrimSpace(request.Email))
	request.FirstName = strings.TrimSpace(request.FirstName)
	request.LastName = strings.TrimSpace(request.LastName)
}

func SanitizeStartPaymentRequest(request *requests.StartPayment) {
	request.Email = strings.ToLower(strings.TrimSpace(request.Email))
	request.FullName = strings.TrimSpace(request.FullName)
	request.Date = strings.TrimSpace(request.Date)
	request.Time = strings.TrimSpace(request.Time)
}
