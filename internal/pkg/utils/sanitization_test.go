package utils

import (
	"testing"

	"medibook-service/internal/pkg/dto/requests"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeRegisterUserRequest(t *testing.T) {
	request := &requests.RegisterUser{
		FirstName: "  Ada ",
		LastName:  " Obi  ",
		Email:     "  Ada.Obi@Example.COM ",
	}
	SanitizeRegisterUserRequest(request)

	assert.Equal(t, "Ada", request.FirstName)
	assert.Equal(t, "Obi", request.LastName)
	assert.Equal(t, "ada.obi@example.com", request.Email)
}

func TestSanitizeStartPaymentRequest(t *testing.T) {
	request := &requests.StartPayment{
		Email:    " ADA@Example.com ",
		FullName: " Ada Obi ",
		Date:     " 2026-09-10 ",
		Time:     " 10:00 ",
	}
	SanitizeStartPaymentRequest(request)

	assert.Equal(t, "ada@example.com", request.Email)
	assert.Equal(t, "Ada Obi", request.FullName)
	assert.Equal(t, "2026-09-10", request.Date)
	assert.Equal(t, "10:00", request.Time)
}
