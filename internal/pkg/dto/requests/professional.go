package requests

type CreateProfessional struct {
	UserID            string   `json:"userId" validate:"required"`
	FirstName         string   `json:"firstName" validate:"required"`
	LastName          string   `json:"lastName" validate:"required"`
	Email             string   `json:"email" validate:"required,email"`
	Category          string   `json:"category,omitempty"`
	ConsultationFee   int64    `json:"consultationFee,omitempty" validate:"omitempty,gt=0"`
	YearsOfExperience int      `json:"yearsOfExperience,omitempty" validate:"omitempty,gte=0"`
	Certifications    []string `json:"certifications,omitempty"`
	Bio               string   `json:"bio,omitempty"`
}

type UpdateAvailability struct {
	Availability bool               `json:"availability"`
	Slots        []AvailabilitySlot `json:"slots,omitempty"`
}

type AvailabilitySlot struct {
	Day  string `json:"day" validate:"required"`
	Time string `json:"time" validate:"required"`
}

// ListProfessionals carries the browse filters from the client home screen.
type ListProfessionals struct {
	Category      string
	AvailableOnly bool
	Page          int
	PageSize      int
}
