package requests

type RegisterUser struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Gender    string `json:"gender" validate:"required,oneof=Male Female Other"`
	UserType  string `json:"userType" validate:"required,oneof=client professional student"`
}

type VerifyUser struct {
	Token string `json:"token" validate:"required"`
}

type UpdateProfile struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Gender    string `json:"gender,omitempty" validate:"omitempty,oneof=Male Female Other"`
}
