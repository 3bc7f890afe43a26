package responses

type UserProfile struct {
	ID              string `json:"id"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Gender          string `json:"gender"`
	UserType        string `json:"userType"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
	IsVerified      bool   `json:"isVerified"`
}

type RegisterUser struct {
	UserID            string `json:"userId"`
	VerificationToken string `json:"verificationToken"`
}

type UploadProfilePicture struct {
	ObjectName      string `json:"objectName"`
	ProfileImageURL string `json:"profileImageUrl"`
}
