package models

type UserType string

const (
	UserTypeClient       UserType = "client"
	UserTypeProfessional UserType = "professional"
	UserTypeStudent      UserType = "student"
)

type User struct {
	ID           string   `json:"id" bson:"_id,omitempty"`
	FirstName    string   `json:"firstName" bson:"firstName"`
	LastName     string   `json:"lastName" bson:"lastName"`
	Email        string   `json:"email" bson:"email"`
	Password     string   `json:"-" bson:"password"`
	Gender       string   `json:"gender" bson:"gender"`
	UserType     UserType `json:"userType" bson:"userType"`
	ProfileImage string   `json:"profileImage,omitempty" bson:"profileImage,omitempty"`
	IsVerified   bool     `json:"isVerified" bson:"isVerified"`
	TimeModel    `bson:",inline"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
