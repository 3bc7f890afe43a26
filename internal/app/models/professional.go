package models

type ProfessionalSlot struct {
	Day      string `json:"day" bson:"day"`
	Time     string `json:"time" bson:"time"`
	IsBooked bool   `json:"isBooked" bson:"isBooked"`
}

type GeoPoint struct {
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
}

type Professional struct {
	ID                 string             `json:"id" bson:"_id,omitempty"`
	UserID             string             `json:"userId" bson:"userId"`
	FirstName          string             `json:"firstName" bson:"firstName"`
	LastName           string             `json:"lastName" bson:"lastName"`
	Email              string             `json:"email" bson:"email"`
	Category           string             `json:"category,omitempty" bson:"category,omitempty"`
	ConsultationFee    int64              `json:"consultationFee,omitempty" bson:"consultationFee,omitempty"`
	YearsOfExperience  int                `json:"yearsOfExperience,omitempty" bson:"yearsOfExperience,omitempty"`
	Certifications     []string           `json:"certifications,omitempty" bson:"certifications,omitempty"`
	Availability       bool               `json:"availability" bson:"availability"`
	Slots              []ProfessionalSlot `json:"slots,omitempty" bson:"slots,omitempty"`
	Bio                string             `json:"bio,omitempty" bson:"bio,omitempty"`
	ProfileImage       string             `json:"profileImage,omitempty" bson:"profileImage,omitempty"`
	EmailNotifications bool               `json:"emailNotifications" bson:"emailNotifications"`
	PushNotifications  bool               `json:"pushNotifications" bson:"pushNotifications"`
	Location           *GeoPoint          `json:"location,omitempty" bson:"location,omitempty"`
	TimeModel          `bson:",inline"`
}
