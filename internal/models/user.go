package models

// User is a registered account. Credentials never leave the service.
type User struct {
	ID        int    `json:"id" gorm:"primaryKey;autoIncrement"`
	FirstName string `json:"firstName" gorm:"column:first_name;not null"`
	LastName  string `json:"lastName" gorm:"column:last_name;not null"`
	Email     string `json:"email" gorm:"column:email;not null;uniqueIndex"`
	Password  string `json:"-" gorm:"column:password;not null"`
	Salt      string `json:"-" gorm:"column:salt;not null"`
}

// TableName pins the table name.
func (User) TableName() string { return "users" }

// DisplayName returns "First Last".
func (u User) DisplayName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
