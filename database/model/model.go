package model

import "time"

// Status is the resolution state of a student case.
type Status string

const (
	Unresolved Status = "unresolved"
	Resolved   Status = "resolved"
)

// IsValidStatus reports whether s is one of the two permitted status values.
// Anything else is silently ignored by the services.
func IsValidStatus(s string) bool {
	return s == string(Unresolved) || s == string(Resolved)
}

type User struct {
	Id       int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Username string `json:"username" gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"not null"` // bcrypt hash
}

// Student is a help-desk case. AddedBy is a username snapshot taken at
// creation time, not a foreign key: renaming or deleting the account does
// not rewrite history.
type Student struct {
	Id         int       `json:"id" form:"id" gorm:"primaryKey;autoIncrement"`
	Name       string    `json:"name" form:"name" gorm:"not null"`
	Phone      *string   `json:"phone" form:"phone"`
	SchoolNo   *string   `json:"schoolNo" form:"schoolNo"`
	AddedBy    string    `json:"addedBy"`
	Status     Status    `json:"status" form:"status" gorm:"default:unresolved"`
	Department *string   `json:"department" form:"department"`
	Faculty    *string   `json:"faculty" form:"faculty"`
	Problem    *string   `json:"problem" form:"problem"`
	CreatedAt  time.Time `json:"createdAt"`

	Notes []StudentNote `json:"-" gorm:"foreignKey:StudentId;references:Id;constraint:OnDelete:CASCADE"`
}

// StudentNote is one entry of a case's note thread. Author is a username
// snapshot like Student.AddedBy.
type StudentNote struct {
	Id        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	StudentId int       `json:"studentId" gorm:"not null;index"`
	Text      string    `json:"text" gorm:"not null"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

// Setting is a single key/value panel setting.
type Setting struct {
	Id    int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Key   string `json:"key" gorm:"index"`
	Value string `json:"value"`
}
