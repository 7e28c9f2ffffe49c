package model

import "time"

type UserRole string

const (
	Student   UserRole = "student"
	Admin     UserRole = "administrator"
	Evaluator UserRole = "evaluator"
	Assistant UserRole = "assistant"
)

type User struct {
	BaseModel
	Email      string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password   string     `gorm:"size:255;not null" json:"-"`
	FullName   string     `gorm:"size:255" json:"fullName"`
	Role       UserRole   `gorm:"type:enum('student','administrator','evaluator','assistant');default:'student'" json:"role"`
	Active     bool       `gorm:"default:true" json:"active"`
	LastSeenAt *time.Time `json:"lastSeenAt"`
}

func (User) TableName() string {
	return "usuarios"
}

func (u *User) IsAdmin() bool {
	return u.Role == Admin
}
