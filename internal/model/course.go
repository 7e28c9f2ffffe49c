package model

import (
	"strconv"
	"time"
)

// Unit is a top-level course division (unidad1..unidad4) holding one
// assignment per week.
type Unit struct {
	BaseModel
	Key         string       `gorm:"size:64;uniqueIndex;not null" json:"key"`
	Title       string       `gorm:"size:255;not null" json:"title"`
	Order       int          `gorm:"default:0" json:"order"`
	Assignments []Assignment `gorm:"foreignKey:UnitID" json:"assignments,omitempty"`
}

func (Unit) TableName() string {
	return "units"
}

// Assignment is immutable once created except for Deadline, which
// administrators may set, move, or clear.
type Assignment struct {
	UUIDBase
	UnitID     uint       `gorm:"index;not null" json:"unitId"`
	UnitKey    string     `gorm:"size:64;index" json:"unitKey"`
	WeekNumber int        `gorm:"not null" json:"weekNumber"`
	Title      string     `gorm:"size:255;not null" json:"title"`
	Deadline   *time.Time `json:"deadline"`
}

func (Assignment) TableName() string {
	return "assignments"
}

// LessonKey is how completion facts refer to this assignment ("semana1"..).
func (a *Assignment) LessonKey(prefix string) string {
	if prefix == "" {
		prefix = "semana"
	}
	return prefix + strconv.Itoa(a.WeekNumber)
}
