package model

import "time"

// CompletionFact is the durable record that a user marked a lesson complete.
// One row per (user, unit, lesson); un-marking flips Completed and clears the
// timestamp instead of deleting the row, so repeated toggles stay idempotent.
type CompletionFact struct {
	BaseModel
	UserID      uint       `gorm:"uniqueIndex:idx_completion_key;not null" json:"userId"`
	UnitKey     string     `gorm:"size:64;uniqueIndex:idx_completion_key;not null" json:"unitKey"`
	LessonKey   string     `gorm:"size:64;uniqueIndex:idx_completion_key;not null" json:"lessonKey"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
}

func (CompletionFact) TableName() string {
	return "completion_facts"
}
