package model

import "time"

type SubmissionStatus string

const (
	SubmissionPending SubmissionStatus = "pending"
	SubmissionGraded  SubmissionStatus = "graded"
)

type Submission struct {
	UUIDBase
	UserID       uint             `gorm:"index;not null" json:"userId"`
	AssignmentID string           `gorm:"type:varchar(36);index;not null" json:"assignmentId"`
	UnitKey      string           `gorm:"size:64;index" json:"unitKey"`
	FileName     string           `gorm:"size:255;not null" json:"fileName"`
	FilePath     string           `gorm:"size:512;not null" json:"filePath"`
	FileSize     int64            `json:"fileSize"`
	ContentType  string           `gorm:"size:128" json:"contentType"`
	Status       SubmissionStatus `gorm:"size:32;default:'pending';index" json:"status"`
	SubmittedAt  time.Time        `json:"submittedAt"`
}

func (Submission) TableName() string {
	return "submissions"
}

type Grade struct {
	BaseModel
	SubmissionID string     `gorm:"type:varchar(36);uniqueIndex;not null" json:"submissionId"`
	StudentID    uint       `gorm:"index;not null" json:"studentId"`
	AssignmentID string     `gorm:"type:varchar(36);index;not null" json:"assignmentId"`
	UnitKey      string     `gorm:"size:64;index" json:"unitKey"`
	Score        int        `gorm:"not null" json:"score"`
	Feedback     string     `gorm:"type:text" json:"feedback"`
	GradedBy     uint       `json:"gradedBy"`
	GradedAt     *time.Time `json:"gradedAt"`
}

func (Grade) TableName() string {
	return "grades"
}
