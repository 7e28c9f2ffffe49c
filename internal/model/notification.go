package model

import (
	"strconv"
	"time"
)

type NotificationType string

const (
	NotifyInfo    NotificationType = "info"
	NotifySuccess NotificationType = "success"
	NotifyWarning NotificationType = "warning"
	NotifyError   NotificationType = "error"
)

// Notification rows double as the delivery queue: Sent=false with a
// ScheduledFor in the past means the dispatcher still owes a delivery.
type Notification struct {
	BaseModel
	Title        string           `gorm:"size:255;not null" json:"title"`
	Message      string           `gorm:"type:text;not null" json:"message"`
	Recipients   []string         `gorm:"serializer:json;type:json" json:"recipients"`
	Type         NotificationType `gorm:"size:32;default:'info'" json:"type"`
	CreatedBy    uint             `gorm:"index" json:"createdBy"`
	Sent         bool             `gorm:"default:false;index" json:"sent"`
	SentAt       *time.Time       `json:"sentAt"`
	ScheduledFor *time.Time       `gorm:"index" json:"scheduledFor"`
}

func (Notification) TableName() string {
	return "notifications"
}

// UserRecipient addresses a notification to one user rather than a role.
func UserRecipient(userID uint) string {
	return "user:" + strconv.FormatUint(uint64(userID), 10)
}

// VisibleTo reports whether the notification belongs in the given user's
// feed. Recipients are role names, per-user "user:<id>" entries, or the
// sentinel "all" which matches everyone.
func (n *Notification) VisibleTo(role UserRole, userID uint) bool {
	for _, r := range n.Recipients {
		if r == "all" || r == string(role) || r == UserRecipient(userID) {
			return true
		}
	}
	return false
}
