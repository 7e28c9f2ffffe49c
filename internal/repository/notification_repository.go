package repository

import (
	"ery_cursos_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	DB *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

func (r *NotificationRepository) Create(n *model.Notification) error {
	return r.DB.Create(n).Error
}

// ListDue returns scheduled notifications whose time has come and which have
// not been delivered yet.
func (r *NotificationRepository) ListDue(now time.Time) ([]model.Notification, error) {
	var due []model.Notification
	err := r.DB.Where("sent = ? AND scheduled_for IS NOT NULL AND scheduled_for <= ?", false, now).
		Order("scheduled_for ASC").
		Find(&due).Error
	return due, err
}

func (r *NotificationRepository) MarkSent(id uint, at time.Time) error {
	return r.DB.Model(&model.Notification{}).Where("id = ?", id).
		Updates(map[string]interface{}{"sent": true, "sent_at": at}).Error
}

// History lists notifications newest-first, optionally filtered by sent
// state.
func (r *NotificationRepository) History(sent *bool, limit int) ([]model.Notification, error) {
	query := r.DB.Order("created_at DESC")
	if sent != nil {
		query = query.Where("sent = ?", *sent)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var history []model.Notification
	err := query.Find(&history).Error
	return history, err
}

// RecentSent returns delivered notifications for the per-user feed; role
// filtering happens in the service since recipients is a JSON column.
func (r *NotificationRepository) RecentSent(limit int) ([]model.Notification, error) {
	var sent []model.Notification
	err := r.DB.Where("sent = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&sent).Error
	return sent, err
}
